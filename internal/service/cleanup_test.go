package service

import (
	"testing"
	"time"

	"todobot/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestCleanupService_ExpireFlows(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		ttl       time.Duration
		mockCount int
		expected  int
		expectRun bool
	}{
		{
			name:      "expired flows removed",
			ttl:       time.Hour,
			mockCount: 3,
			expected:  3,
			expectRun: true,
		},
		{
			name:      "nothing to remove",
			ttl:       time.Hour,
			mockCount: 0,
			expected:  0,
			expectRun: true,
		},
		{
			name:     "disabled ttl",
			ttl:      0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSweeper := new(testutil.MockFlowSweeper)
			if tt.expectRun {
				mockSweeper.On("Sweep", now.Add(-tt.ttl)).Return(tt.mockCount)
			}

			service := NewCleanupService(mockSweeper, testutil.NewTestLogger())
			service.now = func() time.Time { return now }

			removed := service.ExpireFlows(tt.ttl)

			assert.Equal(t, tt.expected, removed)
			mockSweeper.AssertExpectations(t)
		})
	}
}
