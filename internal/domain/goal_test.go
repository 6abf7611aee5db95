package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoalStatus_Label(t *testing.T) {
	tests := []struct {
		status   GoalStatus
		expected string
	}{
		{StatusToDo, "To do"},
		{StatusInProgress, "In progress"},
		{StatusDone, "Done"},
		{StatusArchived, "Archived"},
		{GoalStatus(9), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.Label())
		})
	}
}

func TestGoalPriority_Label(t *testing.T) {
	tests := []struct {
		priority GoalPriority
		expected string
	}{
		{PriorityLow, "Low"},
		{PriorityMedium, "Medium"},
		{PriorityHigh, "High"},
		{PriorityCritical, "Critical"},
		{GoalPriority(0), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.priority.Label())
		})
	}
}

func TestGoal_DueDateString(t *testing.T) {
	due := time.Date(2024, 12, 12, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-12-12", Goal{DueDate: &due}.DueDateString())
	assert.Equal(t, "", Goal{}.DueDateString())
}

func TestChatUser_IsVerified(t *testing.T) {
	userID := int64(7)

	assert.False(t, ChatUser{ChatID: 1}.IsVerified())
	assert.True(t, ChatUser{ChatID: 1, UserID: &userID}.IsVerified())
}

func TestConversationState_Clone(t *testing.T) {
	orig := &ConversationState{
		Step:       StepAwaitingCategoryChoice,
		Categories: map[int]int64{1: 5, 2: 8},
	}

	c := orig.Clone()
	c.Categories[1] = 99
	c.Step = StepAwaitingGoalTitle

	assert.Equal(t, int64(5), orig.Categories[1])
	assert.Equal(t, StepAwaitingCategoryChoice, orig.Step)

	var nilState *ConversationState
	assert.Nil(t, nilState.Clone())
}
