package service

import (
	"time"

	"go.uber.org/zap"
)

// FlowSweeper evicts conversation states untouched since a point in time
type FlowSweeper interface {
	Sweep(before time.Time) int
}

// CleanupService handles eviction of abandoned flows
type CleanupService struct {
	sweeper FlowSweeper
	logger  *zap.Logger
	now     func() time.Time
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(sweeper FlowSweeper, logger *zap.Logger) *CleanupService {
	return &CleanupService{
		sweeper: sweeper,
		logger:  logger,
		now:     time.Now,
	}
}

// ExpireFlows drops flows idle for longer than ttl and returns how many were dropped
func (s *CleanupService) ExpireFlows(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}

	removed := s.sweeper.Sweep(s.now().Add(-ttl))
	if removed > 0 {
		s.logger.Info("Expired abandoned flows",
			zap.Int("count", removed),
			zap.Duration("ttl", ttl))
	}
	return removed
}
