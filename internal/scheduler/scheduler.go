package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// FlowExpirer drops conversation flows idle for longer than a TTL
type FlowExpirer interface {
	ExpireFlows(ttl time.Duration) int
}

// StartFlowSweeper runs ExpireFlows every interval. The caller owns the
// returned scheduler and must shut it down.
func StartFlowSweeper(expirer FlowExpirer, ttl, interval time.Duration, logger *zap.Logger) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			expirer.ExpireFlows(ttl)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("register flow sweeper: %w", err)
	}

	s.Start()

	logger.Info("Flow sweeper started",
		zap.Duration("ttl", ttl),
		zap.Duration("interval", interval))
	return s, nil
}
