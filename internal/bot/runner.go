package bot

import (
	"context"
	"time"

	"todobot/internal/telegram"

	"go.uber.org/zap"
)

const defaultRetryDelay = time.Second

// Runner is the long-polling loop: it fetches updates, advances the cursor
// and hands each message to the handler, sending back its reply
type Runner struct {
	gateway     telegram.Gateway
	handle      telegram.HandlerFunc
	logger      *zap.Logger
	pollTimeout time.Duration
	retryDelay  time.Duration

	offset int
}

// NewRunner creates a new polling loop
func NewRunner(gateway telegram.Gateway, handle telegram.HandlerFunc, pollTimeout time.Duration, logger *zap.Logger) *Runner {
	return &Runner{
		gateway:     gateway,
		handle:      handle,
		logger:      logger,
		pollTimeout: pollTimeout,
		retryDelay:  defaultRetryDelay,
	}
}

// Offset returns the next update id the loop will ask for
func (r *Runner) Offset() int {
	return r.offset
}

// Run polls until ctx is cancelled. Cancellation is observed between
// updates; an update already being processed runs to completion.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("Polling started", zap.Duration("poll_timeout", r.pollTimeout))

	for {
		if ctx.Err() != nil {
			r.logger.Info("Polling stopped", zap.Int("offset", r.offset))
			return nil
		}

		updates, err := r.gateway.Poll(ctx, r.offset, r.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			r.logger.Warn("Failed to fetch updates",
				zap.Error(err),
				zap.Int("offset", r.offset))
			r.wait(ctx)
			continue
		}

		for _, u := range updates {
			if ctx.Err() != nil {
				break
			}
			// Advance before processing so a crash never replays this update
			if u.ID+1 > r.offset {
				r.offset = u.ID + 1
			}
			r.process(context.WithoutCancel(ctx), u)
		}
	}
}

func (r *Runner) wait(ctx context.Context) {
	t := time.NewTimer(r.retryDelay)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// process handles one update. Nothing it does can stop the loop.
func (r *Runner) process(ctx context.Context, u telegram.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Panic while processing update",
				zap.Int("update_id", u.ID),
				zap.Any("panic", rec))
		}
	}()

	if u.Err != nil {
		r.logger.Warn("Skipping malformed update",
			zap.Int("update_id", u.ID),
			zap.Error(u.Err))
		return
	}
	if u.Message == nil {
		r.logger.Debug("Skipping update without message", zap.Int("update_id", u.ID))
		return
	}

	chatID := u.Message.ChatID

	reply, err := r.handle(ctx, *u.Message)
	if err != nil {
		r.logger.Error("Failed to process message",
			zap.Error(err),
			zap.Int("update_id", u.ID),
			zap.Int64("chat_id", chatID))
		return
	}
	if reply == "" {
		return
	}

	if err := r.gateway.Send(ctx, chatID, reply); err != nil {
		r.logger.Warn("Failed to send reply",
			zap.Error(err),
			zap.Int("update_id", u.ID),
			zap.Int64("chat_id", chatID))
	}
}
