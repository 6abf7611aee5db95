package handler

import (
	"context"

	"todobot/internal/conversation"
	"todobot/internal/domain"

	"go.uber.org/zap"
)

// GoalService is what the router needs from goal storage
type GoalService interface {
	ListActiveGoals(ctx context.Context, userID int64) ([]domain.Goal, error)
	ListWritableCategories(ctx context.Context, userID int64) ([]domain.Category, error)
	CreateGoal(ctx context.Context, userID, categoryID int64, title string) (*domain.Goal, error)
}

// Router turns a verified user's message into exactly one reply,
// driving the per-chat conversation state machine
type Router struct {
	goals  GoalService
	store  conversation.Store
	locks  *conversation.KeyedMutex
	logger *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(goals GoalService, store conversation.Store, logger *zap.Logger) *Router {
	return &Router{
		goals:  goals,
		store:  store,
		locks:  conversation.NewKeyedMutex(),
		logger: logger,
	}
}

// Handle processes one message. Messages of the same chat are serialized.
func (r *Router) Handle(ctx context.Context, chatID, userID int64, text string) string {
	unlock := r.locks.Lock(chatID)
	defer unlock()

	state, pending := r.store.Get(chatID)

	// A command always leaves the pending flow first
	if cmd, ok := parseCommand(text); ok {
		if pending {
			r.store.Delete(chatID)
			r.logger.Debug("Flow interrupted by command",
				zap.Int64("chat_id", chatID),
				zap.String("step", string(state.Step)),
				zap.String("command", cmd))
		}
		return r.handleCommand(ctx, chatID, userID, cmd, pending)
	}

	if !pending {
		return menuText
	}

	switch state.Step {
	case domain.StepAwaitingCategoryChoice:
		return r.handleCategoryChoice(chatID, state, text)
	case domain.StepAwaitingGoalTitle:
		return r.handleGoalTitle(ctx, chatID, userID, state, text)
	}

	r.logger.Warn("Unknown flow step, resetting",
		zap.Int64("chat_id", chatID),
		zap.String("step", string(state.Step)))
	r.store.Delete(chatID)
	return menuText
}
