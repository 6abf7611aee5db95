package handler

import (
	"context"
	"fmt"
	"strings"

	"todobot/internal/domain"

	"go.uber.org/zap"
)

// parseCommand extracts a lowercased command from text, dropping any
// @BotName suffix and arguments. ok is false for plain text.
func parseCommand(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}

	cmd := strings.Fields(text)[0]
	if at := strings.IndexByte(cmd, '@'); at > 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd), true
}

func (r *Router) handleCommand(ctx context.Context, chatID, userID int64, cmd string, hadFlow bool) string {
	switch cmd {
	case "/goals":
		return r.handleGoals(ctx, chatID, userID)
	case "/create":
		return r.handleCreate(ctx, chatID, userID)
	case "/cancel":
		if hadFlow {
			return actionCancelledText
		}
		return menuText
	case "/start", "/help":
		return menuText
	}
	return unknownCommandText
}

// handleGoals lists the user's non-archived goals
func (r *Router) handleGoals(ctx context.Context, chatID, userID int64) string {
	goals, err := r.goals.ListActiveGoals(ctx, userID)
	if err != nil {
		r.logger.Error("Failed to list goals",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.Int64("user_id", userID))
		return genericErrorText
	}

	if len(goals) == 0 {
		return noGoalsText
	}
	return formatGoals(goals)
}

func formatGoals(goals []domain.Goal) string {
	lines := make([]string, 0, len(goals))
	for i, g := range goals {
		lines = append(lines, fmt.Sprintf(goalLineFormat,
			i+1,
			g.Title,
			g.Status.Label(),
			g.Priority.Label(),
			g.DueDateString(),
		))
	}
	return strings.Join(lines, "\n")
}

// handleCreate starts the goal creation flow with a fresh category mapping
func (r *Router) handleCreate(ctx context.Context, chatID, userID int64) string {
	categories, err := r.goals.ListWritableCategories(ctx, userID)
	if err != nil {
		r.logger.Error("Failed to list categories",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.Int64("user_id", userID))
		return genericErrorText
	}

	if len(categories) == 0 {
		return noCategoriesText
	}

	mapping := make(map[int]int64, len(categories))
	lines := make([]string, 0, len(categories)+1)
	lines = append(lines, chooseCategoryText)
	for i, c := range categories {
		mapping[i+1] = c.ID
		lines = append(lines, fmt.Sprintf(categoryLineFormat, i+1, c.Title))
	}

	r.store.Set(chatID, &domain.ConversationState{
		Step:       domain.StepAwaitingCategoryChoice,
		Categories: mapping,
	})

	return strings.Join(lines, "\n")
}
