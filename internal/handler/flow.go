package handler

import (
	"context"
	"fmt"
	"strconv"

	"todobot/internal/domain"

	"go.uber.org/zap"
)

// handleCategoryChoice resolves a listed index to its category.
// Bad input keeps the chat on the same step with the same mapping.
func (r *Router) handleCategoryChoice(chatID int64, state *domain.ConversationState, text string) string {
	index, err := strconv.Atoi(cleanInput(text))
	if err != nil {
		r.store.Set(chatID, state)
		return notValidIndexText
	}

	categoryID, ok := state.Categories[index]
	if !ok {
		r.store.Set(chatID, state)
		return invalidIndexText
	}

	r.store.Set(chatID, &domain.ConversationState{
		Step:       domain.StepAwaitingGoalTitle,
		CategoryID: categoryID,
	})

	return fmt.Sprintf(categoryChosenText, index)
}

// handleGoalTitle creates the goal and ends the flow whatever the outcome
func (r *Router) handleGoalTitle(ctx context.Context, chatID, userID int64, state *domain.ConversationState, text string) string {
	r.store.Delete(chatID)

	goal, err := r.goals.CreateGoal(ctx, userID, state.CategoryID, text)
	if err != nil {
		r.logger.Warn("Failed to create goal",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.Int64("user_id", userID),
			zap.Int64("category_id", state.CategoryID))
		return goalNotCreatedText
	}

	r.logger.Info("Goal created",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", userID),
		zap.Int64("goal_id", goal.ID))

	return fmt.Sprintf(goalCreatedFormat, goal.Title)
}
