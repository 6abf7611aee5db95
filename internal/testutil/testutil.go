package testutil

import (
	"time"

	"todobot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestChatUser creates a test chat record, linked when userID is non-zero
func NewTestChatUser(chatID, userID int64) *domain.ChatUser {
	u := &domain.ChatUser{
		ChatID:    chatID,
		CreatedAt: time.Now(),
	}
	if userID != 0 {
		u.UserID = &userID
	}
	return u
}

// NewTestGoal creates a test goal in the default state
func NewTestGoal(id, userID, categoryID int64, title string) domain.Goal {
	return domain.Goal{
		ID:         id,
		Title:      title,
		Status:     domain.StatusToDo,
		Priority:   domain.PriorityMedium,
		CategoryID: categoryID,
		UserID:     userID,
	}
}
