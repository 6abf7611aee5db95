package repository

import (
	"context"
	"errors"

	"todobot/internal/domain"
)

var (
	// ErrIntegrity is returned when storage rejects a write (constraint violation)
	ErrIntegrity = errors.New("integrity violation")
	// ErrCategoryUnavailable means the category is deleted or not writable by the user
	ErrCategoryUnavailable = errors.New("category not available")
	// ErrCodeCollision means the verification code is already taken by another chat
	ErrCodeCollision = errors.New("verification code collision")
	// ErrCodeNotFound means no unverified chat holds the given code
	ErrCodeNotFound = errors.New("verification code not found")
	// ErrAlreadyLinked means the account is already linked to another chat
	ErrAlreadyLinked = errors.New("user already linked to a chat")
)

// TgUserRepository defines chat identity operations
type TgUserRepository interface {
	EnsureChatUser(ctx context.Context, chatID int64, username string) error
	GetChatUser(ctx context.Context, chatID int64) (*domain.ChatUser, error)
	SetVerificationCode(ctx context.Context, chatID int64, code string) error
	LinkByVerificationCode(ctx context.Context, code string, userID int64) (int64, error)
}

// GoalRepository defines the goal operations the bot needs
type GoalRepository interface {
	ListActiveGoals(ctx context.Context, userID int64) ([]domain.Goal, error)
	ListWritableCategories(ctx context.Context, userID int64) ([]domain.Category, error)
	CreateGoal(ctx context.Context, userID, categoryID int64, title string) (*domain.Goal, error)
}
