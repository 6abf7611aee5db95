package testutil

import (
	"context"
	"time"

	"todobot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockTgUserRepository is a mock for TgUserRepository
type MockTgUserRepository struct {
	mock.Mock
}

func (m *MockTgUserRepository) EnsureChatUser(ctx context.Context, chatID int64, username string) error {
	args := m.Called(ctx, chatID, username)
	return args.Error(0)
}

func (m *MockTgUserRepository) GetChatUser(ctx context.Context, chatID int64) (*domain.ChatUser, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatUser), args.Error(1)
}

func (m *MockTgUserRepository) SetVerificationCode(ctx context.Context, chatID int64, code string) error {
	args := m.Called(ctx, chatID, code)
	return args.Error(0)
}

func (m *MockTgUserRepository) LinkByVerificationCode(ctx context.Context, code string, userID int64) (int64, error) {
	args := m.Called(ctx, code, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockGoalRepository is a mock for GoalRepository
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) ListActiveGoals(ctx context.Context, userID int64) ([]domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) ListWritableCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockGoalRepository) CreateGoal(ctx context.Context, userID, categoryID int64, title string) (*domain.Goal, error) {
	args := m.Called(ctx, userID, categoryID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

// MockFlowSweeper is a mock for service.FlowSweeper
type MockFlowSweeper struct {
	mock.Mock
}

func (m *MockFlowSweeper) Sweep(before time.Time) int {
	args := m.Called(before)
	return args.Int(0)
}
