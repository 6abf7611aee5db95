package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"todobot/internal/domain"
	"todobot/internal/repository"
)

const maxTitleLength = 255

var (
	ErrEmptyTitle   = errors.New("goal title cannot be empty")
	ErrTitleTooLong = errors.New("goal title is too long")
)

// GoalService handles goal-related business logic
type GoalService struct {
	goalRepo repository.GoalRepository
}

// NewGoalService creates a new goal service
func NewGoalService(goalRepo repository.GoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo}
}

// ListActiveGoals returns the user's non-archived goals
func (s *GoalService) ListActiveGoals(ctx context.Context, userID int64) ([]domain.Goal, error) {
	return s.goalRepo.ListActiveGoals(ctx, userID)
}

// ListWritableCategories returns categories the user may create goals in
func (s *GoalService) ListWritableCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	return s.goalRepo.ListWritableCategories(ctx, userID)
}

// CreateGoal creates a goal after trimming and validating the title
func (s *GoalService) CreateGoal(ctx context.Context, userID, categoryID int64, title string) (*domain.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}
	return s.goalRepo.CreateGoal(ctx, userID, categoryID, title)
}
