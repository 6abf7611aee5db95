package postgres

import (
	"context"
	"database/sql"
	"errors"

	"todobot/internal/domain"
	"todobot/internal/repository"
)

// GoalRepo implements repository.GoalRepository
type GoalRepo struct {
	db *sql.DB
}

// NewGoalRepo creates a new goal repository
func NewGoalRepo(db *sql.DB) *GoalRepo {
	return &GoalRepo{db: db}
}

// ListActiveGoals returns goals visible to the user through board participation.
// Archived goals and goals under deleted categories are excluded.
func (r *GoalRepo) ListActiveGoals(ctx context.Context, userID int64) ([]domain.Goal, error) {
	query := `
		SELECT g.id, g.title, g.due_date, g.status, g.priority, g.category_id, g.user_id
		FROM goals g
		JOIN goal_categories c ON c.id = g.category_id
		JOIN board_participants p ON p.board_id = c.board_id
		WHERE p.user_id = $1
			AND c.is_deleted = FALSE
			AND g.status <> $2
		ORDER BY g.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID, domain.StatusArchived)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		var g domain.Goal
		var due sql.NullTime
		if err := rows.Scan(&g.ID, &g.Title, &due, &g.Status, &g.Priority, &g.CategoryID, &g.UserID); err != nil {
			return nil, err
		}
		if due.Valid {
			g.DueDate = &due.Time
		}
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

// ListWritableCategories returns non-deleted categories on boards
// where the user is owner or writer
func (r *GoalRepo) ListWritableCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	query := `
		SELECT c.id, c.title
		FROM goal_categories c
		JOIN board_participants p ON p.board_id = c.board_id
		WHERE p.user_id = $1
			AND p.role IN ($2, $3)
			AND c.is_deleted = FALSE
		ORDER BY c.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID, domain.RoleOwner, domain.RoleWriter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Title); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// CreateGoal inserts a goal owned by the user. The insert only happens if
// the category is not deleted and the user can write to its board.
func (r *GoalRepo) CreateGoal(ctx context.Context, userID, categoryID int64, title string) (*domain.Goal, error) {
	query := `
		INSERT INTO goals (title, user_id, category_id)
		SELECT $1, $2, c.id
		FROM goal_categories c
		JOIN board_participants p ON p.board_id = c.board_id
		WHERE c.id = $3
			AND c.is_deleted = FALSE
			AND p.user_id = $2
			AND p.role IN ($4, $5)
		RETURNING id, status, priority
	`

	g := domain.Goal{Title: title, UserID: userID, CategoryID: categoryID}
	err := r.db.QueryRowContext(ctx, query, title, userID, categoryID, domain.RoleOwner, domain.RoleWriter).
		Scan(&g.ID, &g.Status, &g.Priority)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrCategoryUnavailable
	}
	if err != nil {
		return nil, translateError(err)
	}

	return &g, nil
}
