package postgres

import (
	"context"
	"database/sql"
	"errors"

	"todobot/internal/domain"
	"todobot/internal/repository"
)

// TgUserRepo implements repository.TgUserRepository
type TgUserRepo struct {
	db *sql.DB
}

// NewTgUserRepo creates a new chat identity repository
func NewTgUserRepo(db *sql.DB) *TgUserRepo {
	return &TgUserRepo{db: db}
}

// EnsureChatUser creates the chat record if it does not exist.
// The username is only recorded on creation.
func (r *TgUserRepo) EnsureChatUser(ctx context.Context, chatID int64, username string) error {
	query := `
		INSERT INTO tg_users (chat_id, username)
		VALUES ($1, NULLIF($2, ''))
		ON CONFLICT (chat_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, chatID, username)
	return translateError(err)
}

// GetChatUser returns the chat record, or nil if it doesn't exist
func (r *TgUserRepo) GetChatUser(ctx context.Context, chatID int64) (*domain.ChatUser, error) {
	var (
		u        domain.ChatUser
		username sql.NullString
		userID   sql.NullInt64
		code     sql.NullString
	)
	query := `SELECT chat_id, username, user_id, verification_code, created_at FROM tg_users WHERE chat_id = $1`
	err := r.db.QueryRowContext(ctx, query, chatID).Scan(&u.ChatID, &username, &userID, &code, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	u.Username = username.String
	u.VerificationCode = code.String
	if userID.Valid {
		id := userID.Int64
		u.UserID = &id
	}

	return &u, nil
}

// SetVerificationCode replaces the chat's code, invalidating the old one
func (r *TgUserRepo) SetVerificationCode(ctx context.Context, chatID int64, code string) error {
	query := `UPDATE tg_users SET verification_code = $2 WHERE chat_id = $1`
	_, err := r.db.ExecContext(ctx, query, chatID, code)
	return translateError(err)
}

// LinkByVerificationCode binds the unverified chat holding code to userID
// and consumes the code. Returns the linked chat id.
func (r *TgUserRepo) LinkByVerificationCode(ctx context.Context, code string, userID int64) (int64, error) {
	query := `
		UPDATE tg_users
		SET user_id = $2, verification_code = NULL
		WHERE verification_code = $1 AND user_id IS NULL
		RETURNING chat_id
	`
	var chatID int64
	err := r.db.QueryRowContext(ctx, query, code, userID).Scan(&chatID)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, repository.ErrCodeNotFound
	}
	if err != nil {
		return 0, translateError(err)
	}

	return chatID, nil
}
