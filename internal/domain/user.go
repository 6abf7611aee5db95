package domain

import "time"

// ChatUser links a Telegram chat to a backend account
type ChatUser struct {
	ChatID           int64
	Username         string
	UserID           *int64 // nil until verified
	VerificationCode string
	CreatedAt        time.Time
}

// IsVerified reports whether the chat is linked to an account
func (u ChatUser) IsVerified() bool {
	return u.UserID != nil
}
