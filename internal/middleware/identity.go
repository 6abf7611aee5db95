package middleware

import (
	"context"
	"errors"
	"fmt"

	"todobot/internal/service"
	"todobot/internal/telegram"

	"go.uber.org/zap"
)

const (
	verificationCodeText = "Verification code: %s"
	identityErrorText    = "Something went wrong. Try again later."
)

// IdentityResolver maps a chat to its verified account
type IdentityResolver interface {
	Resolve(ctx context.Context, chatID int64, username string) (service.Resolution, error)
}

// VerifiedFunc handles a message from a chat linked to userID
type VerifiedFunc func(ctx context.Context, chatID, userID int64, text string) string

// RequireVerified lets only verified chats reach next. Unverified chats are
// answered with a fresh verification code and go no further this turn.
func RequireVerified(identity IdentityResolver, logger *zap.Logger) func(VerifiedFunc) telegram.HandlerFunc {
	return func(next VerifiedFunc) telegram.HandlerFunc {
		return func(ctx context.Context, msg telegram.Message) (string, error) {
			res, err := identity.Resolve(ctx, msg.ChatID, msg.Username)
			if errors.Is(err, service.ErrCodeGeneration) {
				return "", err
			}
			if err != nil {
				logger.Error("Failed to resolve chat identity",
					zap.Int64("chat_id", msg.ChatID),
					zap.Error(err))
				return identityErrorText, nil
			}

			if !res.Verified {
				return fmt.Sprintf(verificationCodeText, res.Code), nil
			}

			return next(ctx, msg.ChatID, res.UserID, msg.Text), nil
		}
	}
}
