package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"todobot/internal/repository"

	"go.uber.org/zap"
)

const (
	codeLength      = 20
	codeAlphabet    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxCodeAttempts = 5
)

// ErrCodeGeneration is returned when no unique verification code could be stored
var ErrCodeGeneration = errors.New("could not issue a unique verification code")

// Resolution is the outcome of resolving a chat identity.
// Exactly one of UserID (verified) or Code (unverified) is meaningful.
type Resolution struct {
	Verified bool
	UserID   int64
	Code     string
}

// IdentityService links chats to backend accounts
type IdentityService struct {
	tgUserRepo repository.TgUserRepository
	logger     *zap.Logger
	newCode    func() (string, error)
}

// NewIdentityService creates a new identity service
func NewIdentityService(tgUserRepo repository.TgUserRepository, logger *zap.Logger) *IdentityService {
	return &IdentityService{
		tgUserRepo: tgUserRepo,
		logger:     logger,
		newCode:    generateCode,
	}
}

// Resolve returns the linked user for a chat. Unlinked chats get a fresh
// verification code every time, invalidating the previous one.
func (s *IdentityService) Resolve(ctx context.Context, chatID int64, username string) (Resolution, error) {
	if err := s.tgUserRepo.EnsureChatUser(ctx, chatID, username); err != nil {
		return Resolution{}, fmt.Errorf("ensure chat user: %w", err)
	}

	user, err := s.tgUserRepo.GetChatUser(ctx, chatID)
	if err != nil {
		return Resolution{}, fmt.Errorf("get chat user: %w", err)
	}
	if user == nil {
		return Resolution{}, fmt.Errorf("chat %d not found after insert", chatID)
	}

	if user.IsVerified() {
		return Resolution{Verified: true, UserID: *user.UserID}, nil
	}

	code, err := s.issueCode(ctx, chatID)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Code: code}, nil
}

func (s *IdentityService) issueCode(ctx context.Context, chatID int64) (string, error) {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}

		err = s.tgUserRepo.SetVerificationCode(ctx, chatID, code)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, repository.ErrCodeCollision) {
			return "", fmt.Errorf("store verification code: %w", err)
		}

		s.logger.Warn("Verification code collision",
			zap.Int64("chat_id", chatID),
			zap.Int("attempt", attempt))
	}
	return "", ErrCodeGeneration
}

// Verify consumes a verification code and links its chat to userID.
// Returns the chat that was linked.
func (s *IdentityService) Verify(ctx context.Context, code string, userID int64) (int64, error) {
	chatID, err := s.tgUserRepo.LinkByVerificationCode(ctx, code, userID)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Chat verified",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", userID))
	return chatID, nil
}

func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	limit := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
