package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"todobot/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const verifiedText = "Bot has been verified"

// Verifier consumes verification codes
type Verifier interface {
	Verify(ctx context.Context, code string, userID int64) (int64, error)
}

// Notifier delivers a text message to a chat
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// VerifyHandler links a chat to a backend account by verification code
type VerifyHandler struct {
	verifier Verifier
	notifier Notifier
	apiToken string
	logger   *zap.Logger
}

// NewVerifyHandler creates a new verification handler
func NewVerifyHandler(verifier Verifier, notifier Notifier, apiToken string, logger *zap.Logger) *VerifyHandler {
	return &VerifyHandler{
		verifier: verifier,
		notifier: notifier,
		apiToken: apiToken,
		logger:   logger,
	}
}

// RegisterRoutes mounts the verification routes
func (h *VerifyHandler) RegisterRoutes(r chi.Router) {
	r.Patch("/bot/verify", h.handleVerify)
}

type verifyRequest struct {
	VerificationCode string `json:"verification_code"`
	UserID           int64  `json:"user_id"`
}

type verifyResponse struct {
	ChatID int64 `json:"chat_id"`
	UserID int64 `json:"user_id"`
}

func (h *VerifyHandler) handleVerify(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.VerificationCode = strings.TrimSpace(req.VerificationCode)
	if req.VerificationCode == "" || req.UserID <= 0 {
		Error(w, http.StatusBadRequest, "verification_code and user_id are required")
		return
	}

	chatID, err := h.verifier.Verify(r.Context(), req.VerificationCode, req.UserID)
	switch {
	case errors.Is(err, repository.ErrCodeNotFound):
		Error(w, http.StatusForbidden, "invalid verification code")
		return
	case errors.Is(err, repository.ErrAlreadyLinked):
		Error(w, http.StatusConflict, "user is already linked to another chat")
		return
	case err != nil:
		h.logger.Error("Failed to verify chat",
			zap.Error(err),
			zap.Int64("user_id", req.UserID))
		Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.notifier.Send(r.Context(), chatID, verifiedText); err != nil {
		h.logger.Warn("Failed to notify verified chat",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}

	JSON(w, http.StatusOK, verifyResponse{ChatID: chatID, UserID: req.UserID})
}

func (h *VerifyHandler) authorized(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.apiToken)) == 1
}
