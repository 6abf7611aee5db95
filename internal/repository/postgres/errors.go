package postgres

import (
	"errors"
	"strings"

	"todobot/internal/repository"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// translateError maps driver errors onto repository sentinels.
// Constraint names come from the migrations (postgres default naming).
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	if pqErr.Code.Class() != "23" {
		return err
	}
	if pqErr.Code == uniqueViolation {
		switch {
		case strings.Contains(pqErr.Constraint, "verification_code"):
			return repository.ErrCodeCollision
		case strings.Contains(pqErr.Constraint, "tg_users_user_id"):
			return repository.ErrAlreadyLinked
		}
	}
	return errors.Join(repository.ErrIntegrity, err)
}
