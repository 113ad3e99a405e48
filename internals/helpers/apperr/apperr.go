// Package apperr holds the error kinds every feature reports to its callers.
package apperr

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// pg unique_violation
const uniqueViolation = "23505"

func InvalidInput(msg string) error { return errors.WithMessage(ErrInvalidInput, msg) }
func NotFound(msg string) error     { return errors.WithMessage(ErrNotFound, msg) }
func Conflict(msg string) error     { return errors.WithMessage(ErrConflict, msg) }

// Store classifies an error coming back from gorm. op names the entity or the
// operation ("student", "create session"). Kinds already set pass through,
// missing rows become ErrNotFound, unique violations ErrConflict and
// everything else ErrStoreUnavailable.
func Store(err error, op string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict), errors.Is(err, ErrStoreUnavailable):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.WithMessage(ErrNotFound, op+" not found")
	case IsDuplicateKey(err):
		return errors.WithMessage(ErrConflict, op+": duplicate key")
	}
	return errors.WithMessagef(ErrStoreUnavailable, "%s: %v", op, err)
}

// IsDuplicateKey reports whether err is a unique constraint violation.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "violates unique constraint") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}

// Message strips the kind suffix so HTTP responses read naturally.
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, kind := range []error{ErrInvalidInput, ErrNotFound, ErrConflict, ErrStoreUnavailable} {
		if suffix := ": " + kind.Error(); strings.HasSuffix(msg, suffix) {
			return strings.TrimSuffix(msg, suffix)
		}
	}
	return msg
}
