package helper

import (
	"strings"

	"github.com/google/uuid"

	"classroom_backend/internals/helpers/apperr"
)

// ParseID parses a path/query identifier; empty or malformed input is an
// apperr.ErrInvalidInput naming the field.
func ParseID(raw, field string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, apperr.InvalidInput(field + " is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apperr.InvalidInput(field + " is not a valid id")
	}
	return id, nil
}
