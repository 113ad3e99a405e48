package helper

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classroom_backend/internals/helpers/apperr"
)

func TestParseID(t *testing.T) {
	want := uuid.New()
	got, err := ParseID("  "+want.String()+" ", "student_id")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	for _, raw := range []string{"", "   ", "42", uuid.Nil.String()} {
		_, err := ParseID(raw, "student_id")
		assert.True(t, errors.Is(err, apperr.ErrInvalidInput), "input %q", raw)
		assert.Contains(t, apperr.Message(err), "student_id")
	}
}
