package apperror

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	errLocked := New(KindInvalidTransition, "timesheet is locked")

	wrapped := fmt.Errorf("save week: %w", errLocked)

	assert.Equal(t, KindInvalidTransition, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindInvalidTransition))
	assert.ErrorIs(t, wrapped, errLocked)
	assert.Equal(t, KindUnexpected, KindOf(fmt.Errorf("boom")))
	assert.Equal(t, KindUnexpected, KindOf(nil))
}

func TestKind_String(t *testing.T) {
	cases := map[Kind]string{
		KindValidation:        "VALIDATION_ERROR",
		KindInvalidTransition: "INVALID_TRANSITION",
		KindNotFound:          "NOT_FOUND",
		KindForbidden:         "FORBIDDEN",
		KindConflict:          "CONFLICT",
		KindUnauthorized:      "UNAUTHORIZED",
		KindUnexpected:        "INTERNAL_SERVER_ERROR",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}
