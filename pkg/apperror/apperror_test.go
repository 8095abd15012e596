package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want Kind
	}{
		{"plain error is internal", errors.New("boom"), KindInternal},
		{"direct", NotFound("flight not found"), KindNotFound},
		{"wrapped with fmt", fmt.Errorf("create booking: %w", InsufficientInventory("not enough seats")), KindInsufficientInventory},
		{"conflict", Conflict("booking is already cancelled"), KindConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestPublicMessage_HidesInternalDetail(t *testing.T) {
	err := Internal("insert booking", errors.New(`pq: relation "bookings" does not exist`))

	assert.Equal(t, "Internal server error", PublicMessage(err))
	assert.Contains(t, err.Error(), "relation")
}

func TestPublicMessage_ClassifiedError(t *testing.T) {
	err := fmt.Errorf("cancel: %w", Forbidden("not authorized to cancel this booking"))

	assert.Equal(t, "not authorized to cancel this booking", PublicMessage(err))
	assert.True(t, Is(err, KindForbidden))
	assert.False(t, Is(nil, KindForbidden))
}

func TestWrap_Unwraps(t *testing.T) {
	cause := errors.New("pool exhausted")
	err := Unavailable("database busy", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "unavailable", err.Kind.String())
}
