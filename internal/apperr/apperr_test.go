package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	err := New(NotFound, "Event not found")
	assert.Equal(t, NotFound, KindOf(err))

	wrapped := fmt.Errorf("handling request: %w", err)
	assert.Equal(t, NotFound, KindOf(wrapped))

	assert.Equal(t, Internal, KindOf(errors.New("disk on fire")))
	assert.Equal(t, Internal, KindOf(nil))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "Wish already reserved", MessageOf(New(Conflict, "Wish already reserved")))

	// Unclassified errors must not leak internal detail.
	assert.Equal(t, "internal server error", MessageOf(errors.New("pq: connection refused")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("no rows")
	err := Wrap(NotFound, "User not found", cause)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, NotFound, KindOf(err))

	assert.NoError(t, Wrap(Internal, "ignored", nil))
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation is 400", New(Validation, "title is required"), http.StatusBadRequest},
		{"conflict is 400 per the API contract", New(Conflict, "Username already exists"), http.StatusBadRequest},
		{"auth is 401", New(Auth, "Invalid username or password"), http.StatusUnauthorized},
		{"forbidden is 403", New(Forbidden, "Not authorized"), http.StatusForbidden},
		{"not found is 404", New(NotFound, "Wish not found"), http.StatusNotFound},
		{"unclassified is 500", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, Status(tt.err))
		})
	}
}
