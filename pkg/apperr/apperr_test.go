package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{Validation, http.StatusBadRequest},
		{Auth, http.StatusUnauthorized},
		{Permission, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{Conflict, http.StatusConflict},
		{Internal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.kind.HTTPStatus(), tc.kind.String())
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "User not found")))
	assert.Equal(t, Internal, KindOf(errors.New("driver: connection reset")))

	wrapped := fmt.Errorf("outer: %w", New(Conflict, "Username already exists"))
	assert.Equal(t, Conflict, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, Conflict))
	assert.False(t, IsKind(nil, Conflict))
}

func TestMessageHidesInternalDetails(t *testing.T) {
	assert.Equal(t, "Invalid password", Message(New(Auth, "Invalid password")))

	cause := errors.New("pq: relation does not exist")
	assert.Equal(t, "Internal server error", Message(Wrap(Internal, "query failed", cause)))
	assert.Equal(t, "Internal server error", Message(cause))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(Internal, "store failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store failed: boom", err.Error())
}
