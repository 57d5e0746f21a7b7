package httperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NewValidation("bad input"), http.StatusBadRequest},
		{NewDomain("insufficient stock"), http.StatusBadRequest},
		{NewAuth("invalid credentials"), http.StatusUnauthorized},
		{NewForbidden("nope"), http.StatusForbidden},
		{NewNotFound("missing"), http.StatusNotFound},
		{NewConflict("duplicate"), http.StatusConflict},
		{Wrap(errors.New("boom"), "db down"), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StatusCode(c.err), c.err.Error())
	}
}

func TestStatusCodeWrappedChain(t *testing.T) {
	// AppErrors remain classifiable through fmt wrapping.
	inner := NewNotFound("invoice not found")
	wrapped := fmt.Errorf("while rendering: %w", inner)
	assert.Equal(t, http.StatusNotFound, StatusCode(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, "failed to list products")

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "failed to list products")
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, IsKind(err, KindUnexpected))
}

func TestIsKindMismatch(t *testing.T) {
	assert.False(t, IsKind(NewAuth("x"), KindForbidden))
	assert.False(t, IsKind(errors.New("plain"), KindAuth))
}
