package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIError(t *testing.T) {
	inner := errors.New("underlying")
	e := NewAPIError(ErrBadParameter, "invalid input", inner)
	require.NotNil(t, e)
	assert.Equal(t, ErrBadParameter, e.Code)
	assert.Equal(t, "invalid input", e.Message)
	assert.Same(t, inner, e.Inner)
	assert.ErrorIs(t, e, inner)
	assert.Equal(t, "bad_parameter invalid input: underlying", e.Error())
}

func TestAPIError_ErrorWithoutInner(t *testing.T) {
	assert.Equal(t, "unauthorized no session", NewUnauthorizedError("no session", nil).Error())
}

func TestAPIErrorConstructors(t *testing.T) {
	assert.Equal(t, ErrBadParameter, NewBadParameterError("bad", nil).Code)
	assert.Equal(t, ErrUnauthorized, NewUnauthorizedError("no", nil).Code)
	assert.Equal(t, ErrInternalServerError, NewInternalServerError("boom", nil).Code)
}

func TestAPIErrorConstructors_KeepExistingAPIError(t *testing.T) {
	original := NewUnauthorizedError("no session", nil)
	wrapped := fmt.Errorf("middleware: %w", original)

	assert.Same(t, original, NewInternalServerError("boom", wrapped))
	assert.Same(t, original, NewBadParameterError("bad", wrapped))
}

func TestToAPIError(t *testing.T) {
	e := NewBadParameterError("bad", nil)
	assert.Same(t, e, ToAPIError(e))
	assert.Same(t, e, ToAPIError(fmt.Errorf("ctx: %w", e)))
	assert.Nil(t, ToAPIError(errors.New("plain")))
	assert.Nil(t, ToAPIError(nil))
}

func TestIsAPIError(t *testing.T) {
	e := NewUnauthorizedError("no", nil)
	assert.True(t, IsAPIError(e, ErrUnauthorized))
	assert.False(t, IsAPIError(e, ErrBadParameter))
	assert.False(t, IsAPIError(errors.New("plain"), ErrUnauthorized))
}
