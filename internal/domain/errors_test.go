package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundWrapping(t *testing.T) {
	err := NotFound("user", "42")
	assert.Equal(t, "user 42 not found", err.Error())
	assert.True(t, IsNotFound(err))

	wrapped := fmt.Errorf("failed to get user: %w", err)
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsInvalid(wrapped))
	assert.False(t, IsConflict(wrapped))
}

func TestInvalidCarriesDetails(t *testing.T) {
	details := []string{"page"}
	err := fmt.Errorf("failed to list users: %w", Invalid("invalid list query", details))

	assert.True(t, IsInvalid(err))
	assert.Equal(t, details, ValidationDetails(err))
	assert.Nil(t, ValidationDetails(NotFound("user", "")))
}

func TestConflictAndUnauthorized(t *testing.T) {
	err := Conflict("email %s already used", "a@b.c")
	assert.True(t, IsConflict(err))
	assert.Contains(t, err.Error(), "a@b.c")

	assert.True(t, IsUnauthorized(fmt.Errorf("login: %w", ErrUnauthorized)))
}
