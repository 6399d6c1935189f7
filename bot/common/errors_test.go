package common

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"tycoon/domain/entities"
)

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(fmt.Errorf("bet too big: %w", entities.ErrInsufficientFunds)))
	assert.True(t, IsUserError(fmt.Errorf("not enough seeds: %w", entities.ErrInsufficientQuantity)))
	assert.True(t, IsUserError(fmt.Errorf("plot occupied: %w", entities.ErrInvalidState)))

	assert.False(t, IsUserError(fmt.Errorf("item %q: %w", "crown", entities.ErrNotFound)),
		"unknown references are surfaced generically, not as user messages")
	assert.False(t, IsUserError(fmt.Errorf("connection refused")))
}

func TestUserFacingMessage(t *testing.T) {
	err := fmt.Errorf("not enough cash: %w", entities.ErrInsufficientFunds)
	assert.Equal(t, "Not enough cash.", UserFacingMessage(err))
}
