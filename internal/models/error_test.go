package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActiveMatchError_UnwrapsToConflict(t *testing.T) {
	err := &ActiveMatchError{ItemType: ItemTypeLost, ItemID: "item-1", ActiveCount: 2}

	assert.True(t, errors.Is(err, ErrConflict))
	assert.Contains(t, err.Error(), "item-1")
	assert.Contains(t, err.Error(), "2 active match(es)")

	// Structured details survive wrapping
	wrapped := fmt.Errorf("delete failed: %w", err)
	var matchErr *ActiveMatchError
	assert.True(t, errors.As(wrapped, &matchErr))
	assert.Equal(t, 2, matchErr.ActiveCount)
}

func TestRestoreWindowError_UnwrapsToExpired(t *testing.T) {
	deletedAt := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	err := &RestoreWindowError{
		ItemType:  ItemTypeFound,
		ItemID:    "item-2",
		DeletedAt: deletedAt,
		Window:    30 * 24 * time.Hour,
	}

	assert.True(t, errors.Is(err, ErrRestoreExpired))
	assert.False(t, errors.Is(err, ErrConflict))

	var windowErr *RestoreWindowError
	assert.True(t, errors.As(err, &windowErr))
	assert.Equal(t, deletedAt, windowErr.DeletedAt)
}
