package models

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource conflict")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Lifecycle errors
	ErrRestoreExpired = errors.New("restore window expired")
)

// ActiveMatchError reports a deletion blocked by a live verification or
// return process. Unwraps to ErrConflict so callers can branch on the
// sentinel while still reaching the ids.
type ActiveMatchError struct {
	ItemType    ItemType
	ItemID      string
	ActiveCount int
}

func (e *ActiveMatchError) Error() string {
	return fmt.Sprintf("cannot delete %s item %s: %d active match(es)", e.ItemType, e.ItemID, e.ActiveCount)
}

func (e *ActiveMatchError) Unwrap() error { return ErrConflict }

// RestoreWindowError reports a restore attempted after the allowed window.
type RestoreWindowError struct {
	ItemType  ItemType
	ItemID    string
	DeletedAt time.Time
	Window    time.Duration
}

func (e *RestoreWindowError) Error() string {
	return fmt.Sprintf("restore window for %s item %s expired: deleted at %s, window %s",
		e.ItemType, e.ItemID, e.DeletedAt.Format(time.RFC3339), e.Window)
}

func (e *RestoreWindowError) Unwrap() error { return ErrRestoreExpired }
