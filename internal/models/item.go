package models

import (
	"fmt"
	"time"
)

// ItemType distinguishes the two report variants. Closed set: use the
// constants below, never raw strings.
type ItemType string

const (
	ItemTypeLost  ItemType = "lost"
	ItemTypeFound ItemType = "found"
)

// ParseItemType validates a wire-level item type string
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemTypeLost:
		return ItemTypeLost, nil
	case ItemTypeFound:
		return ItemTypeFound, nil
	}
	return "", fmt.Errorf("%w: invalid item type %q", ErrBadRequest, s)
}

func (t ItemType) String() string { return string(t) }

// Table returns the backing table for this item variant
func (t ItemType) Table() string {
	if t == ItemTypeFound {
		return "found_items"
	}
	return "lost_items"
}

// Item is a lost or found report. The three deletion fields are set
// together on soft delete and cleared together on restore; DeletedAt nil
// means the item is active.
type Item struct {
	ID             string
	Type           ItemType
	UserID         string
	Title          string
	Description    string
	Category       string
	Location       string
	ItemDate       time.Time
	ImageFile      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
	DeletedBy      *string
	DeletionReason *string
	AutoDeleted    bool
}

// Deleted reports whether the item is currently soft-deleted
func (i *Item) Deleted() bool {
	return i.DeletedAt != nil
}
