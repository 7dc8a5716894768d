package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseItemType(t *testing.T) {
	tests := []struct {
		input   string
		want    ItemType
		wantErr bool
	}{
		{"lost", ItemTypeLost, false},
		{"found", ItemTypeFound, false},
		{"LOST", "", true},
		{"stolen", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseItemType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrBadRequest))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItemType_Table(t *testing.T) {
	assert.Equal(t, "lost_items", ItemTypeLost.Table())
	assert.Equal(t, "found_items", ItemTypeFound.Table())
}

func TestItem_Deleted(t *testing.T) {
	item := &Item{}
	assert.False(t, item.Deleted())

	now := time.Now().UTC()
	item.DeletedAt = &now
	assert.True(t, item.Deleted())
}
