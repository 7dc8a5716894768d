package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refindhq/refind/internal/models"
)

func TestLifecycleService_SoftDeleteItem_Success(t *testing.T) {
	item := NewTestItem("item1", models.ItemTypeLost, "user1", time.Now().UTC().Add(-48*time.Hour))

	var gotDeletedBy, gotReason string
	mockItems := &MockItemRepository{
		GetByIDFunc: func(ctx context.Context, itemType models.ItemType, id string) (*models.Item, error) {
			return item, nil
		},
		SoftDeleteFunc: func(ctx context.Context, itemType models.ItemType, id, deletedBy, reason string) error {
			gotDeletedBy = deletedBy
			gotReason = reason
			return nil
		},
	}
	mockMatches := &MockMatchRepository{}

	svc := NewLifecycleService(mockItems, mockMatches, slog.Default())

	err := svc.SoftDeleteItem(context.Background(), models.ItemTypeLost, "item1", "user1", "Found it myself")

	assert.NoError(t, err)
	assert.Equal(t, "user1", gotDeletedBy)
	assert.Equal(t, "Found it myself", gotReason)
}

func TestLifecycleService_SoftDeleteItem_NotFound(t *testing.T) {
	svc := NewLifecycleService(&MockItemRepository{}, &MockMatchRepository{}, slog.Default())

	err := svc.SoftDeleteItem(context.Background(), models.ItemTypeFound, "missing", "user1", "")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLifecycleService_SoftDeleteItem_NotOwner(t *testing.T) {
	item := NewTestItem("item1", models.ItemTypeLost, "owner", time.Now().UTC())

	deleted := false
	mockItems := &MockItemRepository{
		GetByIDFunc: func(ctx context.Context, itemType models.ItemType, id string) (*models.Item, error) {
			return item, nil
		},
		SoftDeleteFunc: func(ctx context.Context, itemType models.ItemType, id, deletedBy, reason string) error {
			deleted = true
			return nil
		},
	}

	svc := NewLifecycleService(mockItems, &MockMatchRepository{}, slog.Default())

	err := svc.SoftDeleteItem(context.Background(), models.ItemTypeLost, "item1", "intruder", "")

	assert.ErrorIs(t, err, models.ErrUnauthorized)
	assert.False(t, deleted, "item must be left unchanged")
}

func TestLifecycleService_SoftDeleteItem_ActiveMatchConflict(t *testing.T) {
	item := NewTestItem("item1", models.ItemTypeFound, "user1", time.Now().UTC())

	deleted := false
	mockItems := &MockItemRepository{
		GetByIDFunc: func(ctx context.Context, itemType models.ItemType, id string) (*models.Item, error) {
			return item, nil
		},
		SoftDeleteFunc: func(ctx context.Context, itemType models.ItemType, id, deletedBy, reason string) error {
			deleted = true
			return nil
		},
	}
	mockMatches := &MockMatchRepository{
		CountActiveForItemFunc: func(ctx context.Context, itemType models.ItemType, itemID string) (int, error) {
			return 1, nil
		},
	}

	svc := NewLifecycleService(mockItems, mockMatches, slog.Default())

	err := svc.SoftDeleteItem(context.Background(), models.ItemTypeFound, "item1", "user1", "")

	assert.ErrorIs(t, err, models.ErrConflict)
	assert.False(t, deleted, "item must be left unchanged")

	var matchErr *models.ActiveMatchError
	require.ErrorAs(t, err, &matchErr)
	assert.Equal(t, "item1", matchErr.ItemID)
	assert.Equal(t, 1, matchErr.ActiveCount)
}

func TestLifecycleService_SoftDeleteItem_AlreadyDeleted(t *testing.T) {
	item := NewDeletedTestItem("item1", models.ItemTypeLost, "user1", time.Now().UTC().Add(-time.Hour))

	mockItems := &MockItemRepository{
		GetByIDFunc: func(ctx context.Context, itemType models.ItemType, id string) (*models.Item, error) {
			return item, nil
		},
	}

	svc := NewLifecycleService(mockItems, &MockMatchRepository{}, slog.Default())

	err := svc.SoftDeleteItem(context.Background(), models.ItemTypeLost, "item1", "user1", "")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLifecycleService_RestoreItem_Success(t *testing.T) {
	deletedAt := time.Now().UTC().Add(-29 * 24 * time.Hour)
	item := NewDeletedTestItem("item1", models.ItemTypeLost, "user1", deletedAt)

	restored := false
	mockItems := &MockItemRepository{
		GetByIDFunc: func(ctx context.Context, itemType models.ItemType, id string) (*models.Item, error) {
			return item, nil
		},
		RestoreFunc: func(ctx context.Context, itemType models.ItemType, id string) error {
			restored = true
			return nil
		},
	}

	svc := NewLifecycleService(mockItems, &MockMatchRepository{}, slog.Default())

	err := svc.RestoreItem(context.Background(), models.ItemTypeLost, "item1", "user1")

	assert.NoError(t, err)
	assert.True(t, restored)
}

func TestLifecycleService_RestoreItem_WindowExpired(t *testing.T) {
	deletedAt := time.Now().UTC().Add(-31 * 24 * time.Hour)
	item := NewDeletedTestItem("item1", models.ItemTypeFound, "user1", deletedAt)

	restored := false
	mockItems := &MockItemRepository{
		GetByIDFunc: func(ctx context.Context, itemType models.ItemType, id string) (*models.Item, error) {
			return item, nil
		},
		RestoreFunc: func(ctx context.Context, itemType models.ItemType, id string) error {
			restored = true
			return nil
		},
	}

	svc := NewLifecycleService(mockItems, &MockMatchRepository{}, slog.Default())

	err := svc.RestoreItem(context.Background(), models.ItemTypeFound, "item1", "user1")

	assert.ErrorIs(t, err, models.ErrRestoreExpired)
	assert.False(t, restored)

	var windowErr *models.RestoreWindowError
	require.ErrorAs(t, err, &windowErr)
	assert.Equal(t, deletedAt, windowErr.DeletedAt)
	assert.Equal(t, RestoreWindow, windowErr.Window)
}

func TestLifecycleService_RestoreItem_NotDeleter(t *testing.T) {
	item := NewDeletedTestItem("item1", models.ItemTypeLost, "deleter", time.Now().UTC().Add(-time.Hour))

	restored := false
	mockItems := &MockItemRepository{
		GetByIDFunc: func(ctx context.Context, itemType models.ItemType, id string) (*models.Item, error) {
			return item, nil
		},
		RestoreFunc: func(ctx context.Context, itemType models.ItemType, id string) error {
			restored = true
			return nil
		},
	}

	svc := NewLifecycleService(mockItems, &MockMatchRepository{}, slog.Default())

	err := svc.RestoreItem(context.Background(), models.ItemTypeLost, "item1", "someone-else")

	assert.ErrorIs(t, err, models.ErrUnauthorized)
	assert.False(t, restored, "item must be left unchanged")
}

func TestLifecycleService_RestoreItem_NotDeleted(t *testing.T) {
	item := NewTestItem("item1", models.ItemTypeLost, "user1", time.Now().UTC())

	mockItems := &MockItemRepository{
		GetByIDFunc: func(ctx context.Context, itemType models.ItemType, id string) (*models.Item, error) {
			return item, nil
		},
	}

	svc := NewLifecycleService(mockItems, &MockMatchRepository{}, slog.Default())

	err := svc.RestoreItem(context.Background(), models.ItemTypeLost, "item1", "user1")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLifecycleService_AutoCleanupOldItems_CutoffAt90Days(t *testing.T) {
	var gotCutoff time.Time
	mockItems := &MockItemRepository{
		AutoCleanupBeforeFunc: func(ctx context.Context, createdBefore time.Time) (int64, error) {
			gotCutoff = createdBefore
			return 3, nil
		},
	}

	svc := NewLifecycleService(mockItems, &MockMatchRepository{}, slog.Default())

	count, err := svc.AutoCleanupOldItems(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// An item created 91 days ago is before the cutoff, one created 89
	// days ago is not.
	assert.True(t, time.Now().UTC().Add(-91*24*time.Hour).Before(gotCutoff))
	assert.True(t, time.Now().UTC().Add(-89*24*time.Hour).After(gotCutoff))
}

func TestLifecycleService_AutoCleanupOldItems_FailurePropagates(t *testing.T) {
	sweepErr := errors.New("commit failed")
	mockItems := &MockItemRepository{
		AutoCleanupBeforeFunc: func(ctx context.Context, createdBefore time.Time) (int64, error) {
			return 0, sweepErr
		},
	}

	svc := NewLifecycleService(mockItems, &MockMatchRepository{}, slog.Default())

	count, err := svc.AutoCleanupOldItems(context.Background())

	assert.ErrorIs(t, err, sweepErr)
	assert.Zero(t, count)
}

func TestLifecycleService_HardDeleteOldItems_CutoffAt90Days(t *testing.T) {
	var gotCutoff time.Time
	mockItems := &MockItemRepository{
		HardDeleteBeforeFunc: func(ctx context.Context, deletedBefore time.Time) (int64, error) {
			gotCutoff = deletedBefore
			return 2, nil
		},
	}

	svc := NewLifecycleService(mockItems, &MockMatchRepository{}, slog.Default())

	count, err := svc.HardDeleteOldItems(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Soft-deleted 91 days ago qualifies, 89 days ago does not
	assert.True(t, time.Now().UTC().Add(-91*24*time.Hour).Before(gotCutoff))
	assert.True(t, time.Now().UTC().Add(-89*24*time.Hour).After(gotCutoff))
}

func TestLifecycleService_GetUserItemsForCleanup(t *testing.T) {
	now := time.Now().UTC()

	resolved := []*models.Match{
		{ID: "m1", Status: models.MatchStatusReturnedToOwner, CreatedAt: now.Add(-40 * 24 * time.Hour)},
	}
	oldFound := []*models.Item{
		NewTestItem("f1", models.ItemTypeFound, "user1", now.Add(-70*24*time.Hour)),
	}
	oldLost := []*models.Item{
		NewTestItem("l1", models.ItemTypeLost, "user1", now.Add(-65*24*time.Hour)),
	}

	var matchCutoff, foundCutoff, lostCutoff time.Time
	mockItems := &MockItemRepository{
		FindStaleUnmatchedFunc: func(ctx context.Context, itemType models.ItemType, userID string, createdBefore time.Time) ([]*models.Item, error) {
			if itemType == models.ItemTypeFound {
				foundCutoff = createdBefore
				return oldFound, nil
			}
			lostCutoff = createdBefore
			return oldLost, nil
		},
	}
	mockMatches := &MockMatchRepository{
		FindResolvedCreatedBeforeFunc: func(ctx context.Context, createdBefore time.Time) ([]*models.Match, error) {
			matchCutoff = createdBefore
			return resolved, nil
		},
	}

	svc := NewLifecycleService(mockItems, mockMatches, slog.Default())

	report, err := svc.GetUserItemsForCleanup(context.Background(), "user1")

	require.NoError(t, err)
	assert.Equal(t, resolved, report.ResolvedMatches)
	assert.Equal(t, oldFound, report.OldFoundItems)
	assert.Equal(t, oldLost, report.OldLostItems)

	// 30 day window for resolved matches, 60 days for stale items
	assert.WithinDuration(t, now.Add(-30*24*time.Hour), matchCutoff, 5*time.Second)
	assert.WithinDuration(t, now.Add(-60*24*time.Hour), foundCutoff, 5*time.Second)
	assert.WithinDuration(t, now.Add(-60*24*time.Hour), lostCutoff, 5*time.Second)
}
