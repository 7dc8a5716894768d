package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/refindhq/refind/internal/models"
)

// Time windows governing the item lifecycle
const (
	// RestoreWindow is how long the original deleter can undo a soft delete
	RestoreWindow = 30 * 24 * time.Hour
	// AutoCleanupAge is the item age after which the sweep soft-deletes
	// unmatched items
	AutoCleanupAge = 90 * 24 * time.Hour
	// HardDeleteAge is how long a soft-deleted item is kept before the
	// sweep removes the row permanently
	HardDeleteAge = 90 * 24 * time.Hour
	// StaleReportAge is the item age threshold for the cleanup report
	StaleReportAge = 60 * 24 * time.Hour
	// ResolutionWindow is the match age threshold for the cleanup report.
	// Measured from match creation, not resolution.
	ResolutionWindow = 30 * 24 * time.Hour
)

// ItemRepository defines the interface for item data access
type ItemRepository interface {
	GetByID(ctx context.Context, itemType models.ItemType, id string) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	ListByUser(ctx context.Context, itemType models.ItemType, userID string) ([]*models.Item, error)
	SoftDelete(ctx context.Context, itemType models.ItemType, id, deletedBy, reason string) error
	Restore(ctx context.Context, itemType models.ItemType, id string) error
	AutoCleanupBefore(ctx context.Context, createdBefore time.Time) (int64, error)
	HardDeleteBefore(ctx context.Context, deletedBefore time.Time) (int64, error)
	FindStaleUnmatched(ctx context.Context, itemType models.ItemType, userID string, createdBefore time.Time) ([]*models.Item, error)
}

// MatchRepository defines the interface for match data access
type MatchRepository interface {
	CountActiveForItem(ctx context.Context, itemType models.ItemType, itemID string) (int, error)
	CountNewMatches(ctx context.Context, userID string, since time.Time) (int, error)
	CountPendingVerifications(ctx context.Context, userID string) (int, error)
	CountCompletedMatches(ctx context.Context, userID string, since time.Time) (int, error)
	FindResolvedCreatedBefore(ctx context.Context, createdBefore time.Time) ([]*models.Match, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Match, error)
}

// LifecycleService enforces soft-delete, restore, and cleanup semantics
// over items, respecting active-match locks and time windows.
type LifecycleService struct {
	items   ItemRepository
	matches MatchRepository
	logger  *slog.Logger
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(items ItemRepository, matches MatchRepository, logger *slog.Logger) *LifecycleService {
	return &LifecycleService{
		items:   items,
		matches: matches,
		logger:  logger,
	}
}

// SoftDeleteItem marks an item deleted on behalf of its owner. Items with
// an active match (pending_verification or verified) are locked and cannot
// be deleted.
func (s *LifecycleService) SoftDeleteItem(ctx context.Context, itemType models.ItemType, itemID, userID, reason string) error {
	item, err := s.items.GetByID(ctx, itemType, itemID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to load item", slog.String("item_id", itemID), slog.Any("error", err))
		return err
	}

	if item.Deleted() {
		return models.ErrNotFound
	}

	if item.UserID != userID {
		s.logger.Info("soft delete rejected: not the owner",
			slog.String("item_id", itemID),
			slog.String("user_id", userID),
		)
		return models.ErrUnauthorized
	}

	activeCount, err := s.matches.CountActiveForItem(ctx, itemType, itemID)
	if err != nil {
		s.logger.Error("failed to count active matches", slog.String("item_id", itemID), slog.Any("error", err))
		return err
	}
	if activeCount > 0 {
		return &models.ActiveMatchError{ItemType: itemType, ItemID: itemID, ActiveCount: activeCount}
	}

	if err := s.items.SoftDelete(ctx, itemType, itemID, userID, reason); err != nil {
		s.logger.Error("failed to soft delete item", slog.String("item_id", itemID), slog.Any("error", err))
		return err
	}

	s.logger.Info("item soft deleted",
		slog.String("item_type", itemType.String()),
		slog.String("item_id", itemID),
		slog.String("deleted_by", userID),
	)
	return nil
}

// RestoreItem undoes a soft delete. Only the user who performed the delete
// may restore, and only within RestoreWindow of the deletion.
func (s *LifecycleService) RestoreItem(ctx context.Context, itemType models.ItemType, itemID, userID string) error {
	item, err := s.items.GetByID(ctx, itemType, itemID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to load item", slog.String("item_id", itemID), slog.Any("error", err))
		return err
	}

	if !item.Deleted() {
		return models.ErrNotFound
	}

	if item.DeletedBy == nil || *item.DeletedBy != userID {
		s.logger.Info("restore rejected: not the deleter",
			slog.String("item_id", itemID),
			slog.String("user_id", userID),
		)
		return models.ErrUnauthorized
	}

	if time.Since(*item.DeletedAt) > RestoreWindow {
		return &models.RestoreWindowError{
			ItemType:  itemType,
			ItemID:    itemID,
			DeletedAt: *item.DeletedAt,
			Window:    RestoreWindow,
		}
	}

	if err := s.items.Restore(ctx, itemType, itemID); err != nil {
		s.logger.Error("failed to restore item", slog.String("item_id", itemID), slog.Any("error", err))
		return err
	}

	s.logger.Info("item restored",
		slog.String("item_type", itemType.String()),
		slog.String("item_id", itemID),
	)
	return nil
}

// AutoCleanupOldItems soft-deletes items of both types older than
// AutoCleanupAge with no active match. The whole batch commits as one
// transaction; a failure leaves no partial state and is propagated for
// the next scheduled run to retry.
func (s *LifecycleService) AutoCleanupOldItems(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-AutoCleanupAge)

	count, err := s.items.AutoCleanupBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("auto cleanup sweep failed", slog.Any("error", err))
		return 0, err
	}

	if count > 0 {
		s.logger.Info("auto cleanup sweep completed", slog.Int64("items_soft_deleted", count))
	}
	return count, nil
}

// HardDeleteOldItems permanently removes items soft-deleted more than
// HardDeleteAge ago. Same transactional contract as AutoCleanupOldItems.
func (s *LifecycleService) HardDeleteOldItems(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-HardDeleteAge)

	count, err := s.items.HardDeleteBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("hard delete sweep failed", slog.Any("error", err))
		return 0, err
	}

	if count > 0 {
		s.logger.Info("hard delete sweep completed", slog.Int64("items_removed", count))
	}
	return count, nil
}

// GetUserItemsForCleanup builds the read-only cleanup report: resolved
// matches past the resolution window plus the user's stale unmatched items
// of both types. No mutation.
func (s *LifecycleService) GetUserItemsForCleanup(ctx context.Context, userID string) (*models.CleanupReport, error) {
	now := time.Now().UTC()

	resolved, err := s.matches.FindResolvedCreatedBefore(ctx, now.Add(-ResolutionWindow))
	if err != nil {
		s.logger.Error("failed to load resolved matches", slog.Any("error", err))
		return nil, err
	}

	oldFound, err := s.items.FindStaleUnmatched(ctx, models.ItemTypeFound, userID, now.Add(-StaleReportAge))
	if err != nil {
		s.logger.Error("failed to load stale found items", slog.Any("error", err))
		return nil, err
	}

	oldLost, err := s.items.FindStaleUnmatched(ctx, models.ItemTypeLost, userID, now.Add(-StaleReportAge))
	if err != nil {
		s.logger.Error("failed to load stale lost items", slog.Any("error", err))
		return nil, err
	}

	return &models.CleanupReport{
		ResolvedMatches: resolved,
		OldFoundItems:   oldFound,
		OldLostItems:    oldLost,
	}, nil
}
