package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/refindhq/refind/internal/models"
)

// ItemService handles the plain CRUD surface over item reports. The
// lifecycle rules live in LifecycleService.
type ItemService struct {
	items  ItemRepository
	logger *slog.Logger
}

// NewItemService creates a new ItemService
func NewItemService(items ItemRepository, logger *slog.Logger) *ItemService {
	return &ItemService{
		items:  items,
		logger: logger,
	}
}

// CreateItem registers a new lost or found report for the given owner
func (s *ItemService) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	created, err := s.items.Create(ctx, item)
	if err != nil {
		s.logger.Error("failed to create item",
			slog.String("item_type", item.Type.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.Info("item created",
		slog.String("item_type", created.Type.String()),
		slog.String("item_id", created.ID),
		slog.String("user_id", created.UserID),
	)
	return created, nil
}

// GetItem loads one item. Soft-deleted items are visible only to their
// owner, so a restore remains possible from the owner's view.
func (s *ItemService) GetItem(ctx context.Context, itemType models.ItemType, id, requestingUserID string) (*models.Item, error) {
	item, err := s.items.GetByID(ctx, itemType, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get item", slog.String("item_id", id), slog.Any("error", err))
		return nil, err
	}

	if item.Deleted() && item.UserID != requestingUserID {
		return nil, models.ErrNotFound
	}

	return item, nil
}

// ListUserItems returns the caller's active items of one type
func (s *ItemService) ListUserItems(ctx context.Context, itemType models.ItemType, userID string) ([]*models.Item, error) {
	items, err := s.items.ListByUser(ctx, itemType, userID)
	if err != nil {
		s.logger.Error("failed to list items",
			slog.String("item_type", itemType.String()),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return items, nil
}
