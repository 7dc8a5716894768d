package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refindhq/refind/internal/models"
)

// TestUser generates unique test user credentials using timestamp
func TestUser(suffix string) (email, password string) {
	ts := time.Now().UnixNano()
	email = fmt.Sprintf("test-%d-%s@example.com", ts, suffix)
	password = "TestPassword123"
	return
}

// SeedItem inserts an item of the given type with a chosen creation time.
// Old creation times let tests exercise the cleanup sweeps directly.
func SeedItem(ctx context.Context, pool *pgxpool.Pool, itemType models.ItemType, userID string, createdAt time.Time) (*models.Item, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, title, description, category, location, item_date, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, 'Test Item', 'Seeded for testing', 'misc', 'Test Hall', $2, $3, $3)
		RETURNING id, user_id, title, created_at
	`, itemType.Table())

	item := &models.Item{Type: itemType}
	err := pool.QueryRow(ctx, query, userID, createdAt, createdAt).Scan(
		&item.ID,
		&item.UserID,
		&item.Title,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert %s item: %w", itemType, err)
	}

	return item, nil
}

// SeedDeletedItem inserts an item already in the soft-deleted state
func SeedDeletedItem(ctx context.Context, pool *pgxpool.Pool, itemType models.ItemType, userID string, deletedAt time.Time) (*models.Item, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, title, description, category, location, item_date,
			created_at, updated_at, deleted_at, deleted_by, deletion_reason)
		VALUES (gen_random_uuid(), $1, 'Deleted Item', 'Seeded for testing', 'misc', 'Test Hall', $2,
			$2, $3, $3, $1, 'User requested')
		RETURNING id, user_id, title, created_at, deleted_at
	`, itemType.Table())

	createdAt := deletedAt.AddDate(0, 0, -1)
	item := &models.Item{Type: itemType}
	err := pool.QueryRow(ctx, query, userID, createdAt, deletedAt).Scan(
		&item.ID,
		&item.UserID,
		&item.Title,
		&item.CreatedAt,
		&item.DeletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert deleted %s item: %w", itemType, err)
	}

	return item, nil
}

// SeedMatch links a lost item to a found item with the given status
func SeedMatch(ctx context.Context, pool *pgxpool.Pool, lostItemID, foundItemID string, status models.MatchStatus, createdAt time.Time) (*models.Match, error) {
	query := `
		INSERT INTO matches (id, lost_item_id, found_item_id, status, questions_generated, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, true, $4, $4)
		RETURNING id, lost_item_id, found_item_id, status, created_at
	`

	var match models.Match
	err := pool.QueryRow(ctx, query, lostItemID, foundItemID, status, createdAt).Scan(
		&match.ID,
		&match.LostItemID,
		&match.FoundItemID,
		&match.Status,
		&match.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert match: %w", err)
	}

	return &match, nil
}
