package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/refindhq/refind/internal/database"
	"github.com/refindhq/refind/internal/models"
)

// AutoDeleteReason is recorded on items soft-deleted by the cleanup sweep
const AutoDeleteReason = "Auto-deleted after 90 days"

type ItemRepository struct {
	db *database.DB
}

func NewItemRepository(db *database.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `id, user_id, title, description, category, location, item_date, image_file,
		created_at, updated_at, deleted_at, deleted_by, deletion_reason, auto_deleted`

// rowScanner is satisfied by both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanItemRow populates an Item from a database row, handling nullable
// deletion fields
func scanItemRow(scanner rowScanner, itemType models.ItemType) (*models.Item, error) {
	item := models.Item{Type: itemType}

	err := scanner.Scan(
		&item.ID, &item.UserID, &item.Title, &item.Description,
		&item.Category, &item.Location, &item.ItemDate, &item.ImageFile,
		&item.CreatedAt, &item.UpdatedAt,
		&item.DeletedAt, &item.DeletedBy, &item.DeletionReason, &item.AutoDeleted,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &item, nil
}

func scanItemRows(rows pgx.Rows, itemType models.ItemType) ([]*models.Item, error) {
	defer rows.Close()

	items := make([]*models.Item, 0)

	for rows.Next() {
		item, err := scanItemRow(rows, itemType)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, itemType models.ItemType, id string) (*models.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, itemColumns, itemType.Table())

	return scanItemRow(r.db.Pool.QueryRow(ctx, query, id), itemType)
}

func (r *ItemRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	item.ID = uuid.New().String()

	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, title, description, category, location, item_date, image_file, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s
	`, item.Type.Table(), itemColumns)

	return scanItemRow(r.db.Pool.QueryRow(ctx, query,
		item.ID, item.UserID, item.Title, item.Description,
		item.Category, item.Location, item.ItemDate, item.ImageFile,
		item.CreatedAt, item.UpdatedAt,
	), item.Type)
}

// ListByUser returns a user's active (not soft-deleted) items of one type
func (r *ItemRepository) ListByUser(ctx context.Context, itemType models.ItemType, userID string) ([]*models.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, itemColumns, itemType.Table())

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}

	return scanItemRows(rows, itemType)
}

// SoftDelete marks an item deleted. The update is guarded by
// deleted_at IS NULL so exactly one of two concurrent deletes wins;
// the loser sees ErrConflict.
func (r *ItemRepository) SoftDelete(ctx context.Context, itemType models.ItemType, id, deletedBy, reason string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = $1, deleted_by = $2, deletion_reason = $3, updated_at = $1
		WHERE id = $4 AND deleted_at IS NULL
	`, itemType.Table())

	result, err := r.db.Pool.Exec(ctx, query, time.Now().UTC(), deletedBy, reason, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrConflict
	}

	return nil
}

// Restore clears the deletion fields. Guarded by deleted_at IS NOT NULL:
// restoring an already-active item reports ErrNotFound.
func (r *ItemRepository) Restore(ctx context.Context, itemType models.ItemType, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NULL, deleted_by = NULL, deletion_reason = NULL, auto_deleted = FALSE, updated_at = $1
		WHERE id = $2 AND deleted_at IS NOT NULL
	`, itemType.Table())

	result, err := r.db.Pool.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// AutoCleanupBefore soft-deletes every active item of both types created
// before the cutoff that has no active match. The whole batch commits in a
// single transaction; on any failure nothing is soft-deleted.
func (r *ItemRepository) AutoCleanupBefore(ctx context.Context, createdBefore time.Time) (int64, error) {
	var total int64

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		now := time.Now().UTC()

		for _, itemType := range []models.ItemType{models.ItemTypeFound, models.ItemTypeLost} {
			count, err := autoCleanupType(ctx, tx, itemType, createdBefore, now)
			if err != nil {
				return err
			}
			total += count
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("auto cleanup failed: %w", err)
	}

	return total, nil
}

func autoCleanupType(ctx context.Context, tx pgx.Tx, itemType models.ItemType, createdBefore, now time.Time) (int64, error) {
	matchColumn := "lost_item_id"
	if itemType == models.ItemTypeFound {
		matchColumn = "found_item_id"
	}

	query := fmt.Sprintf(`
		UPDATE %s i
		SET deleted_at = $1, deletion_reason = $2, auto_deleted = TRUE, updated_at = $1
		WHERE i.created_at < $3
		  AND i.deleted_at IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM matches m
			WHERE m.%s = i.id AND m.status IN ('pending_verification', 'verified')
		  )
	`, itemType.Table(), matchColumn)

	result, err := tx.Exec(ctx, query, now, AutoDeleteReason, createdBefore)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}

	return result.RowsAffected(), nil
}

// HardDeleteBefore permanently removes items of both types that were
// soft-deleted before the cutoff. One transaction for the whole batch.
func (r *ItemRepository) HardDeleteBefore(ctx context.Context, deletedBefore time.Time) (int64, error) {
	var total int64

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for _, itemType := range []models.ItemType{models.ItemTypeFound, models.ItemTypeLost} {
			query := fmt.Sprintf(`
				DELETE FROM %s
				WHERE deleted_at IS NOT NULL AND deleted_at < $1
			`, itemType.Table())

			result, err := tx.Exec(ctx, query, deletedBefore)
			if err != nil {
				return database.MapPostgresError(err)
			}
			total += result.RowsAffected()
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("hard delete failed: %w", err)
	}

	return total, nil
}

// FindStaleUnmatched returns a user's active items of one type created
// before the cutoff with no active match. Read-only report query.
func (r *ItemRepository) FindStaleUnmatched(ctx context.Context, itemType models.ItemType, userID string, createdBefore time.Time) ([]*models.Item, error) {
	matchColumn := "lost_item_id"
	if itemType == models.ItemTypeFound {
		matchColumn = "found_item_id"
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s i
		WHERE i.user_id = $1
		  AND i.created_at < $2
		  AND i.deleted_at IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM matches m
			WHERE m.%s = i.id AND m.status IN ('pending_verification', 'verified')
		  )
		ORDER BY i.created_at
	`, itemColumns, itemType.Table(), matchColumn)

	rows, err := r.db.Pool.Query(ctx, query, userID, createdBefore)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale items: %w", err)
	}

	return scanItemRows(rows, itemType)
}
