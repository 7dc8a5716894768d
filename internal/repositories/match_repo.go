package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/refindhq/refind/internal/database"
	"github.com/refindhq/refind/internal/models"
)

// MatchRepository reads match records. Matches are written by the external
// matching and verification workflow; this backend only consumes them.
type MatchRepository struct {
	db *database.DB
}

func NewMatchRepository(db *database.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

const matchColumns = `id, lost_item_id, found_item_id, status, questions_generated, created_at, updated_at`

func scanMatchRow(scanner rowScanner) (*models.Match, error) {
	var match models.Match

	err := scanner.Scan(
		&match.ID, &match.LostItemID, &match.FoundItemID,
		&match.Status, &match.QuestionsGenerated,
		&match.CreatedAt, &match.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &match, nil
}

func scanMatchRows(rows pgx.Rows) ([]*models.Match, error) {
	defer rows.Close()

	matches := make([]*models.Match, 0)

	for rows.Next() {
		match, err := scanMatchRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return matches, nil
}

// CountActiveForItem counts matches that lock the given item against
// deletion (status pending_verification or verified)
func (r *MatchRepository) CountActiveForItem(ctx context.Context, itemType models.ItemType, itemID string) (int, error) {
	column := "lost_item_id"
	if itemType == models.ItemTypeFound {
		column = "found_item_id"
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM matches
		WHERE %s = $1 AND status IN ('pending_verification', 'verified')
	`, column)

	var count int
	if err := r.db.Pool.QueryRow(ctx, query, itemID).Scan(&count); err != nil {
		return 0, database.MapPostgresError(err)
	}

	return count, nil
}

// CountNewMatches counts pending matches against the user's lost items
// created after the given time
func (r *MatchRepository) CountNewMatches(ctx context.Context, userID string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM matches m
		JOIN lost_items li ON li.id = m.lost_item_id
		WHERE li.user_id = $1 AND m.status = 'pending' AND m.created_at > $2
	`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query, userID, since).Scan(&count); err != nil {
		return 0, database.MapPostgresError(err)
	}

	return count, nil
}

// CountPendingVerifications counts every pending match with generated
// questions against the user's lost items. Not time-windowed: these await
// the user's attention regardless of when they appeared.
func (r *MatchRepository) CountPendingVerifications(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM matches m
		JOIN lost_items li ON li.id = m.lost_item_id
		WHERE li.user_id = $1 AND m.status = 'pending' AND m.questions_generated = TRUE
	`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, database.MapPostgresError(err)
	}

	return count, nil
}

// CountCompletedMatches counts verified matches against the user's lost
// items updated after the given time
func (r *MatchRepository) CountCompletedMatches(ctx context.Context, userID string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM matches m
		JOIN lost_items li ON li.id = m.lost_item_id
		WHERE li.user_id = $1 AND m.status = 'verified' AND m.updated_at > $2
	`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query, userID, since).Scan(&count); err != nil {
		return 0, database.MapPostgresError(err)
	}

	return count, nil
}

// FindResolvedCreatedBefore returns matches in a returned_* state created
// before the cutoff. Age is measured from creation, not resolution.
func (r *MatchRepository) FindResolvedCreatedBefore(ctx context.Context, createdBefore time.Time) ([]*models.Match, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM matches
		WHERE status IN ('returned_to_owner', 'returned_by_finder') AND created_at < $1
		ORDER BY created_at
	`, matchColumns)

	rows, err := r.db.Pool.Query(ctx, query, createdBefore)
	if err != nil {
		return nil, fmt.Errorf("failed to query resolved matches: %w", err)
	}

	return scanMatchRows(rows)
}

// ListForUser returns matches against the user's lost items, newest first
func (r *MatchRepository) ListForUser(ctx context.Context, userID string) ([]*models.Match, error) {
	query := `
		SELECT m.id, m.lost_item_id, m.found_item_id, m.status, m.questions_generated, m.created_at, m.updated_at
		FROM matches m
		JOIN lost_items li ON li.id = m.lost_item_id
		WHERE li.user_id = $1
		ORDER BY m.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}

	return scanMatchRows(rows)
}
