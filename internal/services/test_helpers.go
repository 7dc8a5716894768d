package services

import (
	"context"
	"time"

	"github.com/refindhq/refind/internal/models"
)

// MockItemRepository implements ItemRepository for testing
type MockItemRepository struct {
	GetByIDFunc            func(ctx context.Context, itemType models.ItemType, id string) (*models.Item, error)
	CreateFunc             func(ctx context.Context, item *models.Item) (*models.Item, error)
	ListByUserFunc         func(ctx context.Context, itemType models.ItemType, userID string) ([]*models.Item, error)
	SoftDeleteFunc         func(ctx context.Context, itemType models.ItemType, id, deletedBy, reason string) error
	RestoreFunc            func(ctx context.Context, itemType models.ItemType, id string) error
	AutoCleanupBeforeFunc  func(ctx context.Context, createdBefore time.Time) (int64, error)
	HardDeleteBeforeFunc   func(ctx context.Context, deletedBefore time.Time) (int64, error)
	FindStaleUnmatchedFunc func(ctx context.Context, itemType models.ItemType, userID string, createdBefore time.Time) ([]*models.Item, error)
}

func (m *MockItemRepository) GetByID(ctx context.Context, itemType models.ItemType, id string) (*models.Item, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, itemType, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return item, nil
}

func (m *MockItemRepository) ListByUser(ctx context.Context, itemType models.ItemType, userID string) ([]*models.Item, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, itemType, userID)
	}
	return []*models.Item{}, nil
}

func (m *MockItemRepository) SoftDelete(ctx context.Context, itemType models.ItemType, id, deletedBy, reason string) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, itemType, id, deletedBy, reason)
	}
	return nil
}

func (m *MockItemRepository) Restore(ctx context.Context, itemType models.ItemType, id string) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, itemType, id)
	}
	return nil
}

func (m *MockItemRepository) AutoCleanupBefore(ctx context.Context, createdBefore time.Time) (int64, error) {
	if m.AutoCleanupBeforeFunc != nil {
		return m.AutoCleanupBeforeFunc(ctx, createdBefore)
	}
	return 0, nil
}

func (m *MockItemRepository) HardDeleteBefore(ctx context.Context, deletedBefore time.Time) (int64, error) {
	if m.HardDeleteBeforeFunc != nil {
		return m.HardDeleteBeforeFunc(ctx, deletedBefore)
	}
	return 0, nil
}

func (m *MockItemRepository) FindStaleUnmatched(ctx context.Context, itemType models.ItemType, userID string, createdBefore time.Time) ([]*models.Item, error) {
	if m.FindStaleUnmatchedFunc != nil {
		return m.FindStaleUnmatchedFunc(ctx, itemType, userID, createdBefore)
	}
	return []*models.Item{}, nil
}

// MockMatchRepository implements MatchRepository for testing
type MockMatchRepository struct {
	CountActiveForItemFunc        func(ctx context.Context, itemType models.ItemType, itemID string) (int, error)
	CountNewMatchesFunc           func(ctx context.Context, userID string, since time.Time) (int, error)
	CountPendingVerificationsFunc func(ctx context.Context, userID string) (int, error)
	CountCompletedMatchesFunc     func(ctx context.Context, userID string, since time.Time) (int, error)
	FindResolvedCreatedBeforeFunc func(ctx context.Context, createdBefore time.Time) ([]*models.Match, error)
	ListForUserFunc               func(ctx context.Context, userID string) ([]*models.Match, error)
}

func (m *MockMatchRepository) CountActiveForItem(ctx context.Context, itemType models.ItemType, itemID string) (int, error) {
	if m.CountActiveForItemFunc != nil {
		return m.CountActiveForItemFunc(ctx, itemType, itemID)
	}
	return 0, nil
}

func (m *MockMatchRepository) CountNewMatches(ctx context.Context, userID string, since time.Time) (int, error) {
	if m.CountNewMatchesFunc != nil {
		return m.CountNewMatchesFunc(ctx, userID, since)
	}
	return 0, nil
}

func (m *MockMatchRepository) CountPendingVerifications(ctx context.Context, userID string) (int, error) {
	if m.CountPendingVerificationsFunc != nil {
		return m.CountPendingVerificationsFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockMatchRepository) CountCompletedMatches(ctx context.Context, userID string, since time.Time) (int, error) {
	if m.CountCompletedMatchesFunc != nil {
		return m.CountCompletedMatchesFunc(ctx, userID, since)
	}
	return 0, nil
}

func (m *MockMatchRepository) FindResolvedCreatedBefore(ctx context.Context, createdBefore time.Time) ([]*models.Match, error) {
	if m.FindResolvedCreatedBeforeFunc != nil {
		return m.FindResolvedCreatedBeforeFunc(ctx, createdBefore)
	}
	return []*models.Match{}, nil
}

func (m *MockMatchRepository) ListForUser(ctx context.Context, userID string) ([]*models.Match, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, userID)
	}
	return []*models.Match{}, nil
}

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByIDFunc         func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc      func(ctx context.Context, email string) (*models.User, error)
	CreateFunc          func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateLastLoginFunc func(ctx context.Context, id string, at time.Time) error
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if m.UpdateLastLoginFunc != nil {
		return m.UpdateLastLoginFunc(ctx, id, at)
	}
	return nil
}

// MockTokenGenerator implements TokenGenerator for testing
type MockTokenGenerator struct {
	GenerateAccessTokenFunc func(userID, email string) (string, error)
}

func (m *MockTokenGenerator) GenerateAccessToken(userID, email string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, email)
	}
	return "test-token", nil
}

// NewTestUser builds a user with sensible defaults for tests
func NewTestUser(id, email, name string) *models.User {
	now := time.Now().UTC()
	return &models.User{
		ID:                 id,
		Name:               name,
		RegistrationNumber: "REG-" + id,
		Department:         "Computer Science",
		Email:              email,
		PasswordHash:       "$2a$14$test-hash",
		ContactNumber:      "555-0100",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// NewTestItem builds an active item owned by the given user
func NewTestItem(id string, itemType models.ItemType, userID string, createdAt time.Time) *models.Item {
	return &models.Item{
		ID:          id,
		Type:        itemType,
		UserID:      userID,
		Title:       "Black backpack",
		Description: "Nike backpack with laptop sleeve",
		Category:    "bags",
		Location:    "Main library",
		ItemDate:    createdAt,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

// NewDeletedTestItem builds an item soft-deleted by the given user at the
// given time, with the three deletion fields set together
func NewDeletedTestItem(id string, itemType models.ItemType, userID string, deletedAt time.Time) *models.Item {
	item := NewTestItem(id, itemType, userID, deletedAt.Add(-24*time.Hour))
	reason := "User requested"
	item.DeletedAt = &deletedAt
	item.DeletedBy = &userID
	item.DeletionReason = &reason
	return item
}
