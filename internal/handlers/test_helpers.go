package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/refindhq/refind/internal/auth"
	"github.com/refindhq/refind/internal/models"
	pkghttp "github.com/refindhq/refind/pkg/http"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithAuthContext adds user claims to request context for testing authenticated endpoints
func WithAuthContext(req *http.Request, userID, email string) *http.Request {
	claims := &models.TokenClaims{
		UserID: userID,
		Email:  email,
		Type:   "access",
	}
	ctx := context.WithValue(req.Context(), auth.UserContextKey, claims)
	return req.WithContext(ctx)
}

// WithChiRouteContext adds chi URL parameters to request context for testing
func WithChiRouteContext(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	contentType := w.Header().Get("Content-Type")
	assert.Equal(t, "application/json", contentType, "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// MockAuthService implements AuthService for testing
type MockAuthService struct {
	RegisterFunc func(ctx context.Context, user *models.User, password string) (*models.User, error)
	LoginFunc    func(ctx context.Context, email, password string) (string, *models.User, error)
}

func (m *MockAuthService) Register(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if m.RegisterFunc == nil {
		return nil, models.ErrConflict
	}
	return m.RegisterFunc(ctx, user, password)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if m.LoginFunc == nil {
		return "", nil, models.ErrUnauthorized
	}
	return m.LoginFunc(ctx, email, password)
}

// MockUserReader implements UserReader for testing
type MockUserReader struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.User, error)
}

func (m *MockUserReader) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetByIDFunc(ctx, id)
}

// MockItemService implements ItemService for testing
type MockItemService struct {
	CreateItemFunc    func(ctx context.Context, item *models.Item) (*models.Item, error)
	GetItemFunc       func(ctx context.Context, itemType models.ItemType, id, requestingUserID string) (*models.Item, error)
	ListUserItemsFunc func(ctx context.Context, itemType models.ItemType, userID string) ([]*models.Item, error)
}

func (m *MockItemService) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	if m.CreateItemFunc == nil {
		return item, nil
	}
	return m.CreateItemFunc(ctx, item)
}

func (m *MockItemService) GetItem(ctx context.Context, itemType models.ItemType, id, requestingUserID string) (*models.Item, error) {
	if m.GetItemFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetItemFunc(ctx, itemType, id, requestingUserID)
}

func (m *MockItemService) ListUserItems(ctx context.Context, itemType models.ItemType, userID string) ([]*models.Item, error) {
	if m.ListUserItemsFunc == nil {
		return []*models.Item{}, nil
	}
	return m.ListUserItemsFunc(ctx, itemType, userID)
}

// MockLifecycleService implements LifecycleService for testing
type MockLifecycleService struct {
	SoftDeleteItemFunc func(ctx context.Context, itemType models.ItemType, itemID, userID, reason string) error
	RestoreItemFunc    func(ctx context.Context, itemType models.ItemType, itemID, userID string) error
}

func (m *MockLifecycleService) SoftDeleteItem(ctx context.Context, itemType models.ItemType, itemID, userID, reason string) error {
	if m.SoftDeleteItemFunc == nil {
		return nil
	}
	return m.SoftDeleteItemFunc(ctx, itemType, itemID, userID, reason)
}

func (m *MockLifecycleService) RestoreItem(ctx context.Context, itemType models.ItemType, itemID, userID string) error {
	if m.RestoreItemFunc == nil {
		return nil
	}
	return m.RestoreItemFunc(ctx, itemType, itemID, userID)
}

// MockDashboardService implements DashboardService for testing
type MockDashboardService struct {
	GetWelcomeInfoFunc func(ctx context.Context, userID string) (*models.WelcomeInfo, error)
}

func (m *MockDashboardService) GetWelcomeInfo(ctx context.Context, userID string) (*models.WelcomeInfo, error) {
	if m.GetWelcomeInfoFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetWelcomeInfoFunc(ctx, userID)
}

// MockCleanupReporter implements CleanupReporter for testing
type MockCleanupReporter struct {
	GetUserItemsForCleanupFunc func(ctx context.Context, userID string) (*models.CleanupReport, error)
}

func (m *MockCleanupReporter) GetUserItemsForCleanup(ctx context.Context, userID string) (*models.CleanupReport, error) {
	if m.GetUserItemsForCleanupFunc == nil {
		return &models.CleanupReport{}, nil
	}
	return m.GetUserItemsForCleanupFunc(ctx, userID)
}

// MockMatchLister implements MatchLister for testing
type MockMatchLister struct {
	ListForUserFunc func(ctx context.Context, userID string) ([]*models.Match, error)
}

func (m *MockMatchLister) ListForUser(ctx context.Context, userID string) ([]*models.Match, error) {
	if m.ListForUserFunc == nil {
		return []*models.Match{}, nil
	}
	return m.ListForUserFunc(ctx, userID)
}
