package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/refindhq/refind/internal/models"
)

func newTestUser(id, email string) *models.User {
	now := time.Now().UTC()
	return &models.User{
		ID:                 id,
		Name:               "Priya Nair",
		RegistrationNumber: "21BCE1042",
		Department:         "Computer Science",
		Email:              email,
		ContactNumber:      "9876543210",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{
		RegisterFunc: func(ctx context.Context, user *models.User, password string) (*models.User, error) {
			user.ID = "user-1"
			user.CreatedAt = time.Now().UTC()
			return user, nil
		},
	}, &MockUserReader{})

	req := NewTestRequest(t, "POST", "/api/auth/register", RegisterRequest{
		Name:               "Priya Nair",
		RegistrationNumber: "21BCE1042",
		Department:         "Computer Science",
		Email:              "priya@campus.edu",
		Password:           "Str0ngEnough",
		ContactNumber:      "9876543210",
	})
	w := httptest.NewRecorder()

	handler.Register(w, req)

	var resp UserResponse
	AssertJSONResponse(t, w, http.StatusCreated, &resp)
	assert.Equal(t, "user-1", resp.ID)
	assert.Equal(t, "priya@campus.edu", resp.Email)
	assert.Equal(t, "21BCE1042", resp.RegistrationNumber)
}

func TestAuthHandler_Register_EmailInUse(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{
		RegisterFunc: func(ctx context.Context, user *models.User, password string) (*models.User, error) {
			return nil, models.ErrConflict
		},
	}, &MockUserReader{})

	req := NewTestRequest(t, "POST", "/api/auth/register", RegisterRequest{
		Name:               "Priya Nair",
		RegistrationNumber: "21BCE1042",
		Department:         "Computer Science",
		Email:              "priya@campus.edu",
		Password:           "Str0ngEnough",
		ContactNumber:      "9876543210",
	})
	w := httptest.NewRecorder()

	handler.Register(w, req)

	AssertErrorResponse(t, w, http.StatusConflict, "conflict")
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{}, &MockUserReader{})

	req := NewTestRequest(t, "POST", "/api/auth/register", RegisterRequest{
		Name:               "Priya Nair",
		RegistrationNumber: "21BCE1042",
		Department:         "Computer Science",
		Email:              "not-an-email",
		Password:           "Str0ngEnough",
		ContactNumber:      "9876543210",
	})
	w := httptest.NewRecorder()

	handler.Register(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	user := newTestUser("user-1", "priya@campus.edu")
	handler := NewAuthHandler(&MockAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (string, *models.User, error) {
			assert.Equal(t, "priya@campus.edu", email)
			return "token-abc", user, nil
		},
	}, &MockUserReader{})

	req := NewTestRequest(t, "POST", "/api/auth/login", LoginRequest{
		Email:    "priya@campus.edu",
		Password: "Str0ngEnough",
	})
	w := httptest.NewRecorder()

	handler.Login(w, req)

	var resp LoginResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "token-abc", resp.AccessToken)
	assert.Equal(t, "user-1", resp.User.ID)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (string, *models.User, error) {
			return "", nil, models.ErrUnauthorized
		},
	}, &MockUserReader{})

	req := NewTestRequest(t, "POST", "/api/auth/login", LoginRequest{
		Email:    "priya@campus.edu",
		Password: "wrong",
	})
	w := httptest.NewRecorder()

	handler.Login(w, req)

	AssertErrorResponse(t, w, http.StatusUnauthorized, "unauthorized")
}

func TestAuthHandler_Profile_Success(t *testing.T) {
	user := newTestUser("user-1", "priya@campus.edu")
	handler := NewAuthHandler(&MockAuthService{}, &MockUserReader{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			assert.Equal(t, "user-1", id)
			return user, nil
		},
	})

	req := NewTestRequest(t, "GET", "/api/profile", nil)
	req = WithAuthContext(req, "user-1", "priya@campus.edu")
	w := httptest.NewRecorder()

	handler.Profile(w, req)

	var resp UserResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "Priya Nair", resp.Name)
	assert.Equal(t, "Computer Science", resp.Department)
}

func TestAuthHandler_Profile_NotFound(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{}, &MockUserReader{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return nil, models.ErrNotFound
		},
	})

	req := NewTestRequest(t, "GET", "/api/profile", nil)
	req = WithAuthContext(req, "gone", "gone@campus.edu")
	w := httptest.NewRecorder()

	handler.Profile(w, req)

	AssertErrorResponse(t, w, http.StatusNotFound, "not_found")
}
