package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/refindhq/refind/internal/auth"
	"github.com/refindhq/refind/internal/models"
	pkgauth "github.com/refindhq/refind/pkg/auth"
	pkghttp "github.com/refindhq/refind/pkg/http"
)

// AuthService defines the interface for registration and login
type AuthService interface {
	Register(ctx context.Context, user *models.User, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// UserReader loads user records for the profile endpoint
type UserReader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// AuthHandler handles registration, login, and profile requests
type AuthHandler struct {
	service AuthService
	users   UserReader
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AuthService, users UserReader) *AuthHandler {
	return &AuthHandler{
		service: service,
		users:   users,
	}
}

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Name               string `json:"name" validate:"required,min=1,max=255"`
	RegistrationNumber string `json:"registration_number" validate:"required,min=1,max=100"`
	Department         string `json:"department" validate:"required,min=1,max=100"`
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required"`
	ContactNumber      string `json:"contact_number" validate:"required,min=1,max=20"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse represents a user in HTTP responses
type UserResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	Department         string `json:"department"`
	Email              string `json:"email"`
	ContactNumber      string `json:"contact_number"`
	CreatedAt          string `json:"created_at"`
}

// LoginResponse carries the session token and the account it belongs to
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

func userModelToResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:                 user.ID,
		Name:               user.Name,
		RegistrationNumber: user.RegistrationNumber,
		Department:         user.Department,
		Email:              user.Email,
		ContactNumber:      user.ContactNumber,
		CreatedAt:          user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Register creates a new account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	user := &models.User{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		Department:         req.Department,
		Email:              req.Email,
		ContactNumber:      req.ContactNumber,
	}

	created, err := h.service.Register(r.Context(), user, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			pkghttp.WriteConflict(w, "an account with this email already exists")
			return
		}
		var pwErr *pkgauth.PasswordValidationError
		if errors.As(err, &pwErr) {
			pkghttp.WriteBadRequest(w, pwErr.Error())
			return
		}
		pkghttp.WriteInternalError(w, "failed to create account")
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, userModelToResponse(created))
}

// Login verifies credentials and issues an access token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			pkghttp.WriteUnauthorized(w, "invalid email or password")
			return
		}
		pkghttp.WriteInternalError(w, "login failed")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token,
		User:        userModelToResponse(user),
	})
}

// Profile returns the authenticated user's account record
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "user not found")
			return
		}
		pkghttp.WriteInternalError(w, "failed to load profile")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, userModelToResponse(user))
}
