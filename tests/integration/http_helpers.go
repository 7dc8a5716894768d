package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/refindhq/refind/internal/auth"
	"github.com/refindhq/refind/internal/config"
	"github.com/refindhq/refind/internal/database"
	"github.com/refindhq/refind/internal/handlers"
	middlewareCustom "github.com/refindhq/refind/internal/middleware"
	"github.com/refindhq/refind/internal/routes"
	"github.com/refindhq/refind/internal/services"
)

// TestServer wraps httptest.Server with database and all dependencies
type TestServer struct {
	Server       *httptest.Server
	DB           *database.DB
	Config       *config.Config
	TokenManager *auth.TokenManager

	Lifecycle *services.LifecycleService
	logger    *slog.Logger
}

// NewTestServer initializes a complete HTTP server against a real database
func NewTestServer(db *database.DB) *TestServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// Create test config
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret-32-characters-long-for-testing",
			AccessTokenExpiry: 15 * time.Minute,
		},
		Cleanup: config.CleanupConfig{
			Interval: 1 * time.Hour,
		},
		Uploads: config.UploadsConfig{
			Dir: os.TempDir(),
		},
		Server: config.ServerConfig{
			Port:           "0",
			Env:            "test",
			AllowedOrigins: []string{},
		},
	}

	// Initialize repositories
	userRepo, itemRepo, matchRepo := InitializeRepositories(db)

	// Initialize TokenManager
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenExpiry)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenManager, logger)
	itemService := services.NewItemService(itemRepo, logger)
	lifecycleService := services.NewLifecycleService(itemRepo, matchRepo, logger)
	dashboardService := services.NewDashboardService(userRepo, matchRepo, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userRepo)
	itemHandler := handlers.NewItemHandler(itemService, lifecycleService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, lifecycleService, matchRepo)
	uploadHandler := handlers.NewUploadHandler(cfg.Uploads.Dir)

	// Setup router the same way cmd/api does, minus rate limiting noise
	router := chi.NewRouter()
	router.Use(chiMiddleware.RequestID)
	router.Use(middlewareCustom.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)

	router.Route("/api", func(r chi.Router) {
		routes.RegisterRoutes(r, authHandler, itemHandler, dashboardHandler, uploadHandler, tokenManager)
	})

	server := httptest.NewServer(router)

	return &TestServer{
		Server:       server,
		DB:           db,
		Config:       cfg,
		TokenManager: tokenManager,
		Lifecycle:    lifecycleService,
		logger:       logger,
	}
}

// Close shuts the test server down
func (ts *TestServer) Close() {
	ts.Server.Close()
}

// DoRequest performs an HTTP request against the test server
func (ts *TestServer) DoRequest(method, path, token string, body interface{}) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, &buf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Server.Client().Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp, respBody, nil
}

// RegisterAndLogin registers a fresh user and returns their id and token
func (ts *TestServer) RegisterAndLogin(suffix string) (userID, token string, err error) {
	email, password := TestUser(suffix)

	registerBody := map[string]string{
		"name":                "Integration Tester",
		"registration_number": "21INT" + suffix,
		"department":          "Testing",
		"email":               email,
		"password":            password,
		"contact_number":      "9999999999",
	}

	resp, body, err := ts.DoRequest("POST", "/api/auth/register", "", registerBody)
	if err != nil {
		return "", "", err
	}
	if resp.StatusCode != http.StatusCreated {
		return "", "", fmt.Errorf("register returned %d: %s", resp.StatusCode, body)
	}

	var registered struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &registered); err != nil {
		return "", "", fmt.Errorf("failed to decode register response: %w", err)
	}

	loginBody := map[string]string{"email": email, "password": password}
	resp, body, err = ts.DoRequest("POST", "/api/auth/login", "", loginBody)
	if err != nil {
		return "", "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("login returned %d: %s", resp.StatusCode, body)
	}

	var loggedIn struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &loggedIn); err != nil {
		return "", "", fmt.Errorf("failed to decode login response: %w", err)
	}

	return registered.ID, loggedIn.AccessToken, nil
}
