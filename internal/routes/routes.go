package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/refindhq/refind/internal/auth"
	"github.com/refindhq/refind/internal/handlers"
	"github.com/refindhq/refind/internal/middleware"
	"github.com/refindhq/refind/internal/models"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	itemHandler *handlers.ItemHandler,
	dashboardHandler *handlers.DashboardHandler,
	uploadHandler *handlers.UploadHandler,
	tokenManager *auth.TokenManager,
) {
	// Rate limiting config for auth endpoints
	rateLimitConfig := middleware.DefaultAuthRateLimit()

	// Public routes - no authentication required
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/register", authHandler.Register)
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/login", authHandler.Login)

	// Uploaded item images are public so match cards can render them
	router.Get("/uploads/{filename}", uploadHandler.Serve)

	// Protected routes - authentication required
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokenManager))

		r.Get("/profile", authHandler.Profile)

		registerItemRoutes(r, "/lost-items", models.ItemTypeLost, itemHandler)
		registerItemRoutes(r, "/found-items", models.ItemTypeFound, itemHandler)

		r.Get("/matches", dashboardHandler.ListMatches)
		r.Get("/dashboard/welcome-info", dashboardHandler.WelcomeInfo)
		r.Get("/dashboard/cleanup-report", dashboardHandler.CleanupReport)
	})
}

// registerItemRoutes mounts the same item surface for one report type
func registerItemRoutes(r chi.Router, pattern string, itemType models.ItemType, h *handlers.ItemHandler) {
	r.Route(pattern, func(r chi.Router) {
		r.Post("/", h.Create(itemType))
		r.Get("/", h.List(itemType))
		r.Get("/{id}", h.Get(itemType))
		r.Delete("/{id}", h.Delete(itemType))
		r.Post("/{id}/restore", h.Restore(itemType))
	})
}
