package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/refindhq/refind/internal/auth"
	"github.com/refindhq/refind/internal/models"
	pkghttp "github.com/refindhq/refind/pkg/http"
)

// DashboardService computes the welcome summary for a user
type DashboardService interface {
	GetWelcomeInfo(ctx context.Context, userID string) (*models.WelcomeInfo, error)
}

// CleanupReporter builds the read-only cleanup report
type CleanupReporter interface {
	GetUserItemsForCleanup(ctx context.Context, userID string) (*models.CleanupReport, error)
}

// MatchLister exposes a user's matches for the dashboard
type MatchLister interface {
	ListForUser(ctx context.Context, userID string) ([]*models.Match, error)
}

// DashboardHandler serves the welcome summary, match list, and cleanup
// report endpoints.
type DashboardHandler struct {
	dashboard DashboardService
	cleanup   CleanupReporter
	matches   MatchLister
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard DashboardService, cleanup CleanupReporter, matches MatchLister) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		cleanup:   cleanup,
		matches:   matches,
	}
}

// MatchResponse represents a match in HTTP responses
type MatchResponse struct {
	ID                 string    `json:"id"`
	LostItemID         string    `json:"lost_item_id"`
	FoundItemID        string    `json:"found_item_id"`
	Status             string    `json:"status"`
	QuestionsGenerated bool      `json:"questions_generated"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CleanupReportResponse represents the cleanup report in HTTP responses
type CleanupReportResponse struct {
	ResolvedMatches []*MatchResponse `json:"resolved_matches"`
	OldFoundItems   []*ItemResponse  `json:"old_found_items"`
	OldLostItems    []*ItemResponse  `json:"old_lost_items"`
}

func matchModelToResponse(match *models.Match) *MatchResponse {
	return &MatchResponse{
		ID:                 match.ID,
		LostItemID:         match.LostItemID,
		FoundItemID:        match.FoundItemID,
		Status:             match.Status.String(),
		QuestionsGenerated: match.QuestionsGenerated,
		CreatedAt:          match.CreatedAt,
		UpdatedAt:          match.UpdatedAt,
	}
}

func matchesToResponse(matches []*models.Match) []*MatchResponse {
	out := make([]*MatchResponse, 0, len(matches))
	for _, match := range matches {
		out = append(out, matchModelToResponse(match))
	}
	return out
}

// WelcomeInfo returns the personalized welcome summary for the caller
func (h *DashboardHandler) WelcomeInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.dashboard.GetWelcomeInfo(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "user not found")
			return
		}
		pkghttp.WriteInternalError(w, "failed to load dashboard")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, info)
}

// CleanupReport lists the caller's records eligible for tidying up
func (h *DashboardHandler) CleanupReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.cleanup.GetUserItemsForCleanup(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		pkghttp.WriteInternalError(w, "failed to build cleanup report")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, CleanupReportResponse{
		ResolvedMatches: matchesToResponse(report.ResolvedMatches),
		OldFoundItems:   itemsToResponse(report.OldFoundItems),
		OldLostItems:    itemsToResponse(report.OldLostItems),
	})
}

// ListMatches returns the matches touching the caller's items
func (h *DashboardHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matches.ListForUser(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		pkghttp.WriteInternalError(w, "failed to list matches")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, matchesToResponse(matches))
}
