package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/refindhq/refind/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// DashboardService computes the welcome message and change summary shown
// to a user starting a session. Read-only: updating last_login belongs to
// the login action.
type DashboardService struct {
	users   UserRepository
	matches MatchRepository
	logger  *slog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(users UserRepository, matches MatchRepository, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		users:   users,
		matches: matches,
		logger:  logger,
	}
}

// GetWelcomeInfo builds the welcome and activity summary for a user.
// A user who has never logged in is treated as having logged in just now,
// so they see zero elapsed time and an empty change summary.
func (s *DashboardService) GetWelcomeInfo(ctx context.Context, userID string) (*models.WelcomeInfo, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("user not found", slog.String("user_id", userID))
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", userID), slog.Any("error", err))
		return nil, err
	}

	now := time.Now().UTC()
	lastLogin := now
	if user.LastLogin != nil {
		lastLogin = *user.LastLogin
	}

	elapsed := now.Sub(lastLogin)
	days := int(elapsed.Hours() / 24)
	hours := elapsed.Hours()

	changes, err := s.getChangesSinceLastVisit(ctx, userID, lastLogin)
	if err != nil {
		return nil, err
	}

	activityMessage, details := summarizeChanges(changes)

	return &models.WelcomeInfo{
		WelcomeMessage:  welcomeMessage(days, hours),
		ActivityMessage: activityMessage,
		ChangeDetails:   details,
		Changes:         changes,
		DaysSinceVisit:  days,
		HoursSinceVisit: hours,
		LastLogin:       lastLogin,
	}, nil
}

// getChangesSinceLastVisit counts what changed for the user's lost items.
// Pending verifications are counted without a time window: they need the
// user's attention no matter when they appeared.
func (s *DashboardService) getChangesSinceLastVisit(ctx context.Context, userID string, lastLogin time.Time) (models.ChangeCounts, error) {
	var changes models.ChangeCounts
	var err error

	changes.NewMatches, err = s.matches.CountNewMatches(ctx, userID, lastLogin)
	if err != nil {
		s.logger.Error("failed to count new matches", slog.String("user_id", userID), slog.Any("error", err))
		return models.ChangeCounts{}, err
	}

	changes.PendingVerifications, err = s.matches.CountPendingVerifications(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count pending verifications", slog.String("user_id", userID), slog.Any("error", err))
		return models.ChangeCounts{}, err
	}

	changes.CompletedMatches, err = s.matches.CountCompletedMatches(ctx, userID, lastLogin)
	if err != nil {
		s.logger.Error("failed to count completed matches", slog.String("user_id", userID), slog.Any("error", err))
		return models.ChangeCounts{}, err
	}

	return changes, nil
}

// welcomeMessage picks the message bracket from the time away. Fractional
// hours decide the sub-day brackets; whole days decide the rest.
func welcomeMessage(days int, hours float64) string {
	switch {
	case hours < 1:
		return "Welcome back!"
	case hours < 24:
		h := int(hours)
		return fmt.Sprintf("Welcome back! It's been %d hour%s since your last visit", h, plural(h))
	case days == 1:
		return "Welcome back! It's been 1 day since your last visit"
	case days < 7:
		return fmt.Sprintf("Welcome back! It's been %d days since your last visit", days)
	case days < 30:
		weeks := days / 7
		return fmt.Sprintf("Welcome back! It's been %d week%s since your last visit", weeks, plural(weeks))
	default:
		months := days / 30
		return fmt.Sprintf("Welcome back! It's been %d month%s since your last visit", months, plural(months))
	}
}

// summarizeChanges renders the activity message and one fragment per
// nonzero category, in the fixed order new matches, verifications,
// returns
func summarizeChanges(changes models.ChangeCounts) (string, []string) {
	details := []string{}

	if changes.Total() == 0 {
		return "Everything is just as you left it ✨", details
	}

	if changes.NewMatches > 0 {
		suffix := ""
		if changes.NewMatches > 1 {
			suffix = "es"
		}
		details = append(details, fmt.Sprintf("%d new match%s", changes.NewMatches, suffix))
	}
	if changes.PendingVerifications > 0 {
		details = append(details, fmt.Sprintf("%d verification%s waiting", changes.PendingVerifications, plural(changes.PendingVerifications)))
	}
	if changes.CompletedMatches > 0 {
		details = append(details, fmt.Sprintf("%d item%s returned", changes.CompletedMatches, plural(changes.CompletedMatches)))
	}

	return "Here's what changed while you were away...", details
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
