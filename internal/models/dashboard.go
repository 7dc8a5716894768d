package models

import "time"

// ChangeCounts holds what changed for a user since their last visit.
// PendingVerifications is deliberately not time-windowed: every currently
// pending match with generated questions needs the user's attention.
type ChangeCounts struct {
	NewMatches           int `json:"new_matches"`
	PendingVerifications int `json:"pending_verifications"`
	CompletedMatches     int `json:"completed_matches"`
}

// Total sums the three change categories
func (c ChangeCounts) Total() int {
	return c.NewMatches + c.PendingVerifications + c.CompletedMatches
}

// WelcomeInfo is the structured result of the dashboard welcome computation
type WelcomeInfo struct {
	WelcomeMessage  string       `json:"welcome_message"`
	ActivityMessage string       `json:"activity_message"`
	ChangeDetails   []string     `json:"change_details"`
	Changes         ChangeCounts `json:"changes"`
	DaysSinceVisit  int          `json:"days_since_visit"`
	HoursSinceVisit float64      `json:"hours_since_visit"`
	LastLogin       time.Time    `json:"last_login"`
}

// CleanupReport lists a user's records that are eligible for tidying up.
// Resolved match age is measured from match creation, not resolution,
// mirroring the product's current behavior.
type CleanupReport struct {
	ResolvedMatches []*Match `json:"resolved_matches"`
	OldFoundItems   []*Item  `json:"old_found_items"`
	OldLostItems    []*Item  `json:"old_lost_items"`
}
