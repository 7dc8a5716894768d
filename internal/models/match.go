package models

import (
	"fmt"
	"time"
)

// MatchStatus is the closed set of states a match moves through. Once a
// returned_* state is reached the match is resolved and only eligible for
// cleanup reporting.
type MatchStatus string

const (
	MatchStatusPending             MatchStatus = "pending"
	MatchStatusPendingVerification MatchStatus = "pending_verification"
	MatchStatusVerified            MatchStatus = "verified"
	MatchStatusReturnedToOwner     MatchStatus = "returned_to_owner"
	MatchStatusReturnedByFinder    MatchStatus = "returned_by_finder"
)

// ParseMatchStatus validates a wire-level match status string
func ParseMatchStatus(s string) (MatchStatus, error) {
	switch MatchStatus(s) {
	case MatchStatusPending, MatchStatusPendingVerification, MatchStatusVerified,
		MatchStatusReturnedToOwner, MatchStatusReturnedByFinder:
		return MatchStatus(s), nil
	}
	return "", fmt.Errorf("%w: invalid match status %q", ErrBadRequest, s)
}

func (s MatchStatus) String() string { return string(s) }

// Active reports whether this status locks the matched items against
// deletion (a live verification or return process).
func (s MatchStatus) Active() bool {
	return s == MatchStatusPendingVerification || s == MatchStatusVerified
}

// Resolved reports whether the match reached a returned_* terminal state
func (s MatchStatus) Resolved() bool {
	return s == MatchStatusReturnedToOwner || s == MatchStatusReturnedByFinder
}

// Match links exactly one lost item to one found item. Matches are created
// by the external matching logic with status pending and mutated only by
// the verification workflow; this backend reads them.
type Match struct {
	ID                 string
	LostItemID         string
	FoundItemID        string
	Status             MatchStatus
	QuestionsGenerated bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
