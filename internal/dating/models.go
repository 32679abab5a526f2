// internal/dating/models.go

package dating

import (
	"time"
)

// MatchState is the lifecycle state of a match.
type MatchState string

const (
	// MatchPending is reserved for a queueing variant; no operation in this
	// service produces it today.
	MatchPending MatchState = "pending"
	MatchActive  MatchState = "active"
	MatchClosed  MatchState = "closed"
)

// Match pairs two users. At most one active match may contain a given user
// at any time; CreateMatch enforces that transactionally.
type Match struct {
	ID            string     `json:"id" db:"id"`
	UserA         string     `json:"user_a" db:"user_a"`
	UserB         string     `json:"user_b" db:"user_b"`
	State         MatchState `json:"state" db:"state"`
	OpenedBy      string     `json:"opened_by" db:"opened_by"`
	ClosedBy      *string    `json:"closed_by,omitempty" db:"closed_by"`
	CloseReason   *string    `json:"close_reason,omitempty" db:"close_reason"`
	Score         *float64   `json:"score,omitempty" db:"score"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty" db:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// Contains reports whether the user is one of the match's two participants.
func (m *Match) Contains(userID string) bool {
	return m.UserA == userID || m.UserB == userID
}

// OtherUser returns the participant that is not the given user.
func (m *Match) OtherUser(userID string) string {
	if m.UserA == userID {
		return m.UserB
	}
	return m.UserA
}

// Starter is one suggested opening line, generated once per new match.
// Advisory only; the chat UI may ignore it.
type Starter struct {
	ID        string    `json:"id" db:"id"`
	MatchID   string    `json:"match_id" db:"match_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Score is a bounded compatibility value with human-readable reasons.
type Score struct {
	Value   float64  `json:"value"`
	Reasons []string `json:"reasons"`
}

// CandidateSummary is the per-candidate view returned by candidate queries.
type CandidateSummary struct {
	UserID     string   `json:"userId"`
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	City       string   `json:"city"`
	DistanceKm *float64 `json:"distanceKm,omitempty"`
	Interests  []string `json:"interests"`
	Photos     []string `json:"photos"`
}
