package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the user-data state machine
const (
	TypeLeagueImported = "league.imported"
	TypeLeagueSwitched = "league.switched"
	TypeLeagueDeleted  = "league.deleted"
	TypeRosterCreated  = "roster.created"
	TypeRosterUpdated  = "roster.updated"
)

// Event is the envelope published for every state change
type Event struct {
	ID         uuid.UUID       `json:"eventId"`
	Type       string          `json:"eventType"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// LeagueImportedPayload reports a completed Sleeper import
type LeagueImportedPayload struct {
	Username    string   `json:"username"`
	Season      string   `json:"season"`
	LeagueIDs   []string `json:"leagueIds"`
	LeagueCount int      `json:"leagueCount"`
}

// LeagueSwitchedPayload reports a current-league change
type LeagueSwitchedPayload struct {
	LeagueID string `json:"leagueId"`
}

// LeagueDeletedPayload reports a removed record and where the current
// pointer landed afterwards
type LeagueDeletedPayload struct {
	LeagueID       string `json:"leagueId"`
	NewCurrentID   string `json:"newCurrentId,omitempty"`
	RemainingCount int    `json:"remainingCount"`
}

// RosterCreatedPayload reports a newly created manual roster
type RosterCreatedPayload struct {
	RosterID string `json:"rosterId"`
	Name     string `json:"name"`
	TeamName string `json:"teamName"`
}

// RosterUpdatedPayload reports a manual roster edit
type RosterUpdatedPayload struct {
	RosterID   string `json:"rosterId"`
	PlayerName string `json:"playerName"`
	Position   string `json:"position,omitempty"`
	Action     string `json:"action"` // add or remove
}

// NewEvent wraps a payload into an envelope. Marshal failures cannot occur
// for the payload types above, so the error is swallowed into an empty
// payload rather than propagated.
func NewEvent(eventType string, occurredAt time.Time, payload any) Event {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte("{}")
	}
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: occurredAt.UTC(),
		Payload:    raw,
	}
}
