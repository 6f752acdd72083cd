package models

import (
	"encoding/json"
	"time"
)

// LeagueSource identifies where a roster record came from
type LeagueSource string

const (
	LeagueSourceSleeper LeagueSource = "sleeper"
	LeagueSourceManual  LeagueSource = "manual"
)

// ProcessedLeague is one league imported from Sleeper: the user's roster
// mapped into position buckets plus a snapshot of league metadata. It is
// replaced wholesale on the next import and never partially mutated.
type ProcessedLeague struct {
	LeagueID        string           `json:"league_id"`
	Name            string           `json:"name"`
	TeamName        string           `json:"team_name"`
	Roster          RosterByPosition `json:"roster"`
	Settings        json.RawMessage  `json:"settings,omitempty"`
	ScoringSettings json.RawMessage  `json:"scoring_settings,omitempty"`
	Season          string           `json:"season"`
	TotalTeams      int              `json:"total_teams"`
	UserRosterID    int              `json:"user_roster_id"`
}

// ManualRoster is a roster created and edited entirely within the app
type ManualRoster struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	TeamName  string           `json:"team_name"`
	Roster    RosterByPosition `json:"roster"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Source    LeagueSource     `json:"source"`
}

// CurrentLeague is the normalized view of whichever record the current
// pointer resolves to, imported or manual.
type CurrentLeague struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	TeamName        string           `json:"team_name"`
	Roster          RosterByPosition `json:"roster"`
	Source          LeagueSource     `json:"source"`
	Settings        json.RawMessage  `json:"settings,omitempty"`
	ScoringSettings json.RawMessage  `json:"scoring_settings,omitempty"`
}
