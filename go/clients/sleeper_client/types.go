package sleeper_client

import "encoding/json"

// Player is one record from GET /players/nfl. The map key is the player ID;
// defense units use the team abbreviation as their ID.
type Player struct {
	PlayerID         string   `json:"player_id"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Position         string   `json:"position"`
	Team             string   `json:"team"`
	InjuryStatus     string   `json:"injury_status,omitempty"`
	InjuryNotes      string   `json:"injury_notes,omitempty"`
	InjuryStartDate  string   `json:"injury_start_date,omitempty"`
	Status           string   `json:"status"`
	Age              *int     `json:"age,omitempty"`
	DepthChartOrder  *int     `json:"depth_chart_order,omitempty"`
	FantasyPositions []string `json:"fantasy_positions,omitempty"`
}

// TrendingAdd is one entry from GET /players/nfl/trending/add
type TrendingAdd struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}

// User is the response of GET /user/{username}
type User struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
}

// League is one league summary record
type League struct {
	LeagueID        string          `json:"league_id"`
	Name            string          `json:"name"`
	Avatar          string          `json:"avatar,omitempty"`
	TotalRosters    int             `json:"total_rosters"`
	Status          string          `json:"status"` // pre_draft, drafting, in_season, complete
	Season          string          `json:"season"`
	SeasonType      string          `json:"season_type"`
	Sport           string          `json:"sport"`
	Settings        json.RawMessage `json:"settings,omitempty"`
	ScoringSettings json.RawMessage `json:"scoring_settings,omitempty"`
	RosterPositions []string        `json:"roster_positions,omitempty"`
}

// RosterSettings carries a roster's season record
type RosterSettings struct {
	Wins               int `json:"wins"`
	Losses             int `json:"losses"`
	Ties               int `json:"ties"`
	Fpts               int `json:"fpts"`
	FptsDecimal        int `json:"fpts_decimal"`
	FptsAgainst        int `json:"fpts_against"`
	FptsAgainstDecimal int `json:"fpts_against_decimal"`
}

// Roster is one entry from GET /league/{league_id}/rosters
type Roster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	Players  []string       `json:"players"`
	Starters []string       `json:"starters"`
	LeagueID string         `json:"league_id"`
	Settings RosterSettings `json:"settings"`
}

// LeagueUser is one entry from GET /league/{league_id}/users
type LeagueUser struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
	Metadata    struct {
		TeamName string `json:"team_name,omitempty"`
	} `json:"metadata,omitempty"`
}
