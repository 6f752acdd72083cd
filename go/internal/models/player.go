package models

// SearchablePlayer is the read-model projection of one Sleeper player
// record, rebuilt on demand for search and display. Never persisted.
type SearchablePlayer struct {
	PlayerID         string   `json:"player_id"`
	Name             string   `json:"name"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Position         string   `json:"position"`
	Team             string   `json:"team"`
	InjuryStatus     string   `json:"injury_status,omitempty"`
	InjuryNotes      string   `json:"injury_notes,omitempty"`
	Status           string   `json:"status"`
	Age              *int     `json:"age,omitempty"`
	FantasyPositions []string `json:"fantasy_positions,omitempty"`
	DepthChartOrder  *int     `json:"depth_chart_order,omitempty"`
}

// InjuryData is one currently-injured player
type InjuryData struct {
	PlayerID        string `json:"player_id"`
	Name            string `json:"name"`
	Position        string `json:"position"`
	Team            string `json:"team"`
	InjuryStatus    string `json:"injury_status"`
	InjuryNotes     string `json:"injury_notes,omitempty"`
	InjuryStartDate string `json:"injury_start_date,omitempty"`
}

// TrendingPlayer is one entry from the trending-adds feed joined against
// the player directory. Count is the number of leagues adding the player.
type TrendingPlayer struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Team     string `json:"team"`
	Count    int    `json:"count"`
}
