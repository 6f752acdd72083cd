package sleeper_client

const (
	// Base URL
	BaseURL = "https://api.sleeper.app/v1"

	// API Endpoints
	PlayersEndpoint      = "/players/nfl"
	TrendingAddsEndpoint = "/players/nfl/trending/add"
	UserEndpoint         = "/user"
	LeagueEndpoint       = "/league"

	// Sports
	SportNFL = "nfl"
)
