package sleeper_client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kchandnani/fntz/go/clients"
)

// ErrUserNotFound is returned when a username does not exist on Sleeper
var ErrUserNotFound = errors.New("sleeper user not found")

type SleeperClient struct {
	*clients.BaseClient
}

// NewSleeperClient talks to the public Sleeper API. No authentication is
// needed for any of the endpoints this app consumes.
func NewSleeperClient() *SleeperClient {
	return NewSleeperClientWithBaseURL(BaseURL)
}

// NewSleeperClientWithBaseURL exists for tests pointed at a local server
func NewSleeperClientWithBaseURL(baseURL string) *SleeperClient {
	return &SleeperClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}
}

// GetAllPlayers fetches the full NFL player map keyed by player ID.
// Live data: always the current season.
func (c *SleeperClient) GetAllPlayers(ctx context.Context) (map[string]Player, error) {
	body, err := c.Get(ctx, PlayersEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	var players map[string]Player
	if err := json.Unmarshal(body, &players); err != nil {
		return nil, fmt.Errorf("failed to unmarshal players: %w", err)
	}
	return players, nil
}

// GetTrendingAdds fetches the real-time trending-add feed
func (c *SleeperClient) GetTrendingAdds(ctx context.Context, limit int) ([]TrendingAdd, error) {
	body, err := c.Get(ctx, fmt.Sprintf("%s?limit=%d", TrendingAddsEndpoint, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to get trending adds: %w", err)
	}

	var adds []TrendingAdd
	if err := json.Unmarshal(body, &adds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trending adds: %w", err)
	}
	return adds, nil
}

// GetUserByUsername resolves a username to a Sleeper user. A 404 from the
// provider maps to ErrUserNotFound.
func (c *SleeperClient) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	body, err := c.Get(ctx, fmt.Sprintf("%s/%s", UserEndpoint, username))
	if err != nil {
		var statusErr *clients.StatusError
		if errors.As(err, &statusErr) && statusErr.NotFound() {
			return nil, fmt.Errorf("%w: %q", ErrUserNotFound, username)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// GetUserLeagues fetches all of a user's NFL leagues for a season
func (c *SleeperClient) GetUserLeagues(ctx context.Context, userID, season string) ([]League, error) {
	body, err := c.Get(ctx, fmt.Sprintf("%s/%s/leagues/%s/%s", UserEndpoint, userID, SportNFL, season))
	if err != nil {
		return nil, fmt.Errorf("failed to get user leagues: %w", err)
	}

	var leagues []League
	if err := json.Unmarshal(body, &leagues); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user leagues: %w", err)
	}
	return leagues, nil
}

// GetLeague fetches a single league summary
func (c *SleeperClient) GetLeague(ctx context.Context, leagueID string) (*League, error) {
	body, err := c.Get(ctx, fmt.Sprintf("%s/%s", LeagueEndpoint, leagueID))
	if err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}

	var league League
	if err := json.Unmarshal(body, &league); err != nil {
		return nil, fmt.Errorf("failed to unmarshal league: %w", err)
	}
	return &league, nil
}

// GetLeagueRosters fetches all rosters in a league
func (c *SleeperClient) GetLeagueRosters(ctx context.Context, leagueID string) ([]Roster, error) {
	body, err := c.Get(ctx, fmt.Sprintf("%s/%s/rosters", LeagueEndpoint, leagueID))
	if err != nil {
		return nil, fmt.Errorf("failed to get league rosters: %w", err)
	}

	var rosters []Roster
	if err := json.Unmarshal(body, &rosters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal league rosters: %w", err)
	}
	return rosters, nil
}

// GetLeagueUsers fetches the member list of a league
func (c *SleeperClient) GetLeagueUsers(ctx context.Context, leagueID string) ([]LeagueUser, error) {
	body, err := c.Get(ctx, fmt.Sprintf("%s/%s/users", LeagueEndpoint, leagueID))
	if err != nil {
		return nil, fmt.Errorf("failed to get league users: %w", err)
	}

	var users []LeagueUser
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal league users: %w", err)
	}
	return users, nil
}
