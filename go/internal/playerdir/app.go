package playerdir

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kchandnani/fntz/go/clients/sleeper_client"
	"github.com/kchandnani/fntz/go/internal/models"
)

// NFLTeams is every team abbreviation; each one doubles as the player ID of
// that team's defense unit on Sleeper.
var NFLTeams = []string{
	"ARI", "ATL", "BAL", "BUF", "CAR", "CHI", "CIN", "CLE", "DAL", "DEN",
	"DET", "GB", "HOU", "IND", "JAX", "KC", "LV", "LAC", "LAR", "MIA",
	"MIN", "NE", "NO", "NYG", "NYJ", "PHI", "PIT", "SF", "SEA", "TB",
	"TEN", "WAS",
}

// FantasyPositions is the primary position set relevant to rosters
var FantasyPositions = []string{"QB", "RB", "WR", "TE", "K", "DEF"}

// SearchOptions narrows a player search. Filters apply in declaration
// order; MaxResults is a plain truncation of the name-sorted match list.
type SearchOptions struct {
	Query         string
	Positions     []string
	Teams         []string
	AvailableOnly bool
	InjuredOnly   bool
	MaxResults    int
}

// PlayersClient defines what the directory needs from the Sleeper client
type PlayersClient interface {
	GetAllPlayers(ctx context.Context) (map[string]sleeper_client.Player, error)
	GetTrendingAdds(ctx context.Context, limit int) ([]sleeper_client.TrendingAdd, error)
}

// App builds the searchable player read model. The model is rebuilt from
// the provider's full player list on every call; nothing is cached here.
type App struct {
	client PlayersClient
}

// NewApp creates a new player directory App
func NewApp(client PlayersClient) *App {
	return &App{client: client}
}

// SearchablePlayers builds the full searchable list: active players with a
// fantasy-relevant position, plus one synthetic defense entry per team,
// sorted by name.
func (a *App) SearchablePlayers(ctx context.Context) ([]models.SearchablePlayer, error) {
	allPlayers, err := a.client.GetAllPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get searchable players: %w", err)
	}

	players := make([]models.SearchablePlayer, 0, len(allPlayers))
	for playerID, p := range allPlayers {
		if p.Status != "Active" || p.Position == "" || !isFantasyPosition(p.Position) {
			continue
		}
		team := p.Team
		if team == "" {
			team = "FA"
		}
		players = append(players, models.SearchablePlayer{
			PlayerID:         playerID,
			Name:             p.FirstName + " " + p.LastName,
			FirstName:        p.FirstName,
			LastName:         p.LastName,
			Position:         p.Position,
			Team:             team,
			InjuryStatus:     p.InjuryStatus,
			InjuryNotes:      p.InjuryNotes,
			Status:           p.Status,
			Age:              p.Age,
			FantasyPositions: p.FantasyPositions,
			DepthChartOrder:  p.DepthChartOrder,
		})
	}

	for _, team := range NFLTeams {
		players = append(players, models.SearchablePlayer{
			PlayerID:         team,
			Name:             team + " Defense",
			FirstName:        team,
			LastName:         "Defense",
			Position:         "DEF",
			Team:             team,
			Status:           "Active",
			FantasyPositions: []string{"DEF"},
		})
	}

	sort.Slice(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})
	return players, nil
}

// SearchPlayers filters the searchable list by the given options
func (a *App) SearchPlayers(ctx context.Context, opts SearchOptions) ([]models.SearchablePlayer, error) {
	players, err := a.SearchablePlayers(ctx)
	if err != nil {
		return nil, err
	}

	filtered := players

	if opts.Query != "" {
		query := strings.ToLower(opts.Query)
		filtered = filter(filtered, func(p models.SearchablePlayer) bool {
			return strings.Contains(strings.ToLower(p.Name), query) ||
				strings.Contains(strings.ToLower(p.Team), query) ||
				strings.Contains(strings.ToLower(p.Position), query)
		})
	}

	if len(opts.Positions) > 0 {
		filtered = filter(filtered, func(p models.SearchablePlayer) bool {
			return containsString(opts.Positions, p.Position)
		})
	}

	if len(opts.Teams) > 0 {
		filtered = filter(filtered, func(p models.SearchablePlayer) bool {
			return containsString(opts.Teams, p.Team)
		})
	}

	if opts.AvailableOnly {
		filtered = filter(filtered, func(p models.SearchablePlayer) bool {
			return p.InjuryStatus == "" || p.InjuryStatus == "Healthy"
		})
	}

	if opts.InjuredOnly {
		filtered = filter(filtered, func(p models.SearchablePlayer) bool {
			return p.InjuryStatus != "" && p.InjuryStatus != "Healthy"
		})
	}

	if opts.MaxResults > 0 && len(filtered) > opts.MaxResults {
		filtered = filtered[:opts.MaxResults]
	}

	return filtered, nil
}

// PlayerByName finds a player by exact name, case-insensitive
func (a *App) PlayerByName(ctx context.Context, name string) (*models.SearchablePlayer, error) {
	players, err := a.SearchablePlayers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range players {
		if strings.EqualFold(players[i].Name, name) {
			return &players[i], nil
		}
	}
	return nil, nil
}

func isFantasyPosition(pos string) bool {
	return containsString(FantasyPositions, pos)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func filter(players []models.SearchablePlayer, keep func(models.SearchablePlayer) bool) []models.SearchablePlayer {
	out := players[:0:0]
	for _, p := range players {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
