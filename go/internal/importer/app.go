package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kchandnani/fntz/go/clients/sleeper_client"
	"github.com/kchandnani/fntz/go/internal/models"
	"github.com/kchandnani/fntz/go/internal/seasons"
)

// ErrNoLeaguesFound means the user resolved but had zero processable
// leagues for the requested season. The store must not be touched when
// an import ends this way.
var ErrNoLeaguesFound = errors.New("no leagues found for user")

// SleeperClient defines what the importer needs from the Sleeper client
type SleeperClient interface {
	GetUserByUsername(ctx context.Context, username string) (*sleeper_client.User, error)
	GetUserLeagues(ctx context.Context, userID, season string) ([]sleeper_client.League, error)
	GetLeagueRosters(ctx context.Context, leagueID string) ([]sleeper_client.Roster, error)
	GetLeagueUsers(ctx context.Context, leagueID string) ([]sleeper_client.LeagueUser, error)
	GetAllPlayers(ctx context.Context) (map[string]sleeper_client.Player, error)
}

// App runs the league import pipeline
type App struct {
	client SleeperClient
	logger zerolog.Logger
}

// NewApp creates a new importer App
func NewApp(client SleeperClient, logger zerolog.Logger) *App {
	return &App{
		client: client,
		logger: logger.With().Str("component", "importer").Logger(),
	}
}

// ImportUserLeagues resolves the username, fetches the user's leagues for
// the season, and converts the user's roster in each league into a
// position-bucketed ProcessedLeague. Leagues that fail to process are
// skipped individually; only user resolution failure or an empty result
// aborts the whole import.
func (a *App) ImportUserLeagues(ctx context.Context, username, season string) ([]models.ProcessedLeague, error) {
	user, err := a.client.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if season == "" {
		season = seasons.Current
	}

	leagues, err := a.client.GetUserLeagues(ctx, user.UserID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leagues for user %s: %w", username, err)
	}

	allPlayers, err := a.client.GetAllPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player directory: %w", err)
	}

	processed := make([]models.ProcessedLeague, 0, len(leagues))
	for _, league := range leagues {
		pl, err := a.processLeague(ctx, league, user, username, allPlayers)
		if err != nil {
			a.logger.Error().Err(err).
				Str("league_id", league.LeagueID).
				Str("league_name", league.Name).
				Msg("failed to process league, skipping")
			continue
		}
		if pl == nil {
			a.logger.Warn().
				Str("league_id", league.LeagueID).
				Str("league_name", league.Name).
				Msg("user has no roster in league, skipping")
			continue
		}
		processed = append(processed, *pl)
	}

	if len(processed) == 0 {
		return nil, ErrNoLeaguesFound
	}
	return processed, nil
}

// processLeague returns nil, nil when the user owns no roster in the league
func (a *App) processLeague(
	ctx context.Context,
	league sleeper_client.League,
	user *sleeper_client.User,
	username string,
	allPlayers map[string]sleeper_client.Player,
) (*models.ProcessedLeague, error) {
	var (
		rosters []sleeper_client.Roster
		users   []sleeper_client.LeagueUser
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rosters, err = a.client.GetLeagueRosters(gctx, league.LeagueID)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = a.client.GetLeagueUsers(gctx, league.LeagueID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var userRoster *sleeper_client.Roster
	for i := range rosters {
		if rosters[i].OwnerID == user.UserID {
			userRoster = &rosters[i]
			break
		}
	}
	if userRoster == nil {
		return nil, nil
	}

	teamName := username
	for _, u := range users {
		if u.UserID != user.UserID {
			continue
		}
		if u.Metadata.TeamName != "" {
			teamName = u.Metadata.TeamName
		} else if u.DisplayName != "" {
			teamName = u.DisplayName
		}
		break
	}

	return &models.ProcessedLeague{
		LeagueID:        league.LeagueID,
		Name:            league.Name,
		TeamName:        teamName,
		Roster:          MapRosterPlayers(userRoster.Players, allPlayers),
		Settings:        league.Settings,
		ScoringSettings: league.ScoringSettings,
		Season:          league.Season,
		TotalTeams:      league.TotalRosters,
		UserRosterID:    userRoster.RosterID,
	}, nil
}

// MapRosterPlayers buckets a list of Sleeper player IDs by position. IDs
// missing from the directory that look like a team code become a defense
// unit; players with a non-primary position are bucketed via their
// fantasy-position hints; everything else is dropped.
func MapRosterPlayers(playerIDs []string, allPlayers map[string]sleeper_client.Player) models.RosterByPosition {
	roster := models.NewRoster()

	for _, playerID := range playerIDs {
		p, ok := allPlayers[playerID]
		if !ok {
			if len(playerID) <= 4 && playerID == strings.ToUpper(playerID) {
				roster[models.PositionDEF] = append(roster[models.PositionDEF], playerID+" Defense")
			}
			continue
		}

		name := p.FirstName + " " + p.LastName
		switch models.Position(p.Position) {
		case models.PositionQB, models.PositionRB, models.PositionWR,
			models.PositionTE, models.PositionK, models.PositionDEF:
			roster[models.Position(p.Position)] = append(roster[models.Position(p.Position)], name)
		default:
			switch {
			case hasPosition(p.FantasyPositions, "RB"):
				roster[models.PositionRB] = append(roster[models.PositionRB], name)
			case hasPosition(p.FantasyPositions, "WR"):
				roster[models.PositionWR] = append(roster[models.PositionWR], name)
			case hasPosition(p.FantasyPositions, "TE"):
				roster[models.PositionTE] = append(roster[models.PositionTE], name)
			}
		}
	}

	return roster
}

// ConvertPlayerIDsToNames resolves a flat list of player IDs to display
// names without bucketing
func ConvertPlayerIDsToNames(playerIDs []string, allPlayers map[string]sleeper_client.Player) []string {
	names := make([]string, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		p, ok := allPlayers[playerID]
		if !ok {
			if len(playerID) <= 4 && playerID == strings.ToUpper(playerID) {
				names = append(names, playerID+" Defense")
			} else {
				names = append(names, fmt.Sprintf("Unknown Player (%s)", playerID))
			}
			continue
		}
		names = append(names, p.FirstName+" "+p.LastName)
	}
	return names
}

func hasPosition(positions []string, want string) bool {
	for _, p := range positions {
		if p == want {
			return true
		}
	}
	return false
}
