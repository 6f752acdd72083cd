package userdata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/kchandnani/fntz/go/internal/events"
	"github.com/kchandnani/fntz/go/internal/models"
	"github.com/kchandnani/fntz/go/internal/roster"
	"github.com/kchandnani/fntz/go/internal/seasons"
)

// settleDelay is how long a league switch stays in the transient
// switching state so dependent views can settle.
const settleDelay = 300 * time.Millisecond

// Repository is what the App needs from the storage layer
type Repository interface {
	Load(ctx context.Context) (models.UserData, error)
	SaveSleeperLeagues(ctx context.Context, leagues []models.ProcessedLeague, username string) error
	SaveManualRoster(ctx context.Context, record models.ManualRoster) error
	GetCurrentLeague(ctx context.Context) (*models.CurrentLeague, error)
	SetCurrentLeague(ctx context.Context, id string) error
	DeleteLeague(ctx context.Context, id string) error
	AllLeagues(ctx context.Context) ([]models.CurrentLeague, error)
	HasAnyLeagues(ctx context.Context) (bool, error)
	ClearAll(ctx context.Context) error
	AddPlayerToCurrentRoster(ctx context.Context, name string, position models.Position) (models.RosterByPosition, error)
	RemovePlayerFromCurrentRoster(ctx context.Context, name string) (models.RosterByPosition, error)
	ValidateCurrentRoster(ctx context.Context) (roster.Validation, error)
}

// Importer runs the Sleeper import pipeline
type Importer interface {
	ImportUserLeagues(ctx context.Context, username, season string) ([]models.ProcessedLeague, error)
}

// Snapshot is the in-memory projection of the store plus transient
// operation state. It is rebuilt from a full reload after every mutation;
// the store stays the single source of truth.
type Snapshot struct {
	CurrentLeague *models.CurrentLeague  `json:"currentLeague"`
	AllLeagues    []models.CurrentLeague `json:"allLeagues"`
	HasLeagues    bool                   `json:"hasLeagues"`
	DataStale     bool                   `json:"dataStale"`
	Loading       bool                   `json:"loading"`
	Switching     bool                   `json:"switchingLeague"`
	Error         string                 `json:"error,omitempty"`
}

// App is the selection state machine exposed to the HTTP layer. All store
// mutations go through here; callers read state via Snapshot.
type App struct {
	repo      Repository
	importer  Importer
	clock     clockwork.Clock
	publisher events.Publisher
	logger    zerolog.Logger

	mu    sync.RWMutex
	state Snapshot
}

// NewApp creates the state machine and primes its snapshot from the store
func NewApp(repo Repository, imp Importer, clock clockwork.Clock, publisher events.Publisher, logger zerolog.Logger) *App {
	return &App{
		repo:      repo,
		importer:  imp,
		clock:     clock,
		publisher: publisher,
		logger:    logger.With().Str("component", "userdata").Logger(),
	}
}

// Snapshot returns a copy of the current state
func (a *App) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Refresh rebuilds the snapshot from the store
func (a *App) Refresh(ctx context.Context) error {
	current, err := a.repo.GetCurrentLeague(ctx)
	if err != nil {
		return err
	}
	all, err := a.repo.AllLeagues(ctx)
	if err != nil {
		return err
	}
	data, err := a.repo.Load(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.state.CurrentLeague = current
	a.state.AllLeagues = all
	a.state.HasLeagues = len(all) > 0
	a.state.DataStale = len(all) > 0 && seasons.IsStaleData(data.LastUpdated, a.clock.Now())
	a.mu.Unlock()
	return nil
}

// ImportFromSleeper runs the import pipeline and replaces the stored
// Sleeper leagues. An import that finds no leagues leaves the store
// untouched. Errors are recorded in the snapshot and returned.
func (a *App) ImportFromSleeper(ctx context.Context, username, season string) ([]models.ProcessedLeague, error) {
	a.setLoading(true)
	defer a.setLoading(false)

	leagues, err := a.importer.ImportUserLeagues(ctx, username, season)
	if err != nil {
		a.setError(err.Error())
		return nil, err
	}

	if err := a.repo.SaveSleeperLeagues(ctx, leagues, username); err != nil {
		a.setError(err.Error())
		return nil, err
	}

	leagueIDs := make([]string, len(leagues))
	for i, l := range leagues {
		leagueIDs[i] = l.LeagueID
	}
	a.publish(ctx, events.TypeLeagueImported, events.LeagueImportedPayload{
		Username:    username,
		Season:      season,
		LeagueIDs:   leagueIDs,
		LeagueCount: len(leagues),
	})

	a.setError("")
	if err := a.Refresh(ctx); err != nil {
		return nil, err
	}
	return leagues, nil
}

// CreateManualRoster creates an empty manual roster. It becomes current
// only when nothing else is.
func (a *App) CreateManualRoster(ctx context.Context, name, teamName string) (models.ManualRoster, error) {
	record := models.ManualRoster{
		ID:       fmt.Sprintf("manual-%d", a.clock.Now().UnixMilli()),
		Name:     name,
		TeamName: teamName,
		Roster:   models.NewRoster(),
	}

	if err := a.repo.SaveManualRoster(ctx, record); err != nil {
		a.setError(err.Error())
		return models.ManualRoster{}, err
	}

	a.publish(ctx, events.TypeRosterCreated, events.RosterCreatedPayload{
		RosterID: record.ID,
		Name:     name,
		TeamName: teamName,
	})

	a.setError("")
	if err := a.Refresh(ctx); err != nil {
		return models.ManualRoster{}, err
	}
	return record, nil
}

// SwitchLeague moves the current pointer. The switching flag stays up for
// a short settle delay after the write lands.
func (a *App) SwitchLeague(ctx context.Context, id string) error {
	a.setSwitching(true)
	defer a.setSwitching(false)

	if err := a.repo.SetCurrentLeague(ctx, id); err != nil {
		a.setError(err.Error())
		return err
	}

	a.publish(ctx, events.TypeLeagueSwitched, events.LeagueSwitchedPayload{LeagueID: id})

	a.setError("")
	if err := a.Refresh(ctx); err != nil {
		return err
	}

	select {
	case <-a.clock.After(settleDelay):
	case <-ctx.Done():
	}
	return nil
}

// RemoveLeague deletes a record from the store; the repository reassigns
// the current pointer when the deleted record was current.
func (a *App) RemoveLeague(ctx context.Context, id string) error {
	if err := a.repo.DeleteLeague(ctx, id); err != nil {
		a.setError(err.Error())
		return err
	}

	if err := a.Refresh(ctx); err != nil {
		return err
	}

	snap := a.Snapshot()
	newCurrent := ""
	if snap.CurrentLeague != nil {
		newCurrent = snap.CurrentLeague.ID
	}
	a.publish(ctx, events.TypeLeagueDeleted, events.LeagueDeletedPayload{
		LeagueID:       id,
		NewCurrentID:   newCurrent,
		RemainingCount: len(snap.AllLeagues),
	})

	a.setError("")
	return nil
}

// AddPlayerToRoster adds a player to the current manual roster
func (a *App) AddPlayerToRoster(ctx context.Context, name string, position models.Position) (models.RosterByPosition, error) {
	updated, err := a.repo.AddPlayerToCurrentRoster(ctx, name, position)
	if err != nil {
		a.setError(err.Error())
		return nil, err
	}

	a.publishRosterUpdate(ctx, name, string(position), "add")

	a.setError("")
	if err := a.Refresh(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// RemovePlayerFromRoster removes a player from the current manual roster
func (a *App) RemovePlayerFromRoster(ctx context.Context, name string) (models.RosterByPosition, error) {
	updated, err := a.repo.RemovePlayerFromCurrentRoster(ctx, name)
	if err != nil {
		a.setError(err.Error())
		return nil, err
	}

	a.publishRosterUpdate(ctx, name, "", "remove")

	a.setError("")
	if err := a.Refresh(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// RosterValidation validates the current roster against the default limits
func (a *App) RosterValidation(ctx context.Context) (roster.Validation, error) {
	return a.repo.ValidateCurrentRoster(ctx)
}

// ClearAll wipes the stored document
func (a *App) ClearAll(ctx context.Context) error {
	if err := a.repo.ClearAll(ctx); err != nil {
		a.setError(err.Error())
		return err
	}
	a.setError("")
	return a.Refresh(ctx)
}

func (a *App) publishRosterUpdate(ctx context.Context, name, position, action string) {
	snap := a.Snapshot()
	rosterID := ""
	if snap.CurrentLeague != nil {
		rosterID = snap.CurrentLeague.ID
	}
	a.publish(ctx, events.TypeRosterUpdated, events.RosterUpdatedPayload{
		RosterID:   rosterID,
		PlayerName: name,
		Position:   position,
		Action:     action,
	})
}

// publish is best-effort: a broker failure is logged and never fails the
// mutation it describes.
func (a *App) publish(ctx context.Context, eventType string, payload any) {
	event := events.NewEvent(eventType, a.clock.Now(), payload)
	if err := a.publisher.Publish(ctx, event); err != nil {
		a.logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish event")
	}
}

func (a *App) setLoading(v bool) {
	a.mu.Lock()
	a.state.Loading = v
	a.mu.Unlock()
}

func (a *App) setSwitching(v bool) {
	a.mu.Lock()
	a.state.Switching = v
	a.mu.Unlock()
}

func (a *App) setError(msg string) {
	a.mu.Lock()
	a.state.Error = msg
	a.mu.Unlock()
}
