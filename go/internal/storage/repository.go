package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/kchandnani/fntz/go/internal/models"
	"github.com/kchandnani/fntz/go/internal/roster"
)

// ErrNoCurrentLeague means a roster operation needed a current selection
// and none was set (or the pointer was dangling).
var ErrNoCurrentLeague = errors.New("no current league selected")

// Repository wraps a Store with the document-level operations. Every write
// is a full load-modify-save of the single document; there is no partial
// update and no locking, the last writer wins.
type Repository struct {
	store  Store
	clock  clockwork.Clock
	logger zerolog.Logger
}

// NewRepository creates a Repository on the given store
func NewRepository(store Store, clock clockwork.Clock, logger zerolog.Logger) *Repository {
	return &Repository{
		store:  store,
		clock:  clock,
		logger: logger.With().Str("component", "storage").Logger(),
	}
}

// Load returns the stored document, migrating it if the version tag is
// stale. An absent or unparseable document yields a fresh empty one;
// corruption never propagates past this boundary.
func (r *Repository) Load(ctx context.Context) (models.UserData, error) {
	raw, found, err := r.store.Load(ctx)
	if err != nil {
		return models.UserData{}, err
	}
	if !found {
		return models.DefaultUserData(r.clock.Now()), nil
	}

	var data models.UserData
	if err := json.Unmarshal(raw, &data); err != nil {
		r.logger.Warn().Err(err).Msg("stored document is corrupt, starting fresh")
		return models.DefaultUserData(r.clock.Now()), nil
	}

	if data.Version != models.SchemaVersion {
		return r.migrate(raw, data), nil
	}

	normalizeDocument(&data)
	return data, nil
}

// Save stamps the version tag and last-updated time, then writes the whole
// document.
func (r *Repository) Save(ctx context.Context, data models.UserData) error {
	data.Version = models.SchemaVersion
	data.LastUpdated = r.clock.Now()
	normalizeDocument(&data)

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal user data: %w", err)
	}
	return r.store.Save(ctx, raw)
}

// SaveSleeperLeagues replaces any stored leagues that share an id with the
// incoming batch, appends the batch, and records the username. The current
// pointer is set to the first imported league only when nothing is current.
func (r *Repository) SaveSleeperLeagues(ctx context.Context, leagues []models.ProcessedLeague, username string) error {
	data, err := r.Load(ctx)
	if err != nil {
		return err
	}

	incoming := make(map[string]struct{}, len(leagues))
	for _, l := range leagues {
		incoming[l.LeagueID] = struct{}{}
	}

	kept := data.Leagues[:0:0]
	for _, l := range data.Leagues {
		if _, replaced := incoming[l.LeagueID]; !replaced {
			kept = append(kept, l)
		}
	}
	data.Leagues = append(kept, leagues...)
	data.SleeperUsername = username

	if data.CurrentLeagueID == "" && len(leagues) > 0 {
		data.CurrentLeagueID = leagues[0].LeagueID
	}

	return r.Save(ctx, data)
}

// SaveManualRoster upserts a manual roster by id. Updates preserve the
// original creation time; the current pointer is set only when unset.
func (r *Repository) SaveManualRoster(ctx context.Context, record models.ManualRoster) error {
	data, err := r.Load(ctx)
	if err != nil {
		return err
	}

	now := r.clock.Now()
	record.Source = models.LeagueSourceManual
	record.UpdatedAt = now

	updated := false
	for i, existing := range data.ManualRosters {
		if existing.ID == record.ID {
			record.CreatedAt = existing.CreatedAt
			data.ManualRosters[i] = record
			updated = true
			break
		}
	}
	if !updated {
		record.CreatedAt = now
		data.ManualRosters = append(data.ManualRosters, record)
	}

	if data.CurrentLeagueID == "" {
		data.CurrentLeagueID = record.ID
	}

	return r.Save(ctx, data)
}

// GetCurrentLeague resolves the current pointer against both collections,
// imported leagues first. A dangling or unset pointer yields nil.
func (r *Repository) GetCurrentLeague(ctx context.Context) (*models.CurrentLeague, error) {
	data, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	return resolveCurrent(data), nil
}

// SetCurrentLeague overwrites the pointer without an existence check;
// GetCurrentLeague reports a dangling pointer as no selection.
func (r *Repository) SetCurrentLeague(ctx context.Context, id string) error {
	data, err := r.Load(ctx)
	if err != nil {
		return err
	}
	data.CurrentLeagueID = id
	return r.Save(ctx, data)
}

// DeleteLeague removes the id from both collections. If the deleted record
// was current, the pointer moves to the first remaining record (imported
// leagues first), or clears when nothing remains.
func (r *Repository) DeleteLeague(ctx context.Context, id string) error {
	data, err := r.Load(ctx)
	if err != nil {
		return err
	}

	leagues := data.Leagues[:0:0]
	for _, l := range data.Leagues {
		if l.LeagueID != id {
			leagues = append(leagues, l)
		}
	}
	data.Leagues = leagues

	manual := data.ManualRosters[:0:0]
	for _, m := range data.ManualRosters {
		if m.ID != id {
			manual = append(manual, m)
		}
	}
	data.ManualRosters = manual

	if data.CurrentLeagueID == id {
		data.CurrentLeagueID = ""
		if len(data.Leagues) > 0 {
			data.CurrentLeagueID = data.Leagues[0].LeagueID
		} else if len(data.ManualRosters) > 0 {
			data.CurrentLeagueID = data.ManualRosters[0].ID
		}
	}

	return r.Save(ctx, data)
}

// HasAnyLeagues reports whether either collection is non-empty
func (r *Repository) HasAnyLeagues(ctx context.Context) (bool, error) {
	data, err := r.Load(ctx)
	if err != nil {
		return false, err
	}
	return data.HasAnyLeagues(), nil
}

// AllLeagues returns the normalized view of every record, imported leagues
// first, in stored order.
func (r *Repository) AllLeagues(ctx context.Context) ([]models.CurrentLeague, error) {
	data, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	all := make([]models.CurrentLeague, 0, len(data.Leagues)+len(data.ManualRosters))
	for _, l := range data.Leagues {
		all = append(all, normalizeLeague(l))
	}
	for _, m := range data.ManualRosters {
		all = append(all, normalizeManual(m))
	}
	return all, nil
}

// ClearAll drops the stored document entirely
func (r *Repository) ClearAll(ctx context.Context) error {
	return r.store.Clear(ctx)
}

// UpdateManualRoster replaces the roster buckets of an existing manual
// record.
func (r *Repository) UpdateManualRoster(ctx context.Context, id string, buckets models.RosterByPosition) error {
	data, err := r.Load(ctx)
	if err != nil {
		return err
	}

	record, ok := data.FindManualRoster(id)
	if !ok {
		return fmt.Errorf("manual roster %s not found", id)
	}
	record.Roster = buckets
	return r.SaveManualRoster(ctx, record)
}

// AddPlayerToCurrentRoster adds a player to the current manual roster and
// persists the result. Imported rosters reject edits with
// ErrNotManualRoster.
func (r *Repository) AddPlayerToCurrentRoster(ctx context.Context, name string, position models.Position) (models.RosterByPosition, error) {
	current, err := r.GetCurrentLeague(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoCurrentLeague
	}
	if current.Source != models.LeagueSourceManual {
		return nil, ErrNotManualRoster
	}

	result := roster.AddPlayer(current.Roster, name, position, roster.DefaultLimits())
	if !result.OK {
		return nil, result.Err
	}
	if err := r.UpdateManualRoster(ctx, current.ID, result.Roster); err != nil {
		return nil, err
	}
	return result.Roster, nil
}

// RemovePlayerFromCurrentRoster removes a player from the current manual
// roster and persists the result.
func (r *Repository) RemovePlayerFromCurrentRoster(ctx context.Context, name string) (models.RosterByPosition, error) {
	current, err := r.GetCurrentLeague(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoCurrentLeague
	}
	if current.Source != models.LeagueSourceManual {
		return nil, ErrNotManualRoster
	}

	result := roster.RemovePlayer(current.Roster, name, roster.DefaultLimits())
	if !result.OK {
		return nil, result.Err
	}
	if err := r.UpdateManualRoster(ctx, current.ID, result.Roster); err != nil {
		return nil, err
	}
	return result.Roster, nil
}

// ValidateCurrentRoster validates the current roster against the default
// limits.
func (r *Repository) ValidateCurrentRoster(ctx context.Context) (roster.Validation, error) {
	current, err := r.GetCurrentLeague(ctx)
	if err != nil {
		return roster.Validation{}, err
	}
	if current == nil {
		return roster.Validation{}, ErrNoCurrentLeague
	}
	return roster.Validate(current.Roster, roster.DefaultLimits()), nil
}

func resolveCurrent(data models.UserData) *models.CurrentLeague {
	if data.CurrentLeagueID == "" {
		return nil
	}
	if l, ok := data.FindLeague(data.CurrentLeagueID); ok {
		view := normalizeLeague(l)
		return &view
	}
	if m, ok := data.FindManualRoster(data.CurrentLeagueID); ok {
		view := normalizeManual(m)
		return &view
	}
	return nil
}

func normalizeLeague(l models.ProcessedLeague) models.CurrentLeague {
	return models.CurrentLeague{
		ID:              l.LeagueID,
		Name:            l.Name,
		TeamName:        l.TeamName,
		Roster:          l.Roster.Normalize(),
		Source:          models.LeagueSourceSleeper,
		Settings:        l.Settings,
		ScoringSettings: l.ScoringSettings,
	}
}

func normalizeManual(m models.ManualRoster) models.CurrentLeague {
	return models.CurrentLeague{
		ID:       m.ID,
		Name:     m.Name,
		TeamName: m.TeamName,
		Roster:   m.Roster.Normalize(),
		Source:   models.LeagueSourceManual,
	}
}

func normalizeDocument(data *models.UserData) {
	if data.Leagues == nil {
		data.Leagues = []models.ProcessedLeague{}
	}
	if data.ManualRosters == nil {
		data.ManualRosters = []models.ManualRoster{}
	}
	for i := range data.Leagues {
		data.Leagues[i].Roster = data.Leagues[i].Roster.Normalize()
	}
	for i := range data.ManualRosters {
		data.ManualRosters[i].Roster = data.ManualRosters[i].Roster.Normalize()
	}
}
