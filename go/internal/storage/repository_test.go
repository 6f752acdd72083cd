package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/kchandnani/fntz/go/internal/models"
	"github.com/kchandnani/fntz/go/internal/roster"
)

func testRepository(t *testing.T) (*Repository, *FileStore, *clockwork.FakeClock) {
	t.Helper()
	store := NewFileStore(t.TempDir())
	clock := clockwork.NewFakeClockAt(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))
	return NewRepository(store, clock, zerolog.Nop()), store, clock
}

func sleeperLeague(id, name string) models.ProcessedLeague {
	return models.ProcessedLeague{
		LeagueID: id,
		Name:     name,
		TeamName: "My Squad",
		Roster: models.RosterByPosition{
			models.PositionQB: {"Patrick Mahomes"},
			models.PositionRB: {"Bijan Robinson", "Jahmyr Gibbs"},
		}.Normalize(),
		Season:     "2025",
		TotalTeams: 12,
	}
}

func manualRoster(id, name string) models.ManualRoster {
	return models.ManualRoster{
		ID:       id,
		Name:     name,
		TeamName: "Bench Mob",
		Roster:   models.NewRoster(),
	}
}

func TestLoadFreshDocument(t *testing.T) {
	repo, _, clock := testRepository(t)
	ctx := context.Background()

	data, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if data.Version != models.SchemaVersion {
		t.Errorf("expected version %q, got %q", models.SchemaVersion, data.Version)
	}
	if !data.LastUpdated.Equal(clock.Now()) {
		t.Errorf("expected lastUpdated %v, got %v", clock.Now(), data.LastUpdated)
	}
	if len(data.Leagues) != 0 || len(data.ManualRosters) != 0 {
		t.Errorf("fresh document should be empty: %+v", data)
	}
}

func TestSaveStampsVersionAndTimestamp(t *testing.T) {
	repo, _, clock := testRepository(t)
	ctx := context.Background()

	data, _ := repo.Load(ctx)
	data.Version = "0.0"
	clock.Advance(2 * time.Hour)

	if err := repo.Save(ctx, data); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Version != models.SchemaVersion {
		t.Errorf("expected version restamped to %q, got %q", models.SchemaVersion, loaded.Version)
	}
	if !loaded.LastUpdated.Equal(clock.Now()) {
		t.Errorf("expected lastUpdated %v, got %v", clock.Now(), loaded.LastUpdated)
	}
}

func TestLoadCorruptDocument(t *testing.T) {
	repo, store, _ := testRepository(t)
	ctx := context.Background()

	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("corrupt document should not fail Load: %v", err)
	}
	if data.HasAnyLeagues() {
		t.Errorf("corrupt document should yield a fresh one: %+v", data)
	}
}

func TestSaveSleeperLeagues(t *testing.T) {
	repo, _, _ := testRepository(t)
	ctx := context.Background()

	first := []models.ProcessedLeague{sleeperLeague("L1", "Main"), sleeperLeague("L2", "Side")}
	if err := repo.SaveSleeperLeagues(ctx, first, "tester"); err != nil {
		t.Fatalf("SaveSleeperLeagues: %v", err)
	}

	data, _ := repo.Load(ctx)
	if len(data.Leagues) != 2 {
		t.Fatalf("expected 2 leagues, got %d", len(data.Leagues))
	}
	if data.SleeperUsername != "tester" {
		t.Errorf("expected username recorded, got %q", data.SleeperUsername)
	}
	if data.CurrentLeagueID != "L1" {
		t.Errorf("expected first league set as current, got %q", data.CurrentLeagueID)
	}

	// re-import replaces leagues by id instead of duplicating them
	if err := repo.SaveSleeperLeagues(ctx, []models.ProcessedLeague{sleeperLeague("L1", "Main Renamed")}, "tester"); err != nil {
		t.Fatalf("SaveSleeperLeagues: %v", err)
	}
	data, _ = repo.Load(ctx)
	if len(data.Leagues) != 2 {
		t.Fatalf("expected 2 leagues after re-import, got %d", len(data.Leagues))
	}
	if got, _ := data.FindLeague("L1"); got.Name != "Main Renamed" {
		t.Errorf("expected L1 replaced, got %q", got.Name)
	}

	// current pointer survives a re-import
	if err := repo.SetCurrentLeague(ctx, "L2"); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveSleeperLeagues(ctx, []models.ProcessedLeague{sleeperLeague("L3", "New")}, "tester"); err != nil {
		t.Fatal(err)
	}
	data, _ = repo.Load(ctx)
	if data.CurrentLeagueID != "L2" {
		t.Errorf("existing current pointer should be kept, got %q", data.CurrentLeagueID)
	}
}

func TestSaveManualRosterUpsert(t *testing.T) {
	repo, _, clock := testRepository(t)
	ctx := context.Background()

	if err := repo.SaveManualRoster(ctx, manualRoster("m1", "Draft Board")); err != nil {
		t.Fatalf("SaveManualRoster: %v", err)
	}
	created := clock.Now()

	data, _ := repo.Load(ctx)
	if data.CurrentLeagueID != "m1" {
		t.Errorf("expected new roster set as current, got %q", data.CurrentLeagueID)
	}

	clock.Advance(time.Hour)
	updated := manualRoster("m1", "Draft Board v2")
	if err := repo.SaveManualRoster(ctx, updated); err != nil {
		t.Fatalf("SaveManualRoster update: %v", err)
	}

	data, _ = repo.Load(ctx)
	if len(data.ManualRosters) != 1 {
		t.Fatalf("upsert should not duplicate, got %d rosters", len(data.ManualRosters))
	}
	got := data.ManualRosters[0]
	if got.Name != "Draft Board v2" {
		t.Errorf("expected updated name, got %q", got.Name)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("expected creation time preserved: %v vs %v", got.CreatedAt, created)
	}
	if !got.UpdatedAt.Equal(clock.Now()) {
		t.Errorf("expected update time stamped: %v vs %v", got.UpdatedAt, clock.Now())
	}
}

func TestGetCurrentLeague(t *testing.T) {
	repo, _, _ := testRepository(t)
	ctx := context.Background()

	current, err := repo.GetCurrentLeague(ctx)
	if err != nil {
		t.Fatalf("GetCurrentLeague: %v", err)
	}
	if current != nil {
		t.Fatalf("expected nil with no selection, got %+v", current)
	}

	if err := repo.SaveSleeperLeagues(ctx, []models.ProcessedLeague{sleeperLeague("L1", "Main")}, "tester"); err != nil {
		t.Fatal(err)
	}
	current, err = repo.GetCurrentLeague(ctx)
	if err != nil {
		t.Fatalf("GetCurrentLeague: %v", err)
	}
	if current == nil || current.ID != "L1" || current.Source != models.LeagueSourceSleeper {
		t.Fatalf("unexpected current league: %+v", current)
	}
	if current.TeamName != "My Squad" {
		t.Errorf("unexpected team name %q", current.TeamName)
	}

	// a dangling pointer reads as no selection
	if err := repo.SetCurrentLeague(ctx, "ghost"); err != nil {
		t.Fatal(err)
	}
	current, err = repo.GetCurrentLeague(ctx)
	if err != nil {
		t.Fatalf("GetCurrentLeague: %v", err)
	}
	if current != nil {
		t.Fatalf("dangling pointer should resolve to nil, got %+v", current)
	}
}

func TestDeleteLeagueReassignsCurrent(t *testing.T) {
	repo, _, _ := testRepository(t)
	ctx := context.Background()

	if err := repo.SaveSleeperLeagues(ctx, []models.ProcessedLeague{sleeperLeague("L1", "Main"), sleeperLeague("L2", "Side")}, "tester"); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveManualRoster(ctx, manualRoster("m1", "Manual")); err != nil {
		t.Fatal(err)
	}

	// current is L1; deleting it moves the pointer to the next league
	if err := repo.DeleteLeague(ctx, "L1"); err != nil {
		t.Fatalf("DeleteLeague: %v", err)
	}
	data, _ := repo.Load(ctx)
	if data.CurrentLeagueID != "L2" {
		t.Errorf("expected pointer reassigned to L2, got %q", data.CurrentLeagueID)
	}

	// manual rosters are next in line once leagues run out
	if err := repo.DeleteLeague(ctx, "L2"); err != nil {
		t.Fatal(err)
	}
	data, _ = repo.Load(ctx)
	if data.CurrentLeagueID != "m1" {
		t.Errorf("expected pointer reassigned to m1, got %q", data.CurrentLeagueID)
	}

	if err := repo.DeleteLeague(ctx, "m1"); err != nil {
		t.Fatal(err)
	}
	data, _ = repo.Load(ctx)
	if data.CurrentLeagueID != "" {
		t.Errorf("expected pointer cleared, got %q", data.CurrentLeagueID)
	}
	if data.HasAnyLeagues() {
		t.Errorf("expected empty collections: %+v", data)
	}

	// deleting a non-current record leaves the pointer alone
	if err := repo.SaveSleeperLeagues(ctx, []models.ProcessedLeague{sleeperLeague("L3", "A"), sleeperLeague("L4", "B")}, "tester"); err != nil {
		t.Fatal(err)
	}
	if err := repo.DeleteLeague(ctx, "L4"); err != nil {
		t.Fatal(err)
	}
	data, _ = repo.Load(ctx)
	if data.CurrentLeagueID != "L3" {
		t.Errorf("pointer should be untouched, got %q", data.CurrentLeagueID)
	}
}

func TestAllLeagues(t *testing.T) {
	repo, _, _ := testRepository(t)
	ctx := context.Background()

	if err := repo.SaveSleeperLeagues(ctx, []models.ProcessedLeague{sleeperLeague("L1", "Main")}, "tester"); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveManualRoster(ctx, manualRoster("m1", "Manual")); err != nil {
		t.Fatal(err)
	}

	all, err := repo.AllLeagues(ctx)
	if err != nil {
		t.Fatalf("AllLeagues: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
	if all[0].ID != "L1" || all[0].Source != models.LeagueSourceSleeper {
		t.Errorf("imported leagues should come first: %+v", all[0])
	}
	if all[1].ID != "m1" || all[1].Source != models.LeagueSourceManual {
		t.Errorf("unexpected second record: %+v", all[1])
	}
}

func TestRosterEditsRequireManualSource(t *testing.T) {
	repo, _, _ := testRepository(t)
	ctx := context.Background()

	_, err := repo.AddPlayerToCurrentRoster(ctx, "Patrick Mahomes", models.PositionQB)
	if !errors.Is(err, ErrNoCurrentLeague) {
		t.Fatalf("expected ErrNoCurrentLeague, got %v", err)
	}

	if err := repo.SaveSleeperLeagues(ctx, []models.ProcessedLeague{sleeperLeague("L1", "Main")}, "tester"); err != nil {
		t.Fatal(err)
	}
	_, err = repo.AddPlayerToCurrentRoster(ctx, "Josh Allen", models.PositionQB)
	if !errors.Is(err, ErrNotManualRoster) {
		t.Fatalf("expected ErrNotManualRoster, got %v", err)
	}
	_, err = repo.RemovePlayerFromCurrentRoster(ctx, "Patrick Mahomes")
	if !errors.Is(err, ErrNotManualRoster) {
		t.Fatalf("expected ErrNotManualRoster, got %v", err)
	}
}

func TestRosterEditsOnManualRoster(t *testing.T) {
	repo, _, _ := testRepository(t)
	ctx := context.Background()

	if err := repo.SaveManualRoster(ctx, manualRoster("m1", "Manual")); err != nil {
		t.Fatal(err)
	}

	updated, err := repo.AddPlayerToCurrentRoster(ctx, "Josh Allen", models.PositionQB)
	if err != nil {
		t.Fatalf("AddPlayerToCurrentRoster: %v", err)
	}
	if len(updated[models.PositionQB]) != 1 || updated[models.PositionQB][0] != "Josh Allen" {
		t.Fatalf("unexpected roster after add: %v", updated[models.PositionQB])
	}

	// the edit is persisted
	current, _ := repo.GetCurrentLeague(ctx)
	if !current.Roster.Contains("Josh Allen") {
		t.Fatal("add was not persisted")
	}

	_, err = repo.AddPlayerToCurrentRoster(ctx, "Josh Allen", models.PositionQB)
	if !errors.Is(err, roster.ErrDuplicatePlayer) {
		t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
	}

	// removing the only QB violates the position minimum
	_, err = repo.RemovePlayerFromCurrentRoster(ctx, "Josh Allen")
	if !errors.Is(err, roster.ErrMinimumViolation) {
		t.Fatalf("expected ErrMinimumViolation, got %v", err)
	}
	current, _ = repo.GetCurrentLeague(ctx)
	if !current.Roster.Contains("Josh Allen") {
		t.Fatal("rejected removal must not be persisted")
	}
}

func TestValidateCurrentRoster(t *testing.T) {
	repo, _, _ := testRepository(t)
	ctx := context.Background()

	if _, err := repo.ValidateCurrentRoster(ctx); !errors.Is(err, ErrNoCurrentLeague) {
		t.Fatalf("expected ErrNoCurrentLeague, got %v", err)
	}

	if err := repo.SaveManualRoster(ctx, manualRoster("m1", "Manual")); err != nil {
		t.Fatal(err)
	}
	validation, err := repo.ValidateCurrentRoster(ctx)
	if err != nil {
		t.Fatalf("ValidateCurrentRoster: %v", err)
	}
	if validation.Valid {
		t.Error("an empty roster should not validate")
	}
	if len(validation.Errors) == 0 {
		t.Error("expected position minimum errors")
	}
}

func TestMigrateLegacyDocument(t *testing.T) {
	repo, store, clock := testRepository(t)
	ctx := context.Background()

	legacy := map[string]any{
		"team_name":       "Old Guard",
		"QB":              []string{"Patrick Mahomes"},
		"RB":              []string{"Bijan Robinson", "Jahmyr Gibbs"},
		"WR":              []string{"Justin Jefferson"},
		"TE":              []string{},
		"K":               []string{},
		"DEF":             []string{},
		"sleeperUsername": "tester",
	}
	raw, _ := json.Marshal(legacy)
	if err := os.WriteFile(store.Path(), raw, 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.ManualRosters) != 1 {
		t.Fatalf("expected legacy roster converted, got %d manual rosters", len(data.ManualRosters))
	}
	got := data.ManualRosters[0]
	if got.ID != "legacy-roster" || got.Name != "Imported Roster" {
		t.Errorf("unexpected migrated record: %+v", got)
	}
	if got.TeamName != "Old Guard" {
		t.Errorf("expected team name carried over, got %q", got.TeamName)
	}
	if !got.CreatedAt.Equal(clock.Now()) {
		t.Errorf("expected migration timestamp, got %v", got.CreatedAt)
	}
	if data.CurrentLeagueID != "legacy-roster" {
		t.Errorf("expected legacy roster set as current, got %q", data.CurrentLeagueID)
	}
	if data.SleeperUsername != "tester" {
		t.Errorf("expected username preserved, got %q", data.SleeperUsername)
	}
	if len(data.ManualRosters[0].Roster[models.PositionRB]) != 2 {
		t.Errorf("unexpected RB bucket: %v", got.Roster[models.PositionRB])
	}
}

func TestMigrateUnrecognizedShape(t *testing.T) {
	repo, store, _ := testRepository(t)
	ctx := context.Background()

	if err := os.WriteFile(store.Path(), []byte(`{"version":"0.3","something":"else"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if data.HasAnyLeagues() || data.CurrentLeagueID != "" {
		t.Errorf("unknown legacy shape should yield a fresh document: %+v", data)
	}
	if data.Version != models.SchemaVersion {
		t.Errorf("expected current version, got %q", data.Version)
	}
}

func TestClearAll(t *testing.T) {
	repo, store, _ := testRepository(t)
	ctx := context.Background()

	if err := repo.SaveManualRoster(ctx, manualRoster("m1", "Manual")); err != nil {
		t.Fatal(err)
	}
	if err := repo.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(store.Path()), DefaultFileName)); !os.IsNotExist(err) {
		t.Fatal("expected document file removed")
	}

	data, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load after clear: %v", err)
	}
	if data.HasAnyLeagues() {
		t.Errorf("expected fresh document after clear: %+v", data)
	}
}
