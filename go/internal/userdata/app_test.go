package userdata

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/kchandnani/fntz/go/internal/events"
	"github.com/kchandnani/fntz/go/internal/importer"
	"github.com/kchandnani/fntz/go/internal/models"
	"github.com/kchandnani/fntz/go/internal/storage"
)

type stubImporter struct {
	leagues []models.ProcessedLeague
	err     error
	calls   int
}

func (s *stubImporter) ImportUserLeagues(ctx context.Context, username, season string) ([]models.ProcessedLeague, error) {
	s.calls++
	return s.leagues, s.err
}

type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (c *capturePublisher) Publish(ctx context.Context, event events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *capturePublisher) Close() error { return nil }

func (c *capturePublisher) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.events))
	for i, e := range c.events {
		out[i] = e.Type
	}
	return out
}

func testApp(t *testing.T, imp Importer) (*App, *capturePublisher, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))
	repo := storage.NewRepository(storage.NewFileStore(t.TempDir()), clock, zerolog.Nop())
	pub := &capturePublisher{}
	return NewApp(repo, imp, clock, pub, zerolog.Nop()), pub, clock
}

func importedLeague(id, name string) models.ProcessedLeague {
	return models.ProcessedLeague{
		LeagueID: id,
		Name:     name,
		TeamName: "Imported Squad",
		Roster: models.RosterByPosition{
			models.PositionQB: {"Patrick Mahomes"},
		}.Normalize(),
		Season: "2025",
	}
}

func TestImportFromSleeper(t *testing.T) {
	imp := &stubImporter{leagues: []models.ProcessedLeague{importedLeague("L1", "Main"), importedLeague("L2", "Side")}}
	app, pub, _ := testApp(t, imp)
	ctx := context.Background()

	leagues, err := app.ImportFromSleeper(ctx, "tester", "2025")
	if err != nil {
		t.Fatalf("ImportFromSleeper: %v", err)
	}
	if len(leagues) != 2 || imp.calls != 1 {
		t.Fatalf("unexpected import result: %d leagues, %d calls", len(leagues), imp.calls)
	}

	snap := app.Snapshot()
	if snap.CurrentLeague == nil || snap.CurrentLeague.ID != "L1" {
		t.Fatalf("expected first league current, got %+v", snap.CurrentLeague)
	}
	if !snap.HasLeagues || len(snap.AllLeagues) != 2 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if snap.Loading || snap.Error != "" {
		t.Errorf("expected clean final state: %+v", snap)
	}

	types := pub.types()
	if len(types) != 1 || types[0] != events.TypeLeagueImported {
		t.Errorf("expected one league.imported event, got %v", types)
	}
}

func TestImportFromSleeperNoLeaguesFound(t *testing.T) {
	imp := &stubImporter{err: importer.ErrNoLeaguesFound}
	app, pub, _ := testApp(t, imp)
	ctx := context.Background()

	// pre-existing data must survive a failed import
	if _, err := app.CreateManualRoster(ctx, "Keep Me", "Squad"); err != nil {
		t.Fatal(err)
	}
	before := app.Snapshot()

	_, err := app.ImportFromSleeper(ctx, "tester", "2025")
	if !errors.Is(err, importer.ErrNoLeaguesFound) {
		t.Fatalf("expected ErrNoLeaguesFound, got %v", err)
	}

	snap := app.Snapshot()
	if snap.Error == "" {
		t.Error("expected error recorded in snapshot")
	}
	if len(snap.AllLeagues) != len(before.AllLeagues) {
		t.Errorf("failed import must not mutate the store: %+v", snap.AllLeagues)
	}
	for _, typ := range pub.types() {
		if typ == events.TypeLeagueImported {
			t.Error("no import event should be published on failure")
		}
	}
}

func TestCreateManualRoster(t *testing.T) {
	app, pub, clock := testApp(t, &stubImporter{})
	ctx := context.Background()

	record, err := app.CreateManualRoster(ctx, "Draft Board", "Bench Mob")
	if err != nil {
		t.Fatalf("CreateManualRoster: %v", err)
	}
	wantID := "manual-" + strconv.FormatInt(clock.Now().UnixMilli(), 10)
	if record.ID != wantID {
		t.Errorf("expected id %q, got %q", wantID, record.ID)
	}
	if record.Roster.TotalPlayers() != 0 {
		t.Errorf("new roster should be empty: %v", record.Roster)
	}

	snap := app.Snapshot()
	if snap.CurrentLeague == nil || snap.CurrentLeague.ID != record.ID {
		t.Fatalf("first roster should become current: %+v", snap.CurrentLeague)
	}

	// a second roster does not steal the pointer
	clock.Advance(time.Minute)
	second, err := app.CreateManualRoster(ctx, "Second", "Other")
	if err != nil {
		t.Fatal(err)
	}
	snap = app.Snapshot()
	if snap.CurrentLeague.ID != record.ID {
		t.Errorf("current should stay %q, got %q", record.ID, snap.CurrentLeague.ID)
	}
	if second.ID == record.ID {
		t.Error("ids must differ")
	}

	types := pub.types()
	if len(types) != 2 || types[0] != events.TypeRosterCreated {
		t.Errorf("unexpected events: %v", types)
	}
}

func TestSwitchLeague(t *testing.T) {
	app, pub, clock := testApp(t, &stubImporter{})
	ctx := context.Background()

	if _, err := app.CreateManualRoster(ctx, "First", "A"); err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Minute)
	second, err := app.CreateManualRoster(ctx, "Second", "B")
	if err != nil {
		t.Fatal(err)
	}

	// release the settle delay once SwitchLeague starts waiting on it
	go func() {
		clock.BlockUntil(1)
		clock.Advance(settleDelay)
	}()

	if err := app.SwitchLeague(ctx, second.ID); err != nil {
		t.Fatalf("SwitchLeague: %v", err)
	}

	snap := app.Snapshot()
	if snap.CurrentLeague == nil || snap.CurrentLeague.ID != second.ID {
		t.Fatalf("expected current %q, got %+v", second.ID, snap.CurrentLeague)
	}
	if snap.Switching {
		t.Error("switching flag should clear once the settle delay passes")
	}

	found := false
	for _, typ := range pub.types() {
		if typ == events.TypeLeagueSwitched {
			found = true
		}
	}
	if !found {
		t.Error("expected a league.switched event")
	}
}

func TestRemoveLeague(t *testing.T) {
	app, pub, clock := testApp(t, &stubImporter{})
	ctx := context.Background()

	first, err := app.CreateManualRoster(ctx, "First", "A")
	if err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Minute)
	second, err := app.CreateManualRoster(ctx, "Second", "B")
	if err != nil {
		t.Fatal(err)
	}

	if err := app.RemoveLeague(ctx, first.ID); err != nil {
		t.Fatalf("RemoveLeague: %v", err)
	}

	snap := app.Snapshot()
	if snap.CurrentLeague == nil || snap.CurrentLeague.ID != second.ID {
		t.Fatalf("pointer should reassign to %q, got %+v", second.ID, snap.CurrentLeague)
	}
	if len(snap.AllLeagues) != 1 {
		t.Errorf("expected 1 remaining record, got %d", len(snap.AllLeagues))
	}

	last := pub.events[len(pub.events)-1]
	if last.Type != events.TypeLeagueDeleted {
		t.Errorf("expected league.deleted event last, got %q", last.Type)
	}
}

func TestRosterEdits(t *testing.T) {
	app, _, _ := testApp(t, &stubImporter{})
	ctx := context.Background()

	if _, err := app.CreateManualRoster(ctx, "Board", "Squad"); err != nil {
		t.Fatal(err)
	}

	updated, err := app.AddPlayerToRoster(ctx, "Josh Allen", models.PositionQB)
	if err != nil {
		t.Fatalf("AddPlayerToRoster: %v", err)
	}
	if !updated.Contains("Josh Allen") {
		t.Fatalf("player missing after add: %v", updated)
	}

	snap := app.Snapshot()
	if !snap.CurrentLeague.Roster.Contains("Josh Allen") {
		t.Error("snapshot should reflect the persisted edit")
	}

	validation, err := app.RosterValidation(ctx)
	if err != nil {
		t.Fatalf("RosterValidation: %v", err)
	}
	if validation.Valid {
		t.Error("a one-player roster should not validate")
	}
}

func TestRosterEditsRejectImportedLeague(t *testing.T) {
	imp := &stubImporter{leagues: []models.ProcessedLeague{importedLeague("L1", "Main")}}
	app, _, _ := testApp(t, imp)
	ctx := context.Background()

	if _, err := app.ImportFromSleeper(ctx, "tester", "2025"); err != nil {
		t.Fatal(err)
	}

	_, err := app.AddPlayerToRoster(ctx, "Josh Allen", models.PositionQB)
	if !errors.Is(err, storage.ErrNotManualRoster) {
		t.Fatalf("expected ErrNotManualRoster, got %v", err)
	}
	if app.Snapshot().Error == "" {
		t.Error("expected error recorded in snapshot")
	}

	_, err = app.RemovePlayerFromRoster(ctx, "Patrick Mahomes")
	if !errors.Is(err, storage.ErrNotManualRoster) {
		t.Fatalf("expected ErrNotManualRoster, got %v", err)
	}
}

func TestDataStaleAfterLongIdle(t *testing.T) {
	imp := &stubImporter{leagues: []models.ProcessedLeague{importedLeague("L1", "Main")}}
	app, _, clock := testApp(t, imp)
	ctx := context.Background()

	if _, err := app.ImportFromSleeper(ctx, "tester", "2025"); err != nil {
		t.Fatalf("ImportFromSleeper: %v", err)
	}
	if app.Snapshot().DataStale {
		t.Fatal("fresh import should not be stale")
	}

	clock.Advance(5 * 30 * 24 * time.Hour)
	if err := app.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if !app.Snapshot().DataStale {
		t.Error("expected stale data after five months idle")
	}
}

func TestClearAll(t *testing.T) {
	app, _, _ := testApp(t, &stubImporter{})
	ctx := context.Background()

	if _, err := app.CreateManualRoster(ctx, "Board", "Squad"); err != nil {
		t.Fatal(err)
	}
	if err := app.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}

	snap := app.Snapshot()
	if snap.HasLeagues || snap.CurrentLeague != nil {
		t.Errorf("expected empty state after clear: %+v", snap)
	}
}
