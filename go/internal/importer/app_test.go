package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kchandnani/fntz/go/clients/sleeper_client"
	"github.com/kchandnani/fntz/go/internal/models"
)

type fakeSleeperClient struct {
	user       *sleeper_client.User
	userErr    error
	leagues    []sleeper_client.League
	leaguesErr error
	rosters    map[string][]sleeper_client.Roster
	rostersErr map[string]error
	users      map[string][]sleeper_client.LeagueUser
	players    map[string]sleeper_client.Player
}

func (f *fakeSleeperClient) GetUserByUsername(ctx context.Context, username string) (*sleeper_client.User, error) {
	return f.user, f.userErr
}

func (f *fakeSleeperClient) GetUserLeagues(ctx context.Context, userID, season string) ([]sleeper_client.League, error) {
	return f.leagues, f.leaguesErr
}

func (f *fakeSleeperClient) GetLeagueRosters(ctx context.Context, leagueID string) ([]sleeper_client.Roster, error) {
	if err := f.rostersErr[leagueID]; err != nil {
		return nil, err
	}
	return f.rosters[leagueID], nil
}

func (f *fakeSleeperClient) GetLeagueUsers(ctx context.Context, leagueID string) ([]sleeper_client.LeagueUser, error) {
	return f.users[leagueID], nil
}

func (f *fakeSleeperClient) GetAllPlayers(ctx context.Context) (map[string]sleeper_client.Player, error) {
	return f.players, nil
}

func testPlayers() map[string]sleeper_client.Player {
	return map[string]sleeper_client.Player{
		"4046": {FirstName: "Patrick", LastName: "Mahomes", Position: "QB"},
		"6794": {FirstName: "Justin", LastName: "Jefferson", Position: "WR"},
		"4034": {FirstName: "Christian", LastName: "McCaffrey", Position: "RB"},
		"5555": {FirstName: "Taysom", LastName: "Hill", Position: "FLEX", FantasyPositions: []string{"TE", "QB"}},
	}
}

func TestImportUserLeagues(t *testing.T) {
	client := &fakeSleeperClient{
		user: &sleeper_client.User{UserID: "u1", Username: "tester", DisplayName: "Tester"},
		leagues: []sleeper_client.League{
			{LeagueID: "L1", Name: "Main League", Season: "2025", TotalRosters: 12},
			{LeagueID: "L2", Name: "Side League", Season: "2025", TotalRosters: 10},
		},
		rosters: map[string][]sleeper_client.Roster{
			"L1": {
				{RosterID: 3, OwnerID: "u1", Players: []string{"4046", "6794", "KC"}},
				{RosterID: 4, OwnerID: "other", Players: []string{"4034"}},
			},
			"L2": {
				{RosterID: 1, OwnerID: "other", Players: []string{"4034"}},
			},
		},
		users: map[string][]sleeper_client.LeagueUser{
			"L1": {
				{UserID: "u1", Username: "tester", DisplayName: "Tester",
					Metadata: struct {
						TeamName string `json:"team_name,omitempty"`
					}{TeamName: "Gridiron Gang"}},
			},
		},
		players: testPlayers(),
	}
	app := NewApp(client, zerolog.Nop())

	leagues, err := app.ImportUserLeagues(context.Background(), "tester", "2025")
	if err != nil {
		t.Fatalf("ImportUserLeagues: %v", err)
	}

	// L2 has no roster owned by the user and is skipped
	if len(leagues) != 1 {
		t.Fatalf("expected 1 processed league, got %d", len(leagues))
	}

	got := leagues[0]
	if got.LeagueID != "L1" || got.Name != "Main League" {
		t.Errorf("unexpected league: %+v", got)
	}
	if got.TeamName != "Gridiron Gang" {
		t.Errorf("expected team name from metadata, got %q", got.TeamName)
	}
	if got.UserRosterID != 3 || got.TotalTeams != 12 || got.Season != "2025" {
		t.Errorf("unexpected league metadata: %+v", got)
	}
	if len(got.Roster[models.PositionQB]) != 1 || got.Roster[models.PositionQB][0] != "Patrick Mahomes" {
		t.Errorf("unexpected QB bucket: %v", got.Roster[models.PositionQB])
	}
	if len(got.Roster[models.PositionDEF]) != 1 || got.Roster[models.PositionDEF][0] != "KC Defense" {
		t.Errorf("unexpected DEF bucket: %v", got.Roster[models.PositionDEF])
	}
}

func TestImportUserLeaguesTeamNameFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		users    []sleeper_client.LeagueUser
		wantName string
	}{
		{
			name: "display name when metadata empty",
			users: []sleeper_client.LeagueUser{
				{UserID: "u1", DisplayName: "Tester"},
			},
			wantName: "Tester",
		},
		{
			name:     "input username when user absent from member list",
			users:    nil,
			wantName: "tester",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeSleeperClient{
				user:    &sleeper_client.User{UserID: "u1", Username: "tester"},
				leagues: []sleeper_client.League{{LeagueID: "L1", Name: "League", Season: "2025"}},
				rosters: map[string][]sleeper_client.Roster{
					"L1": {{RosterID: 1, OwnerID: "u1", Players: []string{"4046"}}},
				},
				users:   map[string][]sleeper_client.LeagueUser{"L1": tt.users},
				players: testPlayers(),
			}
			app := NewApp(client, zerolog.Nop())

			leagues, err := app.ImportUserLeagues(context.Background(), "tester", "")
			if err != nil {
				t.Fatalf("ImportUserLeagues: %v", err)
			}
			if leagues[0].TeamName != tt.wantName {
				t.Errorf("expected team name %q, got %q", tt.wantName, leagues[0].TeamName)
			}
		})
	}
}

func TestImportUserLeaguesSkipsFailingLeague(t *testing.T) {
	client := &fakeSleeperClient{
		user: &sleeper_client.User{UserID: "u1", Username: "tester"},
		leagues: []sleeper_client.League{
			{LeagueID: "L1", Name: "Broken League", Season: "2025"},
			{LeagueID: "L2", Name: "Good League", Season: "2025"},
		},
		rosters: map[string][]sleeper_client.Roster{
			"L2": {{RosterID: 1, OwnerID: "u1", Players: []string{"4046"}}},
		},
		rostersErr: map[string]error{"L1": errors.New("boom")},
		users:      map[string][]sleeper_client.LeagueUser{},
		players:    testPlayers(),
	}
	app := NewApp(client, zerolog.Nop())

	leagues, err := app.ImportUserLeagues(context.Background(), "tester", "2025")
	if err != nil {
		t.Fatalf("ImportUserLeagues: %v", err)
	}
	if len(leagues) != 1 || leagues[0].LeagueID != "L2" {
		t.Fatalf("expected only the good league, got %+v", leagues)
	}
}

func TestImportUserLeaguesNoLeaguesFound(t *testing.T) {
	client := &fakeSleeperClient{
		user:    &sleeper_client.User{UserID: "u1", Username: "tester"},
		leagues: nil,
		players: testPlayers(),
	}
	app := NewApp(client, zerolog.Nop())

	_, err := app.ImportUserLeagues(context.Background(), "tester", "2025")
	if !errors.Is(err, ErrNoLeaguesFound) {
		t.Fatalf("expected ErrNoLeaguesFound, got %v", err)
	}
}

func TestImportUserLeaguesUserNotFound(t *testing.T) {
	client := &fakeSleeperClient{userErr: sleeper_client.ErrUserNotFound}
	app := NewApp(client, zerolog.Nop())

	_, err := app.ImportUserLeagues(context.Background(), "ghost", "2025")
	if !errors.Is(err, sleeper_client.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMapRosterPlayers(t *testing.T) {
	roster := MapRosterPlayers([]string{"4046", "5555", "SF", "xx123", "4034"}, testPlayers())

	if got := roster[models.PositionQB]; len(got) != 1 || got[0] != "Patrick Mahomes" {
		t.Errorf("QB bucket: %v", got)
	}
	// FLEX position falls back to fantasy-position hints
	if got := roster[models.PositionTE]; len(got) != 1 || got[0] != "Taysom Hill" {
		t.Errorf("TE bucket: %v", got)
	}
	if got := roster[models.PositionDEF]; len(got) != 1 || got[0] != "SF Defense" {
		t.Errorf("DEF bucket: %v", got)
	}
	if got := roster[models.PositionRB]; len(got) != 1 || got[0] != "Christian McCaffrey" {
		t.Errorf("RB bucket: %v", got)
	}
	if total := roster.TotalPlayers(); total != 4 {
		t.Errorf("unmapped id should be dropped, total = %d", total)
	}
}

func TestConvertPlayerIDsToNames(t *testing.T) {
	names := ConvertPlayerIDsToNames([]string{"4046", "DAL", "zz9"}, testPlayers())
	want := []string{"Patrick Mahomes", "DAL Defense", "Unknown Player (zz9)"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name %d: got %q, want %q", i, names[i], want[i])
		}
	}
}
