package models

import "time"

// SchemaVersion is the persisted document version tag. Load migrates any
// document whose version differs from this.
const SchemaVersion = "1.0"

// UserData is the whole persisted document. It is serialized as a single
// JSON blob and written wholesale on every save; last writer wins.
type UserData struct {
	Version         string            `json:"version"`
	LastUpdated     time.Time         `json:"lastUpdated"`
	CurrentLeagueID string            `json:"currentLeagueId,omitempty"`
	SleeperUsername string            `json:"sleeperUsername,omitempty"`
	Leagues         []ProcessedLeague `json:"leagues"`
	ManualRosters   []ManualRoster    `json:"manualRosters"`
}

// DefaultUserData returns a fresh empty document stamped at now
func DefaultUserData(now time.Time) UserData {
	return UserData{
		Version:       SchemaVersion,
		LastUpdated:   now,
		Leagues:       []ProcessedLeague{},
		ManualRosters: []ManualRoster{},
	}
}

// HasAnyLeagues reports whether either collection is non-empty
func (d UserData) HasAnyLeagues() bool {
	return len(d.Leagues) > 0 || len(d.ManualRosters) > 0
}

// FindLeague returns the imported league with the given id, if any
func (d UserData) FindLeague(id string) (ProcessedLeague, bool) {
	for _, l := range d.Leagues {
		if l.LeagueID == id {
			return l, true
		}
	}
	return ProcessedLeague{}, false
}

// FindManualRoster returns the manual roster with the given id, if any
func (d UserData) FindManualRoster(id string) (ManualRoster, bool) {
	for _, r := range d.ManualRosters {
		if r.ID == id {
			return r, true
		}
	}
	return ManualRoster{}, false
}
