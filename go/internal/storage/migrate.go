package storage

import (
	"encoding/json"

	"github.com/kchandnani/fntz/go/internal/models"
)

// legacyDocument is the pre-1.0 shape: flat position arrays at the root
// plus optionally a league list and username from a mixed-era document.
type legacyDocument struct {
	TeamName        string                   `json:"team_name,omitempty"`
	QB              []string                 `json:"QB,omitempty"`
	RB              []string                 `json:"RB,omitempty"`
	WR              []string                 `json:"WR,omitempty"`
	TE              []string                 `json:"TE,omitempty"`
	K               []string                 `json:"K,omitempty"`
	DEF             []string                 `json:"DEF,omitempty"`
	Leagues         []models.ProcessedLeague `json:"leagues,omitempty"`
	SleeperUsername string                   `json:"sleeperUsername,omitempty"`
}

// migrate converts a stale-version document to the current schema. The one
// recognized legacy shape (flat position arrays) becomes a single manual
// roster set as current; existing leagues and the username carry over. Any
// other shape yields a fresh empty document. Migration never fails outward.
func (r *Repository) migrate(raw []byte, old models.UserData) models.UserData {
	r.logger.Info().Str("from_version", old.Version).Msg("migrating user data")

	now := r.clock.Now()
	data := models.DefaultUserData(now)

	var legacy legacyDocument
	if err := json.Unmarshal(raw, &legacy); err != nil {
		r.logger.Warn().Err(err).Msg("unrecognized legacy document, starting fresh")
		return data
	}

	if len(legacy.QB) > 0 && len(legacy.RB) > 0 {
		teamName := legacy.TeamName
		if teamName == "" {
			teamName = "My Team"
		}
		data.ManualRosters = append(data.ManualRosters, models.ManualRoster{
			ID:       "legacy-roster",
			Name:     "Imported Roster",
			TeamName: teamName,
			Roster: models.RosterByPosition{
				models.PositionQB:  legacy.QB,
				models.PositionRB:  legacy.RB,
				models.PositionWR:  legacy.WR,
				models.PositionTE:  legacy.TE,
				models.PositionK:   legacy.K,
				models.PositionDEF: legacy.DEF,
			}.Normalize(),
			CreatedAt: now,
			UpdatedAt: now,
			Source:    models.LeagueSourceManual,
		})
		data.CurrentLeagueID = "legacy-roster"
	}

	if len(legacy.Leagues) > 0 {
		data.Leagues = legacy.Leagues
	}
	if legacy.SleeperUsername != "" {
		data.SleeperUsername = legacy.SleeperUsername
	}

	normalizeDocument(&data)
	return data
}
