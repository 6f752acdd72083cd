package playerdir

import (
	"context"
	"fmt"
	"strings"

	"github.com/kchandnani/fntz/go/internal/models"
)

// Injuries returns every searchable player carrying an injury designation
func (a *App) Injuries(ctx context.Context) ([]models.InjuryData, error) {
	players, err := a.SearchablePlayers(ctx)
	if err != nil {
		return nil, err
	}

	injuries := make([]models.InjuryData, 0)
	for _, p := range players {
		if p.InjuryStatus == "" || p.InjuryStatus == "Healthy" {
			continue
		}
		injuries = append(injuries, models.InjuryData{
			PlayerID:     p.PlayerID,
			Name:         p.Name,
			Position:     p.Position,
			Team:         p.Team,
			InjuryStatus: p.InjuryStatus,
			InjuryNotes:  p.InjuryNotes,
		})
	}
	return injuries, nil
}

// CrossCheckInjuries intersects the injury list with a set of roster player
// names. Matching is case-insensitive on the full name.
func (a *App) CrossCheckInjuries(ctx context.Context, rosterNames []string) ([]models.InjuryData, error) {
	injuries, err := a.Injuries(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{}, len(rosterNames))
	for _, n := range rosterNames {
		names[strings.ToLower(n)] = struct{}{}
	}

	matched := make([]models.InjuryData, 0)
	for _, inj := range injuries {
		if _, ok := names[strings.ToLower(inj.Name)]; ok {
			matched = append(matched, inj)
		}
	}
	return matched, nil
}

// TrendingAdds joins the trending-adds feed against the full player list.
// Entries whose player ID is unknown are dropped.
func (a *App) TrendingAdds(ctx context.Context, limit int) ([]models.TrendingPlayer, error) {
	adds, err := a.client.GetTrendingAdds(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get trending adds: %w", err)
	}
	allPlayers, err := a.client.GetAllPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get trending adds: %w", err)
	}

	trending := make([]models.TrendingPlayer, 0, len(adds))
	for _, add := range adds {
		p, ok := allPlayers[add.PlayerID]
		if !ok {
			continue
		}
		name := p.FirstName + " " + p.LastName
		if p.Position == "DEF" {
			name = add.PlayerID + " Defense"
		}
		trending = append(trending, models.TrendingPlayer{
			PlayerID: add.PlayerID,
			Name:     name,
			Position: p.Position,
			Team:     p.Team,
			Count:    add.Count,
		})
	}
	return trending, nil
}

// FormatInjuryStatus maps a Sleeper injury designation to a display label
func FormatInjuryStatus(status string) string {
	switch status {
	case "IR":
		return "Injured Reserve"
	case "Out":
		return "Out"
	case "Doubtful":
		return "Doubtful"
	case "Questionable":
		return "Questionable"
	case "PUP":
		return "Physically Unable to Perform"
	case "Sus":
		return "Suspended"
	case "":
		return "Healthy"
	default:
		return status
	}
}
