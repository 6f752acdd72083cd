package roster

import "github.com/kchandnani/fntz/go/internal/models"

// PositionLimit is the allowed count range for one position bucket
type PositionLimit struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Limits is the per-position count configuration plus the global cap.
// Supplied by the caller; DefaultLimits is the built-in table.
type Limits struct {
	Positions map[models.Position]PositionLimit `json:"positions" yaml:"positions"`
	TotalMax  int                               `json:"total_max" yaml:"total_max"`
}

// DefaultLimits returns the built-in limit table
func DefaultLimits() Limits {
	return Limits{
		Positions: map[models.Position]PositionLimit{
			models.PositionQB:  {Min: 1, Max: 4},
			models.PositionRB:  {Min: 2, Max: 8},
			models.PositionWR:  {Min: 2, Max: 8},
			models.PositionTE:  {Min: 1, Max: 4},
			models.PositionK:   {Min: 1, Max: 2},
			models.PositionDEF: {Min: 1, Max: 2},
		},
		TotalMax: 16,
	}
}

// SuggestedComposition is the starter roster shape recommended to new
// users: starters plus depth at the skill positions.
func SuggestedComposition() map[models.Position]int {
	return map[models.Position]int{
		models.PositionQB:  2,
		models.PositionRB:  4,
		models.PositionWR:  4,
		models.PositionTE:  2,
		models.PositionK:   1,
		models.PositionDEF: 1,
	}
}
