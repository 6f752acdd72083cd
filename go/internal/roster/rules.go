package roster

import (
	"errors"
	"fmt"

	"github.com/kchandnani/fntz/go/internal/models"
)

// Rule violations. Mutation errors wrap one of these sentinels so callers
// can branch with errors.Is while still getting a displayable message.
var (
	ErrDuplicatePlayer  = errors.New("player already on roster")
	ErrPositionFull     = errors.New("position is full")
	ErrRosterFull       = errors.New("roster is full")
	ErrPlayerNotFound   = errors.New("player not found on roster")
	ErrMinimumViolation = errors.New("position minimum violated")
	ErrInvalidPosition  = errors.New("invalid position")
)

// MutationResult is the outcome of an add or remove. Roster is always set;
// on a MinimumViolation rejection it reflects the attempted removal, so
// callers must gate on OK before applying it.
type MutationResult struct {
	OK     bool
	Err    error
	Roster models.RosterByPosition
}

// Validation is the outcome of a full roster check. Warnings never affect
// Valid.
type Validation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Stats summarizes a roster for display
type Stats struct {
	TotalPlayers   int                     `json:"total_players"`
	PositionCounts map[models.Position]int `json:"position_counts"`
	IsEmpty        bool                    `json:"is_empty"`
}

// AddPlayer appends name to the given position bucket, enforcing the
// duplicate, per-position max, and total-size rules. The input roster is
// never modified; on success the returned roster is a fresh copy.
func AddPlayer(r models.RosterByPosition, name string, position models.Position, limits Limits) MutationResult {
	r = r.Normalize()

	if !models.ValidPosition(position) {
		return MutationResult{Err: fmt.Errorf("%w: %s", ErrInvalidPosition, position), Roster: r.Clone()}
	}

	if r.Contains(name) {
		return MutationResult{
			Err:    fmt.Errorf("%w: %s is already on your roster", ErrDuplicatePlayer, name),
			Roster: r.Clone(),
		}
	}

	limit := limits.Positions[position]
	if len(r[position]) >= limit.Max {
		return MutationResult{
			Err:    fmt.Errorf("%w: cannot add more %ss, maximum allowed: %d", ErrPositionFull, position, limit.Max),
			Roster: r.Clone(),
		}
	}

	if r.TotalPlayers() >= limits.TotalMax {
		return MutationResult{
			Err:    fmt.Errorf("%w: maximum players allowed: %d", ErrRosterFull, limits.TotalMax),
			Roster: r.Clone(),
		}
	}

	next := r.Clone()
	next[position] = append(next[position], name)
	return MutationResult{OK: true, Roster: next}
}

// RemovePlayer removes the first exact match of name, scanning buckets in
// the fixed position order. A removal that would drop the bucket below its
// minimum is rejected, but the returned roster still reflects the attempted
// removal; callers must check OK before applying it.
func RemovePlayer(r models.RosterByPosition, name string, limits Limits) MutationResult {
	r = r.Normalize()
	next := r.Clone()

	var removedFrom models.Position
	found := false
	for _, pos := range models.Positions {
		for i, p := range r[pos] {
			if p == name {
				next[pos] = append(append([]string{}, r[pos][:i]...), r[pos][i+1:]...)
				removedFrom = pos
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	if !found {
		return MutationResult{
			Err:    fmt.Errorf("%w: %s", ErrPlayerNotFound, name),
			Roster: next,
		}
	}

	limit := limits.Positions[removedFrom]
	if len(next[removedFrom]) < limit.Min {
		return MutationResult{
			Err:    fmt.Errorf("%w: cannot remove %s, minimum %ss required: %d", ErrMinimumViolation, name, removedFrom, limit.Min),
			Roster: next,
		}
	}

	return MutationResult{OK: true, Roster: next}
}

// Validate checks the roster against the limit table. Each position below
// its minimum or above its maximum is an error; a position sitting exactly
// at its minimum is a depth warning. Total count above the cap is an error
// and below 10 is a fill-out warning.
func Validate(r models.RosterByPosition, limits Limits) Validation {
	r = r.Normalize()
	v := Validation{Errors: []string{}, Warnings: []string{}}

	for _, pos := range models.Positions {
		count := len(r[pos])
		limit := limits.Positions[pos]

		switch {
		case count < limit.Min:
			v.Errors = append(v.Errors, fmt.Sprintf("Not enough %ss: %d/%d minimum", pos, count, limit.Min))
		case count > limit.Max:
			v.Errors = append(v.Errors, fmt.Sprintf("Too many %ss: %d/%d maximum", pos, count, limit.Max))
		}

		if count == limit.Min {
			v.Warnings = append(v.Warnings, fmt.Sprintf("Consider adding more %ss for depth", pos))
		}
	}

	total := r.TotalPlayers()
	if total > limits.TotalMax {
		v.Errors = append(v.Errors, fmt.Sprintf("Roster too large: %d/%d maximum", total, limits.TotalMax))
	} else if total < 10 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("Consider filling out your roster (%d/%d)", total, limits.TotalMax))
	}

	v.Valid = len(v.Errors) == 0
	return v
}

// ComputeStats counts the roster for display
func ComputeStats(r models.RosterByPosition) Stats {
	r = r.Normalize()
	counts := make(map[models.Position]int, len(models.Positions))
	total := 0
	for _, pos := range models.Positions {
		counts[pos] = len(r[pos])
		total += len(r[pos])
	}
	return Stats{
		TotalPlayers:   total,
		PositionCounts: counts,
		IsEmpty:        total == 0,
	}
}
