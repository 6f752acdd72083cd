package models

// Position is one of the six fantasy roster buckets
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDEF Position = "DEF"
)

// Positions is the closed position set in its fixed declared order.
// Removal scans and validation reports follow this order.
var Positions = []Position{
	PositionQB,
	PositionRB,
	PositionWR,
	PositionTE,
	PositionK,
	PositionDEF,
}

// ValidPosition reports whether p is one of the six roster buckets
func ValidPosition(p Position) bool {
	for _, pos := range Positions {
		if pos == p {
			return true
		}
	}
	return false
}

// RosterByPosition maps each position bucket to an ordered list of player
// names. Insertion order is display order. Every bucket key is always
// present; use NewRoster or Normalize to guarantee that.
type RosterByPosition map[Position][]string

// NewRoster returns a roster with all six buckets present and empty
func NewRoster() RosterByPosition {
	r := make(RosterByPosition, len(Positions))
	for _, pos := range Positions {
		r[pos] = []string{}
	}
	return r
}

// Normalize fills in any missing buckets with empty lists
func (r RosterByPosition) Normalize() RosterByPosition {
	if r == nil {
		return NewRoster()
	}
	for _, pos := range Positions {
		if r[pos] == nil {
			r[pos] = []string{}
		}
	}
	return r
}

// Clone returns a deep copy of the roster
func (r RosterByPosition) Clone() RosterByPosition {
	out := make(RosterByPosition, len(Positions))
	for _, pos := range Positions {
		out[pos] = append([]string{}, r[pos]...)
	}
	return out
}

// AllPlayers flattens the roster into a single name list in position order
func (r RosterByPosition) AllPlayers() []string {
	var all []string
	for _, pos := range Positions {
		all = append(all, r[pos]...)
	}
	return all
}

// TotalPlayers returns the total player count across all buckets
func (r RosterByPosition) TotalPlayers() int {
	total := 0
	for _, pos := range Positions {
		total += len(r[pos])
	}
	return total
}

// Contains reports whether name appears in any bucket (exact match)
func (r RosterByPosition) Contains(name string) bool {
	for _, pos := range Positions {
		for _, p := range r[pos] {
			if p == name {
				return true
			}
		}
	}
	return false
}
