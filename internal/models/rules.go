package models

// RosterRules describes roster legality for a room: dedicated slots per
// position, a flex bucket open to the listed positions, and bench slots open
// to any position.
type RosterRules struct {
	Slots         map[Position]int `json:"slots" yaml:"slots"`
	FlexSlots     int              `json:"flex_slots" yaml:"flex_slots"`
	FlexPositions []Position       `json:"flex_positions" yaml:"flex_positions"`
	BenchSlots    int              `json:"bench_slots" yaml:"bench_slots"`
}

// TotalSlots returns the full roster capacity under these rules.
func (r RosterRules) TotalSlots() int {
	total := r.FlexSlots + r.BenchSlots
	for _, n := range r.Slots {
		total += n
	}
	return total
}

// FlexEligible reports whether the position may occupy a flex slot.
func (r RosterRules) FlexEligible(pos Position) bool {
	for _, p := range r.FlexPositions {
		if p == pos {
			return true
		}
	}
	return false
}
