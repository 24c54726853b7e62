package fight

import "pixelfight/internal/faction"

// Snapshot is the state a consumer sees between steps. Counts is a private
// copy; Factions is shared and must not be modified.
type Snapshot struct {
	Iteration uint64
	Factions  []faction.Faction
	Counts    []uint64
}

// Total is the number of cells on the grid.
func (s Snapshot) Total() uint64 { return sum(s.Counts) }

// Eliminated reports whether faction f owns no cells.
func (s Snapshot) Eliminated(f int) bool { return s.Counts[f] == 0 }

// Alive counts the factions still owning at least one cell.
func (s Snapshot) Alive() int {
	n := 0
	for _, c := range s.Counts {
		if c > 0 {
			n++
		}
	}
	return n
}

// Leader returns the surviving faction with the most cells. Ties go to the
// lowest index: a later faction only takes the lead with a strictly greater
// count. It returns -1 when no faction owns anything.
func (s Snapshot) Leader() int {
	leader := -1
	for i, c := range s.Counts {
		if c == 0 {
			continue
		}
		if leader < 0 || c > s.Counts[leader] {
			leader = i
		}
	}
	return leader
}

// Winner returns the last surviving faction once only one remains.
func (s Snapshot) Winner() (int, bool) {
	if s.Alive() != 1 {
		return -1, false
	}
	return s.Leader(), true
}
