package fight

import (
	"fmt"
	"strconv"

	"pixelfight/internal/core"
	"pixelfight/internal/faction"
)

// State is the double-buffered ownership grid plus the live per-faction
// counts. Exactly one buffer is authoritative at a time; backends read it,
// write the other one, and the engine flips active afterwards.
type State struct {
	bufs      [2]*core.Grid
	active    int
	counts    []uint64
	factions  int
	iteration uint64
}

func newState(w, h, factions int) *State {
	return &State{
		bufs:     [2]*core.Grid{core.NewGrid(w, h), core.NewGrid(w, h)},
		counts:   make([]uint64, factions),
		factions: factions,
	}
}

// Size returns the grid dimensions.
func (s *State) Size() core.Size { return s.bufs[0].Size() }

// Current is the authoritative buffer of the last completed step.
func (s *State) Current() *core.Grid { return s.bufs[s.active] }

// Next is the buffer the running step writes into.
func (s *State) Next() *core.Grid { return s.bufs[1-s.active] }

// Counts is the live count vector. Backends update it in place.
func (s *State) Counts() []uint64 { return s.counts }

// Iteration is the number of completed steps since the last reset.
func (s *State) Iteration() uint64 { return s.iteration }

// swap promotes Next to Current and advances the iteration counter.
func (s *State) swap() {
	s.active = 1 - s.active
	s.iteration++
}

// populate runs pop over every cell in row-major order, mirrors the result
// into both buffers and recounts from scratch.
func (s *State) populate(pop Populator, roster []faction.Faction) error {
	cur := s.bufs[0]
	cells := cur.Cells()
	w, h := cur.W, cur.H
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			owner := pop(PixelInfo{
				X:        x,
				Y:        y,
				U:        (float64(x) + 0.5) / float64(w),
				V:        (float64(y) + 0.5) / float64(h),
				Index:    idx,
				Factions: roster,
			})
			if owner < 0 || owner >= s.factions {
				return &ConfigError{
					Field:  "populator",
					Reason: fmt.Sprintf("cell (%d,%d) assigned faction %d, roster has %d", x, y, owner, s.factions),
				}
			}
			cells[idx] = uint32(owner)
		}
	}
	s.bufs[1].CopyFrom(cur)
	s.active = 0
	s.iteration = 0
	recount(s.counts, cells)
	return nil
}

// verify checks the count vector against the cell total and, when full is
// set, every owner id in the active buffer.
func (s *State) verify(full bool) error {
	total := uint64(s.Size().Area())
	for f, c := range s.counts {
		// A decrement below zero wraps and can still sum to the total.
		if c > total {
			return &InvariantError{Iteration: s.iteration, Detail: fmt.Sprintf("faction %d count %d exceeds %d cells", f, c, total)}
		}
	}
	if got := sum(s.counts); got != total {
		return &InvariantError{Iteration: s.iteration, Detail: "counts sum to " + strconv.FormatUint(got, 10) + ", grid has " + strconv.FormatUint(total, 10) + " cells"}
	}
	if !full {
		return nil
	}
	limit := uint32(s.factions)
	for i, c := range s.Current().Cells() {
		if c >= limit {
			x, y := s.Current().Coords(i)
			return &InvariantError{Iteration: s.iteration, Detail: fmt.Sprintf("cell (%d,%d) owned by %d, roster has %d", x, y, c, s.factions)}
		}
	}
	return nil
}
