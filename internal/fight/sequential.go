package fight

import "pixelfight/internal/rng"

// sequential scans the grid row by row on the caller's goroutine, advancing
// one shared generator per cell.
type sequential struct {
	rng *rng.Sequential
}

func newSequential() *sequential {
	return &sequential{rng: rng.NewSequential(0)}
}

func (b *sequential) Name() string { return BackendCPU }

func (b *sequential) Reset(_ *State, seed int64) error {
	b.rng = rng.NewSequential(seed)
	return nil
}

func (b *sequential) Step(st *State, _ uint64) error {
	cur := st.Current()
	cells := cur.Cells()
	next := st.Next().Cells()
	counts := st.Counts()
	w, h := cur.W, cur.H

	var neighbors [8]uint32
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := gatherNeighbors(cells, w, h, x, y, &neighbors)
			owner := neighbors[b.rng.IntN(n)]
			idx := y*w + x
			old := cells[idx]
			next[idx] = owner
			if owner != old {
				move(counts, old, owner)
			}
		}
	}
	return nil
}

func (b *sequential) Close() error { return nil }
