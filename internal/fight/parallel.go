package fight

import (
	"runtime"

	"pixelfight/internal/rng"
)

// parallel computes every cell independently on a goroutine pool. Rows are
// dealt round robin to workers; each cell's draw comes from a stateless hash
// of its coordinates and the step seed, and count changes go through atomics.
type parallel struct {
	workers int
	pool    *pool
}

func newParallel(workers, rows int) *parallel {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > rows {
		workers = rows
	}
	return &parallel{workers: workers, pool: newPool(workers)}
}

func (b *parallel) Name() string { return BackendParallel }

func (b *parallel) Reset(*State, int64) error { return nil }

func (b *parallel) Step(st *State, seed uint64) error {
	cur := st.Current()
	cells := cur.Cells()
	next := st.Next().Cells()
	counts := st.Counts()
	w, h := cur.W, cur.H
	stepSeed := rng.StepSeed(seed, st.Iteration())
	stride := b.workers

	b.pool.run(func(worker int) {
		var neighbors [8]uint32
		for y := worker; y < h; y += stride {
			row := y * w
			for x := 0; x < w; x++ {
				n := gatherNeighbors(cells, w, h, x, y, &neighbors)
				owner := neighbors[rng.Pick(rng.Hash(stepSeed, x, y, w), n)]
				old := cells[row+x]
				next[row+x] = owner
				if owner != old {
					moveAtomic(counts, old, owner)
				}
			}
		}
	})
	return nil
}

func (b *parallel) Close() error {
	b.pool.close()
	return nil
}
