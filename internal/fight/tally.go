package fight

import "sync/atomic"

// move transfers one cell from old to owner. Callers skip it when the owner
// did not change, so unchanged cells cost nothing.
func move(counts []uint64, old, owner uint32) {
	counts[old]--
	counts[owner]++
}

// moveAtomic is move for scans where many goroutines share counts.
func moveAtomic(counts []uint64, old, owner uint32) {
	atomic.AddUint64(&counts[old], ^uint64(0))
	atomic.AddUint64(&counts[owner], 1)
}

// recount rebuilds counts from cells. It reports the first id outside the
// roster, or -1.
func recount(counts []uint64, cells []uint32) int {
	clear(counts)
	limit := uint32(len(counts))
	for i, c := range cells {
		if c >= limit {
			return i
		}
		counts[c]++
	}
	return -1
}

func sum(counts []uint64) uint64 {
	var total uint64
	for _, c := range counts {
		total += c
	}
	return total
}
