package rng

// Mixing constants for the cell hash. 2654435769 is the 32-bit golden ratio
// multiplier; the xor key decorrelates seed zero.
const (
	hashKey  uint32 = 2747636419
	hashMult uint32 = 2654435769
)

// Hash returns a pseudo-random value for cell (x, y) of a grid of the given
// width under the per-step seed. It keeps no state, so any number of
// goroutines (or GPU work items) may call it at once.
func Hash(seed uint32, x, y, width int) uint32 {
	v := seed + uint32(x) + uint32(y)*uint32(width)
	v ^= hashKey
	v *= hashMult
	v ^= v >> 16
	v *= hashMult
	v ^= v >> 16
	v *= hashMult
	return v
}

// Pick maps a hash onto [0, n). n must be in [1, 8]; the modulo bias over a
// 32-bit hash is below 2e-9.
func Pick(h uint32, n int) int {
	return int(h % uint32(n))
}

// StepSeed folds a 64-bit draw from a Sequential source and the generation
// number into the 32-bit seed handed to Hash for one step.
func StepSeed(draw uint64, generation uint64) uint32 {
	v := draw ^ (generation * 0x9e3779b97f4a7c15)
	return uint32(v) ^ uint32(v>>32)
}
