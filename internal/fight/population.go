package fight

import (
	"image"
	"math"

	"pixelfight/internal/faction"
	"pixelfight/internal/rng"
)

// PixelInfo is what a Populator sees for each cell.
type PixelInfo struct {
	X, Y int
	// U and V are the cell centre normalised to [0,1].
	U, V     float64
	Index    int
	Factions []faction.Faction
}

// Populator returns the initial owner of a cell. The result must lie in
// [0, len(info.Factions)); anything else makes Reset fail.
type Populator func(info PixelInfo) int

// Pinwheel splits the grid into equal angular sectors around its centre, one
// per faction, so every faction starts with a slice of the pie.
func Pinwheel(info PixelInfo, width, height int) int {
	n := len(info.Factions)
	angle := math.Atan2(float64(width)/2-float64(info.X)-0.5, float64(height)/2-float64(info.Y)-0.5) * 180 / math.Pi
	for angle < 0 {
		angle += 360
	}
	owner := int(math.Floor((360 - angle) / (360 / float64(n))))
	// angle 0 lands exactly on the seam and would produce n.
	if owner >= n {
		owner = n - 1
	}
	return owner
}

// PinwheelFor binds Pinwheel to a grid size.
func PinwheelFor(width, height int) Populator {
	return func(info PixelInfo) int { return Pinwheel(info, width, height) }
}

// ImagePopulator samples img at each cell centre and assigns the faction
// whose colour is closest. The image is stretched over the whole grid.
func ImagePopulator(img image.Image) Populator {
	b := img.Bounds()
	return func(info PixelInfo) int {
		px := b.Min.X + int(info.U*float64(b.Dx()))
		py := b.Min.Y + int(info.V*float64(b.Dy()))
		if px >= b.Max.X {
			px = b.Max.X - 1
		}
		if py >= b.Max.Y {
			py = b.Max.Y - 1
		}
		return faction.Nearest(info.Factions, img.At(px, py))
	}
}

// Uniform assigns each cell an independent, uniformly random owner. The same
// seed always yields the same layout.
func Uniform(seed int64) Populator {
	var src *rng.Sequential
	return func(info PixelInfo) int {
		if info.Index == 0 || src == nil {
			src = rng.NewSequential(seed)
		}
		return src.IntN(len(info.Factions))
	}
}
