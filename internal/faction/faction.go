// Package faction describes the participants of a fight: a display name and a
// colour. The simulation core only ever refers to factions by index.
package faction

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Faction is one participant of a fight.
type Faction struct {
	Name  string
	Color color.RGBA
}

// Hex returns the faction colour as #rrggbb.
func (f Faction) Hex() string {
	return HexOf(f.Color)
}

// HexOf formats an opaque colour as #rrggbb.
func HexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Parse builds a Faction from a name and a #rrggbb (or rrggbb) colour.
func Parse(name, hex string) (Faction, error) {
	hex = strings.TrimSpace(hex)
	if hex != "" && !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Faction{}, fmt.Errorf("faction %q: %w", name, err)
	}
	r, g, b := c.RGB255()
	return Faction{Name: strings.TrimSpace(name), Color: color.RGBA{R: r, G: g, B: b, A: 255}}, nil
}

// goldenAngle spaces successive default hues as far apart as possible.
const goldenAngle = 137.50776405003785

// Defaults returns n factions with distinct, deterministic colours. Names are
// left empty; see FillNames.
func Defaults(n int) []Faction {
	out := make([]Faction, n)
	for i := range out {
		hue := math.Mod(float64(i)*goldenAngle+20, 360)
		c := colorful.Hsv(hue, 0.75, 0.95)
		r, g, b := c.Clamped().RGB255()
		out[i] = Faction{Color: color.RGBA{R: r, G: g, B: b, A: 255}}
	}
	return out
}

// FillNames gives every unnamed faction its colour hex as a name.
func FillNames(factions []Faction) {
	for i := range factions {
		if strings.TrimSpace(factions[i].Name) == "" {
			factions[i].Name = factions[i].Hex()
		}
	}
}

// Palette maps faction index to its colour.
func Palette(factions []Faction) []color.RGBA {
	palette := make([]color.RGBA, len(factions))
	for i, f := range factions {
		palette[i] = f.Color
	}
	return palette
}

// Nearest returns the index of the faction whose colour is closest to c in
// CIE-Lab space. It returns -1 for an empty roster.
func Nearest(factions []Faction, c color.Color) int {
	target, ok := colorful.MakeColor(c)
	if !ok {
		// Fully transparent pixels carry no hue; treat them as black.
		target = colorful.Color{}
	}
	best := -1
	bestDist := math.Inf(1)
	for i, f := range factions {
		fc, _ := colorful.MakeColor(f.Color)
		if d := target.DistanceLab(fc); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
