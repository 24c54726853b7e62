//go:build ebiten

package ui

import (
	"image/color"

	"pixelfight/internal/core"
	"pixelfight/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay highlights the frontier, every cell bordering another faction.
// The tint is premultiplied, as WritePixels expects.
type Overlay struct {
	size  core.Size
	scale int
	show  bool

	mask    []bool
	maskBuf []byte
	maskImg *ebiten.Image
}

// NewOverlay constructs a new overlay for a grid of the given size.
func NewOverlay(size core.Size, scale int) *Overlay {
	return &Overlay{size: size, scale: scale}
}

// Update toggles the frontier view on key 1.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.show = !o.show
	}
}

// Visible reports whether the overlay is drawn.
func (o *Overlay) Visible() bool { return o.show }

// Draw renders the frontier of cells onto screen.
func (o *Overlay) Draw(screen *ebiten.Image, cells []uint32) {
	if !o.show {
		return
	}
	total := o.size.Area()
	if total == 0 || len(cells) != total {
		return
	}
	if o.maskImg == nil {
		o.maskImg = ebiten.NewImage(o.size.W, o.size.H)
		o.maskBuf = make([]byte, 4*total)
		o.mask = make([]bool, total)
	}
	render.Frontier(o.mask, cells, o.size.W, o.size.H)
	render.FillMaskRGBA(o.maskBuf, o.mask, color.RGBA{R: 150, G: 150, B: 150, A: 150})
	o.maskImg.WritePixels(o.maskBuf)

	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}
