//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the side panel to the right of the simulation view.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int
	lines      []Line

	pixel *ebiten.Image
}

// NewHUD constructs a HUD with the given panel width.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Width is the panel width in screen pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update replaces the panel contents.
func (h *HUD) Update(in PanelInput) {
	if h == nil {
		return
	}
	h.lines = PanelLines(in)
}

// Draw paints the panel at offsetX, height pixels tall.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawLines(height)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawLines(height int) {
	face := basicfont.Face7x13
	cols := (h.width - 2*panelPadding - swatchSize - swatchGap) / face.Advance
	y := panelPadding + lineBaseline
	for _, line := range h.lines {
		x := panelPadding
		if line.HasSwatch {
			h.drawSwatch(x, y-swatchSize, line.Swatch)
		}
		x += swatchSize + swatchGap
		for _, row := range Wrap(line.Text, cols) {
			if y > height-panelPadding {
				return
			}
			text.Draw(h.panel, row, face, x, y, toneColor(line.Tone))
			y += lineHeight
		}
		if line.Tone == ToneHeader {
			y += 4
		}
	}
}

func (h *HUD) drawSwatch(x, y int, c color.RGBA) {
	if h.pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(swatchSize, swatchSize)
	op.GeoM.Translate(float64(x), float64(y+2))
	op.ColorM.Scale(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1)
	h.panel.DrawImage(h.pixel, op)
}

func toneColor(t Tone) color.RGBA {
	switch t {
	case ToneHeader:
		return color.RGBA{R: 200, G: 200, B: 210, A: 255}
	case ToneDim:
		return color.RGBA{R: 160, G: 160, B: 170, A: 255}
	case ToneAlert:
		return color.RGBA{R: 250, G: 210, B: 90, A: 255}
	default:
		return color.RGBA{R: 220, G: 220, B: 230, A: 255}
	}
}

const (
	panelPadding = 12
	lineHeight   = 16
	lineBaseline = 13
	swatchSize   = 10
	swatchGap    = 6
)
