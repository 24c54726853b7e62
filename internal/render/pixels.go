package render

import (
	"image"
	"image/color"
)

// FillPaletteRGBA converts faction ids into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Ids past
// the end of the palette take its last colour.
func FillPaletteRGBA(buf []byte, cells []uint32, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}

	last := uint32(len(palette) - 1)
	for i, c := range cells {
		if c > last {
			c = last
		}
		base := i * 4
		col := palette[c]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// NewTarget allocates an RGBA image sized for a w*h grid.
func NewTarget(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// Paint refreshes dst from cells. dst must cover exactly len(cells) pixels.
func Paint(dst *image.RGBA, cells []uint32, palette []color.RGBA) {
	if dst == nil || len(dst.Pix) < len(cells)*4 {
		return
	}
	FillPaletteRGBA(dst.Pix, cells, palette)
}

// Frontier marks every cell that has at least one Moore neighbour owned by a
// different faction. mask must have len(cells) entries.
func Frontier(mask []bool, cells []uint32, w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			own := cells[idx]
			edge := false
			for dy := -1; dy <= 1 && !edge; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := x + dx
					if nx < 0 || nx >= w || (dx == 0 && dy == 0) {
						continue
					}
					if cells[ny*w+nx] != own {
						edge = true
						break
					}
				}
			}
			mask[idx] = edge
		}
	}
}

// FillMaskRGBA writes tint into buf for every set entry of mask and clears
// the rest to transparent.
func FillMaskRGBA(buf []byte, mask []bool, tint color.RGBA) {
	for i, on := range mask {
		base := i * 4
		if !on {
			buf[base+0], buf[base+1], buf[base+2], buf[base+3] = 0, 0, 0, 0
			continue
		}
		buf[base+0] = tint.R
		buf[base+1] = tint.G
		buf[base+2] = tint.B
		buf[base+3] = tint.A
	}
}
