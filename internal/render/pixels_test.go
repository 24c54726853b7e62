package render

import (
	"image/color"
	"slices"
	"testing"
)

func TestFillPaletteRGBA(t *testing.T) {
	palette := []color.RGBA{{R: 10, A: 255}, {G: 20, A: 255}}
	cells := []uint32{0, 1, 7}
	buf := make([]byte, len(cells)*4)
	FillPaletteRGBA(buf, cells, palette)

	want := []byte{10, 0, 0, 255, 0, 20, 0, 255, 0, 20, 0, 255}
	if !slices.Equal(buf, want) {
		t.Fatalf("got %v, want %v", buf, want)
	}
}

func TestFillPaletteRGBAEmptyPaletteClears(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	FillPaletteRGBA(buf, []uint32{0, 0}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not cleared: %d", i, b)
		}
	}
}

func TestPaintTarget(t *testing.T) {
	dst := NewTarget(2, 1)
	Paint(dst, []uint32{1, 0}, []color.RGBA{{R: 1, A: 255}, {B: 2, A: 255}})
	if got := dst.RGBAAt(0, 0); got != (color.RGBA{B: 2, A: 255}) {
		t.Fatalf("unexpected pixel (0,0): %+v", got)
	}
	if got := dst.RGBAAt(1, 0); got != (color.RGBA{R: 1, A: 255}) {
		t.Fatalf("unexpected pixel (1,0): %+v", got)
	}
}

func TestFrontier(t *testing.T) {
	// 4x3 grid split down the middle.
	cells := []uint32{
		0, 0, 1, 1,
		0, 0, 1, 1,
		0, 0, 1, 1,
	}
	mask := make([]bool, len(cells))
	Frontier(mask, cells, 4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			want := x == 1 || x == 2
			if mask[y*4+x] != want {
				t.Fatalf("cell (%d,%d) frontier=%v, want %v", x, y, mask[y*4+x], want)
			}
		}
	}
}

func TestFillMaskRGBA(t *testing.T) {
	buf := []byte{9, 9, 9, 9, 9, 9, 9, 9}
	FillMaskRGBA(buf, []bool{false, true}, color.RGBA{R: 1, G: 2, B: 3, A: 4})
	want := []byte{0, 0, 0, 0, 1, 2, 3, 4}
	if !slices.Equal(buf, want) {
		t.Fatalf("got %v, want %v", buf, want)
	}
}
