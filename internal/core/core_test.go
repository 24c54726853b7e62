package core

import (
	"testing"
	"time"
)

func TestGridIndexRoundTrip(t *testing.T) {
	g := NewGrid(7, 3)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			idx := g.Index(x, y)
			gx, gy := g.Coords(idx)
			if gx != x || gy != y {
				t.Fatalf("Coords(Index(%d,%d)) = (%d,%d)", x, y, gx, gy)
			}
		}
	}
	g.Fill(4)
	if got := g.At(6, 2); got != 4 {
		t.Fatalf("expected filled value 4, got %d", got)
	}
}

func TestNewGridClampsDimensions(t *testing.T) {
	g := NewGrid(0, -3)
	if g.W != 1 || g.H != 1 || len(g.Cells()) != 1 {
		t.Fatalf("expected 1x1 grid, got %dx%d with %d cells", g.W, g.H, len(g.Cells()))
	}
}

func TestSizeContains(t *testing.T) {
	s := Size{W: 4, H: 2}
	if !s.Contains(3, 1) {
		t.Fatal("expected (3,1) inside 4x2")
	}
	if s.Contains(4, 0) || s.Contains(0, 2) || s.Contains(-1, 0) {
		t.Fatal("expected out-of-range coordinates to be rejected")
	}
	if s.Area() != 8 {
		t.Fatalf("expected area 8, got %d", s.Area())
	}
}

func TestFixedStepAccumulates(t *testing.T) {
	clock := time.Unix(100, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }
	fs.accumulator = 0

	if fs.ShouldStep() {
		t.Fatal("first poll should only anchor the clock")
	}
	clock = clock.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("half a tick should not step")
	}
	clock = clock.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("expected a step once a full tick accumulated")
	}
	clock = clock.Add(time.Second)
	if got := fs.Due(3); got != 3 {
		t.Fatalf("expected catch-up capped at 3, got %d", got)
	}
	if got := fs.Due(3); got != 0 {
		t.Fatalf("expected capped backlog to be dropped, got %d", got)
	}
}

func TestParameterLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "Grid", Params: []Parameter{{Key: "w", Label: "Width", Value: "64"}}},
		{Name: "Run", Params: []Parameter{{Key: "backend", Label: "Backend", Value: "cpu"}}},
	}}
	p, ok := snap.Lookup("backend")
	if !ok || p.Value != "cpu" {
		t.Fatalf("expected backend=cpu, got %+v (ok=%v)", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("expected missing key to report false")
	}
}
