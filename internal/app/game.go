//go:build ebiten

package app

import (
	"log"
	"time"

	"pixelfight/internal/chronicle"
	"pixelfight/internal/core"
	"pixelfight/internal/fight"
	"pixelfight/internal/render"
	"pixelfight/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	hudWidth         = 240
	maxStepsPerFrame = 64
	doubleClick      = 300 * time.Millisecond
)

// Game adapts a fight simulation to the ebiten.Game interface.
type Game struct {
	sim     *fight.Simulation
	tracker *chronicle.Tracker
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	clock   *core.FixedStep
	logger  *log.Logger

	scale     int
	paused    bool
	tickOnce  bool
	pending   <-chan error
	status    string
	lastClick time.Time
}

// New constructs a Game for the provided simulation. The tracker must already
// observe sim.
func New(sim *fight.Simulation, tracker *chronicle.Tracker, scale, tps int, logger *log.Logger) *Game {
	if scale <= 0 {
		scale = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	size := sim.Size()
	return &Game{
		sim:     sim,
		tracker: tracker,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(hudWidth),
		overlay: ui.NewOverlay(size, scale),
		clock:   core.NewFixedStep(tps),
		logger:  logger,
		scale:   scale,
		paused:  true,
	}
}

// Reset returns the fight to its initial layout.
func (g *Game) Reset() {
	g.wait()
	if err := g.sim.Reset(); err != nil {
		g.fail(err)
		return
	}
	g.status = ""
	g.paused = true
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.wait()
		return ebiten.Termination
	}
	g.collect()

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.clock.SetTPS(g.clock.TPS() * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.clock.SetTPS(max(1, g.clock.TPS()/2))
	}
	g.handleClick()
	g.overlay.Update()

	if g.tracker.Over() {
		g.paused = true
	}
	switch {
	case g.pending != nil:
	case g.paused && g.tickOnce:
		g.tickOnce = false
		g.pending = g.sim.StepAsync()
	case g.paused:
		g.clock.Due(1)
	default:
		if due := g.clock.Due(maxStepsPerFrame); due > 0 {
			g.advance(due)
		}
	}

	g.hud.Update(ui.PanelInput{
		Snapshot:  g.sim.Snapshot(),
		Events:    g.tracker.Events(),
		Params:    g.sim.Parameters(),
		Status:    g.status,
		TPS:       g.clock.TPS(),
		Paused:    g.paused,
		MaxEvents: 12,
	})
	return nil
}

// handleClick steps once on a click while paused; a double click starts or
// stops the run.
func (g *Game) handleClick() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	size := g.sim.Size()
	if mx < 0 || my < 0 || mx >= size.W*g.scale || my >= size.H*g.scale {
		return
	}
	now := time.Now()
	if now.Sub(g.lastClick) < doubleClick {
		g.lastClick = time.Time{}
		g.toggle()
		return
	}
	g.lastClick = now
	if g.paused {
		g.tickOnce = true
	}
}

func (g *Game) toggle() {
	if g.tracker.Over() {
		return
	}
	g.paused = !g.paused
}

// advance runs n steps; the last one completes in the background while the
// frame is drawn.
func (g *Game) advance(n int) {
	for i := 0; i < n-1; i++ {
		if err := g.sim.Step(); err != nil {
			g.fail(err)
			return
		}
		if g.tracker.Over() {
			return
		}
	}
	g.pending = g.sim.StepAsync()
}

func (g *Game) collect() {
	if g.pending == nil {
		return
	}
	select {
	case err := <-g.pending:
		g.pending = nil
		if err != nil {
			g.fail(err)
		}
	default:
	}
}

func (g *Game) wait() {
	if g.pending == nil {
		return
	}
	if err := <-g.pending; err != nil {
		g.fail(err)
	}
	g.pending = nil
}

func (g *Game) fail(err error) {
	g.logger.Printf("pixelfight: %v", err)
	g.status = err.Error()
	g.paused = true
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.RenderTarget(), g.scale)
	if g.overlay.Visible() {
		g.overlay.Draw(screen, g.sim.Cells())
	}
	size := g.sim.Size()
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
