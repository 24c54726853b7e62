// Package term is a terminal viewer for a running fight. The grid is drawn
// with half-block glyphs, two grid rows per terminal row, beside a panel
// with the scoreboard and event log.
package term

import (
	"context"
	"image/color"
	"log"
	"time"

	"pixelfight/internal/chronicle"
	"pixelfight/internal/core"
	"pixelfight/internal/fight"
	"pixelfight/internal/ui"

	"github.com/gdamore/tcell/v2"
)

const (
	sidebarWidth  = 34
	frameInterval = 16 * time.Millisecond
	maxStepsTick  = 256
	halfBlock     = '▀'
)

type action int

const (
	actionNone action = iota
	actionQuit
	actionToggle
	actionStep
	actionReset
	actionFaster
	actionSlower
)

// Viewer drives a simulation from a tcell screen.
type Viewer struct {
	screen  tcell.Screen
	sim     *fight.Simulation
	tracker *chronicle.Tracker
	clock   *core.FixedStep
	logger  *log.Logger

	palette []tcell.Color
	paused  bool
	status  string
}

// New creates a viewer. The tracker must already observe sim.
func New(screen tcell.Screen, sim *fight.Simulation, tracker *chronicle.Tracker, tps int, logger *log.Logger) *Viewer {
	if logger == nil {
		logger = log.Default()
	}
	factions := sim.Factions()
	palette := make([]tcell.Color, len(factions))
	for i, f := range factions {
		palette[i] = rgb(f.Color)
	}
	return &Viewer{
		screen:  screen,
		sim:     sim,
		tracker: tracker,
		clock:   core.NewFixedStep(tps),
		logger:  logger,
		palette: palette,
		paused:  true,
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Run processes input and advances the fight until ctx ends or the user
// quits. The screen must already be initialised.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if v.apply(actionFor(ev)) {
				return nil
			}
			v.Draw()
		case <-ticker.C:
			v.Tick()
			v.Draw()
		}
	}
}

func actionFor(ev tcell.Event) action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return actionQuit
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return actionQuit
			case ' ':
				return actionToggle
			case 'n':
				return actionStep
			case 'r':
				return actionReset
			case '+', '=':
				return actionFaster
			case '-':
				return actionSlower
			}
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			return actionStep
		}
	case *tcell.EventResize:
		// Draw follows every event.
	}
	return actionNone
}

// apply performs a user action and reports whether the viewer should exit.
func (v *Viewer) apply(a action) bool {
	switch a {
	case actionQuit:
		return true
	case actionToggle:
		if !v.tracker.Over() {
			v.paused = !v.paused
		}
	case actionStep:
		if v.paused {
			v.step(1)
		}
	case actionReset:
		if err := v.sim.Reset(); err != nil {
			v.fail(err)
			return false
		}
		v.status = ""
		v.paused = true
	case actionFaster:
		v.clock.SetTPS(v.clock.TPS() * 2)
	case actionSlower:
		v.clock.SetTPS(max(1, v.clock.TPS()/2))
	}
	return false
}

// Tick advances the fight by however many steps are due.
func (v *Viewer) Tick() {
	if v.paused {
		v.clock.Due(1)
		return
	}
	v.step(v.clock.Due(maxStepsTick))
}

func (v *Viewer) step(n int) {
	for i := 0; i < n; i++ {
		if err := v.sim.Step(); err != nil {
			v.fail(err)
			return
		}
		if v.tracker.Over() {
			v.paused = true
			return
		}
	}
}

func (v *Viewer) fail(err error) {
	v.logger.Printf("pixelfight-term: %v", err)
	v.status = err.Error()
	v.paused = true
}

// Draw repaints the whole screen.
func (v *Viewer) Draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	gridCols := max(cols-sidebarWidth, 1)
	v.drawGrid(gridCols, rows)
	v.drawSidebar(gridCols+1, cols, rows)
	v.screen.Show()
}

// drawGrid renders the grid into the top-left cols x rows cells, sampling
// every s-th grid cell when the grid does not fit.
func (v *Viewer) drawGrid(cols, rows int) {
	size := v.sim.Size()
	cells := v.sim.Cells()
	s := gridStride(size, cols, rows)
	for cy := 0; cy < rows; cy++ {
		top := 2 * cy * s
		bottom := (2*cy + 1) * s
		if top >= size.H {
			return
		}
		for cx := 0; cx < cols; cx++ {
			x := cx * s
			if x >= size.W {
				break
			}
			style := tcell.StyleDefault.Foreground(v.color(cells[top*size.W+x]))
			if bottom < size.H {
				style = style.Background(v.color(cells[bottom*size.W+x]))
			}
			v.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
}

// gridStride is the smallest sampling step that fits the grid into cols x
// rows half-block cells.
func gridStride(size core.Size, cols, rows int) int {
	s := 1
	if cols > 0 {
		s = max(s, (size.W+cols-1)/cols)
	}
	if rows > 0 {
		s = max(s, (size.H+2*rows-1)/(2*rows))
	}
	return s
}

func (v *Viewer) color(owner uint32) tcell.Color {
	if int(owner) < len(v.palette) {
		return v.palette[owner]
	}
	return tcell.ColorDefault
}

func (v *Viewer) drawSidebar(left, right, rows int) {
	width := right - left - 1
	if width <= 0 {
		return
	}
	lines := ui.PanelLines(ui.PanelInput{
		Snapshot:  v.sim.Snapshot(),
		Events:    v.tracker.Events(),
		Params:    v.sim.Parameters(),
		Status:    v.status,
		TPS:       v.clock.TPS(),
		Paused:    v.paused,
		MaxEvents: 8,
	})
	y := 0
	for _, line := range lines {
		x := left
		if line.HasSwatch {
			v.screen.SetContent(x, y, '█', nil, tcell.StyleDefault.Foreground(rgb(line.Swatch)))
		}
		x += 2
		for _, row := range ui.Wrap(line.Text, width-2) {
			if y >= rows {
				return
			}
			putString(v.screen, x, y, row, toneStyle(line.Tone))
			y++
		}
	}
}

func toneStyle(t ui.Tone) tcell.Style {
	switch t {
	case ui.ToneHeader:
		return tcell.StyleDefault.Bold(true)
	case ui.ToneDim:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case ui.ToneAlert:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	default:
		return tcell.StyleDefault
	}
}

func putString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
