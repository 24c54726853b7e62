package ui

import (
	"fmt"
	"image/color"
	"strconv"

	"pixelfight/internal/chronicle"
	"pixelfight/internal/core"
	"pixelfight/internal/fight"
)

// Tone selects how a panel line is emphasised.
type Tone int

const (
	ToneNormal Tone = iota
	ToneHeader
	ToneDim
	ToneAlert
)

// Line is one row of the side panel. Both the window HUD and the terminal
// viewer lay out the same lines.
type Line struct {
	Text      string
	Tone      Tone
	Swatch    color.RGBA
	HasSwatch bool
}

// PanelInput is everything the side panel shows.
type PanelInput struct {
	Snapshot fight.Snapshot
	Events   []chronicle.Event
	Params   core.ParameterSnapshot
	Status   string
	TPS      int
	Paused   bool
	// MaxEvents bounds the event log; zero shows all of them.
	MaxEvents int
}

// PanelLines builds the side panel: run stats, the per-faction scoreboard and
// the most recent events, newest first.
func PanelLines(in PanelInput) []Line {
	snap := in.Snapshot
	lines := []Line{{Text: "Pixel Fight", Tone: ToneHeader}}

	state := fmt.Sprintf("running @ %d tps", in.TPS)
	if in.Paused {
		state = "paused"
	}
	lines = append(lines,
		Line{Text: "Iteration " + strconv.FormatUint(snap.Iteration, 10)},
		Line{Text: fmt.Sprintf("Alive %d/%d", snap.Alive(), len(snap.Counts))},
	)
	if leader := snap.Leader(); leader >= 0 && leader < len(snap.Factions) {
		lines = append(lines, Line{Text: "Lead " + snap.Factions[leader].Name, Swatch: snap.Factions[leader].Color, HasSwatch: true})
	}
	if p, ok := in.Params.Lookup("backend"); ok {
		backend := p.Value
		if dev, ok := in.Params.Lookup("device"); ok {
			backend += " (" + dev.Value + ")"
		}
		lines = append(lines, Line{Text: "Backend " + backend, Tone: ToneDim})
	}
	if p, ok := in.Params.Lookup("cells"); ok {
		lines = append(lines, Line{Text: "Pixels " + p.Value, Tone: ToneDim})
	}
	lines = append(lines, Line{Text: state, Tone: ToneDim})
	if in.Status != "" {
		lines = append(lines, Line{Text: in.Status, Tone: ToneAlert})
	}

	lines = append(lines, Line{}, Line{Text: "Factions", Tone: ToneHeader})
	for f, c := range snap.Counts {
		if c == 0 {
			continue
		}
		name := fmt.Sprintf("faction %d", f)
		var swatch color.RGBA
		if f < len(snap.Factions) {
			name = snap.Factions[f].Name
			swatch = snap.Factions[f].Color
		}
		lines = append(lines, Line{Text: fmt.Sprintf("%s %d", name, c), Swatch: swatch, HasSwatch: true})
	}

	if len(in.Events) == 0 {
		return lines
	}
	lines = append(lines, Line{}, Line{Text: "Events", Tone: ToneHeader})
	events := in.Events
	if in.MaxEvents > 0 && len(events) > in.MaxEvents {
		events = events[len(events)-in.MaxEvents:]
	}
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		var swatch color.RGBA
		if ev.Faction < len(snap.Factions) {
			swatch = snap.Factions[ev.Faction].Color
		}
		tone := ToneNormal
		if ev.Kind == chronicle.Victory {
			tone = ToneAlert
		}
		lines = append(lines,
			Line{Text: ev.At.Format("15:04:05") + " " + ev.Name, Tone: tone, Swatch: swatch, HasSwatch: true},
			Line{Text: ev.Message, Tone: ToneDim},
		)
	}
	return lines
}

// Wrap breaks s into lines of at most width runes, splitting on spaces where
// possible.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var out []string
	runes := []rune(s)
	for len(runes) > width {
		cut := width
		for i := width; i > 0; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, string(runes[:cut]))
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 || len(out) == 0 {
		out = append(out, string(runes))
	}
	return out
}
