package ui

import (
	"slices"
	"strings"
	"testing"
	"time"

	"pixelfight/internal/chronicle"
	"pixelfight/internal/core"
	"pixelfight/internal/faction"
	"pixelfight/internal/fight"
)

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestPanelLinesScoreboard(t *testing.T) {
	roster := faction.Defaults(3)
	roster[0].Name, roster[1].Name, roster[2].Name = "Red", "Green", "Blue"
	at := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	lines := PanelLines(PanelInput{
		Snapshot: fight.Snapshot{Iteration: 42, Factions: roster, Counts: []uint64{10, 0, 15}},
		Events: []chronicle.Event{
			{Kind: chronicle.Eliminated, Faction: 1, Name: "Green", Iteration: 40, At: at, Message: "Green fell."},
		},
		Params: core.ParameterSnapshot{Groups: []core.ParameterGroup{{Params: []core.Parameter{
			{Key: "backend", Value: "parallel"},
			{Key: "cells", Value: "25"},
		}}}},
		TPS: 60,
	})
	got := texts(lines)
	for _, want := range []string{"Iteration 42", "Alive 2/3", "Lead Blue", "Backend parallel", "Pixels 25", "Red 10", "Blue 15", "09:30:00 Green", "Green fell.", "running @ 60 tps"} {
		if !slices.Contains(got, want) {
			t.Fatalf("panel missing %q in %q", want, got)
		}
	}
	if slices.Contains(got, "Green 0") {
		t.Fatalf("eliminated faction still on the scoreboard: %q", got)
	}
}

func TestPanelLinesNewestEventFirst(t *testing.T) {
	roster := faction.Defaults(3)
	faction.FillNames(roster)
	events := []chronicle.Event{
		{Kind: chronicle.Eliminated, Faction: 0, Name: "first", Message: "a"},
		{Kind: chronicle.Eliminated, Faction: 1, Name: "second", Message: "b"},
		{Kind: chronicle.Victory, Faction: 2, Name: "third", Message: "c"},
	}
	lines := PanelLines(PanelInput{
		Snapshot:  fight.Snapshot{Factions: roster, Counts: []uint64{0, 0, 9}},
		Events:    events,
		Paused:    true,
		MaxEvents: 2,
	})
	var order []string
	for _, l := range lines {
		if name, ok := strings.CutPrefix(l.Text, "00:00:00 "); ok {
			order = append(order, name)
		}
	}
	if !slices.Equal(order, []string{"third", "second"}) {
		t.Fatalf("event order %q", order)
	}
	if !slices.Contains(texts(lines), "paused") {
		t.Fatalf("paused state not shown")
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("the quick brown fox jumps", 10)
	want := []string{"the quick", "brown fox", "jumps"}
	if !slices.Equal(got, want) {
		t.Fatalf("Wrap = %q, want %q", got, want)
	}
	if got := Wrap("abcdefghijkl", 5); !slices.Equal(got, []string{"abcde", "fghij", "kl"}) {
		t.Fatalf("Wrap without spaces = %q", got)
	}
	if got := Wrap("", 5); !slices.Equal(got, []string{""}) {
		t.Fatalf("Wrap empty = %q", got)
	}
}
