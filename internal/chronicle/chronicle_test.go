package chronicle

import (
	"strings"
	"testing"
	"time"

	"pixelfight/internal/faction"
	"pixelfight/internal/fight"
)

func fixedClock() func() time.Time {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Second)
	}
}

func roster(names ...string) []faction.Faction {
	out := faction.Defaults(len(names))
	for i, n := range names {
		out[i].Name = n
	}
	return out
}

func snap(it uint64, f []faction.Faction, counts ...uint64) fight.Snapshot {
	return fight.Snapshot{Iteration: it, Factions: f, Counts: counts}
}

func TestEliminationsAndVictory(t *testing.T) {
	f := roster("Red", "Green", "Blue")
	tr := New(1, WithClock(fixedClock()))

	if ev := tr.Observe(snap(0, f, 3, 3, 3)); len(ev) != 0 {
		t.Fatalf("initial snapshot produced %v", ev)
	}
	if tr.Alive() != 3 || tr.Leader() != 0 {
		t.Fatalf("alive=%d leader=%d", tr.Alive(), tr.Leader())
	}

	ev := tr.Observe(snap(10, f, 4, 0, 5))
	if len(ev) != 1 || ev[0].Kind != Eliminated || ev[0].Faction != 1 || ev[0].Name != "Green" || ev[0].Iteration != 10 {
		t.Fatalf("unexpected events %+v", ev)
	}
	if !strings.Contains(ev[0].Message, "Green") {
		t.Fatalf("message does not name the faction: %q", ev[0].Message)
	}
	if tr.Leader() != 2 || tr.Over() {
		t.Fatalf("leader=%d over=%v", tr.Leader(), tr.Over())
	}

	if ev := tr.Observe(snap(11, f, 4, 0, 5)); len(ev) != 0 {
		t.Fatalf("repeated snapshot produced %v", ev)
	}

	ev = tr.Observe(snap(20, f, 0, 0, 9))
	if len(ev) != 2 || ev[0].Kind != Eliminated || ev[0].Faction != 0 || ev[1].Kind != Victory || ev[1].Faction != 2 {
		t.Fatalf("unexpected final events %+v", ev)
	}
	if !tr.Over() || tr.Alive() != 1 {
		t.Fatalf("over=%v alive=%d", tr.Over(), tr.Alive())
	}
	if got := tr.Events(); len(got) != 3 {
		t.Fatalf("Events() has %d entries", len(got))
	}
	if recent := tr.Recent(2); recent[0].Kind != Victory || recent[1].Faction != 0 {
		t.Fatalf("Recent(2) = %+v", recent)
	}
}

func TestMessagesRepeatForSeed(t *testing.T) {
	f := roster("A", "B", "C", "D")
	run := func() []Event {
		tr := New(42, WithClock(fixedClock()))
		tr.Observe(snap(0, f, 1, 1, 1, 1))
		tr.Observe(snap(5, f, 2, 0, 1, 1))
		tr.Observe(snap(9, f, 3, 0, 0, 1))
		tr.Observe(snap(12, f, 4, 0, 0, 0))
		return tr.Events()
	}
	a, b := run(), run()
	if len(a) != 4 {
		t.Fatalf("expected 4 events, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("event %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestResetStartsOver(t *testing.T) {
	f := roster("A", "B")
	tr := New(3, WithClock(fixedClock()))
	tr.Observe(snap(0, f, 2, 2))
	tr.Observe(snap(7, f, 4, 0))
	if !tr.Over() {
		t.Fatalf("expected victory")
	}
	tr.Observe(snap(0, f, 2, 2))
	if tr.Over() || tr.Alive() != 2 || len(tr.Events()) != 0 {
		t.Fatalf("reset snapshot did not restart: over=%v alive=%d events=%d", tr.Over(), tr.Alive(), len(tr.Events()))
	}
}

func TestTrackerFollowsSimulation(t *testing.T) {
	tr := New(9)
	cfg := fight.DefaultConfig()
	cfg.Width, cfg.Height = 4, 4
	cfg.Factions = faction.Defaults(3)
	sim, err := fight.New(cfg, fight.WithObserver(func(s fight.Snapshot) { tr.Observe(s) }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer sim.Close()
	for i := 0; i < 20000 && !tr.Over(); i++ {
		if err := sim.Step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	events := tr.Events()
	if len(events) != 3 || events[2].Kind != Victory {
		t.Fatalf("expected two eliminations and a victory, got %+v", events)
	}
	if w, _ := sim.Snapshot().Winner(); w != events[2].Faction {
		t.Fatalf("victory names %d, simulation winner is %d", events[2].Faction, w)
	}
}
