// Package chronicle turns the stream of fight snapshots into a log of
// eliminations and the final victory, the way a spectator would narrate it.
package chronicle

import (
	"fmt"
	"sync"
	"time"

	"pixelfight/internal/fight"
	"pixelfight/internal/rng"
)

// Kind classifies an Event.
type Kind int

const (
	Eliminated Kind = iota
	Victory
)

func (k Kind) String() string {
	switch k {
	case Eliminated:
		return "eliminated"
	case Victory:
		return "victory"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is one line of the chronicle.
type Event struct {
	Kind      Kind
	Faction   int
	Name      string
	Iteration uint64
	At        time.Time
	Message   string
}

// Tracker follows one fight. It is fed through Observe, usually registered
// with fight.WithObserver, and read from other goroutines.
type Tracker struct {
	mu sync.Mutex

	seed    int64
	rng     *rng.Sequential
	now     func() time.Time
	started time.Time

	dead   []bool
	alive  int
	leader int
	last   uint64
	over   bool
	events []Event
}

// Option customises a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// New creates a tracker whose message choice is driven by seed.
func New(seed int64, opts ...Option) *Tracker {
	t := &Tracker{seed: seed, now: time.Now, leader: -1}
	for _, opt := range opts {
		opt(t)
	}
	t.restart(0)
	return t
}

func (t *Tracker) restart(factions int) {
	t.rng = rng.NewSequential(t.seed)
	t.started = t.now()
	t.dead = make([]bool, factions)
	t.alive = factions
	t.leader = -1
	t.last = 0
	t.over = false
	t.events = t.events[:0]
}

// Observe records the events implied by snap and returns the new ones. A
// snapshot at iteration zero, or one older than the last seen, starts a new
// chronicle.
func (t *Tracker) Observe(snap fight.Snapshot) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	if snap.Iteration == 0 || snap.Iteration < t.last || len(t.dead) != len(snap.Counts) {
		t.restart(len(snap.Counts))
	}
	t.last = snap.Iteration

	var fresh []Event
	at := t.now()
	for f, c := range snap.Counts {
		if t.dead[f] || c > 0 {
			continue
		}
		t.dead[f] = true
		t.alive--
		fresh = append(fresh, t.record(Eliminated, f, snap, at))
	}
	t.leader = snap.Leader()
	if !t.over && t.alive <= 1 && len(fresh) > 0 {
		t.over = true
		if w, ok := snap.Winner(); ok {
			fresh = append(fresh, t.record(Victory, w, snap, at))
		}
	}
	return fresh
}

func (t *Tracker) record(kind Kind, f int, snap fight.Snapshot, at time.Time) Event {
	name := fmt.Sprintf("faction %d", f)
	if f < len(snap.Factions) {
		name = snap.Factions[f].Name
	}
	story := story{
		name:      name,
		iteration: snap.Iteration,
		at:        at,
		started:   t.started,
		alive:     t.alive,
	}
	var msg string
	if kind == Victory {
		msg = victoryLines[t.rng.IntN(len(victoryLines))](story)
	} else {
		msg = eliminationLines[t.rng.IntN(len(eliminationLines))](story)
	}
	ev := Event{Kind: kind, Faction: f, Name: name, Iteration: snap.Iteration, At: at, Message: msg}
	t.events = append(t.events, ev)
	return ev
}

// Events returns every event so far, oldest first.
func (t *Tracker) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Recent returns up to n events, newest first.
func (t *Tracker) Recent(n int) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n > len(t.events) {
		n = len(t.events)
	}
	out := make([]Event, 0, n)
	for i := len(t.events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, t.events[i])
	}
	return out
}

// Alive is the number of factions not yet eliminated.
func (t *Tracker) Alive() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.alive
}

// Leader is the faction holding the most cells in the last snapshot, or -1.
func (t *Tracker) Leader() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.leader
}

// Over reports whether a victory has been recorded.
func (t *Tracker) Over() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.over
}

// Started is when the current chronicle began.
func (t *Tracker) Started() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}
