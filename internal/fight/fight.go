// Package fight implements the territory-diffusion automaton: on every step
// each cell takes the owner of a uniformly chosen Moore neighbour, factions
// that lose their last cell are eliminated, and the run ends when a single
// faction remains. The automaton runs on interchangeable backends that share
// one observable contract.
package fight

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"slices"
	"sync"

	"pixelfight/internal/core"
	"pixelfight/internal/faction"
	"pixelfight/internal/render"
	"pixelfight/internal/rng"
)

// Simulation owns the grid state and runs it on a single backend chosen at
// construction. It is safe for concurrent use: steps and resets are
// exclusive, reads wait for the step in flight.
type Simulation struct {
	mu sync.RWMutex

	cfg       Config
	factions  []faction.Faction
	palette   []color.RGBA
	populator Populator

	state   *State
	backend Backend
	stepRNG *rng.Sequential

	observers   []func(Snapshot)
	verifyCells bool
	logger      *log.Logger
	device      *Device

	// corrupted holds the failure that left the state unusable until Reset.
	corrupted error
	closed    bool

	target       *image.RGBA
	painted      uint64
	paintedValid bool
}

// Option customises a Simulation.
type Option func(*Simulation)

// WithObserver registers fn to receive a snapshot after every reset and step.
// Observers run on the goroutine that completed the operation, after the
// simulation lock has been released.
func WithObserver(fn func(Snapshot)) Option {
	return func(s *Simulation) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

// WithDevice runs BackendOpenCL on an already opened device. The caller keeps
// ownership and closes it after the simulation.
func WithDevice(dev *Device) Option {
	return func(s *Simulation) { s.device = dev }
}

// WithVerify enables a full owner range check after every step in addition
// to the always-on count checks.
func WithVerify(full bool) Option {
	return func(s *Simulation) { s.verifyCells = full }
}

// WithLogger sets the logger used for lifecycle and failure messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// New validates cfg, builds its backend and performs the initial reset.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg:    cfg,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.factions = slices.Clone(cfg.Factions)
	faction.FillNames(s.factions)
	s.palette = faction.Palette(s.factions)
	s.populator = cfg.Populator
	if s.populator == nil {
		s.populator = PinwheelFor(cfg.Width, cfg.Height)
	}
	s.state = newState(cfg.Width, cfg.Height, len(s.factions))
	s.target = render.NewTarget(cfg.Width, cfg.Height)

	backend, err := backends[cfg.Backend](cfg, s.device)
	if err != nil {
		return nil, fmt.Errorf("creating %s backend: %w", cfg.Backend, err)
	}
	s.backend = backend

	if err := s.resetLocked(); err != nil {
		backend.Close()
		return nil, err
	}
	s.logger.Printf("fight: %dx%d grid, %d factions, backend %s", cfg.Width, cfg.Height, len(s.factions), backend.Name())
	s.publish(s.snapshotLocked())
	return s, nil
}

// Reset repopulates both buffers, recounts, and returns the iteration
// counter to zero. The result only depends on the configured populator and
// seed.
func (s *Simulation) Reset() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	err := s.resetLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(snap)
	return nil
}

func (s *Simulation) resetLocked() error {
	s.corrupted = nil
	s.paintedValid = false
	if err := s.state.populate(s.populator, s.factions); err != nil {
		s.corrupted = err
		return err
	}
	s.stepRNG = rng.NewSequential(s.cfg.Seed)
	if err := s.backend.Reset(s.state, s.cfg.Seed); err != nil {
		s.corrupted = err
		return fmt.Errorf("resetting %s backend: %w", s.backend.Name(), err)
	}
	return nil
}

// Step advances exactly one generation and publishes the new snapshot. A
// step that breaks an invariant leaves the simulation corrupted; later steps
// fail with ErrCorrupted until Reset.
func (s *Simulation) Step() error {
	s.mu.Lock()
	snap, err := s.stepLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(snap)
	return nil
}

// StepAsync starts a step on another goroutine and returns a channel that
// receives its result. The step holds the simulation lock from the moment
// StepAsync returns, so any later Snapshot observes its writes.
func (s *Simulation) StepAsync() <-chan error {
	done := make(chan error, 1)
	s.mu.Lock()
	go func() {
		snap, err := s.stepLocked()
		s.mu.Unlock()
		if err == nil {
			s.publish(snap)
		}
		done <- err
	}()
	return done
}

func (s *Simulation) stepLocked() (Snapshot, error) {
	if s.closed {
		return Snapshot{}, ErrClosed
	}
	if s.corrupted != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupted, s.corrupted)
	}
	seed := s.stepRNG.Uint64()
	if err := s.backend.Step(s.state, seed); err != nil {
		s.corrupted = err
		s.logger.Printf("fight: %s step %d failed: %v", s.backend.Name(), s.state.iteration+1, err)
		return Snapshot{}, fmt.Errorf("%s step %d: %w", s.backend.Name(), s.state.iteration+1, err)
	}
	s.state.swap()
	if err := s.state.verify(s.verifyCells); err != nil {
		s.corrupted = err
		s.logger.Printf("fight: %v", err)
		return Snapshot{}, err
	}
	return s.snapshotLocked(), nil
}

// Run steps until one faction remains, maxSteps more generations have
// completed (0 means no limit) or ctx is cancelled. It returns the last
// snapshot.
func (s *Simulation) Run(ctx context.Context, maxSteps uint64) (Snapshot, error) {
	snap := s.Snapshot()
	for steps := uint64(0); ; steps++ {
		if _, ok := snap.Winner(); ok {
			return snap, nil
		}
		if maxSteps > 0 && steps >= maxSteps {
			return snap, nil
		}
		if err := ctx.Err(); err != nil {
			return snap, err
		}
		s.mu.Lock()
		next, err := s.stepLocked()
		s.mu.Unlock()
		if err != nil {
			return snap, err
		}
		s.publish(next)
		snap = next
	}
}

// Snapshot returns the iteration, roster and counts of the last completed
// step. It never mutates state.
func (s *Simulation) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Simulation) snapshotLocked() Snapshot {
	return Snapshot{
		Iteration: s.state.iteration,
		Factions:  s.factions,
		Counts:    slices.Clone(s.state.counts),
	}
}

func (s *Simulation) publish(snap Snapshot) {
	for _, fn := range s.observers {
		fn(snap)
	}
}

// RenderTarget returns the grid of the last completed step translated through
// the faction colours. The image is reused; it is repainted on the next call
// after a step or reset.
func (s *Simulation) RenderTarget() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.paintedValid || s.painted != s.state.iteration {
		render.Paint(s.target, s.state.Current().Cells(), s.palette)
		s.painted = s.state.iteration
		s.paintedValid = true
	}
	return s.target
}

// Cells returns a copy of the active ownership buffer.
func (s *Simulation) Cells() []uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Current().Cells())
}

// Size returns the grid dimensions.
func (s *Simulation) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Factions returns the roster with empty names filled in.
func (s *Simulation) Factions() []faction.Faction { return s.factions }

// Backend returns the name of the backend executing the steps.
func (s *Simulation) Backend() string { return s.backend.Name() }

// Close releases the backend. The simulation cannot be used afterwards.
func (s *Simulation) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.backend.Close()
}
