package fight

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is matched by every *ConfigError.
	ErrConfig = errors.New("invalid configuration")
	// ErrBackendUnavailable reports that a backend cannot run on this
	// machine or build. Drivers usually fall back to BackendCPU.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrInvariant is matched by every *InvariantError.
	ErrInvariant = errors.New("invariant violation")
	// ErrCorrupted is returned by Step after an invariant violation until
	// the simulation is Reset.
	ErrCorrupted = errors.New("simulation corrupted; reset required")
	// ErrClosed is returned by operations on a closed simulation.
	ErrClosed = errors.New("simulation closed")
)

// ConfigError describes a rejected configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrConfig) match.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// InvariantError reports state that should be unreachable: counts that no
// longer sum to the cell total or an owner id outside the roster.
type InvariantError struct {
	Iteration uint64
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated at iteration %d: %s", e.Iteration, e.Detail)
}

// Is lets errors.Is(err, ErrInvariant) match.
func (e *InvariantError) Is(target error) bool { return target == ErrInvariant }
