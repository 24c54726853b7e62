package fight

import "sort"

// Backend names accepted in Config.Backend.
const (
	BackendCPU      = "cpu"
	BackendParallel = "parallel"
	BackendOpenCL   = "opencl"
)

// Backend is one way of executing a generation. All backends honour the same
// contract: Step reads st.Current(), writes every cell of st.Next() and
// applies each owner change to st.Counts() exactly once. The engine swaps the
// buffers afterwards and never mixes backends within a run.
type Backend interface {
	Name() string
	// Reset is called after the state has been repopulated.
	Reset(st *State, seed int64) error
	// Step computes one generation. seed is a fresh per-step draw.
	Step(st *State, seed uint64) error
	Close() error
}

// backendFactory constructs a backend for a validated config. dev is the
// caller-supplied OpenCL device, if any.
type backendFactory func(cfg Config, dev *Device) (Backend, error)

var backends = map[string]backendFactory{}

func register(name string, f backendFactory) {
	if name == "" || f == nil {
		return
	}
	backends[name] = f
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	register(BackendCPU, func(Config, *Device) (Backend, error) {
		return newSequential(), nil
	})
	register(BackendParallel, func(cfg Config, _ *Device) (Backend, error) {
		return newParallel(cfg.Workers, cfg.Height), nil
	})
	register(BackendOpenCL, func(cfg Config, dev *Device) (Backend, error) {
		owned := false
		if dev == nil {
			var err error
			if dev, err = OpenDevice(); err != nil {
				return nil, err
			}
			owned = true
		}
		b, err := newOpenCLBackend(dev, owned, cfg)
		if err != nil && owned {
			dev.Close()
		}
		return b, err
	})
}
