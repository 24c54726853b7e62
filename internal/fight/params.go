package fight

import (
	"strconv"

	"pixelfight/internal/core"
)

type deviceNamer interface {
	DeviceName() string
}

// Parameters describes the configuration the simulation was built with.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	run := []core.Parameter{
		{Key: "backend", Label: "Backend", Value: s.backend.Name()},
		{Key: "seed", Label: "Seed", Value: strconv.FormatInt(s.cfg.Seed, 10)},
	}
	if s.cfg.Backend == BackendParallel {
		run = append(run, core.Parameter{Key: "workers", Label: "Workers", Value: strconv.Itoa(s.cfg.Workers)})
	}
	if dn, ok := s.backend.(deviceNamer); ok {
		run = append(run, core.Parameter{Key: "device", Label: "Device", Value: dn.DeviceName()})
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				{Key: "w", Label: "Width", Value: strconv.Itoa(s.cfg.Width)},
				{Key: "h", Label: "Height", Value: strconv.Itoa(s.cfg.Height)},
				{Key: "cells", Label: "Cells", Value: strconv.Itoa(s.cfg.Width * s.cfg.Height)},
				{Key: "factions", Label: "Factions", Value: strconv.Itoa(len(s.factions))},
			},
		},
		{Name: "Run", Params: run},
	}}
}
