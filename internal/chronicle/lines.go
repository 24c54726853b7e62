package chronicle

import (
	"fmt"
	"time"
)

type story struct {
	name      string
	iteration uint64
	at        time.Time
	started   time.Time
	alive     int
}

func clock(t time.Time) string { return t.Format("15:04:05") }

var eliminationLines = []func(s story) string{
	func(s story) string { return fmt.Sprintf("%s ran out of ground at iteration %d.", s.name, s.iteration) },
	func(s story) string { return fmt.Sprintf("%s lost its last pixel on iteration %d.", s.name, s.iteration) },
	func(s story) string {
		return fmt.Sprintf("%s held on from %s until %s, %d iterations in all.", s.name, clock(s.started), clock(s.at), s.iteration)
	},
	func(s story) string { return fmt.Sprintf("Iteration %d: %s is off the map.", s.iteration, s.name) },
	func(s story) string {
		return fmt.Sprintf("%s is gone after %d iterations; %d still standing.", s.name, s.iteration, s.alive)
	},
	func(s story) string {
		return fmt.Sprintf("At %s the border closed over %s (iteration %d).", clock(s.at), s.name, s.iteration)
	},
	func(s story) string { return fmt.Sprintf("%s was surrounded and absorbed at iteration %d.", s.name, s.iteration) },
	func(s story) string {
		return fmt.Sprintf("No neighbour of %s chose it on iteration %d, and that was the end.", s.name, s.iteration)
	},
}

var victoryLines = []func(s story) string{
	func(s story) string { return fmt.Sprintf("%s owns the whole grid after %d iterations!", s.name, s.iteration) },
	func(s story) string { return fmt.Sprintf("%s is the last one standing at iteration %d.", s.name, s.iteration) },
	func(s story) string {
		return fmt.Sprintf("At %s, after %d iterations, %s took everything.", clock(s.at), s.iteration, s.name)
	},
	func(s story) string {
		return fmt.Sprintf("%d iterations between %s and %s, and %s wins.", s.iteration, clock(s.started), clock(s.at), s.name)
	},
}
