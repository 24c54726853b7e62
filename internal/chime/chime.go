// Package chime plays short sounds when factions are eliminated and when the
// fight is won.
package chime

import (
	"sync"
	"time"

	"pixelfight/internal/chronicle"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes chimes onto the default audio device.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	ready  bool
}

// NewPlayer creates a player; nothing is heard until Init succeeds.
func NewPlayer(volume float64) *Player {
	return &Player{mixer: &beep.Mixer{}, volume: volume}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Play queues the chime for ev. Safe to call from any goroutine.
func (p *Player) Play(ev chronicle.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	s := Streamer(ev.Kind, p.volume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.ready = false
}

// Streamer returns the sound for an event kind.
func Streamer(kind chronicle.Kind, volume float64) beep.Streamer {
	if kind == chronicle.Victory {
		return Victory(sampleRate, volume)
	}
	return Elimination(sampleRate, volume)
}
