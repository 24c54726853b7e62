package chime

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// tone is a sine oscillator with a linear attack and release, stopping after
// its duration.
type tone struct {
	rate    beep.SampleRate
	freq    float64
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

func newTone(freq float64, d time.Duration, rate beep.SampleRate) *tone {
	total := rate.N(d)
	return &tone{
		rate:    rate,
		freq:    freq,
		total:   total,
		attack:  min(rate.N(8*time.Millisecond), total/4),
		release: min(rate.N(80*time.Millisecond), total/2),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		vol := 1.0
		if t.attack > 0 && t.pos < t.attack {
			vol = float64(t.pos) / float64(t.attack)
		}
		if left := t.total - t.pos; t.release > 0 && left < t.release {
			vol = float64(left) / float64(t.release)
		}
		v := vol * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// withVolume scales s linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Elimination is a short falling pair of notes.
func Elimination(rate beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(beep.Seq(
		newTone(659.25, 110*time.Millisecond, rate),
		newTone(440.00, 180*time.Millisecond, rate),
	), vol)
}

// held returns a plain sine at freq for d. Frequencies above Nyquist give
// silence.
func held(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return generators.Silence(rate.N(d))
	}
	return beep.Take(rate.N(d), sine)
}

// Victory is a rising arpeggio closed by a held chord.
func Victory(rate beep.SampleRate, vol float64) beep.Streamer {
	const chordLen = 400 * time.Millisecond
	chord := beep.Mix(
		withVolume(held(523.25, chordLen, rate), 0.4),
		withVolume(held(659.25, chordLen, rate), 0.3),
		withVolume(held(783.99, chordLen, rate), 0.3),
	)
	return withVolume(beep.Seq(
		newTone(523.25, 90*time.Millisecond, rate),
		newTone(659.25, 90*time.Millisecond, rate),
		newTone(783.99, 90*time.Millisecond, rate),
		newTone(1046.50, 140*time.Millisecond, rate),
		beep.Take(rate.N(chordLen), chord),
		newTone(523.25, 160*time.Millisecond, rate),
	), vol)
}
