package chime

import (
	"math"
	"testing"
	"time"

	"pixelfight/internal/chronicle"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) (samples int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if v := math.Abs(buf[i][0]); v > peak {
				peak = v
			}
			if buf[i][0] != buf[i][1] {
				t.Fatalf("channels differ at sample %d", samples+i)
			}
		}
		samples += n
		if !ok {
			return samples, peak
		}
		if samples > int(sampleRate)*10 {
			t.Fatalf("streamer never ended")
		}
	}
}

func TestToneLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	n, peak := drain(t, newTone(440, 250*time.Millisecond, rate))
	if n != rate.N(250*time.Millisecond) {
		t.Fatalf("tone produced %d samples, want %d", n, rate.N(250*time.Millisecond))
	}
	if peak > 1 || peak < 0.5 {
		t.Fatalf("peak amplitude %.3f", peak)
	}
}

func TestToneStartsAndEndsQuiet(t *testing.T) {
	rate := beep.SampleRate(8000)
	tn := newTone(440, 200*time.Millisecond, rate)
	buf := make([][2]float64, tn.total)
	if n, _ := tn.Stream(buf); n != tn.total {
		t.Fatalf("streamed %d of %d", n, tn.total)
	}
	if buf[0][0] != 0 {
		t.Fatalf("first sample %.3f, want silence", buf[0][0])
	}
	if v := math.Abs(buf[tn.total-1][0]); v > 0.05 {
		t.Fatalf("last sample %.3f, want near silence", v)
	}
}

func TestChimesEnd(t *testing.T) {
	for _, kind := range []chronicle.Kind{chronicle.Eliminated, chronicle.Victory} {
		n, peak := drain(t, Streamer(kind, 0.5))
		if n == 0 || peak == 0 {
			t.Fatalf("%v chime is silent (%d samples)", kind, n)
		}
		if n > sampleRate.N(2*time.Second) {
			t.Fatalf("%v chime lasts %d samples", kind, n)
		}
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	_, peak := drain(t, Streamer(chronicle.Victory, 0))
	if peak != 0 {
		t.Fatalf("muted chime peaked at %.3f", peak)
	}
}

func TestPlayBeforeInitIsNoop(t *testing.T) {
	p := NewPlayer(1)
	p.Play(chronicle.Event{Kind: chronicle.Victory})
	p.Close()
	if p.mixer.Len() != 0 {
		t.Fatalf("uninitialised player queued %d streamers", p.mixer.Len())
	}
}

func TestHeldAboveNyquistIsSilent(t *testing.T) {
	rate := beep.SampleRate(8000)
	n, peak := drain(t, held(5000, 100*time.Millisecond, rate))
	if n != rate.N(100*time.Millisecond) || peak != 0 {
		t.Fatalf("held above Nyquist: %d samples, peak %.3f", n, peak)
	}
}
