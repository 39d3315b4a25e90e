package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/asteroids-arcade/internal/session"
)

const testRate = beep.SampleRate(8000)

func drain(s beep.Streamer, limit int) (total int, peak float64) {
	buf := make([][2]float64, 256)
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

func TestOscillatorLength(t *testing.T) {
	for _, wave := range []Wave{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		n, peak := drain(newOscillator(440, 100*time.Millisecond, wave, testRate), 1<<20)
		if n != testRate.N(100*time.Millisecond) {
			t.Errorf("wave %d: %d samples, want %d", wave, n, testRate.N(100*time.Millisecond))
		}
		if peak == 0 || peak > 1 {
			t.Errorf("wave %d: peak %v out of (0,1]", wave, peak)
		}
	}
}

func TestDecayFadesOut(t *testing.T) {
	d := newDecay(newOscillator(0, time.Second, WaveSquare, testRate), time.Second, testRate)
	buf := make([][2]float64, testRate.N(time.Second))
	n, _ := d.Stream(buf)
	if n != len(buf) {
		t.Fatalf("streamed %d, want %d", n, len(buf))
	}
	if buf[0][0] != 1 {
		t.Errorf("first sample = %v, want full volume", buf[0][0])
	}
	if last := math.Abs(buf[n-1][0]); last > 0.01 {
		t.Errorf("last sample = %v, want near silence", last)
	}
}

func TestPulseNeverEnds(t *testing.T) {
	p := newPulse(testRate, ambientBeat)
	n, peak := drain(p, testRate.N(5*time.Second))
	if n < testRate.N(5*time.Second) {
		t.Errorf("pulse stopped after %d samples", n)
	}
	if peak == 0 {
		t.Error("pulse is silent")
	}
}

func TestSoundForEvents(t *testing.T) {
	for _, kind := range []session.EventKind{
		session.EventShotFired,
		session.EventAsteroidDestroyed,
		session.EventShipHit,
		session.EventLevelAdvanced,
	} {
		snd := soundFor(kind, testRate)
		if snd == nil {
			t.Errorf("%v: no sound", kind)
			continue
		}
		if n, _ := drain(snd, testRate.N(5*time.Second)); n == 0 || n >= testRate.N(5*time.Second) {
			t.Errorf("%v: %d samples, want a short finite sound", kind, n)
		}
	}
	if soundFor(session.EventGameOver, testRate) != nil {
		t.Error("game over should not queue a sound")
	}
}

func TestSpeakerControls(t *testing.T) {
	s := newSpeaker(testRate, false, nil)

	s.Handle([]session.Event{{Kind: session.EventShotFired}, {Kind: session.EventGameOver}})
	if got := s.mixer.Len(); got != 2 {
		t.Errorf("mixer has %d streamers, want ambient + shot", got)
	}

	s.SetTempo(1.5)
	if r := s.ambient.Ratio(); r != 1.5 {
		t.Errorf("ratio = %v, want 1.5", r)
	}
	s.SetTempo(0)
	if r := s.ambient.Ratio(); r != 1 {
		t.Errorf("ratio = %v, want 1 for invalid tempo", r)
	}

	if !s.ToggleMute() || !s.Muted() {
		t.Fatal("mute did not engage")
	}
	buf := make([][2]float64, 128)
	s.master.Stream(buf)
	for _, smp := range buf {
		if smp[0] != 0 {
			t.Fatal("muted output is not silent")
		}
	}
	if s.ToggleMute() {
		t.Error("second toggle should unmute")
	}
}

func TestNop(t *testing.T) {
	var n Nop
	n.Handle([]session.Event{{Kind: session.EventShipHit}})
	n.SetTempo(2)
	if !n.ToggleMute() || !n.Muted() {
		t.Error("nop player should track mute")
	}
	n.Close()
}

func TestClampTempo(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 1}, {0, 1}, {1.3, 1.3}, {2, 2}, {10, maxTempo},
	}
	for _, tt := range tests {
		if got := clampTempo(tt.in); got != tt.want {
			t.Errorf("clampTempo(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
