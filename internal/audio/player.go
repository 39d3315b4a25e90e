// Package audio turns game events into synthesized sound effects and plays
// the ambient beat whose tempo follows the level.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/asteroids-arcade/internal/session"
)

const (
	sampleRate   = beep.SampleRate(44100)
	ambientBeat  = 500 * time.Millisecond
	resampleQual = 3
	maxTempo     = 4.0
)

// Player reacts to session events. Mute state lives here, not in the session.
type Player interface {
	Handle(events []session.Event)
	SetTempo(tempo float64)
	ToggleMute() (muted bool)
	Muted() bool
	Close()
}

// Nop is a silent Player that still tracks mute state.
type Nop struct {
	mu    sync.Mutex
	muted bool
}

func (n *Nop) Handle([]session.Event) {}
func (n *Nop) SetTempo(float64)       {}
func (n *Nop) Close()                 {}

func (n *Nop) ToggleMute() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.muted = !n.muted
	return n.muted
}

func (n *Nop) Muted() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.muted
}

// Speaker plays through the default output device.
type Speaker struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	mixer   *beep.Mixer
	ambient *beep.Resampler
	master  *effects.Volume
	closed  bool
	logger  *log.Logger
}

// NewSpeaker opens the output device. The ambient beat starts immediately.
func NewSpeaker(muted bool, logger *log.Logger) (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	s := newSpeaker(sampleRate, muted, logger)
	speaker.Play(s.master)
	return s, nil
}

func newSpeaker(rate beep.SampleRate, muted bool, logger *log.Logger) *Speaker {
	s := &Speaker{
		rate:    rate,
		mixer:   &beep.Mixer{},
		ambient: beep.ResampleRatio(resampleQual, 1, volume(newPulse(rate, ambientBeat), 0.6)),
		logger:  logger,
	}
	s.mixer.Add(s.ambient)
	s.master = &effects.Volume{Streamer: s.mixer, Base: 2, Silent: muted}
	return s
}

// Handle queues one sound per event.
func (s *Speaker) Handle(events []session.Event) {
	if len(events) == 0 {
		return
	}
	s.locked(func() {
		for _, e := range events {
			if snd := soundFor(e.Kind, s.rate); snd != nil {
				s.mixer.Add(snd)
			}
		}
	})
}

// SetTempo sets the ambient playback rate multiplier.
func (s *Speaker) SetTempo(tempo float64) {
	tempo = clampTempo(tempo)
	s.locked(func() {
		if s.ambient.Ratio() != tempo {
			s.ambient.SetRatio(tempo)
		}
	})
}

// ToggleMute silences or restores all output.
func (s *Speaker) ToggleMute() bool {
	var muted bool
	s.locked(func() {
		s.master.Silent = !s.master.Silent
		muted = s.master.Silent
	})
	if s.logger != nil {
		s.logger.Debug("audio mute toggled", "muted", muted)
	}
	return muted
}

// Muted reports whether output is silenced.
func (s *Speaker) Muted() bool {
	var muted bool
	s.locked(func() { muted = s.master.Silent })
	return muted
}

// Close stops playback and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
}

// locked runs fn while holding the speaker lock, so the output goroutine
// never sees a half-updated mixer.
func (s *Speaker) locked(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	fn()
}

func soundFor(kind session.EventKind, rate beep.SampleRate) beep.Streamer {
	switch kind {
	case session.EventShotFired:
		return shotSound(rate)
	case session.EventAsteroidDestroyed:
		return explosionSound(rate)
	case session.EventShipHit:
		return shipHitSound(rate)
	case session.EventLevelAdvanced:
		return levelUpSound(rate)
	default:
		return nil
	}
}

func clampTempo(t float64) float64 {
	if t <= 0 {
		return 1
	}
	return min(t, maxTempo)
}
