package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator produces a fixed-length tone.
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

func newOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:   freq,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
		rng:    rand.New(rand.NewSource(int64(freq*1000) + int64(d))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay fades a streamer linearly to silence over length samples.
type decay struct {
	streamer beep.Streamer
	position int
	length   int
}

func newDecay(s beep.Streamer, d time.Duration, rate beep.SampleRate) *decay {
	return &decay{streamer: s, length: max(rate.N(d), 1)}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1 - float64(d.position)/float64(d.length)
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// pulse is the endless ambient beat: a low thump every beat with a quieter
// off-beat, looping forever.
type pulse struct {
	rate     beep.SampleRate
	beat     int
	position int
}

func newPulse(rate beep.SampleRate, beat time.Duration) *pulse {
	return &pulse{rate: rate, beat: max(rate.N(beat), 2)}
}

func (p *pulse) Stream(samples [][2]float64) (n int, ok bool) {
	half := p.beat / 2
	for i := range samples {
		pos := p.position % p.beat
		freq, amp := 55.0, 0.35
		if pos >= half {
			pos -= half
			freq, amp = 41.2, 0.2
		}
		t := float64(pos) / float64(p.rate)
		env := math.Exp(-t * 12)
		val := amp * env * math.Sin(2*math.Pi*freq*t)
		samples[i][0] = val
		samples[i][1] = val
		p.position++
	}
	return len(samples), true
}

func (p *pulse) Err() error { return nil }

// volume wraps s in a linear gain. Zero or less is silent.
func volume(s beep.Streamer, gain float64) *effects.Volume {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

func shotSound(rate beep.SampleRate) beep.Streamer {
	const d = 70 * time.Millisecond
	tone, err := generators.SineTone(rate, 880)
	if err != nil {
		tone = newOscillator(880, d, WaveSine, rate)
	}
	blip := beep.Mix(
		volume(tone, 0.6),
		volume(newOscillator(1320, d, WaveSquare, rate), 0.15),
	)
	return newDecay(beep.Take(rate.N(d), blip), d, rate)
}

func explosionSound(rate beep.SampleRate) beep.Streamer {
	const d = 300 * time.Millisecond
	return volume(newDecay(newOscillator(0, d, WaveNoise, rate), d, rate), 0.5)
}

func shipHitSound(rate beep.SampleRate) beep.Streamer {
	const d = 450 * time.Millisecond
	return beep.Mix(
		volume(newDecay(newOscillator(90, d, WaveSaw, rate), d, rate), 0.5),
		volume(newDecay(newOscillator(0, d, WaveNoise, rate), d, rate), 0.3),
	)
}

func levelUpSound(rate beep.SampleRate) beep.Streamer {
	const d = 120 * time.Millisecond
	return volume(beep.Seq(
		newDecay(newOscillator(523.25, d, WaveSquare, rate), d, rate),
		newDecay(newOscillator(783.99, d, WaveSquare, rate), d, rate),
	), 0.25)
}
