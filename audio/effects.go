package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-length wave generator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/sustain/release gain curve
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linear gain vol; log2(0) is -Inf so zero is mapped to silence
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is one enveloped oscillator
type tone struct {
	freq     float64
	wave     WaveType
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	gain     float64
}

func (t tone) streamer(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(t.freq, t.duration, t.wave, rate)
	return newVolume(NewEnvelope(osc, t.duration, t.attack, t.release, rate), t.gain)
}

// SoundType identifies a synthesized effect
type SoundType int

const (
	SoundBounce SoundType = iota
	SoundHit
	SoundScore
	SoundJump
	SoundError
	soundCount
)

var soundNames = [...]string{"bounce", "hit", "score", "jump", "error"}

func (s SoundType) String() string {
	if s < 0 || s >= soundCount {
		return "unknown"
	}
	return soundNames[s]
}

// ParseSound maps a sound name back to its type
func ParseSound(name string) (SoundType, bool) {
	for i, n := range soundNames {
		if n == name {
			return SoundType(i), true
		}
	}
	return 0, false
}

// Duration returns the length of the synthesized effect
func (s SoundType) Duration() time.Duration {
	switch s {
	case SoundBounce:
		return 60 * time.Millisecond
	case SoundHit:
		return 120 * time.Millisecond
	case SoundScore:
		return 80*time.Millisecond + 200*time.Millisecond
	case SoundJump:
		return 150 * time.Millisecond
	case SoundError:
		return 80 * time.Millisecond
	}
	return 0
}

// Synthesize builds a fresh streamer for the effect at linear volume vol, cut to
// the effect's Duration. Returns nil for unknown sound types
func Synthesize(s SoundType, rate beep.SampleRate, vol float64) beep.Streamer {
	var out beep.Streamer
	switch s {
	case SoundBounce:
		out = tone{freq: 440, wave: WaveSquare, duration: 60 * time.Millisecond,
			attack: 2 * time.Millisecond, release: 40 * time.Millisecond, gain: 0.5}.streamer(rate)
	case SoundHit:
		// Noise burst over a low thump
		out = beep.Mix(
			tone{freq: 0, wave: WaveNoise, duration: 120 * time.Millisecond,
				attack: time.Millisecond, release: 100 * time.Millisecond, gain: 0.4}.streamer(rate),
			tone{freq: 110, wave: WaveSine, duration: 120 * time.Millisecond,
				attack: time.Millisecond, release: 80 * time.Millisecond, gain: 0.6}.streamer(rate),
		)
	case SoundScore:
		// B5 then E6
		out = beep.Seq(
			tone{freq: 987.77, wave: WaveSquare, duration: 80 * time.Millisecond,
				attack: 5 * time.Millisecond, release: 20 * time.Millisecond, gain: 0.4}.streamer(rate),
			tone{freq: 1318.51, wave: WaveSquare, duration: 200 * time.Millisecond,
				attack: 5 * time.Millisecond, release: 150 * time.Millisecond, gain: 0.4}.streamer(rate),
		)
	case SoundJump:
		out = tone{freq: 330, wave: WaveSaw, duration: 150 * time.Millisecond,
			attack: 10 * time.Millisecond, release: 100 * time.Millisecond, gain: 0.3}.streamer(rate)
	case SoundError:
		out = tone{freq: 100, wave: WaveSaw, duration: 80 * time.Millisecond,
			attack: 5 * time.Millisecond, release: 50 * time.Millisecond, gain: 0.5}.streamer(rate)
	default:
		return nil
	}
	return beep.Take(rate.N(s.Duration()), newVolume(out, vol))
}
