package audio

import (
	"io"
	"math"
	"sync/atomic"
)

const (
	EngineBaseHz = 55.0 // firing frequency at playback rate 1.0
	MinRate      = 0.25
	MaxRate      = 4.0

	// rateGlide is the per-sample fraction the voice moves toward a new rate.
	rateGlide = 0.0015
)

// EngineVoice is an endless procedural engine loop. SetRate may be called
// from the game loop while the audio goroutine reads.
type EngineVoice struct {
	rate   atomic.Uint64 // math.Float64bits
	closed atomic.Bool

	volume float64
	cur    float64
	phase  float64
	seed   uint64
	lp     float64
}

func NewEngineVoice(volume float64, seed uint64) *EngineVoice {
	v := &EngineVoice{
		volume: clamp(volume, 0, 1),
		cur:    1,
		seed:   seed | 1,
	}
	v.rate.Store(math.Float64bits(1))
	return v
}

// SetRate changes the playback rate multiplier.
func (v *EngineVoice) SetRate(rate float64) {
	if math.IsNaN(rate) {
		return
	}
	v.rate.Store(math.Float64bits(clamp(rate, MinRate, MaxRate)))
}

func (v *EngineVoice) Rate() float64 {
	return math.Float64frombits(v.rate.Load())
}

// Close ends the stream; the next Read returns io.EOF.
func (v *EngineVoice) Close() error {
	v.closed.Store(true)
	return nil
}

func (v *EngineVoice) Closed() bool { return v.closed.Load() }

func (v *EngineVoice) Read(p []byte) (int, error) {
	if v.closed.Load() {
		return 0, io.EOF
	}
	frames := len(p) / BytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	target := v.Rate()
	for i := 0; i < frames; i++ {
		v.cur += (target - v.cur) * rateGlide
		putStereoF32(p, i, v.next())
	}
	return frames * BytesPerFrame, nil
}

// next renders one mono sample: a few firing harmonics, a sub-octave
// rumble and low-passed intake noise.
func (v *EngineVoice) next() float64 {
	v.phase += EngineBaseHz * v.cur / SampleRate
	if v.phase >= 2 {
		v.phase -= 2
	}
	ph := 2 * math.Pi * v.phase
	tone := math.Sin(ph) + 0.5*math.Sin(2*ph) + 0.22*math.Sin(3*ph) + 0.35*math.Sin(0.5*ph)

	v.lp += (lcg(&v.seed) - v.lp) * 0.08
	s := (tone*0.32 + v.lp*0.25) * v.volume
	return softSat(s)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
