package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"github.com/Jabulani101/GHO57-RACING/internal/audio"
)

var ErrAudioNotReady = errors.New("audio device not ready")

// AudioSystem owns the oto context.
type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
}

func InitAudio() (*AudioSystem, error) {
	ctx, ready, err := oto.NewContext(audio.SampleRate, audio.ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("oto context: %w", err)
	}
	return &AudioSystem{ctx: ctx, ready: ready}, nil
}

// WaitReady blocks until the device is open or timeout passes.
func (a *AudioSystem) WaitReady(timeout time.Duration) error {
	select {
	case <-a.ready:
		return nil
	case <-time.After(timeout):
		return ErrAudioNotReady
	}
}

// EngineSound is the looping engine voice played through oto. It
// satisfies sim.AudioSink.
type EngineSound struct {
	voice  *audio.EngineVoice
	player oto.Player
	volume float64

	once sync.Once
	err  error
}

// NewEngineSound starts the engine loop at the given volume.
func (a *AudioSystem) NewEngineSound(volume float64, seed uint64) (*EngineSound, error) {
	select {
	case <-a.ready:
	default:
		return nil, ErrAudioNotReady
	}
	voice := audio.NewEngineVoice(1, seed)
	player := a.ctx.NewPlayer(voice)
	player.SetVolume(volume)
	player.Play()
	return &EngineSound{voice: voice, player: player, volume: volume}, nil
}

func (e *EngineSound) SetRate(rate float64) {
	e.voice.SetRate(rate)
}

// SetMuted silences the player without stopping the stream.
func (e *EngineSound) SetMuted(muted bool) {
	if muted {
		e.player.SetVolume(0)
		return
	}
	e.player.SetVolume(e.volume)
}

func (e *EngineSound) Muted() bool {
	return e.player.Volume() == 0
}

// Close ends the stream and releases the player. Later calls return the
// first result.
func (e *EngineSound) Close() error {
	e.once.Do(func() {
		_ = e.voice.Close()
		if err := e.player.Close(); err != nil {
			e.err = fmt.Errorf("close player: %w", err)
		}
	})
	return e.err
}
