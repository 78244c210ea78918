package sim

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type SceneConfig struct {
	Step            float64
	MaxSubSteps     int
	CameraHalfLife  float64
	RepeatInterval  time.Duration
	AdDismissAfter  time.Duration
	AdBreakInterval time.Duration // 0 disables periodic ad breaks
	PauseUnderAd    bool
	Premium         bool // entitlement restored from storage
}

// DefaultSceneConfig mirrors the tuning the demo shipped with.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Step:           DefaultStep,
		MaxSubSteps:    DefaultMaxSubSteps,
		CameraHalfLife: DefaultCameraHalfLife,
		AdDismissAfter: time.Duration(DefaultAdDismissSeconds * float64(time.Second)),
	}
}

// Frame is what the renderer and HUD need after one tick.
type Frame struct {
	Vehicle     VehicleState
	Orientation mgl64.Quat
	CameraPos   mgl64.Vec3
	LookAt      mgl64.Vec3
	Gate        GateState
	Premium     bool
	AdRemaining float64
	Paused      bool
	PlayTime    float64
}

// Scene owns every piece of per-session state and advances it once per
// rendered frame.
type Scene struct {
	World   *World
	Surface Plane
	Vehicle *Controller
	Camera  *CameraFollower
	Gate    *AdGate

	cfg        SceneConfig
	playTime   float64
	sinceBreak float64
}

func NewScene(cfg SceneConfig, keys KeySource, audio AudioSink) (*Scene, error) {
	world := NewWorld(cfg.Step, cfg.MaxSubSteps)
	surface := NewSurface()
	world.AddPlane(surface)

	s := &Scene{
		World:   world,
		Surface: surface,
		Camera:  NewCameraFollower(cfg.CameraHalfLife),
		Gate:    NewAdGate(cfg.AdDismissAfter, cfg.Premium),
		cfg:     cfg,
	}

	// Key events arrive between ticks, so the pause is checked per impulse
	// rather than latched once per frame.
	vehicle, err := NewController(world, keys, audio, ControllerOptions{
		RepeatInterval: cfg.RepeatInterval,
		Suspended:      s.Paused,
	})
	if err != nil {
		return nil, fmt.Errorf("vehicle controller: %w", err)
	}
	s.Vehicle = vehicle
	return s, nil
}

// Paused reports whether simulation is held under the overlay.
func (s *Scene) Paused() bool {
	return s.cfg.PauseUnderAd && s.Gate.Showing()
}

// Tick advances the scene by dt seconds with the current pointer.
func (s *Scene) Tick(dt float64, p Pointer) Frame {
	s.Gate.Advance(dt)

	paused := s.Paused()
	if paused {
		s.Vehicle.Body().ClearForces()
	}
	s.Camera.Update(p, dt)

	if !paused {
		s.World.Advance(dt)
		s.playTime += dt
		s.scheduleAdBreak(dt)
	}

	state := s.Vehicle.Sample()
	return Frame{
		Vehicle:     state,
		Orientation: s.Vehicle.Body().Orientation(),
		CameraPos:   s.Camera.Position,
		LookAt:      s.Camera.LookAt(),
		Gate:        s.Gate.State(),
		Premium:     s.Gate.Premium(),
		AdRemaining: s.Gate.Remaining(),
		Paused:      paused,
		PlayTime:    s.playTime,
	}
}

func (s *Scene) scheduleAdBreak(dt float64) {
	interval := s.cfg.AdBreakInterval.Seconds()
	if interval <= 0 || s.Gate.Premium() || s.Gate.Showing() {
		return
	}
	s.sinceBreak += dt
	if s.sinceBreak >= interval {
		s.sinceBreak = 0
		s.Gate.Trigger()
	}
}

// Close releases the vehicle and its audio.
func (s *Scene) Close() error {
	return s.Vehicle.Close()
}
