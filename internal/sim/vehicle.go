package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// AudioSink is the engine sound. SetRate receives a playback multiplier
// in [BasePlaybackRate, BasePlaybackRate+1].
type AudioSink interface {
	SetRate(rate float64)
	Close() error
}

// VehicleState is a snapshot of the car, refreshed once per tick.
type VehicleState struct {
	Position        mgl64.Vec3
	Rotation        mgl64.Vec3
	LinearVelocity  mgl64.Vec3
	AngularVelocity mgl64.Vec3
	SpeedKmh        float64
	EnginePitch     float64
}

// SpeedKmh converts a velocity in m/s to a scalar speed in km/h.
func SpeedKmh(v mgl64.Vec3) float64 {
	return v.Len() * MsToKmh
}

// EnginePitch maps speed to a normalized [0,1] engine pitch through a
// proportional RPM estimate capped at MaxRPM.
func EnginePitch(speedKmh float64) float64 {
	if math.IsNaN(speedKmh) {
		return 0
	}
	rpm := math.Min(MaxRPM, speedKmh/MaxSpeedKmh*MaxRPM)
	return mgl64.Clamp(rpm/MaxRPM, 0, 1)
}

// PlaybackRate is the audio multiplier for a given pitch.
func PlaybackRate(pitch float64) float64 {
	return BasePlaybackRate + mgl64.Clamp(pitch, 0, 1)
}

type ControllerOptions struct {
	RepeatInterval time.Duration
	// Suspended, when set, is consulted on every impulse; impulses are
	// dropped while it reports true.
	Suspended func() bool
}

// Controller owns the car body. It applies impulses from the input
// listener and derives speed and engine pitch each tick.
type Controller struct {
	world *World
	body  *Body
	audio AudioSink
	input *InputListener

	unsubVelocity func()
	velocity      mgl64.Vec3
	state         VehicleState

	suspended func() bool
	closed    bool
}

// NewController creates the car body in world and installs the key
// listener. A nil audio sink is allowed; pitch updates are then skipped.
func NewController(world *World, keys KeySource, audio AudioSink, opts ControllerOptions) (*Controller, error) {
	c := &Controller{
		world:     world,
		audio:     audio,
		suspended: opts.Suspended,
		body: world.AddBody(BodyConfig{
			Mass:           CarMass,
			Position:       CarStartPosition,
			Rotation:       CarStartRotation,
			HalfExtents:    CarHalfExtents,
			LinearDamping:  CarLinearDamping,
			AngularDamping: CarAngularDamping,
		}),
	}
	c.unsubVelocity = c.body.SubscribeVelocity(func(v mgl64.Vec3) { c.velocity = v })

	input, err := NewInputListener(keys, c, opts.RepeatInterval)
	if err != nil {
		c.unsubVelocity()
		world.RemoveBody(c.body)
		return nil, fmt.Errorf("install input listener: %w", err)
	}
	c.input = input
	c.state = c.snapshot()
	return c, nil
}

// Apply issues one impulse for a.
func (c *Controller) Apply(a Action) {
	if c.closed || c.Suspended() {
		return
	}
	switch a {
	case ActionForward:
		c.body.ApplyLocalForce(mgl64.Vec3{0, 0, -ForwardForce})
	case ActionBackward:
		c.body.ApplyLocalForce(mgl64.Vec3{0, 0, ReverseForce})
	case ActionLeft:
		c.body.ApplyTorque(mgl64.Vec3{0, SteerTorque, 0})
	case ActionRight:
		c.body.ApplyTorque(mgl64.Vec3{0, -SteerTorque, 0})
	}
}

// Suspended reports whether impulses are currently dropped.
func (c *Controller) Suspended() bool {
	return c.suspended != nil && c.suspended()
}

// Sample refreshes the state from the last published velocity and
// forwards the engine pitch to the audio sink.
func (c *Controller) Sample() VehicleState {
	if c.closed {
		return c.state
	}
	c.state = c.snapshot()
	if c.audio != nil {
		c.audio.SetRate(PlaybackRate(c.state.EnginePitch))
	}
	return c.state
}

func (c *Controller) snapshot() VehicleState {
	speed := SpeedKmh(c.velocity)
	return VehicleState{
		Position:        c.body.Position(),
		Rotation:        c.body.Rotation(),
		LinearVelocity:  c.velocity,
		AngularVelocity: c.body.AngularVelocity(),
		SpeedKmh:        speed,
		EnginePitch:     EnginePitch(speed),
	}
}

func (c *Controller) State() VehicleState { return c.state }
func (c *Controller) Body() *Body         { return c.body }

// Close tears down the key and velocity subscriptions, removes the body,
// and releases the audio sink. Only the first call has an effect.
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.input != nil {
		c.input.Close()
	}
	if c.unsubVelocity != nil {
		c.unsubVelocity()
	}
	c.world.RemoveBody(c.body)
	if c.audio != nil {
		if err := c.audio.Close(); err != nil {
			return fmt.Errorf("release engine audio: %w", err)
		}
	}
	return nil
}
