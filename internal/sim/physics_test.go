package sim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitBox(pos mgl64.Vec3) BodyConfig {
	return BodyConfig{
		Mass:        1,
		Position:    pos,
		HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5},
	}
}

func TestWorld_AdvanceFixedSteps(t *testing.T) {
	tests := []struct {
		name  string
		dts   []float64
		steps int
	}{
		{name: "half step accumulates", dts: []float64{0.5 / 60}, steps: 0},
		{name: "two halves make one", dts: []float64{0.5 / 60, 0.5 / 60}, steps: 1},
		{name: "large dt capped", dts: []float64{1.0}, steps: 10},
		{name: "non-positive dt ignored", dts: []float64{0, -1}, steps: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld(1.0/60, 10)
			total := 0
			for _, dt := range tt.dts {
				total += w.Advance(dt)
			}
			assert.Equal(t, tt.steps, total)
		})
	}
}

func TestWorld_Defaults(t *testing.T) {
	w := NewWorld(0, 0)
	assert.Equal(t, DefaultStep, w.Step)
	assert.Equal(t, DefaultMaxSubSteps, w.MaxSubSteps)
	assert.Equal(t, mgl64.Vec3{0, Gravity, 0}, w.Gravity)
}

func TestBody_ImpulseClearedAfterStep(t *testing.T) {
	w := NewWorld(1.0/60, 10)
	w.Gravity = mgl64.Vec3{}
	b := w.AddBody(unitBox(mgl64.Vec3{}))

	b.ApplyForce(mgl64.Vec3{60, 0, 0})
	assert.Equal(t, mgl64.Vec3{60, 0, 0}, b.PendingForce())

	w.StepOnce()
	assert.Equal(t, mgl64.Vec3{}, b.PendingForce())
	v1 := b.Velocity()
	assert.InDelta(t, 1.0, v1.X(), 1e-9)

	w.StepOnce()
	assert.Equal(t, v1, b.Velocity(), "no force means no further acceleration without damping")
}

func TestBody_LocalForceFollowsOrientation(t *testing.T) {
	w := NewWorld(1.0/60, 10)
	w.Gravity = mgl64.Vec3{}
	cfg := unitBox(mgl64.Vec3{})
	cfg.Rotation = mgl64.Vec3{0, math.Pi, 0}
	b := w.AddBody(cfg)

	b.ApplyLocalForce(mgl64.Vec3{0, 0, -60})
	w.StepOnce()

	v := b.Velocity()
	assert.InDelta(t, 1.0, v.Z(), 1e-9, "yaw of pi flips local -Z to world +Z")
	assert.InDelta(t, 0, v.X(), 1e-9)
}

func TestBody_LinearDamping(t *testing.T) {
	w := NewWorld(1.0/60, 10)
	w.Gravity = mgl64.Vec3{}
	cfg := unitBox(mgl64.Vec3{})
	cfg.LinearDamping = 0.5
	b := w.AddBody(cfg)
	b.vel = mgl64.Vec3{1, 0, 0}

	for i := 0; i < 60; i++ {
		w.StepOnce()
	}
	assert.InDelta(t, 0.5, b.Velocity().X(), 1e-9)
}

func TestBody_TorqueYaws(t *testing.T) {
	w := NewWorld(1.0/60, 10)
	w.Gravity = mgl64.Vec3{}
	b := w.AddBody(unitBox(mgl64.Vec3{}))

	b.ApplyTorque(mgl64.Vec3{0, 10, 0})
	w.StepOnce()
	assert.Greater(t, b.AngularVelocity().Y(), 0.0)

	for i := 0; i < 30; i++ {
		w.StepOnce()
	}
	rot := b.Rotation()
	assert.Greater(t, rot.Y(), 0.0)
	assert.InDelta(t, 0, rot.X(), 1e-9)
	assert.InDelta(t, 0, rot.Z(), 1e-9)
}

func TestWorld_PlaneBounceAndRest(t *testing.T) {
	w := NewWorld(1.0/60, 10)
	w.AddPlane(NewSurface())
	b := w.AddBody(unitBox(mgl64.Vec3{0, 2, 0}))

	bounced := false
	for i := 0; i < 120 && !bounced; i++ {
		w.StepOnce()
		bounced = b.Velocity().Y() > 0
	}
	require.True(t, bounced, "restitution should reflect the first impact")

	for i := 0; i < 600; i++ {
		w.StepOnce()
	}
	assert.InDelta(t, SurfaceHeight+0.5, b.Position().Y(), 1e-6)
	assert.Equal(t, 0.0, b.Velocity().Y())
}

func TestWorld_FrictionStopsSliding(t *testing.T) {
	w := NewWorld(1.0/60, 10)
	w.AddPlane(NewSurface())
	b := w.AddBody(unitBox(mgl64.Vec3{0, SurfaceHeight + 0.5, 0}))
	b.vel = mgl64.Vec3{1, 0, 0}

	for i := 0; i < 120; i++ {
		w.StepOnce()
	}
	assert.Equal(t, 0.0, b.Velocity().X())
}

func TestBody_VelocitySubscription(t *testing.T) {
	w := NewWorld(1.0/60, 10)
	b := w.AddBody(unitBox(mgl64.Vec3{}))

	var calls int
	var last mgl64.Vec3
	unsub := b.SubscribeVelocity(func(v mgl64.Vec3) {
		calls++
		last = v
	})
	require.Equal(t, 1, b.Subscribers())

	for i := 0; i < 3; i++ {
		w.StepOnce()
	}
	assert.Equal(t, 3, calls)
	assert.Equal(t, b.Velocity(), last)

	unsub()
	unsub()
	assert.Equal(t, 0, b.Subscribers())
	w.StepOnce()
	assert.Equal(t, 3, calls)
}

func TestWorld_RemoveBody(t *testing.T) {
	w := NewWorld(1.0/60, 10)
	b := w.AddBody(unitBox(mgl64.Vec3{}))
	require.Equal(t, 1, w.Bodies())

	w.RemoveBody(b)
	assert.Equal(t, 0, w.Bodies())
	before := b.Position()
	w.StepOnce()
	assert.Equal(t, before, b.Position())
}

func TestBody_RotationReadsYawAsYaw(t *testing.T) {
	for _, yaw := range []float64{0, 0.7, -2.5, 2.5, math.Pi} {
		cfg := unitBox(mgl64.Vec3{})
		cfg.Rotation = mgl64.Vec3{0, yaw, 0}
		b := NewWorld(1.0/60, 10).AddBody(cfg)

		rot := b.Rotation()
		assert.InDelta(t, 0, rot.X(), 1e-9, "yaw %v", yaw)
		assert.InDelta(t, 0, rot.Z(), 1e-9, "yaw %v", yaw)
		if yaw == math.Pi {
			// ±π are the same heading.
			assert.InDelta(t, math.Pi, math.Abs(rot.Y()), 1e-9)
			continue
		}
		assert.InDelta(t, yaw, rot.Y(), 1e-9, "yaw %v", yaw)
	}
}

func TestWrapAngle(t *testing.T) {
	assert.InDelta(t, 0, wrapAngle(2*math.Pi), 1e-12)
	assert.InDelta(t, -math.Pi/2, wrapAngle(3*math.Pi/2), 1e-12)
	assert.InDelta(t, 0.5, wrapAngle(0.5), 1e-12)
}
