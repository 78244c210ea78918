package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyConfig describes a dynamic box body.
type BodyConfig struct {
	Mass           float64
	Position       mgl64.Vec3
	Rotation       mgl64.Vec3 // Euler XYZ, radians
	HalfExtents    mgl64.Vec3
	LinearDamping  float64
	AngularDamping float64
}

type velocitySub struct {
	id int
	fn func(mgl64.Vec3)
}

// Body is a rigid box. Forces and torques accumulate until the next step
// and are then cleared, so each Apply call is a one-step impulse.
type Body struct {
	invMass     float64
	invInertia  mgl64.Vec3 // diagonal, body frame
	halfExtents mgl64.Vec3

	pos    mgl64.Vec3
	orient mgl64.Quat
	vel    mgl64.Vec3
	angVel mgl64.Vec3

	force  mgl64.Vec3
	torque mgl64.Vec3

	linearDamping  float64
	angularDamping float64

	subs    []velocitySub
	nextSub int
}

func newBody(cfg BodyConfig) *Body {
	b := &Body{
		halfExtents:    cfg.HalfExtents,
		pos:            cfg.Position,
		orient:         mgl64.AnglesToQuat(cfg.Rotation[0], cfg.Rotation[1], cfg.Rotation[2], mgl64.XYZ),
		linearDamping:  mgl64.Clamp(cfg.LinearDamping, 0, 1),
		angularDamping: mgl64.Clamp(cfg.AngularDamping, 0, 1),
	}
	if cfg.Mass > 0 {
		b.invMass = 1 / cfg.Mass
		sx, sy, sz := 2*cfg.HalfExtents[0], 2*cfg.HalfExtents[1], 2*cfg.HalfExtents[2]
		ix := cfg.Mass / 12 * (sy*sy + sz*sz)
		iy := cfg.Mass / 12 * (sx*sx + sz*sz)
		iz := cfg.Mass / 12 * (sx*sx + sy*sy)
		b.invInertia = mgl64.Vec3{invOrZero(ix), invOrZero(iy), invOrZero(iz)}
	}
	return b
}

func invOrZero(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return 1 / v
}

// ApplyForce adds a world-frame force through the centre of mass.
func (b *Body) ApplyForce(f mgl64.Vec3) {
	b.force = b.force.Add(f)
}

// ApplyLocalForce adds a force expressed in the body frame.
func (b *Body) ApplyLocalForce(f mgl64.Vec3) {
	b.ApplyForce(b.orient.Rotate(f))
}

// ApplyTorque adds a world-frame torque.
func (b *Body) ApplyTorque(t mgl64.Vec3) {
	b.torque = b.torque.Add(t)
}

func (b *Body) Position() mgl64.Vec3        { return b.pos }
func (b *Body) Orientation() mgl64.Quat     { return b.orient }
func (b *Body) Velocity() mgl64.Vec3        { return b.vel }
func (b *Body) AngularVelocity() mgl64.Vec3 { return b.angVel }
func (b *Body) HalfExtents() mgl64.Vec3     { return b.halfExtents }

// PendingForce returns the force accumulated since the last step.
func (b *Body) PendingForce() mgl64.Vec3 { return b.force }

// ClearForces drops the force and torque accumulated since the last step.
func (b *Body) ClearForces() {
	b.force = mgl64.Vec3{}
	b.torque = mgl64.Vec3{}
}

// PendingTorque returns the torque accumulated since the last step.
func (b *Body) PendingTorque() mgl64.Vec3 { return b.torque }

// Rotation returns the orientation as Euler XYZ angles in radians.
func (b *Body) Rotation() mgl64.Vec3 {
	return eulerXYZ(b.orient)
}

// SubscribeVelocity registers fn to receive the velocity after every step.
// The returned func removes the subscription and is safe to call twice.
func (b *Body) SubscribeVelocity(fn func(mgl64.Vec3)) func() {
	id := b.nextSub
	b.nextSub++
	b.subs = append(b.subs, velocitySub{id: id, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers reports the number of live velocity subscriptions.
func (b *Body) Subscribers() int { return len(b.subs) }

func (b *Body) publish() {
	for _, s := range b.subs {
		s.fn(b.vel)
	}
}

// lowestOffset is the distance from the centre to the lowest point of the box.
func (b *Body) lowestOffset() float64 {
	up := b.orient.Conjugate().Rotate(mgl64.Vec3{0, 1, 0})
	he := b.halfExtents
	return math.Abs(up[0])*he[0] + math.Abs(up[1])*he[1] + math.Abs(up[2])*he[2]
}

// Plane is an infinite static horizontal collision plane.
type Plane struct {
	Height      float64
	Friction    float64
	Restitution float64
}

// World integrates bodies with a fixed step.
type World struct {
	Gravity     mgl64.Vec3
	Step        float64
	MaxSubSteps int

	bodies []*Body
	planes []Plane
	accum  float64
}

func NewWorld(step float64, maxSubSteps int) *World {
	if step <= 0 {
		step = DefaultStep
	}
	if maxSubSteps <= 0 {
		maxSubSteps = DefaultMaxSubSteps
	}
	return &World{
		Gravity:     mgl64.Vec3{0, Gravity, 0},
		Step:        step,
		MaxSubSteps: maxSubSteps,
	}
}

func (w *World) AddBody(cfg BodyConfig) *Body {
	b := newBody(cfg)
	w.bodies = append(w.bodies, b)
	return b
}

// RemoveBody detaches b; it is no longer stepped or published.
func (w *World) RemoveBody(b *Body) {
	for i, o := range w.bodies {
		if o == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

func (w *World) AddPlane(p Plane) {
	w.planes = append(w.planes, p)
}

func (w *World) Bodies() int { return len(w.bodies) }

// Advance consumes dt seconds of wall time in fixed steps and returns the
// number of steps taken. Backlog beyond MaxSubSteps is dropped.
func (w *World) Advance(dt float64) int {
	if dt <= 0 {
		return 0
	}
	w.accum += dt
	steps := 0
	for w.accum >= w.Step && steps < w.MaxSubSteps {
		w.StepOnce()
		w.accum -= w.Step
		steps++
	}
	if w.accum >= w.Step {
		w.accum = 0
	}
	return steps
}

// StepOnce advances every body by exactly one step.
func (w *World) StepOnce() {
	h := w.Step
	for _, b := range w.bodies {
		w.integrate(b, h)
		for _, p := range w.planes {
			w.collidePlane(b, p, h)
		}
		b.ClearForces()
		b.publish()
	}
}

func (w *World) integrate(b *Body, h float64) {
	if b.invMass == 0 {
		return
	}
	acc := w.Gravity.Add(b.force.Mul(b.invMass))
	b.vel = b.vel.Add(acc.Mul(h))
	b.vel = b.vel.Mul(math.Pow(1-b.linearDamping, h))

	localTorque := b.orient.Conjugate().Rotate(b.torque)
	localAcc := mgl64.Vec3{
		localTorque[0] * b.invInertia[0],
		localTorque[1] * b.invInertia[1],
		localTorque[2] * b.invInertia[2],
	}
	b.angVel = b.angVel.Add(b.orient.Rotate(localAcc).Mul(h))
	b.angVel = b.angVel.Mul(math.Pow(1-b.angularDamping, h))

	b.pos = b.pos.Add(b.vel.Mul(h))

	spin := mgl64.Quat{W: 0, V: b.angVel}.Mul(b.orient).Scale(0.5 * h)
	b.orient = b.orient.Add(spin).Normalize()
}

func (w *World) collidePlane(b *Body, p Plane, h float64) {
	pen := p.Height - (b.pos[1] - b.lowestOffset())
	if pen <= 0 {
		return
	}
	b.pos[1] += pen

	g := math.Abs(w.Gravity[1])
	if b.vel[1] < 0 {
		incoming := -b.vel[1]
		// Small approach speeds settle instead of bouncing forever.
		if incoming > 2*g*h {
			b.vel[1] = incoming * p.Restitution
		} else {
			b.vel[1] = 0
		}
	}

	tx, tz := b.vel[0], b.vel[2]
	tan := math.Hypot(tx, tz)
	if tan == 0 {
		return
	}
	drop := p.Friction * g * h
	if tan <= drop {
		b.vel[0], b.vel[2] = 0, 0
		return
	}
	k := (tan - drop) / tan
	b.vel[0] *= k
	b.vel[2] *= k
}

// eulerXYZ decomposes q into XYZ Euler angles. The triple (x, y, z) and
// (x+π, π-y, z+π) describe the same rotation; the one with the smaller
// x and z is returned so a pure yaw reads back as (0, yaw, 0).
func eulerXYZ(q mgl64.Quat) mgl64.Vec3 {
	m := q.Mat4()
	m13 := mgl64.Clamp(m.At(0, 2), -1, 1)
	y := math.Asin(m13)
	var x, z float64
	if math.Abs(m13) < 0.9999999 {
		x = math.Atan2(-m.At(1, 2), m.At(2, 2))
		z = math.Atan2(-m.At(0, 1), m.At(0, 0))
	} else {
		x = math.Atan2(m.At(2, 1), m.At(1, 1))
	}

	ax, ay, az := wrapAngle(x+math.Pi), wrapAngle(math.Pi-y), wrapAngle(z+math.Pi)
	if math.Abs(ax)+math.Abs(az) < math.Abs(x)+math.Abs(z) {
		return mgl64.Vec3{ax, ay, az}
	}
	return mgl64.Vec3{x, y, z}
}

// wrapAngle maps a into [-π, π).
func wrapAngle(a float64) float64 {
	return a - 2*math.Pi*math.Floor((a+math.Pi)/(2*math.Pi))
}
