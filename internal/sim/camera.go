package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pointer is a cursor position normalized to [-1,1] on both axes, y up.
type Pointer struct {
	X, Y float64
}

// CameraTarget maps a pointer to the point the camera drifts toward.
func CameraTarget(p Pointer) mgl64.Vec3 {
	x := mgl64.Clamp(p.X, -1, 1)
	y := mgl64.Clamp(p.Y, -1, 1)
	return mgl64.Vec3{x * PointerScale, y * PointerScale, CameraTargetDepth}
}

// SmoothingFactor returns the fraction of the remaining distance covered
// in dt seconds for an exponential decay with the given half-life.
func SmoothingFactor(dt, halfLife float64) float64 {
	if dt <= 0 {
		return 0
	}
	if halfLife <= 0 {
		return 1
	}
	return 1 - math.Exp2(-dt/halfLife)
}

// HalfLifeForFactor converts a per-frame lerp factor at a fixed frame time
// into the equivalent half-life.
func HalfLifeForFactor(factor, frameTime float64) float64 {
	if factor <= 0 || factor >= 1 || frameTime <= 0 {
		return 0
	}
	return frameTime * math.Ln2 / -math.Log(1-factor)
}

// DefaultCameraHalfLife matches LegacyCameraFactor at 60 fps.
var DefaultCameraHalfLife = HalfLifeForFactor(LegacyCameraFactor, 1.0/60.0)

// CameraFollower drifts the camera toward a pointer-derived target while
// always aiming at CameraLookAt. It never looks at the car.
type CameraFollower struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	HalfLife float64
}

func NewCameraFollower(halfLife float64) *CameraFollower {
	return &CameraFollower{
		Position: CameraStart,
		Target:   CameraStart,
		HalfLife: halfLife,
	}
}

// Update moves the camera toward the target for pointer p over dt seconds.
func (c *CameraFollower) Update(p Pointer, dt float64) {
	c.Target = CameraTarget(p)
	c.Step(SmoothingFactor(dt, c.HalfLife))
}

// Step lerps toward the current target by alpha, clamped to [0,1].
func (c *CameraFollower) Step(alpha float64) {
	alpha = mgl64.Clamp(alpha, 0, 1)
	c.Position = c.Position.Add(c.Target.Sub(c.Position).Mul(alpha))
}

func (c *CameraFollower) LookAt() mgl64.Vec3 { return CameraLookAt }
