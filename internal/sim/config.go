package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Physics world defaults.
const (
	Gravity            = -9.81
	DefaultStep        = 1.0 / 60.0 // seconds per physics step
	DefaultMaxSubSteps = 10
)

// Car body.
const (
	CarMass           = 1200.0
	CarLinearDamping  = 0.95
	CarAngularDamping = 0.99
	CarVisualScale    = 0.8
)

// Car impulses (force along local Z, torque around Y).
const (
	ForwardForce = 50.0
	ReverseForce = 30.0
	SteerTorque  = 5.0
)

// Engine model.
const (
	MsToKmh          = 3.6
	MaxSpeedKmh      = 180.0
	MaxRPM           = 7000.0
	BasePlaybackRate = 0.8
)

// Surface material and placement.
const (
	SurfaceHeight      = -1.0
	SurfaceFriction    = 0.1
	SurfaceRestitution = 0.7
	SurfaceExtent      = 1000.0 // visual size only; the collision plane is infinite
)

// Camera.
const (
	CameraFOV         = 50.0 // vertical, degrees
	PointerScale      = 2.0
	CameraTargetDepth = -5.0
	// LegacyCameraFactor is the per-frame lerp factor the follow camera was
	// tuned with at 60 fps.
	LegacyCameraFactor = 0.05
)

// Ad gate.
const (
	DefaultAdDismissSeconds = 5.0
)

var (
	CarStartPosition = mgl64.Vec3{0, 0.5, 0}
	CarStartRotation = mgl64.Vec3{0, math.Pi, 0}
	CarHalfExtents   = mgl64.Vec3{0.5, 0.5, 0.5}

	CameraStart  = mgl64.Vec3{0, 5, 15}
	CameraLookAt = mgl64.Vec3{0, 0, -10}
)
