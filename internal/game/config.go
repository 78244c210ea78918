package game

import "time"

const WindowTitle = "GHO57 Racing"

// Projection.
const (
	NearPlane = 0.1
	FarPlane  = 2000.0
)

// Lighting, matching the scene's ambient fill and single key light.
const (
	AmbientIntensity = 0.5
	LightX           = 10.0
	LightY           = 10.0
	LightZ           = 10.0
)

// Car mesh proportions in body units, before CarVisualScale.
const (
	ChassisHeight = 0.5
	CabinWidth    = 0.8
	CabinHeight   = 0.4
	CabinLength   = 0.5
	CabinOffsetZ  = 0.1
	WheelSize     = 0.3
)

// HUD.
const (
	HUDMargin    = 12
	HUDTextScale = 1.5
	MaxTextQuads = 1024
	OverlayAlpha = 1.0 // the ad fully covers the scene
)

// Frame deltas above this are clamped so a stall cannot dump a burst of
// physics steps.
const DTClamp = 0.1

const AudioReadyTimeout = 2 * time.Second
