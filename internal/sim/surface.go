package sim

// NewSurface returns the track floor.
func NewSurface() Plane {
	return Plane{
		Height:      SurfaceHeight,
		Friction:    SurfaceFriction,
		Restitution: SurfaceRestitution,
	}
}
