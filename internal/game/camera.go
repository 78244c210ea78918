package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Jabulani101/GHO57-RACING/internal/sim"
)

// Camera is the render-side view of the follow camera for one frame.
type Camera struct {
	Eye, Center mgl32.Vec3
	FOV         float32 // vertical, degrees
}

func CameraFromFrame(f sim.Frame) Camera {
	return Camera{
		Eye:    toVec32(f.CameraPos),
		Center: toVec32(f.LookAt),
		FOV:    sim.CameraFOV,
	}
}

// ViewProj returns the combined view-projection matrix for a framebuffer.
func (c Camera) ViewProj(fbW, fbH int) mgl32.Mat4 {
	aspect := float32(1)
	if fbH > 0 {
		aspect = float32(fbW) / float32(fbH)
	}
	proj := mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, NearPlane, FarPlane)
	view := mgl32.LookAtV(c.Eye, c.Center, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

func toVec32(v mgl64.Vec3) mgl32.Vec3 {
	return vec32(v.X(), v.Y(), v.Z())
}

func toQuat32(q mgl64.Quat) mgl32.Quat {
	return mgl32.Quat{W: float32(q.W), V: toVec32(q.V)}
}
