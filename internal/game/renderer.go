package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Jabulani101/GHO57-RACING/internal/hud"
	"github.com/Jabulani101/GHO57-RACING/internal/sim"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Mesh VBO layout: ground quad first, then a unit cube centred on the origin.
const (
	groundFirst = 0
	groundCount = 6
	cubeFirst   = groundCount
	cubeCount   = 36
)

type Renderer struct {
	// Lit mesh program.
	meshProg uint32
	meshVAO  uint32
	meshVBO  uint32

	uViewProj int32
	uModel    int32
	uColor    int32
	uAmbient  int32
	uLightPos int32

	// Screen-space rect program.
	rectProg uint32
	rectVAO  uint32
	rectVBO  uint32
	rectURes int32
	rectBuf  []float32

	// Font/text rendering.
	font         fontAtlas
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32

	viewProj mgl32.Mat4
}

func NewRenderer() (*Renderer, error) {
	meshProg, err := linkProgram(meshVertSrc, meshFragSrc)
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	rectProg, err := linkProgram(rectVertSrc, rectFragSrc)
	if err != nil {
		gl.DeleteProgram(meshProg)
		return nil, fmt.Errorf("rect program: %w", err)
	}

	r := &Renderer{
		meshProg: meshProg,
		rectProg: rectProg,
	}

	// Mesh VAO/VBO: pos(3) + normal(3) per vertex.
	var mVAO, mVBO uint32
	gl.GenVertexArrays(1, &mVAO)
	gl.GenBuffers(1, &mVBO)
	gl.BindVertexArray(mVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, mVBO)

	verts := append(groundVertices(sim.SurfaceHeight, sim.SurfaceExtent), cubeVertices()...)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	stride := int32(6 * 4)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aNormal
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
	r.meshVAO = mVAO
	r.meshVBO = mVBO

	gl.UseProgram(meshProg)
	r.uViewProj = gl.GetUniformLocation(meshProg, gl.Str("uViewProj\x00"))
	r.uModel = gl.GetUniformLocation(meshProg, gl.Str("uModel\x00"))
	r.uColor = gl.GetUniformLocation(meshProg, gl.Str("uColor\x00"))
	r.uAmbient = gl.GetUniformLocation(meshProg, gl.Str("uAmbient\x00"))
	r.uLightPos = gl.GetUniformLocation(meshProg, gl.Str("uLightPos\x00"))
	gl.Uniform1f(r.uAmbient, AmbientIntensity)
	gl.Uniform3f(r.uLightPos, LightX, LightY, LightZ)

	// Rect VAO/VBO: streaming pos(2) + color(4).
	var rVAO, rVBO uint32
	gl.GenVertexArrays(1, &rVAO)
	gl.GenBuffers(1, &rVBO)
	gl.BindVertexArray(rVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, rVBO)
	rStride := int32(6 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, 64*6*int(rStride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, rStride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aColor
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, rStride, glOffset(2*4))
	r.rectVAO = rVAO
	r.rectVBO = rVBO

	gl.UseProgram(rectProg)
	r.rectURes = gl.GetUniformLocation(rectProg, gl.Str("uResolution\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.meshVBO, r.rectVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.meshVAO, r.rectVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.meshProg, r.rectProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

// BeginFrame clears the framebuffer and loads the camera for the 3D pass.
func (r *Renderer) BeginFrame(cam Camera, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	sr, sg, sb := Palette.Sky.F32()
	gl.ClearColor(sr, sg, sb, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.UseProgram(r.meshProg)
	gl.BindVertexArray(r.meshVAO)

	r.viewProj = cam.ViewProj(fbW, fbH)
	gl.UniformMatrix4fv(r.uViewProj, 1, false, &r.viewProj[0])
}

func (r *Renderer) drawMesh(first, count int32, model mgl32.Mat4, col RGB) {
	cr, cg, cb := col.F32()
	gl.Uniform3f(r.uColor, cr, cg, cb)
	gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

// DrawGround draws the flat surface the car drives on.
func (r *Renderer) DrawGround() {
	r.drawMesh(groundFirst, groundCount, mgl32.Ident4(), Palette.Ground)
}

// DrawCar draws the car as a chassis, cabin and four wheels following the
// body pose.
func (r *Renderer) DrawCar(f sim.Frame, halfExtents mgl32.Vec3) {
	pose := mgl32.Translate3D(toVec32(f.Vehicle.Position).Elem()).
		Mul4(toQuat32(f.Orientation).Mat4()).
		Mul4(mgl32.Scale3D(sim.CarVisualScale, sim.CarVisualScale, sim.CarVisualScale))

	w, h, l := 2*halfExtents.X(), 2*halfExtents.Y(), 2*halfExtents.Z()
	part := func(offset, size mgl32.Vec3, col RGB) {
		model := pose.Mul4(mgl32.Translate3D(offset.Elem())).Mul4(mgl32.Scale3D(size.Elem()))
		r.drawMesh(cubeFirst, cubeCount, model, col)
	}

	chassisY := -h/2 + ChassisHeight*h/2
	part(mgl32.Vec3{0, chassisY, 0}, mgl32.Vec3{w, ChassisHeight * h, l}, Palette.Chassis)
	part(
		mgl32.Vec3{0, chassisY + (ChassisHeight+CabinHeight)*h/2, CabinOffsetZ * l},
		mgl32.Vec3{CabinWidth * w, CabinHeight * h, CabinLength * l},
		Palette.Cabin,
	)

	wheel := mgl32.Vec3{WheelSize, WheelSize, WheelSize}
	wy := -h/2 + WheelSize/2
	for _, sx := range []float32{-1, 1} {
		for _, sz := range []float32{-1, 1} {
			part(mgl32.Vec3{sx * w / 2, wy, sz * (l/2 - WheelSize)}, wheel, Palette.Wheel)
		}
	}
}

// DrawRect queues a screen-space rect whose colour ramps from left to right.
func (r *Renderer) DrawRect(rc hud.Rect, left, right RGB, alpha float32) {
	x0, y0 := float32(rc.X), float32(rc.Y)
	x1, y1 := float32(rc.X+rc.W), float32(rc.Y+rc.H)
	lr, lg, lb := left.F32()
	rr, rg, rb := right.F32()
	r.rectBuf = append(r.rectBuf,
		x0, y0, lr, lg, lb, alpha,
		x1, y0, rr, rg, rb, alpha,
		x0, y1, lr, lg, lb, alpha,
		x1, y0, rr, rg, rb, alpha,
		x1, y1, rr, rg, rb, alpha,
		x0, y1, lr, lg, lb, alpha,
	)
}

// FlushRects draws all queued rects over the 3D scene and clears the queue.
func (r *Renderer) FlushRects(fbW, fbH int) {
	if len(r.rectBuf) == 0 {
		return
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(r.rectProg)
	gl.BindVertexArray(r.rectVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.rectVBO)
	gl.Uniform2f(r.rectURes, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	count := len(r.rectBuf) / 6
	gl.BufferData(gl.ARRAY_BUFFER, len(r.rectBuf)*4, gl.Ptr(r.rectBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))

	gl.Disable(gl.BLEND)
	r.rectBuf = r.rectBuf[:0]
}

// groundVertices is a square of the given extent at height y, facing up.
func groundVertices(y, extent float64) []float32 {
	h := float32(extent / 2)
	fy := float32(y)
	return []float32{
		-h, fy, -h, 0, 1, 0,
		-h, fy, h, 0, 1, 0,
		h, fy, h, 0, 1, 0,
		-h, fy, -h, 0, 1, 0,
		h, fy, h, 0, 1, 0,
		h, fy, -h, 0, 1, 0,
	}
}

// cubeVertices is a unit cube (side 1) with per-face normals.
func cubeVertices() []float32 {
	faces := []struct {
		n    mgl32.Vec3
		u, v mgl32.Vec3
	}{
		{n: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, 1, 0}},
		{n: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}},
		{n: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}},
		{n: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}},
		{n: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
		{n: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	}
	out := make([]float32, 0, cubeCount*6)
	for _, f := range faces {
		c := f.n.Mul(0.5)
		corner := func(su, sv float32) mgl32.Vec3 {
			return c.Add(f.u.Mul(su * 0.5)).Add(f.v.Mul(sv * 0.5))
		}
		quad := [6]mgl32.Vec3{
			corner(-1, -1), corner(1, -1), corner(1, 1),
			corner(-1, -1), corner(1, 1), corner(-1, 1),
		}
		for _, p := range quad {
			out = append(out, p.X(), p.Y(), p.Z(), f.n.X(), f.n.Y(), f.n.Z())
		}
	}
	return out
}
