package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/hajimehoshi/bitmapfont/v4"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/Jabulani101/GHO57-RACING/internal/hud"
)

// FontCols is the number of glyph cells per atlas row; the atlas holds
// the first 128 code points so a rune indexes its own cell.
const FontCols = 16

type fontAtlas struct {
	cellW, cellH int
	w, h         int
}

func (a fontAtlas) Metrics() hud.Metrics {
	return hud.Metrics{CellW: a.cellW, CellH: a.cellH}
}

// rasterizeFont draws printable ASCII from face into a white-on-clear atlas.
func rasterizeFont(face font.Face) (*image.NRGBA, fontAtlas, error) {
	m := face.Metrics()
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		return nil, fontAtlas{}, fmt.Errorf("font has no glyph for %q", 'M')
	}
	a := fontAtlas{cellW: adv.Ceil(), cellH: m.Height.Ceil()}
	if a.cellW <= 0 || a.cellH <= 0 {
		return nil, fontAtlas{}, fmt.Errorf("font cell is empty: %dx%d", a.cellW, a.cellH)
	}
	a.w = a.cellW * FontCols
	a.h = a.cellH * (128 / FontCols)

	img := image.NewNRGBA(image.Rect(0, 0, a.w, a.h))
	d := font.Drawer{Dst: img, Src: image.NewUniform(color.White), Face: face}
	for c := 32; c < 127; c++ {
		col, row := c%FontCols, c/FontCols
		d.Dot = fixed.P(col*a.cellW, row*a.cellH+m.Ascent.Ceil())
		d.DrawString(string(rune(c)))
	}
	return img, a, nil
}

// InitFont builds the font atlas and sets up the text rendering pipeline.
func (r *Renderer) InitFont() error {
	img, atlas, err := rasterizeFont(bitmapfont.Face)
	if err != nil {
		return fmt.Errorf("rasterize font: %w", err)
	}
	r.font = atlas

	// Upload font atlas to GL texture.
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(atlas.w), int32(atlas.h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	r.fontTex = tex

	// Text shader program.
	prog, err := linkProgram(textVertSrc, textFragSrc)
	if err != nil {
		return fmt.Errorf("text program: %w", err)
	}
	r.textProg = prog
	gl.UseProgram(prog)
	r.textURes = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))
	r.textUFontTex = gl.GetUniformLocation(prog, gl.Str("uFontTex\x00"))
	gl.Uniform1i(r.textUFontTex, 2) // texture unit 2

	// Text VAO/VBO: per-vertex pos(2) + uv(2) + color(4) = 8 floats.
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxTextQuads*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aUV
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2) // aColor
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))

	r.textVAO = vao
	r.textVBO = vbo
	gl.BindVertexArray(0)
	return nil
}

// DrawChar queues a single character as a textured quad in screen pixel space.
func (r *Renderer) DrawChar(ch rune, sx, sy, scale float32, col RGB) {
	if ch < 32 || ch > 126 {
		return
	}
	c := int(ch)
	column := c % FontCols
	row := c / FontCols

	u0 := float32(column*r.font.cellW) / float32(r.font.w)
	v0 := float32(row*r.font.cellH) / float32(r.font.h)
	u1 := float32((column+1)*r.font.cellW) / float32(r.font.w)
	v1 := float32((row+1)*r.font.cellH) / float32(r.font.h)

	w := float32(r.font.cellW) * scale
	h := float32(r.font.cellH) * scale

	cr, cg, cb := col.F32()

	// Two triangles: TL, TR, BL then TR, BR, BL.
	r.textBuf = append(r.textBuf,
		sx, sy, u0, v0, cr, cg, cb, 1,
		sx+w, sy, u1, v0, cr, cg, cb, 1,
		sx, sy+h, u0, v1, cr, cg, cb, 1,
		sx+w, sy, u1, v0, cr, cg, cb, 1,
		sx+w, sy+h, u1, v1, cr, cg, cb, 1,
		sx, sy+h, u0, v1, cr, cg, cb, 1,
	)
}

// DrawString queues a string at screen pixel position (sx, sy) with given scale.
func (r *Renderer) DrawString(text string, sx, sy int, scale float32, col RGB) {
	advance := float32(r.font.cellW) * scale
	lineAdvance := float32(r.font.cellH) * scale
	baseX := float32(sx)
	x := float32(sx)
	y := float32(sy)
	for _, ch := range text {
		if ch == '\n' {
			x = baseX
			y += lineAdvance
			continue
		}
		r.DrawChar(ch, x, y, scale, col)
		x += advance
	}
}

// FlushText draws all buffered text quads and clears the buffer.
func (r *Renderer) FlushText(fbW, fbH int) {
	if len(r.textBuf) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(r.textProg)
	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)

	gl.Uniform2f(r.textURes, float32(fbW), float32(fbH))

	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	count := len(r.textBuf) / 8
	gl.BufferData(gl.ARRAY_BUFFER, len(r.textBuf)*4, gl.Ptr(r.textBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))

	gl.Disable(gl.BLEND)
	gl.ActiveTexture(gl.TEXTURE0)
	r.textBuf = r.textBuf[:0]
}
