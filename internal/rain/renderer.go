package rain

import (
	"fmt"
	"log"
	"time"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	glyphFloats = 8 // pos(2) uv(2) rgba(4)
	pointFloats = 7 // pos(2) size(1) rgba(4)
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Renderer draws a Scene with two streamed vertex buffers: one textured
// quad batch for glyphs and one point-sprite batch for marker squares.
// Every layer of a frame goes out in at most three draw calls.
type Renderer struct {
	glyphProg uint32
	glyphVAO  uint32
	glyphVBO  uint32
	glyphRes  int32
	atlasTex  uint32

	squareProg uint32
	squareVAO  uint32
	squareVBO  uint32
	squareRes  int32

	verts  []float32
	points []float32

	clock *FrameClock
}

// NewRenderer compiles the shader programs, uploads the glyph atlas and
// sets the persistent GL state. The GL context must be current.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{clock: NewFrameClock(FrameBudget)}

	var err error
	r.glyphProg, err = linkProgram(glyphVertSrc, glyphFragSrc)
	if err != nil {
		return nil, fmt.Errorf("glyph program: %w", err)
	}
	r.squareProg, err = linkProgram(squareVertSrc, squareFragSrc)
	if err != nil {
		return nil, fmt.Errorf("square program: %w", err)
	}
	r.glyphRes = gl.GetUniformLocation(r.glyphProg, gl.Str("uResolution\x00"))
	r.squareRes = gl.GetUniformLocation(r.squareProg, gl.Str("uResolution\x00"))

	gl.UseProgram(r.glyphProg)
	gl.Uniform1i(gl.GetUniformLocation(r.glyphProg, gl.Str("uAtlas\x00")), 0)

	r.initGlyphBuffers()
	r.initSquareBuffers()
	r.uploadAtlas()

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Disable(gl.DEPTH_TEST)

	return r, nil
}

func (r *Renderer) initGlyphBuffers() {
	gl.GenVertexArrays(1, &r.glyphVAO)
	gl.GenBuffers(1, &r.glyphVBO)
	gl.BindVertexArray(r.glyphVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.glyphVBO)

	stride := int32(glyphFloats * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))
	gl.BindVertexArray(0)
}

func (r *Renderer) initSquareBuffers() {
	gl.GenVertexArrays(1, &r.squareVAO)
	gl.GenBuffers(1, &r.squareVBO)
	gl.BindVertexArray(r.squareVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.squareVBO)

	stride := int32(pointFloats * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	gl.BindVertexArray(0)
}

func (r *Renderer) uploadAtlas() {
	img := buildAtlasImage()
	gl.GenTextures(1, &r.atlasTex)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlasTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
}

// Draw renders one frame. The dark translucent clear is what produces the
// fading afterimage on an opaque surface; on a transparent window it dims
// the desktop behind the rain.
func (r *Renderer) Draw(sc *Scene, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(0, 0, 0, BackgroundAlpha)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	glyphs := sc.Glyphs
	if len(glyphs) > MaxGlyphRender {
		glyphs = glyphs[len(glyphs)-MaxGlyphRender:]
	}
	split := sc.SymbolStart - (len(sc.Glyphs) - len(glyphs))
	if split < 0 {
		split = 0
	}

	w, h := float32(fbW), float32(fbH)
	r.drawGlyphs(glyphs[:split], w, h)
	r.drawSquares(sc.Points, w, h)
	r.drawGlyphs(glyphs[split:], w, h)
}

func (r *Renderer) drawGlyphs(glyphs []GlyphDraw, w, h float32) {
	if len(glyphs) == 0 {
		return
	}
	r.verts = r.verts[:0]
	for i := range glyphs {
		r.appendGlyph(&glyphs[i])
	}

	gl.UseProgram(r.glyphProg)
	gl.Uniform2f(r.glyphRes, w, h)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlasTex)
	gl.BindVertexArray(r.glyphVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.glyphVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.verts)*4, gl.Ptr(r.verts), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.verts)/glyphFloats))
	gl.BindVertexArray(0)
}

// appendGlyph emits two triangles for one glyph quad, top-left anchored.
func (r *Renderer) appendGlyph(g *GlyphDraw) {
	u0, v0, u1, v1 := atlasUV(g.Glyph)
	gw := float32(FontCellW) * g.Scale
	gh := float32(FontCellH) * g.Scale
	x0, y0 := g.X, g.Y
	x1, y1 := g.X+gw, g.Y+gh

	cr := float32(g.Col.R) / 255
	cg := float32(g.Col.G) / 255
	cb := float32(g.Col.B) / 255
	ca := float32(g.Col.A) / 255

	r.verts = append(r.verts,
		x0, y0, u0, v0, cr, cg, cb, ca,
		x1, y0, u1, v0, cr, cg, cb, ca,
		x1, y1, u1, v1, cr, cg, cb, ca,

		x0, y0, u0, v0, cr, cg, cb, ca,
		x1, y1, u1, v1, cr, cg, cb, ca,
		x0, y1, u0, v1, cr, cg, cb, ca,
	)
}

func (r *Renderer) drawSquares(points []PointDraw, w, h float32) {
	if len(points) == 0 {
		return
	}
	r.points = r.points[:0]
	for i := range points {
		p := &points[i]
		r.points = append(r.points,
			p.X, p.Y, p.Size,
			float32(p.Col.R)/255, float32(p.Col.G)/255,
			float32(p.Col.B)/255, float32(p.Col.A)/255,
		)
	}

	gl.UseProgram(r.squareProg)
	gl.Uniform2f(r.squareRes, w, h)
	gl.BindVertexArray(r.squareVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.squareVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.points)*4, gl.Ptr(r.points), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(len(r.points)/pointFloats))
	gl.BindVertexArray(0)
}

// ObserveFrame records one frame's wall time and logs when the rolling
// average exceeds the budget. Purely diagnostic.
func (r *Renderer) ObserveFrame(d time.Duration, glyphCount int) {
	if r.clock.Observe(d) {
		log.Printf("frame budget exceeded: avg %.1fms over %d frames (%d glyphs)",
			float64(r.clock.Average().Microseconds())/1000.0, FrameWindow, glyphCount)
	}
}

func (r *Renderer) Destroy() {
	gl.DeleteTextures(1, &r.atlasTex)
	gl.DeleteBuffers(1, &r.glyphVBO)
	gl.DeleteBuffers(1, &r.squareVBO)
	gl.DeleteVertexArrays(1, &r.glyphVAO)
	gl.DeleteVertexArrays(1, &r.squareVAO)
	gl.DeleteProgram(r.glyphProg)
	gl.DeleteProgram(r.squareProg)
}
