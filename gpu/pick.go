package gpu

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PickFormat selects the color format of the pick target.
type PickFormat int

const (
	// PickRGB8 stores 24-bit ids (desktop GL).
	PickRGB8 PickFormat = iota
	// PickRGB565 stores 16-bit ids (GL ES).
	PickRGB565
)

// String returns the configuration name of the format.
func (f PickFormat) String() string {
	if f == PickRGB565 {
		return "rgb565"
	}
	return "rgb8"
}

// ParsePickFormat maps a configuration name to a format.
func ParsePickFormat(s string) (PickFormat, bool) {
	switch s {
	case "", "rgb8":
		return PickRGB8, true
	case "rgb565":
		return PickRGB565, true
	}
	return PickRGB8, false
}

// pickScale magnifies the picked point so that one pixel covers it.
const pickScale = 10000

// PickTarget is a lazily created 1x1 framebuffer with color and depth.
type PickTarget struct {
	gl     GL
	format PickFormat
	fbo    uint32
}

// NewPickTarget creates an unallocated pick target.
func NewPickTarget(gl GL, format PickFormat) *PickTarget {
	return &PickTarget{gl: gl, format: format}
}

// Format returns the color format.
func (p *PickTarget) Format() PickFormat {
	return p.format
}

// Ensure creates the framebuffer on first use. It returns false, leaving
// nothing allocated, when the framebuffer is incomplete.
func (p *PickTarget) Ensure() bool {
	if p.fbo != 0 {
		return true
	}
	gl := p.gl

	colorFormat, depthFormat := RGB8, DepthComponent
	if p.format == PickRGB565 {
		colorFormat, depthFormat = RGB565, DepthComponent16
	}

	color := gl.GenRenderbuffer()
	gl.BindRenderbuffer(Renderbuffer, color)
	gl.RenderbufferStorage(Renderbuffer, colorFormat, 1, 1)
	depth := gl.GenRenderbuffer()
	gl.BindRenderbuffer(Renderbuffer, depth)
	gl.RenderbufferStorage(Renderbuffer, depthFormat, 1, 1)
	gl.BindRenderbuffer(Renderbuffer, 0)

	fbo := gl.GenFramebuffer()
	gl.BindFramebuffer(Framebuffer, fbo)
	gl.FramebufferRenderbuffer(Framebuffer, ColorAttachment0, Renderbuffer, color)
	gl.FramebufferRenderbuffer(Framebuffer, DepthAttachment, Renderbuffer, depth)
	status := gl.CheckFramebufferStatus(Framebuffer)
	gl.BindFramebuffer(Framebuffer, 0)

	// the framebuffer keeps its own references
	gl.DeleteRenderbuffer(color)
	gl.DeleteRenderbuffer(depth)

	if status != FramebufferComplete {
		gl.DeleteFramebuffer(fbo)
		return false
	}
	p.fbo = fbo
	return true
}

// Begin binds the target and clears it to black.
func (p *PickTarget) Begin() {
	gl := p.gl
	gl.BindFramebuffer(Framebuffer, p.fbo)
	gl.Viewport(0, 0, 1, 1)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(ColorBufferBit | DepthBufferBit)
}

// End reads back the single pixel, unbinds the target and decodes the id.
func (p *PickTarget) End() int {
	var pixel [4]byte
	p.gl.ReadPixels(0, 0, 1, 1, RGBA, UnsignedByte, pixel[:])
	p.gl.BindFramebuffer(Framebuffer, 0)
	return DecodePickID(pixel, p.format)
}

// Delete releases the framebuffer. The next Ensure recreates it.
func (p *PickTarget) Delete() {
	if p.fbo == 0 {
		return
	}
	p.gl.DeleteFramebuffer(p.fbo)
	p.fbo = 0
}

// DecodePickID turns a read-back pixel into an object id.
func DecodePickID(pixel [4]byte, format PickFormat) int {
	r, g, b := int(pixel[0]), int(pixel[1]), int(pixel[2])
	if format == PickRGB565 {
		return (r >> 3) + (g>>2)*32 + (b>>3)*2048
	}
	return r + g*256 + b*65536
}

// PickArea returns the matrix that maps the clip-space point (x, y) onto
// the pick pixel. It is applied after the projection.
func PickArea(x, y float32) mgl32.Mat4 {
	return mgl32.Mat4{
		pickScale, 0, 0, 0,
		0, pickScale, 0, 0,
		0, 0, 1, 0,
		-x * pickScale, -y * pickScale, 0, 1,
	}
}
