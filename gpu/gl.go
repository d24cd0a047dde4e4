// Package gpu defines the subset of OpenGL the engine drives directly and
// the state sequences built on it: render-pass state, the alpha pass and
// the 1x1 pick target.
//
// Scene code issues its own draw calls through host symbols; this package
// only covers what the engine itself does around them.
package gpu

// GL is the slice of the OpenGL API used by the engine. The gpu/opengl
// package implements it on a live context; gpu/gputest records calls.
type GL interface {
	PixelStorei(pname uint32, param int32)
	BindBuffer(target, buffer uint32)
	BindVertexArray(array uint32)
	UseProgram(program uint32)

	DepthMask(flag bool)
	Enable(capability uint32)
	Disable(capability uint32)
	BlendFunc(sfactor, dfactor uint32)
	CullFace(mode uint32)

	GenRenderbuffer() uint32
	BindRenderbuffer(target, renderbuffer uint32)
	RenderbufferStorage(target, internalFormat uint32, width, height int32)
	DeleteRenderbuffer(renderbuffer uint32)

	GenFramebuffer() uint32
	BindFramebuffer(target, framebuffer uint32)
	FramebufferRenderbuffer(target, attachment, renderbufferTarget, renderbuffer uint32)
	CheckFramebufferStatus(target uint32) uint32
	DeleteFramebuffer(framebuffer uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte)
}

// OpenGL enumerants used by the engine.
const (
	Zero             uint32 = 0
	One              uint32 = 1
	OneMinusSrcAlpha uint32 = 0x0303

	Back     uint32 = 0x0405
	CullFace uint32 = 0x0B44
	Blend    uint32 = 0x0BE2

	UnpackAlignment uint32 = 0x0CF5
	ArrayBuffer     uint32 = 0x8892

	UnsignedByte     uint32 = 0x1401
	DepthComponent   uint32 = 0x1902
	RGBA             uint32 = 0x1908
	RGB8             uint32 = 0x8051
	RGB565           uint32 = 0x8D62
	DepthComponent16 uint32 = 0x81A5

	Framebuffer         uint32 = 0x8D40
	Renderbuffer        uint32 = 0x8D41
	ColorAttachment0    uint32 = 0x8CE0
	DepthAttachment     uint32 = 0x8D00
	FramebufferComplete uint32 = 0x8CD5

	DepthBufferBit uint32 = 0x00000100
	ColorBufferBit uint32 = 0x00004000
)
