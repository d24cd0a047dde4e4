// Package opengl implements gpu.GL on the current OpenGL 3.3 core context
// and resolves the GL entry points loaded scene code links against.
//
// A context must be current on the calling thread before Init, Symbols or
// any GL method is used.
package opengl

import (
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/wippyai/scene-runtime/errors"
	"github.com/wippyai/scene-runtime/gpu"
)

// GL forwards to github.com/go-gl/gl.
type GL struct{}

var _ gpu.GL = GL{}

// New returns the GL wrapper. Call Init once a context is current.
func New() GL {
	return GL{}
}

// Init loads GL function pointers through glfw.
func Init() error {
	if err := gl.InitWithProcAddrFunc(glfw.GetProcAddress); err != nil {
		return errors.Wrap(errors.PhaseLoad, errors.KindUnsupported, err, "initialize OpenGL 3.3 core")
	}
	return nil
}

// Version returns the GL_VERSION string of the current context.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (GL) PixelStorei(pname uint32, param int32) { gl.PixelStorei(pname, param) }
func (GL) BindBuffer(target, buffer uint32)      { gl.BindBuffer(target, buffer) }
func (GL) BindVertexArray(array uint32)          { gl.BindVertexArray(array) }
func (GL) UseProgram(program uint32)             { gl.UseProgram(program) }
func (GL) DepthMask(flag bool)                   { gl.DepthMask(flag) }
func (GL) Enable(capability uint32)              { gl.Enable(capability) }
func (GL) Disable(capability uint32)             { gl.Disable(capability) }
func (GL) BlendFunc(sfactor, dfactor uint32)     { gl.BlendFunc(sfactor, dfactor) }
func (GL) CullFace(mode uint32)                  { gl.CullFace(mode) }

func (GL) GenRenderbuffer() uint32 {
	var rb uint32
	gl.GenRenderbuffers(1, &rb)
	return rb
}

func (GL) BindRenderbuffer(target, renderbuffer uint32) {
	gl.BindRenderbuffer(target, renderbuffer)
}

func (GL) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	gl.RenderbufferStorage(target, internalFormat, width, height)
}

func (GL) DeleteRenderbuffer(renderbuffer uint32) {
	gl.DeleteRenderbuffers(1, &renderbuffer)
}

func (GL) GenFramebuffer() uint32 {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	return fbo
}

func (GL) BindFramebuffer(target, framebuffer uint32) {
	gl.BindFramebuffer(target, framebuffer)
}

func (GL) FramebufferRenderbuffer(target, attachment, renderbufferTarget, renderbuffer uint32) {
	gl.FramebufferRenderbuffer(target, attachment, renderbufferTarget, renderbuffer)
}

func (GL) CheckFramebufferStatus(target uint32) uint32 {
	return gl.CheckFramebufferStatus(target)
}

func (GL) DeleteFramebuffer(framebuffer uint32) {
	gl.DeleteFramebuffers(1, &framebuffer)
}

func (GL) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }
func (GL) ClearColor(r, g, b, a float32)      { gl.ClearColor(r, g, b, a) }
func (GL) Clear(mask uint32)                  { gl.Clear(mask) }

func (GL) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte) {
	if len(pixels) == 0 {
		return
	}
	gl.ReadPixels(x, y, width, height, format, xtype, unsafe.Pointer(&pixels[0]))
}
