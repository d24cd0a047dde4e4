// Package gputest provides a gpu.GL that records calls instead of talking
// to a driver.
package gputest

import (
	"fmt"
	"strings"

	"github.com/wippyai/scene-runtime/gpu"
)

// Recorder implements gpu.GL by appending one line per call to Calls.
type Recorder struct {
	Calls []string

	// Status is returned by CheckFramebufferStatus.
	Status uint32
	// Pixel is written by ReadPixels.
	Pixel [4]byte

	nextName uint32
}

var _ gpu.GL = (*Recorder)(nil)

// New returns a recorder whose framebuffers are complete.
func New() *Recorder {
	return &Recorder{Status: gpu.FramebufferComplete}
}

// Reset forgets recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// String returns the recorded calls, one per line.
func (r *Recorder) String() string {
	return strings.Join(r.Calls, "\n")
}

// Count returns how many recorded calls start with prefix.
func (r *Recorder) Count(prefix string) int {
	n := 0
	for _, c := range r.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// Index returns the position of the first call equal to call at or after
// from, or -1.
func (r *Recorder) Index(call string, from int) int {
	for i := from; i < len(r.Calls); i++ {
		if r.Calls[i] == call {
			return i
		}
	}
	return -1
}

func (r *Recorder) record(format string, args ...any) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

func (r *Recorder) name() uint32 {
	r.nextName++
	return r.nextName
}

func (r *Recorder) PixelStorei(pname uint32, param int32) {
	r.record("PixelStorei(%s, %d)", Enum(pname), param)
}

func (r *Recorder) BindBuffer(target, buffer uint32) {
	r.record("BindBuffer(%s, %d)", Enum(target), buffer)
}

func (r *Recorder) BindVertexArray(array uint32) { r.record("BindVertexArray(%d)", array) }
func (r *Recorder) UseProgram(program uint32)    { r.record("UseProgram(%d)", program) }
func (r *Recorder) DepthMask(flag bool)          { r.record("DepthMask(%t)", flag) }
func (r *Recorder) Enable(capability uint32)     { r.record("Enable(%s)", Enum(capability)) }
func (r *Recorder) Disable(capability uint32)    { r.record("Disable(%s)", Enum(capability)) }
func (r *Recorder) CullFace(mode uint32)         { r.record("CullFace(%s)", Enum(mode)) }

func (r *Recorder) BlendFunc(sfactor, dfactor uint32) {
	r.record("BlendFunc(%s, %s)", Enum(sfactor), Enum(dfactor))
}

func (r *Recorder) GenRenderbuffer() uint32 {
	n := r.name()
	r.record("GenRenderbuffer() = %d", n)
	return n
}

func (r *Recorder) BindRenderbuffer(target, renderbuffer uint32) {
	r.record("BindRenderbuffer(%s, %d)", Enum(target), renderbuffer)
}

func (r *Recorder) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	r.record("RenderbufferStorage(%s, %s, %d, %d)", Enum(target), Enum(internalFormat), width, height)
}

func (r *Recorder) DeleteRenderbuffer(renderbuffer uint32) {
	r.record("DeleteRenderbuffer(%d)", renderbuffer)
}

func (r *Recorder) GenFramebuffer() uint32 {
	n := r.name()
	r.record("GenFramebuffer() = %d", n)
	return n
}

func (r *Recorder) BindFramebuffer(target, framebuffer uint32) {
	r.record("BindFramebuffer(%s, %d)", Enum(target), framebuffer)
}

func (r *Recorder) FramebufferRenderbuffer(target, attachment, renderbufferTarget, renderbuffer uint32) {
	r.record("FramebufferRenderbuffer(%s, %s, %s, %d)", Enum(target), Enum(attachment), Enum(renderbufferTarget), renderbuffer)
}

func (r *Recorder) CheckFramebufferStatus(target uint32) uint32 {
	r.record("CheckFramebufferStatus(%s)", Enum(target))
	return r.Status
}

func (r *Recorder) DeleteFramebuffer(framebuffer uint32) {
	r.record("DeleteFramebuffer(%d)", framebuffer)
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport(%d, %d, %d, %d)", x, y, width, height)
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor(%g, %g, %g, %g)", red, green, blue, alpha)
}

func (r *Recorder) Clear(mask uint32) {
	r.record("Clear(%s)", Enum(mask))
}

func (r *Recorder) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte) {
	r.record("ReadPixels(%d, %d, %d, %d, %s, %s)", x, y, width, height, Enum(format), Enum(xtype))
	copy(pixels, r.Pixel[:])
}

var enumNames = map[uint32]string{
	gpu.OneMinusSrcAlpha:    "ONE_MINUS_SRC_ALPHA",
	gpu.Back:                "BACK",
	gpu.CullFace:            "CULL_FACE",
	gpu.Blend:               "BLEND",
	gpu.UnpackAlignment:     "UNPACK_ALIGNMENT",
	gpu.ArrayBuffer:         "ARRAY_BUFFER",
	gpu.UnsignedByte:        "UNSIGNED_BYTE",
	gpu.DepthComponent:      "DEPTH_COMPONENT",
	gpu.RGBA:                "RGBA",
	gpu.RGB8:                "RGB8",
	gpu.RGB565:              "RGB565",
	gpu.DepthComponent16:    "DEPTH_COMPONENT16",
	gpu.Framebuffer:         "FRAMEBUFFER",
	gpu.Renderbuffer:        "RENDERBUFFER",
	gpu.ColorAttachment0:    "COLOR_ATTACHMENT0",
	gpu.DepthAttachment:     "DEPTH_ATTACHMENT",
	gpu.FramebufferComplete: "FRAMEBUFFER_COMPLETE",

	gpu.ColorBufferBit | gpu.DepthBufferBit: "COLOR_BUFFER_BIT|DEPTH_BUFFER_BIT",
}

// Enum names an enumerant the way the recorder prints it. ZERO and ONE are
// printed as such; unknown values are printed in hex.
func Enum(v uint32) string {
	switch v {
	case gpu.Zero:
		return "ZERO"
	case gpu.One:
		return "ONE"
	}
	if s, ok := enumNames[v]; ok {
		return s
	}
	return fmt.Sprintf("0x%04X", v)
}
