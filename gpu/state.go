package gpu

// StateSetter puts the context into the state scene code expects and
// restores the engine defaults afterwards.
//
//	defer gpu.SetState(gl).Restore()
type StateSetter struct {
	gl GL
}

// SetState sets byte-aligned pixel unpacking for the duration of a render.
func SetState(gl GL) StateSetter {
	gl.PixelStorei(UnpackAlignment, 1)
	return StateSetter{gl: gl}
}

// Restore resets pixel alignment and unbinds buffer, vertex array and
// program.
func (s StateSetter) Restore() {
	s.gl.PixelStorei(UnpackAlignment, 4)
	s.gl.BindBuffer(ArrayBuffer, 0)
	s.gl.BindVertexArray(0)
	s.gl.UseProgram(0)
}

// BeginAlpha disables depth writes and enables premultiplied blending
// (pixel = pixel * (1 - alpha) + fragment).
func BeginAlpha(gl GL) {
	gl.DepthMask(false)
	gl.Enable(Blend)
	gl.BlendFunc(One, OneMinusSrcAlpha)
}

// EndAlpha undoes BeginAlpha.
func EndAlpha(gl GL) {
	gl.BlendFunc(One, Zero)
	gl.Disable(Blend)
	gl.DepthMask(true)
}

// ResetCull restores back-face culling defaults after scene code ran.
func ResetCull(gl GL) {
	gl.Disable(CullFace)
	gl.CullFace(Back)
}
