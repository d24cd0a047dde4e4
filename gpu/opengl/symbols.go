package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/wippyai/scene-runtime/symbols"
)

// Entry points compiled scenes and textures call directly.
var entryPoints = []string{
	"glActiveTexture",
	"glAttachShader",
	"glBindAttribLocation",
	"glBindBuffer",
	"glBindTexture",
	"glBindVertexArray",
	"glBlendFunc",
	"glBufferData",
	"glBufferSubData",
	"glClear",
	"glCompileShader",
	"glCompressedTexImage2D",
	"glCreateProgram",
	"glCreateShader",
	"glCullFace",
	"glDeleteBuffers",
	"glDeleteProgram",
	"glDeleteShader",
	"glDeleteTextures",
	"glDeleteVertexArrays",
	"glDepthMask",
	"glDisable",
	"glDisableVertexAttribArray",
	"glDrawArrays",
	"glDrawElements",
	"glEnable",
	"glEnableVertexAttribArray",
	"glFrontFace",
	"glGenBuffers",
	"glGenTextures",
	"glGenVertexArrays",
	"glGenerateMipmap",
	"glGetAttribLocation",
	"glGetUniformLocation",
	"glLineWidth",
	"glLinkProgram",
	"glPixelStorei",
	"glPolygonOffset",
	"glShaderSource",
	"glTexImage2D",
	"glTexImage3D",
	"glTexParameteri",
	"glTexSubImage2D",
	"glUniform1f",
	"glUniform1fv",
	"glUniform1i",
	"glUniform2fv",
	"glUniform3fv",
	"glUniform4fv",
	"glUniformMatrix3fv",
	"glUniformMatrix4fv",
	"glUseProgram",
	"glVertexAttribPointer",
}

// EntryPoints returns the GL function names Symbols tries to resolve.
func EntryPoints() []string {
	out := make([]string, len(entryPoints))
	copy(out, entryPoints)
	return out
}

// Symbols resolves the GL entry points of the current context. Functions
// the driver does not export are left out, so code using them is rejected
// at link time instead of crashing at run time.
func Symbols() []symbols.Symbol {
	out := make([]symbols.Symbol, 0, len(entryPoints))
	for _, name := range entryPoints {
		p := glfw.GetProcAddress(name)
		if p == nil {
			continue
		}
		out = append(out, symbols.Symbol{Name: name, Addr: uintptr(p)})
	}
	return out
}
