// Package inlinefile provides scene files whose code is compiled into the
// host program. The assets are described by abi.TextureInfo and
// abi.SceneInfo values with Go entry points; only their data blob is read
// at run time.
package inlinefile

import (
	"os"
	"strconv"

	"github.com/wippyai/scene-runtime/abi"
	"github.com/wippyai/scene-runtime/errors"
	"github.com/wippyai/scene-runtime/memory"
)

// File is a set of compiled-in assets sharing one data blob.
type File struct {
	data     []byte
	textures []abi.TextureInfo
	scenes   []abi.SceneInfo

	// global is carved into one slice per asset, textures first.
	global         *memory.Block
	textureGlobals [][]byte
	sceneGlobals   [][]byte
	closed         bool
}

// Load reads the data blob at path and initializes the assets.
func Load(path string, textures []abi.TextureInfo, scenes []abi.SceneInfo) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	return New(data, textures, scenes)
}

// New initializes the global state of every asset, textures first. All
// assets must carry code.
func New(data []byte, textures []abi.TextureInfo, scenes []abi.SceneInfo) (*File, error) {
	size := 0
	for i, t := range textures {
		if t.Code == nil {
			return nil, errors.MissingEntryPoint(textureName(t, i), abi.EntryInitGlobal)
		}
		size += t.GlobalSize
	}
	for i, s := range scenes {
		if s.Code == nil {
			return nil, errors.MissingEntryPoint(sceneName(s, i), abi.EntryInitGlobal)
		}
		size += s.GlobalSize
	}

	global, err := memory.NewData(size)
	if err != nil {
		return nil, err
	}

	f := &File{
		data:           data,
		textures:       textures,
		scenes:         scenes,
		global:         global,
		textureGlobals: make([][]byte, len(textures)),
		sceneGlobals:   make([][]byte, len(scenes)),
	}

	g := global.Bytes()
	for i, t := range textures {
		f.textureGlobals[i] = g[:t.GlobalSize:t.GlobalSize]
		t.Code.InitGlobal(f.textureGlobals[i], data)
		g = g[t.GlobalSize:]
	}
	for i, s := range scenes {
		f.sceneGlobals[i] = g[:s.GlobalSize:s.GlobalSize]
		s.Code.InitGlobal(f.sceneGlobals[i], data)
		g = g[s.GlobalSize:]
	}
	return f, nil
}

func textureName(t abi.TextureInfo, i int) string {
	if t.Name != "" {
		return t.Name
	}
	return "texture#" + strconv.Itoa(i)
}

func sceneName(s abi.SceneInfo, i int) string {
	if s.Name != "" {
		return s.Name
	}
	return "scene#" + strconv.Itoa(i)
}

func (f *File) Textures() []abi.TextureInfo { return f.textures }
func (f *File) Scenes() []abi.SceneInfo     { return f.scenes }

func (f *File) TextureGlobal(i int) []byte {
	if i < 0 || i >= len(f.textureGlobals) {
		return nil
	}
	return f.textureGlobals[i]
}

func (f *File) SceneGlobal(i int) []byte {
	if i < 0 || i >= len(f.sceneGlobals) {
		return nil
	}
	return f.sceneGlobals[i]
}

// Close runs doneGlobal for every asset, textures first, and releases the
// global memory. The GL context the assets were created in must be
// current.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	for i, t := range f.textures {
		t.Code.DoneGlobal(f.textureGlobals[i])
	}
	for i, s := range f.scenes {
		s.Code.DoneGlobal(f.sceneGlobals[i])
	}
	f.textureGlobals, f.sceneGlobals = nil, nil
	return f.global.Free()
}
