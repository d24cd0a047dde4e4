package engine

import (
	"go.uber.org/zap"

	"github.com/wippyai/scene-runtime/abi"
	"github.com/wippyai/scene-runtime/loader"
)

// File is a loaded set of textures and scenes.
type File interface {
	Textures() []abi.TextureInfo
	TextureGlobal(i int) []byte
	Scenes() []abi.SceneInfo
	SceneGlobal(i int) []byte
	// Close releases global state and GL resources. The context the file
	// was loaded in must be current.
	Close() error
}

// Loader opens scene files of one extension.
type Loader interface {
	Load(path string) (File, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (File, error)

// Load calls f.
func (f LoaderFunc) Load(path string) (File, error) { return f(path) }

// MCLoader loads machine code containers. Rejected assets are logged; the
// file is returned with the survivors.
func MCLoader(opts loader.Options) Loader {
	return LoaderFunc(func(path string) (File, error) {
		f, err := loader.LoadFile(path, opts)
		if err != nil {
			return nil, err
		}
		if rej := f.Report().Rejected(); rej != nil {
			Logger().Warn("assets rejected",
				zap.String("path", path),
				zap.Int("count", len(rej.Rejections)),
				zap.Strings("missing_symbols", rej.Symbols()))
		}
		return f, nil
	})
}

// fileEntry is a loaded file and the scenes instantiated from it.
type fileEntry struct {
	file   File
	scenes []*scene
}

type group struct {
	scenes []*scene
}
