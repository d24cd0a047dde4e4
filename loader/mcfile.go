// Package loader loads containers of relocatable machine code.
//
// Every texture and scene record is relocated against the host symbol
// table, bound to its lifecycle entry points and has its global state
// initialized. Records that fail any step are rejected and left out; the
// rest of the file still loads.
//
//	binder := native.NewBinder()
//	defer binder.Close()
//	f, err := loader.LoadFile("scenes.mc", loader.Options{
//	    Symbols: native.HostTable(opengl.Symbols()...),
//	    Binder:  binder,
//	})
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//	if rej := f.Report().Rejected(); rej != nil {
//	    log.Print(rej)
//	}
package loader

import (
	"bufio"
	"io"
	"os"

	"go.uber.org/zap"

	sceneruntime "github.com/wippyai/scene-runtime"
	"github.com/wippyai/scene-runtime/abi"
	"github.com/wippyai/scene-runtime/container"
	"github.com/wippyai/scene-runtime/errors"
	"github.com/wippyai/scene-runtime/linker"
	"github.com/wippyai/scene-runtime/memory"
	"github.com/wippyai/scene-runtime/symbols"
)

// Extension is the file extension of machine code containers.
const Extension = ".mc"

// Options configures loading.
type Options struct {
	// Symbols resolves external references. Required.
	Symbols symbols.Resolver
	// Binder makes bound entry points callable. Required.
	Binder abi.Binder
	// Allocator provides code and data memory; memory.OS by default.
	Allocator sceneruntime.Allocator
	// Linker configures relocation.
	Linker linker.Options
}

// assetMemory is what one loaded asset owns.
type assetMemory struct {
	code   sceneruntime.Region
	data   sceneruntime.Region
	global sceneruntime.Region
}

func (m *assetMemory) free() {
	for _, r := range []sceneruntime.Region{m.code, m.data, m.global} {
		if r != nil {
			_ = r.Free()
		}
	}
	*m = assetMemory{}
}

// MCFile is a loaded machine code container.
type MCFile struct {
	textures   []abi.TextureInfo
	scenes     []abi.SceneInfo
	textureMem []assetMemory
	sceneMem   []assetMemory
	report     Report
	closed     bool
}

// LoadFile opens and loads the container at path.
func LoadFile(path string, opts Options) (*MCFile, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Load("open "+path, err)
	}
	defer fd.Close()
	return Load(bufio.NewReader(fd), opts)
}

// Load decodes a container from r and loads every asset in it.
func Load(r io.Reader, opts Options) (*MCFile, error) {
	cf, err := container.Decode(r)
	if err != nil {
		return nil, errors.Load("decode container", err)
	}
	return New(cf, opts)
}

// New loads the assets of an already decoded container.
func New(cf *container.File, opts Options) (*MCFile, error) {
	if opts.Symbols == nil || opts.Binder == nil {
		return nil, errors.InvalidInput(errors.PhaseLoad, "symbols and binder are required")
	}
	if opts.Allocator == nil {
		opts.Allocator = memory.OS{}
	}

	l := &assetLoader{
		opts:   opts,
		linker: linker.NewWithOptions(opts.Symbols, opts.Linker),
		file:   &MCFile{},
	}
	if err := l.load(cf); err != nil {
		_ = l.file.Close()
		return nil, err
	}

	f := l.file
	Logger().Info("loaded container",
		zap.Int("textures", len(f.textures)),
		zap.Int("scenes", len(f.scenes)),
		zap.Int("rejected", f.report.Count(KindTexture, StateRejected)+f.report.Count(KindScene, StateRejected)))
	return f, nil
}

type assetLoader struct {
	opts   Options
	linker *linker.Linker
	file   *MCFile
	// textureRemap maps record indices to loaded texture indices, -1 when
	// the texture was not loaded.
	textureRemap []int
}

func (l *assetLoader) load(cf *container.File) error {
	f := l.file
	l.textureRemap = make([]int, len(cf.Textures))

	for i := range cf.Textures {
		rec := &cf.Textures[i]
		st := AssetStatus{Kind: KindTexture, Name: rec.Name, Index: i, Loaded: -1}
		l.textureRemap[i] = -1

		if rec.Skipped() {
			st.State, st.Reached = StateSkipped, StateSkipped
			f.report.Assets = append(f.report.Assets, st)
			continue
		}

		info, mem, state, err := l.loadTexture(rec)
		st.State, st.Reached = state, state
		if err != nil {
			if isFatal(err) {
				return err
			}
			st.State, st.Err = StateRejected, err
			l.reject(st)
			f.report.Assets = append(f.report.Assets, st)
			continue
		}

		st.Loaded = len(f.textures)
		l.textureRemap[i] = st.Loaded
		f.textures = append(f.textures, info)
		f.textureMem = append(f.textureMem, mem)
		f.report.Assets = append(f.report.Assets, st)
	}

	for i := range cf.Scenes {
		rec := &cf.Scenes[i]
		st := AssetStatus{Kind: KindScene, Name: rec.Name, Index: i, Loaded: -1}

		if rec.Skipped() {
			st.State, st.Reached = StateSkipped, StateSkipped
			f.report.Assets = append(f.report.Assets, st)
			continue
		}

		info, mem, state, err := l.loadScene(rec)
		st.State, st.Reached = state, state
		if err != nil {
			if isFatal(err) {
				return err
			}
			st.State, st.Err = StateRejected, err
			l.reject(st)
			f.report.Assets = append(f.report.Assets, st)
			continue
		}

		st.Loaded = len(f.scenes)
		f.scenes = append(f.scenes, info)
		f.sceneMem = append(f.sceneMem, mem)
		f.report.Assets = append(f.report.Assets, st)
	}
	return nil
}

func (l *assetLoader) reject(st AssetStatus) {
	Logger().Warn("asset rejected",
		zap.String("kind", st.Kind),
		zap.String("asset", st.Name),
		zap.Int("index", st.Index),
		zap.Error(st.Err))
}

// isFatal reports whether err must abort the whole load instead of
// rejecting one asset.
func isFatal(err error) bool {
	var e *errors.Error
	return errors.As(err, &e) && e.Phase == errors.PhaseAllocate
}

// prepare copies and relocates an object. The returned state is the last
// one reached; on error mem has been released.
func (l *assetLoader) prepare(name string, obj *container.Object) (mem assetMemory, state State, err error) {
	defer func() {
		if err != nil {
			mem.free()
		}
	}()

	if mem.code, err = l.opts.Allocator.Code(len(obj.Code)); err != nil {
		return mem, StateUnloaded, err
	}
	copy(mem.code.Bytes(), obj.Code)
	if mem.data, err = l.opts.Allocator.Data(len(obj.Data)); err != nil {
		return mem, StateUnloaded, err
	}
	copy(mem.data.Bytes(), obj.Data)

	relocs, err := linker.Compile(obj.Relocations)
	if err != nil {
		return mem, StateCodeRead, withAsset(err, name)
	}
	if err = l.linker.Link(name, mem.code.Bytes(), mem.code.Addr(), relocs); err != nil {
		return mem, StateCodeRead, err
	}
	return mem, StateRelocated, nil
}

// initGlobal allocates global state and runs the asset's initializer.
func (l *assetLoader) initGlobal(mem *assetMemory, size uint32, init func(global, data []byte)) error {
	g, err := l.opts.Allocator.Data(int(size))
	if err != nil {
		return err
	}
	mem.global = g
	init(g.Bytes(), mem.data.Bytes())
	return nil
}

func (l *assetLoader) loadTexture(rec *container.Texture) (abi.TextureInfo, assetMemory, State, error) {
	mem, state, err := l.prepare(rec.Name, &rec.Object)
	if err != nil {
		return abi.TextureInfo{}, mem, state, err
	}

	ep, err := abi.BindTexture(rec.Name, rec.Publics, mem.code.Addr(), mem.code.Size())
	if err != nil {
		mem.free()
		return abi.TextureInfo{}, mem, StateRelocated, err
	}
	code, err := l.opts.Binder.BindTexture(rec.Name, ep)
	if err != nil {
		mem.free()
		return abi.TextureInfo{}, mem, StateValidated, withAsset(err, rec.Name)
	}

	if err := l.initGlobal(&mem, rec.GlobalSize, code.InitGlobal); err != nil {
		mem.free()
		return abi.TextureInfo{}, mem, StateValidated, err
	}

	Logger().Debug("texture loaded", zap.String("asset", rec.Name), zap.Uint32("type", rec.Type))
	return abi.TextureInfo{
		Name:       rec.Name,
		Type:       abi.AttributeType(rec.Type),
		GlobalSize: int(rec.GlobalSize),
		Code:       code,
	}, mem, StateGlobalInitialized, nil
}

func (l *assetLoader) loadScene(rec *container.Scene) (abi.SceneInfo, assetMemory, State, error) {
	mem, state, err := l.prepare(rec.Name, &rec.Object)
	if err != nil {
		return abi.SceneInfo{}, mem, state, err
	}

	ep, err := abi.BindScene(rec.Name, rec.Publics, mem.code.Addr(), mem.code.Size())
	if err != nil {
		mem.free()
		return abi.SceneInfo{}, mem, StateRelocated, err
	}
	code, err := l.opts.Binder.BindScene(rec.Name, ep)
	if err != nil {
		mem.free()
		return abi.SceneInfo{}, mem, StateValidated, withAsset(err, rec.Name)
	}

	if err := l.initGlobal(&mem, rec.GlobalSize, code.InitGlobal); err != nil {
		mem.free()
		return abi.SceneInfo{}, mem, StateValidated, err
	}

	Logger().Debug("scene loaded",
		zap.String("asset", rec.Name),
		zap.Uint32("instance_size", rec.InstanceSize),
		zap.Int("attributes", len(rec.Attributes)))
	return abi.SceneInfo{
		Name:            rec.Name,
		Nodes:           rec.Nodes,
		Attributes:      rec.Attributes,
		TextureBindings: l.remapBindings(rec.TextureBindings),
		AttributeSets:   rec.AttributeSets,
		Clips:           rec.Clips,
		Objects:         rec.Objects,
		GlobalSize:      int(rec.GlobalSize),
		InstanceSize:    int(rec.InstanceSize),
		Code:            code,
	}, mem, StateGlobalInitialized, nil
}

// remapBindings points bindings at loaded texture indices and drops
// bindings to textures that were not loaded.
func (l *assetLoader) remapBindings(bindings []container.TextureBinding) []container.TextureBinding {
	out := make([]container.TextureBinding, 0, len(bindings))
	for _, b := range bindings {
		if int(b.TextureIndex) >= len(l.textureRemap) {
			continue
		}
		idx := l.textureRemap[b.TextureIndex]
		if idx < 0 {
			continue
		}
		b.TextureIndex = uint32(idx)
		out = append(out, b)
	}
	return out
}

func withAsset(err error, asset string) error {
	var e *errors.Error
	if errors.As(err, &e) && e.Asset == "" {
		e.Asset = asset
	}
	return err
}

// Textures returns the loaded textures.
func (f *MCFile) Textures() []abi.TextureInfo {
	return f.textures
}

// TextureGlobal returns the global state of loaded texture i.
func (f *MCFile) TextureGlobal(i int) []byte {
	if i < 0 || i >= len(f.textureMem) {
		return nil
	}
	return regionBytes(f.textureMem[i].global)
}

// Scenes returns the loaded scenes.
func (f *MCFile) Scenes() []abi.SceneInfo {
	return f.scenes
}

// SceneGlobal returns the global state of loaded scene i.
func (f *MCFile) SceneGlobal(i int) []byte {
	if i < 0 || i >= len(f.sceneMem) {
		return nil
	}
	return regionBytes(f.sceneMem[i].global)
}

// Report describes the outcome of every record.
func (f *MCFile) Report() *Report {
	return &f.report
}

// Close runs doneGlobal for every loaded asset, scenes first, and frees
// all memory. Instances created from the file must be gone by then.
func (f *MCFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	for i := range f.scenes {
		if i < len(f.sceneMem) {
			f.scenes[i].Code.DoneGlobal(regionBytes(f.sceneMem[i].global))
			f.sceneMem[i].free()
		}
	}
	for i := range f.textures {
		if i < len(f.textureMem) {
			f.textures[i].Code.DoneGlobal(regionBytes(f.textureMem[i].global))
			f.textureMem[i].free()
		}
	}
	Logger().Debug("container closed", zap.Int("textures", len(f.textures)), zap.Int("scenes", len(f.scenes)))
	f.textures, f.scenes = nil, nil
	f.textureMem, f.sceneMem = nil, nil
	return nil
}

func regionBytes(r sceneruntime.Region) []byte {
	if r == nil {
		return nil
	}
	return r.Bytes()
}
