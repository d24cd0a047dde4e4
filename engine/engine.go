package engine

import (
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	sceneruntime "github.com/wippyai/scene-runtime"
	"github.com/wippyai/scene-runtime/abi"
	"github.com/wippyai/scene-runtime/config"
	"github.com/wippyai/scene-runtime/errors"
	"github.com/wippyai/scene-runtime/gpu"
	"github.com/wippyai/scene-runtime/inlinefile"
	"github.com/wippyai/scene-runtime/memory"
	"github.com/wippyai/scene-runtime/render"
	"github.com/wippyai/scene-runtime/resource"
)

// Engine owns loaded files and the scene instances created from them.
// Every method that runs scene code needs the engine's GL context to be
// current on the calling goroutine. An Engine is not safe for concurrent
// use.
type Engine struct {
	gl        gpu.GL
	allocator sceneruntime.Allocator

	loaders map[string]Loader

	files         *resource.Table[*fileEntry]
	groups        *resource.Table[*group]
	scenes        *resource.Table[*scene]
	attributes    *resource.Table[*attribute]
	attributeSets *resource.Table[*attributeSet]

	// strings set on string attributes, by attribute handle
	strings map[int]stringValue

	arena  *render.Arena
	queues *render.Queues
	pick   *gpu.PickTarget

	nextObjectID int32
}

// New creates an engine. WithGL is required.
func New(opts ...Option) (*Engine, error) {
	o := options{cfg: config.Default(), allocator: memory.OS{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.gl == nil {
		return nil, errors.InvalidInput(errors.PhaseRuntime, "engine needs a GL context")
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}

	arena := render.NewArena(o.cfg.RenderJobs)
	e := &Engine{
		gl:            o.gl,
		allocator:     o.allocator,
		loaders:       make(map[string]Loader),
		files:         resource.NewTable[*fileEntry]("file"),
		groups:        resource.NewTable[*group]("group"),
		scenes:        resource.NewTable[*scene]("scene"),
		attributes:    resource.NewTable[*attribute]("attribute"),
		attributeSets: resource.NewTable[*attributeSet]("attribute-set"),
		strings:       make(map[int]stringValue),
		arena:         arena,
		queues:        render.NewQueues(arena),
		pick:          gpu.NewPickTarget(o.gl, o.cfg.Pick()),
		nextObjectID:  1,
	}

	debug := resource.ObserverFunc(func(ev resource.Event) {
		Logger().Debug("resource "+ev.Type.String(), zap.String("kind", ev.Kind), zap.Int("handle", ev.Handle))
	})
	e.files.Subscribe(debug)
	e.groups.Subscribe(debug)
	e.scenes.Subscribe(debug)
	return e, nil
}

// AddLoader registers l for paths ending in ext, e.g. ".mc".
func (e *Engine) AddLoader(ext string, l Loader) {
	e.loaders[ext] = l
}

// LoadFile loads path with the loader registered for its extension.
func (e *Engine) LoadFile(path string) (int, error) {
	l, ok := e.loaders[filepath.Ext(path)]
	if !ok {
		return resource.Invalid, errors.NotFound(errors.PhaseLoad, "loader for extension", filepath.Ext(path))
	}

	setter := gpu.SetState(e.gl)
	f, err := l.Load(path)
	setter.Restore()
	if err != nil {
		return resource.Invalid, err
	}
	return e.AddFile(f), nil
}

// LoadInlineFile loads the data blob for assets whose code is compiled
// into the program.
func (e *Engine) LoadInlineFile(path string, textures []abi.TextureInfo, scenes []abi.SceneInfo) (int, error) {
	setter := gpu.SetState(e.gl)
	f, err := inlinefile.Load(path, textures, scenes)
	setter.Restore()
	if err != nil {
		return resource.Invalid, err
	}
	return e.AddFile(f), nil
}

// AddFile takes ownership of an already loaded file and returns its
// handle, or -1 for nil.
func (e *Engine) AddFile(f File) int {
	if f == nil {
		return resource.Invalid
	}
	return e.files.Insert(&fileEntry{file: f})
}

// NumScenes returns the number of scenes in a file, or -1.
func (e *Engine) NumScenes(file int) int {
	fe, ok := e.files.Get(file)
	if !ok {
		return -1
	}
	return len(fe.file.Scenes())
}

// FileSceneName returns the name of scene index in a file.
func (e *Engine) FileSceneName(file, index int) string {
	fe, ok := e.files.Get(file)
	if !ok {
		return ""
	}
	scenes := fe.file.Scenes()
	if index < 0 || index >= len(scenes) {
		return ""
	}
	return scenes[index].Name
}

// UnloadFile deletes the file's scene instances and closes it.
func (e *Engine) UnloadFile(file int) {
	fe, ok := e.files.Remove(file)
	if !ok {
		return
	}
	for _, s := range fe.scenes {
		if g, ok := e.groups.Get(s.group); ok {
			g.scenes = remove(g.scenes, s)
		}
		e.deleteScene(s)
	}
	fe.scenes = nil

	if err := fe.file.Close(); err != nil {
		Logger().Warn("close file", zap.Int("file", file), zap.Error(err))
	}
}

// Clear deletes everything and releases the pick framebuffer.
func (e *Engine) Clear() {
	e.groups.Clear()
	for _, h := range e.scenes.Handles() {
		s, _ := e.scenes.Remove(h)
		s.destroy()
	}
	for _, sv := range e.strings {
		_ = sv.mem.Free()
	}
	clear(e.strings)
	e.attributes.Clear()
	e.attributeSets.Clear()
	e.nextObjectID = 1

	for _, h := range e.files.Handles() {
		fe, _ := e.files.Remove(h)
		fe.scenes = nil
		if err := fe.file.Close(); err != nil {
			Logger().Warn("close file", zap.Int("file", h), zap.Error(err))
		}
	}
	e.files.Clear()
	e.pick.Delete()
}

// Close is Clear.
func (e *Engine) Close() error {
	e.Clear()
	return nil
}

// CreateGroup returns a new, empty group.
func (e *Engine) CreateGroup() int {
	return e.groups.Insert(&group{})
}

// DeleteGroup deletes a group and its scene instances.
func (e *Engine) DeleteGroup(h int) {
	g, ok := e.groups.Get(h)
	if !ok {
		return
	}
	for _, s := range g.scenes {
		if fe, ok := e.files.Get(s.file); ok {
			fe.scenes = remove(fe.scenes, s)
		}
		e.deleteScene(s)
	}
	e.groups.Remove(h)
}

// UpdateGroup updates every scene in a group.
func (e *Engine) UpdateGroup(h int) {
	g, ok := e.groups.Get(h)
	if !ok {
		return
	}
	for _, s := range g.scenes {
		e.updateScene(s)
	}
}

// Stats counts live resources.
type Stats struct {
	Files         int
	Groups        int
	Scenes        int
	Attributes    int
	AttributeSets int
}

// Stats returns the number of live resources of each kind.
func (e *Engine) Stats() Stats {
	return Stats{
		Files:         e.files.Len(),
		Groups:        e.groups.Len(),
		Scenes:        e.scenes.Len(),
		Attributes:    e.attributes.Len(),
		AttributeSets: e.attributeSets.Len(),
	}
}

func remove(scenes []*scene, s *scene) []*scene {
	if i := slices.Index(scenes, s); i >= 0 {
		return slices.Delete(scenes, i, i+1)
	}
	return scenes
}
