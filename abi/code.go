package abi

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/wippyai/scene-runtime/errors"
	"github.com/wippyai/scene-runtime/render"
)

// SceneCode is a callable scene.
type SceneCode interface {
	// InitGlobal builds the shared global state from the data blob.
	InitGlobal(global, data []byte)
	// DoneGlobal releases what InitGlobal acquired.
	DoneGlobal(global []byte)
	InitInstance(global, instance []byte)
	DoneInstance(instance []byte)
	// AddClip accumulates weight times the clip sampled at time into the
	// track values.
	AddClip(instance []byte, clip int, tracks []float32, time, weight float32)
	Update(instance []byte)
	BoundingBox(instance []byte) BoundingBox
	// Render appends the scene's jobs for layer to q. Layer -1 renders
	// object ids for picking.
	Render(instance []byte, view, proj *mgl32.Mat4, layer int, q *render.Queues)
}

// TextureCode is a callable texture.
type TextureCode interface {
	InitGlobal(global, data []byte)
	DoneGlobal(global []byte)
	// Copy writes the texture handle(s) into an instance attribute.
	Copy(global, dst []byte)
}

// Binder produces callable code from validated entry points.
type Binder interface {
	BindScene(asset string, ep *SceneEntryPoints) (SceneCode, error)
	BindTexture(asset string, ep *TextureEntryPoints) (TextureCode, error)
}

// SceneFuncs implements SceneCode with Go functions.
type SceneFuncs struct {
	InitGlobalFunc   func(global, data []byte)
	DoneGlobalFunc   func(global []byte)
	InitInstanceFunc func(global, instance []byte)
	DoneInstanceFunc func(instance []byte)
	AddClipFunc      func(instance []byte, clip int, tracks []float32, time, weight float32)
	UpdateFunc       func(instance []byte)
	BoundingBoxFunc  func(instance []byte) BoundingBox
	RenderFunc       func(instance []byte, view, proj *mgl32.Mat4, layer int, q *render.Queues)
}

var _ SceneCode = (*SceneFuncs)(nil)

// Validate fails when a function is missing.
func (f *SceneFuncs) Validate(asset string) error {
	missing := func(name string) error { return errors.MissingEntryPoint(asset, name) }
	switch {
	case f.InitGlobalFunc == nil:
		return missing(EntryInitGlobal)
	case f.DoneGlobalFunc == nil:
		return missing(EntryDoneGlobal)
	case f.InitInstanceFunc == nil:
		return missing(EntryInitInstance)
	case f.DoneInstanceFunc == nil:
		return missing(EntryDoneInstance)
	case f.AddClipFunc == nil:
		return missing(EntryAddClip)
	case f.UpdateFunc == nil:
		return missing(EntryUpdate)
	case f.BoundingBoxFunc == nil:
		return missing(EntryGetBoundingBox)
	case f.RenderFunc == nil:
		return missing(EntryRender)
	}
	return nil
}

func (f *SceneFuncs) InitGlobal(global, data []byte)       { f.InitGlobalFunc(global, data) }
func (f *SceneFuncs) DoneGlobal(global []byte)             { f.DoneGlobalFunc(global) }
func (f *SceneFuncs) InitInstance(global, instance []byte) { f.InitInstanceFunc(global, instance) }
func (f *SceneFuncs) DoneInstance(instance []byte)         { f.DoneInstanceFunc(instance) }
func (f *SceneFuncs) Update(instance []byte)               { f.UpdateFunc(instance) }

func (f *SceneFuncs) AddClip(instance []byte, clip int, tracks []float32, time, weight float32) {
	f.AddClipFunc(instance, clip, tracks, time, weight)
}

func (f *SceneFuncs) BoundingBox(instance []byte) BoundingBox {
	return f.BoundingBoxFunc(instance)
}

func (f *SceneFuncs) Render(instance []byte, view, proj *mgl32.Mat4, layer int, q *render.Queues) {
	f.RenderFunc(instance, view, proj, layer, q)
}

// TextureFuncs implements TextureCode with Go functions.
type TextureFuncs struct {
	InitGlobalFunc func(global, data []byte)
	DoneGlobalFunc func(global []byte)
	CopyFunc       func(global, dst []byte)
}

var _ TextureCode = (*TextureFuncs)(nil)

// Validate fails when a function is missing.
func (f *TextureFuncs) Validate(asset string) error {
	switch {
	case f.InitGlobalFunc == nil:
		return errors.MissingEntryPoint(asset, EntryInitGlobal)
	case f.DoneGlobalFunc == nil:
		return errors.MissingEntryPoint(asset, EntryDoneGlobal)
	case f.CopyFunc == nil:
		return errors.MissingEntryPoint(asset, EntryCopy)
	}
	return nil
}

func (f *TextureFuncs) InitGlobal(global, data []byte) { f.InitGlobalFunc(global, data) }
func (f *TextureFuncs) DoneGlobal(global []byte)       { f.DoneGlobalFunc(global) }
func (f *TextureFuncs) Copy(global, dst []byte)        { f.CopyFunc(global, dst) }
