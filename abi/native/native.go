//go:build cgo

package native

/*
#cgo !windows LDFLAGS: -lm

#include <stdint.h>
#include <string.h>
#include "scene.h"

static void call_init_global(uintptr_t fn, void* global, uint8_t* data) {
	((initGlobalFunc)fn)(global, data);
}

static void call_done_global(uintptr_t fn, void* global) {
	((doneGlobalFunc)fn)(global);
}

static void call_init_instance(uintptr_t fn, const void* global, void* instance) {
	((initInstanceFunc)fn)(global, instance);
}

static void call_instance(uintptr_t fn, void* instance) {
	((updateFunc)fn)(instance);
}

static void call_add_clip(uintptr_t fn, void* instance, int index, float* tracks, float time, float weight) {
	((addClipFunc)fn)(instance, index, tracks, time, weight);
}

static void call_get_bounding_box(uintptr_t fn, void* instance, float* out) {
	float boundingBox[8] __attribute__((aligned(16)));
	((getBoundingBoxFunc)fn)(instance, boundingBox);
	memcpy(out, boundingBox, sizeof(boundingBox));
}

// Compiled scenes load matrices with aligned vector loads.
static void call_render(uintptr_t fn, void* instance, const float* view, const float* proj, int layer, RenderQueues* queues) {
	float v[16] __attribute__((aligned(16)));
	float p[16] __attribute__((aligned(16)));
	memcpy(v, view, sizeof(v));
	memcpy(p, proj, sizeof(p));
	((renderFunc)fn)(instance, v, p, layer, queues);
}

static void call_copy(uintptr_t fn, const void* global, void* instance) {
	((copyFunc)fn)(global, instance);
}
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/wippyai/scene-runtime/abi"
	"github.com/wippyai/scene-runtime/errors"
	"github.com/wippyai/scene-runtime/render"
)

var (
	loggerMu sync.RWMutex
	logger   *zap.Logger
)

// Logger returns the package logger, a no-op logger by default.
func Logger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// SetLogger replaces the package logger. Nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// Binder binds entry points of relocated machine code. It owns the C
// staging memory render calls use and must be closed after the last
// scene bound by it is released.
type Binder struct {
	mu     sync.Mutex
	stages map[*render.Arena]*staging
	closed bool
}

var _ abi.Binder = (*Binder)(nil)

// NewBinder creates a binder.
func NewBinder() *Binder {
	return &Binder{stages: make(map[*render.Arena]*staging)}
}

// BindScene implements abi.Binder.
func (b *Binder) BindScene(asset string, ep *abi.SceneEntryPoints) (abi.SceneCode, error) {
	if ep == nil {
		return nil, errors.InvalidInput(errors.PhaseValidate, "nil scene entry points")
	}
	entries := []abi.EntryPoint{
		ep.InitGlobal, ep.DoneGlobal, ep.InitInstance, ep.DoneInstance,
		ep.AddClip, ep.Update, ep.GetBoundingBox, ep.Render,
	}
	for i, e := range entries {
		if e.Addr == 0 {
			return nil, errors.MissingEntryPoint(asset, abi.SceneEntries[i])
		}
	}
	return &sceneCode{binder: b, ep: *ep}, nil
}

// BindTexture implements abi.Binder.
func (b *Binder) BindTexture(asset string, ep *abi.TextureEntryPoints) (abi.TextureCode, error) {
	if ep == nil {
		return nil, errors.InvalidInput(errors.PhaseValidate, "nil texture entry points")
	}
	for i, e := range []abi.EntryPoint{ep.InitGlobal, ep.DoneGlobal, ep.Copy} {
		if e.Addr == 0 {
			return nil, errors.MissingEntryPoint(asset, abi.TextureEntries[i])
		}
	}
	return &textureCode{ep: *ep}, nil
}

// Close frees the staging memory. Rendering through code bound by b
// after Close fails silently.
func (b *Binder) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for a, s := range b.stages {
		s.free()
		delete(b.stages, a)
	}
	b.closed = true
	return nil
}

// stage returns the staging mirroring a, creating it on first use.
func (b *Binder) stage(a *render.Arena) *staging {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	if s, ok := b.stages[a]; ok {
		return s
	}
	s := newStaging(a)
	if s == nil {
		Logger().Warn("render staging allocation failed", zap.Int("jobs", a.Cap()))
		return nil
	}
	b.stages[a] = s
	return s
}

func ptr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

type sceneCode struct {
	binder *Binder
	ep     abi.SceneEntryPoints
}

var _ abi.SceneCode = (*sceneCode)(nil)

func fn(e abi.EntryPoint) C.uintptr_t { return C.uintptr_t(e.Addr) }

func (s *sceneCode) InitGlobal(global, data []byte) {
	C.call_init_global(fn(s.ep.InitGlobal), ptr(global), (*C.uint8_t)(ptr(data)))
}

func (s *sceneCode) DoneGlobal(global []byte) {
	C.call_done_global(fn(s.ep.DoneGlobal), ptr(global))
}

func (s *sceneCode) InitInstance(global, instance []byte) {
	C.call_init_instance(fn(s.ep.InitInstance), ptr(global), ptr(instance))
}

func (s *sceneCode) DoneInstance(instance []byte) {
	C.call_instance(fn(s.ep.DoneInstance), ptr(instance))
}

func (s *sceneCode) Update(instance []byte) {
	C.call_instance(fn(s.ep.Update), ptr(instance))
}

func (s *sceneCode) AddClip(instance []byte, clip int, tracks []float32, time, weight float32) {
	var values *C.float
	if len(tracks) > 0 {
		values = (*C.float)(unsafe.Pointer(&tracks[0]))
	}
	C.call_add_clip(fn(s.ep.AddClip), ptr(instance), C.int(clip), values, C.float(time), C.float(weight))
}

func (s *sceneCode) BoundingBox(instance []byte) abi.BoundingBox {
	var bb [8]C.float
	C.call_get_bounding_box(fn(s.ep.GetBoundingBox), ptr(instance), &bb[0])
	var m [8]float32
	for i, v := range bb {
		m[i] = float32(v)
	}
	return abi.BoundingBoxFrom(m)
}

func (s *sceneCode) Render(instance []byte, view, proj *mgl32.Mat4, layer int, q *render.Queues) {
	// Without staging the scene still renders, against empty queues.
	var cq C.RenderQueues
	st := s.binder.stage(q.Arena())
	if st != nil {
		cq = st.queues(q)
	}
	C.call_render(fn(s.ep.Render), ptr(instance),
		(*C.float)(unsafe.Pointer(&view[0])), (*C.float)(unsafe.Pointer(&proj[0])),
		C.int(layer), &cq)
	if st != nil {
		st.finish(q, &cq)
	}
}

type textureCode struct {
	ep abi.TextureEntryPoints
}

var _ abi.TextureCode = (*textureCode)(nil)

func (t *textureCode) InitGlobal(global, data []byte) {
	C.call_init_global(fn(t.ep.InitGlobal), ptr(global), (*C.uint8_t)(ptr(data)))
}

func (t *textureCode) DoneGlobal(global []byte) {
	C.call_done_global(fn(t.ep.DoneGlobal), ptr(global))
}

func (t *textureCode) Copy(global, dst []byte) {
	C.call_copy(fn(t.ep.Copy), ptr(global), ptr(dst))
}
