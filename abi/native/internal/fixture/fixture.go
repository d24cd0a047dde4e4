//go:build cgo

// Package fixture provides a small scene and texture written in C for
// exercising the native bridge.
//
// Global memory holds an int32 seed copied from the data blob. Instances
// hold the seed at offset 0 and an update counter at offset 4. Render
// draws one opaque job with id seed and pushes two alpha jobs with ids
// seed+1 and seed+2 whose distance is the layer, as far as the queues
// have room.
package fixture

/*
#cgo CFLAGS: -I${SRCDIR}/../..

#include <stdint.h>
#include <string.h>
#include "scene.h"

static int fx_rendered[64];
static int fx_num_rendered;
static int fx_renders;
static int fx_done_globals;
static int fx_done_instances;

static void fx_init_global(void* global, uint8_t* data) {
	memcpy(global, data, 4);
}

static void fx_done_global(void* global) {
	fx_done_globals++;
}

static void fx_init_instance(const void* global, void* instance) {
	memcpy(instance, global, 4);
}

static void fx_done_instance(void* instance) {
	fx_done_instances++;
}

static void fx_add_clip(void* instance, int index, float* tracks, float time, float weight) {
	tracks[0] += weight * (float)index;
	tracks[1] += time;
}

static void fx_update(void* instance) {
	((int32_t*)instance)[1]++;
}

static void fx_get_bounding_box(void* instance, float* boundingBox) {
	for (int i = 0; i < 8; i++) {
		boundingBox[i] = (float)i;
	}
}

static void fx_job_render(RenderJob* job) {
	if (fx_num_rendered < 64) {
		fx_rendered[fx_num_rendered++] = job->id;
	}
}

static void fx_render(void* instance, const float* view, const float* proj, int layer, RenderQueues* queues) {
	int32_t seed = ((int32_t*)instance)[0];
	fx_renders++;
	if (queues->begin != queues->end) {
		RenderJob* job = queues->begin++;
		memcpy(job->matrix, view, sizeof(job->matrix));
		job->id = seed;
		fx_job_render(job);
	}
	for (int i = 1; i <= 2 && queues->begin != queues->end; i++) {
		RenderJob* job = --queues->end;
		memcpy(job->matrix, proj, sizeof(job->matrix));
		job->distance = (float)layer;
		job->id = seed + i;
		job->render = fx_job_render;
		job->next = queues->alphaSort;
		queues->alphaSort = job;
	}
}

static void fx_copy(const void* global, void* instance) {
	memcpy(instance, global, 4);
}

static uintptr_t fx_addr(int i) {
	switch (i) {
	case 0: return (uintptr_t)&fx_init_global;
	case 1: return (uintptr_t)&fx_done_global;
	case 2: return (uintptr_t)&fx_init_instance;
	case 3: return (uintptr_t)&fx_done_instance;
	case 4: return (uintptr_t)&fx_add_clip;
	case 5: return (uintptr_t)&fx_update;
	case 6: return (uintptr_t)&fx_get_bounding_box;
	case 7: return (uintptr_t)&fx_render;
	case 8: return (uintptr_t)&fx_copy;
	}
	return 0;
}

static int fx_rendered_at(int i) { return fx_rendered[i]; }
static int fx_rendered_count(void) { return fx_num_rendered; }
static int fx_render_count(void) { return fx_renders; }
static int fx_done_global_count(void) { return fx_done_globals; }
static int fx_done_instance_count(void) { return fx_done_instances; }

typedef float (*fx_track_fn)(float*, float*, int, float);

static float fx_call_track(uintptr_t fn, float* xs, float* ys, int n, float x) {
	return ((fx_track_fn)fn)(xs, ys, n, x);
}

static void fx_reset(void) {
	fx_num_rendered = 0;
	fx_renders = 0;
	fx_done_globals = 0;
	fx_done_instances = 0;
}
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/scene-runtime/abi"
)

func entry(name string, i int) abi.EntryPoint {
	return abi.EntryPoint{Name: name, Addr: uintptr(C.fx_addr(C.int(i)))}
}

// Scene returns the entry points of the fixture scene.
func Scene() *abi.SceneEntryPoints {
	return &abi.SceneEntryPoints{
		InitGlobal:     entry(abi.EntryInitGlobal, 0),
		DoneGlobal:     entry(abi.EntryDoneGlobal, 1),
		InitInstance:   entry(abi.EntryInitInstance, 2),
		DoneInstance:   entry(abi.EntryDoneInstance, 3),
		AddClip:        entry(abi.EntryAddClip, 4),
		Update:         entry(abi.EntryUpdate, 5),
		GetBoundingBox: entry(abi.EntryGetBoundingBox, 6),
		Render:         entry(abi.EntryRender, 7),
	}
}

// Texture returns the entry points of the fixture texture. It shares the
// scene's global functions.
func Texture() *abi.TextureEntryPoints {
	return &abi.TextureEntryPoints{
		InitGlobal: entry(abi.EntryInitGlobal, 0),
		DoneGlobal: entry(abi.EntryDoneGlobal, 1),
		Copy:       entry(abi.EntryCopy, 8),
	}
}

// Rendered returns the ids of the jobs rendered since the last Reset.
func Rendered() []int32 {
	n := int(C.fx_rendered_count())
	ids := make([]int32, n)
	for i := range ids {
		ids[i] = int32(C.fx_rendered_at(C.int(i)))
	}
	return ids
}

// Renders returns how often the scene's render ran since the last Reset.
func Renders() int { return int(C.fx_render_count()) }

// DoneGlobals returns how often doneGlobal ran since the last Reset.
func DoneGlobals() int { return int(C.fx_done_global_count()) }

// DoneInstances returns how often doneInstance ran since the last Reset.
func DoneInstances() int { return int(C.fx_done_instance_count()) }

// Reset clears the counters.
func Reset() { C.fx_reset() }

// CallTrack calls a float track evaluator through its address the way
// compiled scene code does. ys must hold the values the evaluator reads
// for len(xs) keys.
func CallTrack(addr uintptr, xs, ys []float32, x float32) float32 {
	return float32(C.fx_call_track(C.uintptr_t(addr),
		(*C.float)(unsafe.Pointer(&xs[0])), (*C.float)(unsafe.Pointer(&ys[0])),
		C.int(len(xs)), C.float(x)))
}
