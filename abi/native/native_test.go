//go:build cgo

package native

import (
	"encoding/binary"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/wippyai/scene-runtime/abi"
	"github.com/wippyai/scene-runtime/abi/native/internal/fixture"
	"github.com/wippyai/scene-runtime/errors"
	"github.com/wippyai/scene-runtime/render"
	"github.com/wippyai/scene-runtime/symbols"
	"github.com/wippyai/scene-runtime/track"
)

func seed(v int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

func bindFixture(t *testing.T) (*Binder, abi.SceneCode, []byte) {
	t.Helper()
	fixture.Reset()
	b := NewBinder()
	t.Cleanup(func() { b.Close() })
	code, err := b.BindScene("fixture", fixture.Scene())
	if err != nil {
		t.Fatalf("BindScene: %v", err)
	}
	global := make([]byte, 4)
	code.InitGlobal(global, seed(40))
	return b, code, global
}

func TestHostTrackEvaluators(t *testing.T) {
	table := HostTable()
	xs := []float32{0, 1, 2}
	tests := []struct {
		name string
		ys   []float32
		want func(x float32) float32
	}{
		{"evalStepTrack", []float32{10, 20, 30}, func(x float32) float32 {
			return track.Step(xs, []float32{10, 20, 30}, x)
		}},
		{"evalHermiteTrack", []float32{0, 1, 2, 3, 4, 5, 6}, func(x float32) float32 {
			return track.Hermite(xs, []float32{0, 1, 2, 3, 4, 5, 6}, x)
		}},
		{"evalBezierTrack", []float32{0, 1, 2, 3, 4, 5, 6}, func(x float32) float32 {
			return track.Bezier(xs, []float32{0, 1, 2, 3, 4, 5, 6}, x)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, ok := table.Lookup(tt.name)
			if !ok {
				t.Fatalf("%s not in host table", tt.name)
			}
			for _, x := range []float32{0, 0.5, 1.25, 2} {
				if got, want := fixture.CallTrack(addr, xs, tt.ys, x), tt.want(x); got != want {
					t.Errorf("%s(%g) = %g, want %g", tt.name, x, got, want)
				}
			}
		})
	}
}

func TestHostSymbols(t *testing.T) {
	syms := HostSymbols()
	names := make([]string, len(syms))
	for i, s := range syms {
		if s.Addr == 0 {
			t.Errorf("%s has no address", s.Name)
		}
		names[i] = s.Name
	}
	for _, want := range []string{"sinf", "memcpy", "malloc", "evalBezierTrack", "evalCatmullRomTrack16"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing host symbol %s", want)
		}
	}

	table := HostTable(symbols.Symbol{Name: "glClear", Addr: 0x10})
	if addr, ok := table.Lookup("glClear"); !ok || addr != 0x10 {
		t.Errorf("Lookup(glClear) = %#x, %v", addr, ok)
	}
	if _, ok := table.Lookup("sqrtf"); !ok {
		t.Error("sqrtf not in host table")
	}
}

func TestKeyCounts(t *testing.T) {
	tests := []struct {
		keys int
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 4},
		{3, 7},
	}
	for _, tt := range tests {
		if got := splineLen(tt.keys); got != tt.want {
			t.Errorf("splineLen(%d) = %d, want %d", tt.keys, got, tt.want)
		}
	}
	if got := catmullRomLen(2.5); got != 6 {
		t.Errorf("catmullRomLen(2.5) = %d, want 6", got)
	}
	if got := catmullRomLen(-1); got != 0 {
		t.Errorf("catmullRomLen(-1) = %d, want 0", got)
	}
}

func TestBindMissingEntryPoint(t *testing.T) {
	b := NewBinder()
	defer b.Close()

	ep := fixture.Scene()
	ep.Update.Addr = 0
	_, err := b.BindScene("broken", ep)
	var e *errors.Error
	if !errors.As(err, &e) || e.Kind != errors.KindMissingEntryPoint || e.Symbol != abi.EntryUpdate {
		t.Fatalf("BindScene error = %v", err)
	}

	tex := fixture.Texture()
	tex.Copy.Addr = 0
	_, err = b.BindTexture("broken", tex)
	if !errors.As(err, &e) || e.Symbol != abi.EntryCopy {
		t.Fatalf("BindTexture error = %v", err)
	}
}

func TestSceneLifecycle(t *testing.T) {
	_, code, global := bindFixture(t)

	instance := make([]byte, 8)
	code.InitInstance(global, instance)
	if got := int32(binary.LittleEndian.Uint32(instance)); got != 40 {
		t.Fatalf("instance seed = %d, want 40", got)
	}

	tracks := []float32{1, 0}
	code.AddClip(instance, 3, tracks, 0.5, 2)
	if tracks[0] != 7 || tracks[1] != 0.5 {
		t.Errorf("tracks = %v, want [7 0.5]", tracks)
	}

	code.Update(instance)
	code.Update(instance)
	if got := binary.LittleEndian.Uint32(instance[4:]); got != 2 {
		t.Errorf("updates = %d, want 2", got)
	}

	bb := code.BoundingBox(instance)
	if bb.Center != (mgl32.Vec3{0, 1, 2}) || bb.Size != (mgl32.Vec3{4, 5, 6}) {
		t.Errorf("bounding box = %+v", bb)
	}

	code.DoneInstance(instance)
	code.DoneGlobal(global)
	if fixture.DoneInstances() != 1 || fixture.DoneGlobals() != 1 {
		t.Errorf("done calls = %d instances, %d globals", fixture.DoneInstances(), fixture.DoneGlobals())
	}
}

func TestTextureCopy(t *testing.T) {
	b := NewBinder()
	defer b.Close()
	code, err := b.BindTexture("stone", fixture.Texture())
	if err != nil {
		t.Fatalf("BindTexture: %v", err)
	}
	global := make([]byte, 4)
	code.InitGlobal(global, seed(42))
	dst := make([]byte, 4)
	code.Copy(global, dst)
	if got := binary.LittleEndian.Uint32(dst); got != 42 {
		t.Errorf("copied %d, want 42", got)
	}
}

func TestRender(t *testing.T) {
	_, code, global := bindFixture(t)
	instance := make([]byte, 8)
	code.InitInstance(global, instance)

	q := render.NewQueues(render.NewArena(8))
	view := mgl32.Translate3D(1, 2, 3)
	proj := mgl32.Perspective(1, 1, 0.1, 100)
	code.Render(instance, &view, &proj, 3, q)

	if got := fixture.Rendered(); !slices.Equal(got, []int32{40}) {
		t.Fatalf("rendered during scene render = %v, want [40]", got)
	}
	if begin, end := q.Range(); begin != 1 || end != 6 {
		t.Fatalf("Range = [%d, %d), want [1, 6)", begin, end)
	}

	a := q.Arena()
	var chain []int32
	for job := q.AlphaHead(); job != render.Nil; job = a.Next(job) {
		chain = append(chain, job)
		if a.Distance[job] != 3 {
			t.Errorf("job %d distance = %v, want 3", job, a.Distance[job])
		}
		if a.Matrix[job] != proj {
			t.Errorf("job %d matrix = %v, want projection", job, a.Matrix[job])
		}
		if a.Ref[job] == 0 {
			t.Errorf("job %d has no reference", job)
		}
	}
	if !slices.Equal(chain, []int32{7, 6}) {
		t.Fatalf("alpha chain = %v, want [7 6]", chain)
	}

	q.SortAlpha()
	if n := q.FlushAlpha(); n != 2 {
		t.Fatalf("FlushAlpha = %d, want 2", n)
	}
	if got := fixture.Rendered(); !slices.Equal(got, []int32{40, 41, 42}) {
		t.Errorf("rendered = %v, want [40 41 42]", got)
	}
}

func TestRenderSharesStagingAcrossScenes(t *testing.T) {
	b, code, global := bindFixture(t)
	first := make([]byte, 8)
	second := make([]byte, 8)
	code.InitInstance(global, first)
	code.InitInstance(global, second)
	binary.LittleEndian.PutUint32(second, 100)

	q := render.NewQueues(render.NewArena(16))
	view, proj := mgl32.Ident4(), mgl32.Ident4()
	code.Render(first, &view, &proj, 0, q)
	code.Render(second, &view, &proj, 0, q)

	if len(b.stages) != 1 {
		t.Errorf("stages = %d, want 1", len(b.stages))
	}
	if begin, end := q.Range(); begin != 2 || end != 12 {
		t.Fatalf("Range = [%d, %d), want [2, 12)", begin, end)
	}
	q.SortAlpha()
	q.FlushAlpha()
	if got := fixture.Rendered(); !slices.Equal(got, []int32{40, 100, 41, 42, 101, 102}) {
		t.Errorf("rendered = %v", got)
	}
}

func TestRenderExhausted(t *testing.T) {
	_, code, global := bindFixture(t)
	instance := make([]byte, 8)
	code.InitInstance(global, instance)

	q := render.NewQueues(render.NewArena(2))
	view, proj := mgl32.Ident4(), mgl32.Ident4()
	code.Render(instance, &view, &proj, 1, q)

	if q.Available() != 0 {
		t.Errorf("Available = %d, want 0", q.Available())
	}
	if head := q.AlphaHead(); head != 1 || q.Arena().Next(head) != render.Nil {
		t.Errorf("alpha chain starts at %d, want single job 1", head)
	}
}

func TestRenderAfterClose(t *testing.T) {
	b, code, global := bindFixture(t)
	instance := make([]byte, 8)
	code.InitInstance(global, instance)
	b.Close()

	q := render.NewQueues(render.NewArena(4))
	view, proj := mgl32.Ident4(), mgl32.Ident4()
	code.Render(instance, &view, &proj, 0, q)
	if fixture.Renders() != 1 {
		t.Errorf("scene renders = %d, want 1", fixture.Renders())
	}
	if q.Available() != 4 || len(fixture.Rendered()) != 0 || q.AlphaHead() != render.Nil {
		t.Error("render after Close queued jobs")
	}
}

func TestRenderZeroCapacity(t *testing.T) {
	_, code, global := bindFixture(t)
	instance := make([]byte, 8)
	code.InitInstance(global, instance)

	q := render.NewQueues(render.NewArena(0))
	view, proj := mgl32.Ident4(), mgl32.Ident4()
	code.Render(instance, &view, &proj, 0, q)

	if fixture.Renders() != 1 {
		t.Errorf("scene renders = %d, want 1", fixture.Renders())
	}
	if len(fixture.Rendered()) != 0 || q.AlphaHead() != render.Nil {
		t.Errorf("jobs from an empty arena: rendered %v, alpha head %d", fixture.Rendered(), q.AlphaHead())
	}
}
