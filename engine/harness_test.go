package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/wippyai/scene-runtime/abi"
	"github.com/wippyai/scene-runtime/config"
	"github.com/wippyai/scene-runtime/container"
	"github.com/wippyai/scene-runtime/gpu/gputest"
	"github.com/wippyai/scene-runtime/inlinefile"
	"github.com/wippyai/scene-runtime/memory"
	"github.com/wippyai/scene-runtime/render"
)

// Instance layout of the test scene.
const (
	offFlag   = 0
	offCount  = 4
	offTex    = 8
	offColor  = 16
	offLabel  = 32
	offXform  = 48
	offAnim   = 112
	offObject = 120
	offCamera = 128
	boxSize   = 160
)

// harness drives an engine with Go scenes and a recording GL.
type harness struct {
	t   *testing.T
	gl  *gputest.Recorder
	e   *Engine
	log []string

	layers []int
	projs  []mgl32.Mat4
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	h := &harness{t: t, gl: gputest.New()}
	if cfg == nil {
		cfg = config.Default()
	}
	e, err := New(WithGL(h.gl), WithConfig(cfg), WithAllocator(memory.Heap{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.e = e
	t.Cleanup(e.Clear)
	return h
}

func (h *harness) logf(format string, args ...any) {
	h.log = append(h.log, fmt.Sprintf(format, args...))
}

// logged returns the log entries starting with prefix.
func (h *harness) logged(prefix string) []string {
	var out []string
	for _, l := range h.log {
		if strings.HasPrefix(l, prefix) {
			out = append(out, l)
		}
	}
	return out
}

func (h *harness) draw(a *render.Arena, job int32) {
	h.gl.Calls = append(h.gl.Calls, fmt.Sprintf("draw %d", a.ID[job]))
}

// drawn returns the draws and blend changes recorded by the GL.
func (h *harness) drawn() []string {
	var out []string
	for _, c := range h.gl.Calls {
		if strings.HasPrefix(c, "draw ") || strings.HasPrefix(c, "BlendFunc") {
			out = append(out, c)
		}
	}
	return out
}

func (h *harness) texture(name string, value uint32) abi.TextureInfo {
	return abi.TextureInfo{
		Name:       name,
		Type:       abi.TypeTexture2D,
		GlobalSize: 4,
		Code: &abi.TextureFuncs{
			InitGlobalFunc: func(global, _ []byte) {
				*uint32At(global) = value
				h.logf("initGlobal %s", name)
			},
			DoneGlobalFunc: func([]byte) { h.logf("doneGlobal %s", name) },
			CopyFunc: func(global, dst []byte) {
				copy(dst[:4], global)
				h.logf("copy %s", name)
			},
		},
	}
}

// box is a scene whose render emits two opaque jobs (shaders 1 and 0) and,
// when color.x is positive, one alpha job at distance color.x. Job ids are
// 10*color.x plus the shader, or plus 9 for the alpha job.
func (h *harness) box(name string) abi.SceneInfo {
	return abi.SceneInfo{
		Name: name,
		Nodes: []container.Node{
			{Name: "root", Type: 1},
			{Name: "mesh", Type: 3},
		},
		Attributes: []container.Attribute{
			{Name: "camera", Type: uint32(abi.TypeProjection), Offset: offCamera},
			{Name: "color", Type: uint32(abi.TypeFloat4), Offset: offColor, Semantic: "diffuse"},
			{Name: "count", Type: uint32(abi.TypeInt), Offset: offCount},
			{Name: "flag", Type: uint32(abi.TypeBool), Offset: offFlag},
			{Name: "label", Type: uint32(abi.TypeString), Offset: offLabel},
			{Name: "tex", Type: uint32(abi.TypeTexture2D), Offset: offTex},
			{Name: "weights", Type: uint32(abi.ArrayOf(abi.TypeFloat2, 2)), Offset: offColor},
			{Name: "xform", Type: uint32(abi.TypeFloat4x4), Offset: offXform},
		},
		TextureBindings: []container.TextureBinding{
			{TextureIndex: 0, Type: uint32(abi.TypeTexture2D), Offset: offTex},
			{TextureIndex: 0, Type: uint32(abi.TypeTextureCube), Offset: offCount},
		},
		AttributeSets: []container.AttributeSet{
			{Name: "anim", Offset: offAnim, NumTracks: 2, ClipIndex: 0, NumClips: 2},
		},
		Clips: []container.Clip{
			{Name: "run", Index: 5, Length: 2},
			{Name: "walk", Index: 7, Length: 1.5},
		},
		Objects: []container.ObjectID{
			{Name: "pCube[0]", Offset: offObject},
		},
		InstanceSize: boxSize,
		Code: &abi.SceneFuncs{
			InitGlobalFunc:   func(_, _ []byte) { h.logf("initGlobal %s", name) },
			DoneGlobalFunc:   func([]byte) { h.logf("doneGlobal %s", name) },
			InitInstanceFunc: func(_, _ []byte) { h.logf("initInstance %s", name) },
			DoneInstanceFunc: func([]byte) { h.logf("doneInstance %s", name) },
			AddClipFunc: func(_ []byte, clip int, tracks []float32, time, weight float32) {
				tracks[0] += weight * float32(clip)
				tracks[1] += time
				h.logf("addClip %s %d", name, clip)
			},
			UpdateFunc: func([]byte) { h.logf("update %s", name) },
			BoundingBoxFunc: func([]byte) abi.BoundingBox {
				return abi.BoundingBoxFrom([8]float32{1, 2, 3, 0, 4, 5, 6, 0})
			},
			RenderFunc: func(instance []byte, _, proj *mgl32.Mat4, layer int, q *render.Queues) {
				h.layers = append(h.layers, layer)
				h.projs = append(h.projs, *proj)
				dist := floats(instance[offColor:], 1)[0]
				base := int32(dist * 10)
				a := q.Arena()
				for _, shader := range []int{1, 0} {
					if job, ok := q.Opaque(shader); ok {
						a.ID[job] = base + int32(shader)
						a.Render[job] = h.draw
					}
				}
				if dist <= 0 {
					return
				}
				if job, ok := q.Alpha(); ok {
					a.ID[job] = base + 9
					a.Distance[job] = dist
					a.Render[job] = h.draw
				}
			},
		},
	}
}

// load adds an inline file with one texture and the given scenes.
func (h *harness) load(scenes ...abi.SceneInfo) int {
	h.t.Helper()
	f, err := inlinefile.New(nil, []abi.TextureInfo{h.texture("stone", 42)}, scenes)
	if err != nil {
		h.t.Fatalf("inlinefile.New: %v", err)
	}
	return h.e.AddFile(f)
}

// scene loads a file with a single box and instantiates it.
func (h *harness) scene() (file, group, scene int) {
	h.t.Helper()
	file = h.load(h.box("box"))
	group = h.e.CreateGroup()
	scene = h.e.CreateScene(file, 0, group)
	if scene < 0 {
		h.t.Fatalf("CreateScene = %d", scene)
	}
	return file, group, scene
}

func (h *harness) instance(scene int) []byte {
	s, ok := h.e.scenes.Get(scene)
	if !ok {
		h.t.Fatalf("scene %d not live", scene)
	}
	return s.mem()
}
