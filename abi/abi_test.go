package abi

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/wippyai/scene-runtime/container"
	rterrors "github.com/wippyai/scene-runtime/errors"
)

func TestAttributeType(t *testing.T) {
	tests := []struct {
		typ        AttributeType
		name       string
		elements   int
		floats     int
		components int
		texture    bool
	}{
		{TypeBool, "bool", 0, 0, 0, false},
		{TypeFloat, "float", 0, 1, 1, false},
		{TypeFloat3, "float3", 0, 3, 3, false},
		{TypeFloat4x4, "float4x4", 0, 16, 16, false},
		{ArrayOf(TypeFloat2, 4), "float2[4]", 4, 8, 2, false},
		{ArrayOf(TypeTexture2D, 2), "texture2D[2]", 2, 0, 0, true},
		{TypeTextureCube, "textureCube", 0, 0, 0, true},
		{AttributeType(200), "type(200)", 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.name {
				t.Errorf("String() = %q", got)
			}
			if got := tt.typ.Elements(); got != tt.elements {
				t.Errorf("Elements() = %d, want %d", got, tt.elements)
			}
			if got := tt.typ.FloatCount(); got != tt.floats {
				t.Errorf("FloatCount() = %d, want %d", got, tt.floats)
			}
			if got := tt.typ.FloatComponents(); got != tt.components {
				t.Errorf("FloatComponents() = %d, want %d", got, tt.components)
			}
			if got := tt.typ.IsTexture(); got != tt.texture {
				t.Errorf("IsTexture() = %v", got)
			}
		})
	}
}

func TestBoundingBoxFrom(t *testing.T) {
	b := BoundingBoxFrom([8]float32{1, 2, 3, 99, 0.5, 1, 2, 99})
	if b.Center != (mgl32.Vec3{1, 2, 3}) || b.Size != (mgl32.Vec3{0.5, 1, 2}) {
		t.Fatalf("got %+v", b)
	}
	if b.Min() != (mgl32.Vec3{0.5, 1, 1}) || b.Max() != (mgl32.Vec3{1.5, 3, 5}) {
		t.Errorf("corners %v %v", b.Min(), b.Max())
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	p := Projection{Mode: 2, Scale: 35, FilmSize: mgl32.Vec2{36, 24}, FilmOffset: mgl32.Vec2{1, -1}, Near: 0.1, Far: 100}
	b := make([]byte, ProjectionSize)
	p.Put(b)
	if got := ReadProjection(b); got != p {
		t.Fatalf("ReadProjection = %+v, want %+v", got, p)
	}
}

func TestProjectionMatrix(t *testing.T) {
	near, far := float32(1), float32(101)
	nf := 1 / (near - far)

	tests := []struct {
		name   string
		p      Projection
		aspect float32
		fx, fy float32
	}{
		// horizontal fit keeps film width; height follows the view
		{"horizontal", Projection{Mode: 2, Scale: 1, FilmSize: mgl32.Vec2{2, 2}, Near: near, Far: far}, 2, 1, 2},
		// vertical fit keeps film height
		{"vertical", Projection{Mode: 3, Scale: 1, FilmSize: mgl32.Vec2{2, 2}, Near: near, Far: far}, 2, 0.5, 1},
		// fill on a wide view: aspect*h > w, fixed in x
		{"fill", Projection{Mode: 1, Scale: 1, FilmSize: mgl32.Vec2{2, 2}, Near: near, Far: far}, 2, 1, 2},
		// overscan on a wide view: fixed in y
		{"overscan", Projection{Mode: 4, Scale: 1, FilmSize: mgl32.Vec2{2, 2}, Near: near, Far: far}, 2, 0.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.p.Matrix(tt.aspect)
			if !mgl32.FloatEqual(m[0], tt.fx) || !mgl32.FloatEqual(m[5], tt.fy) {
				t.Fatalf("scale = (%v, %v), want (%v, %v)", m[0], m[5], tt.fx, tt.fy)
			}
			if m[11] != -1 || m[15] != 0 {
				t.Errorf("not a perspective matrix: %v", m)
			}
			if !mgl32.FloatEqual(m[10], (far+near)*nf) || !mgl32.FloatEqual(m[14], 2*far*near*nf) {
				t.Errorf("depth terms %v %v", m[10], m[14])
			}
		})
	}

	ortho := Projection{Mode: -2, Scale: 1, FilmSize: mgl32.Vec2{2, 2}, FilmOffset: mgl32.Vec2{1, 0}, Near: near, Far: far}
	m := ortho.Matrix(1)
	if m[15] != 1 || m[11] != 0 {
		t.Errorf("not an orthographic matrix: %v", m)
	}
	if !mgl32.FloatEqual(m[10], 2*nf) || !mgl32.FloatEqual(m[12], 1) {
		t.Errorf("ortho terms %v %v", m[10], m[12])
	}
}

func scenePublics(skip string) []container.Public {
	var ps []container.Public
	for i, n := range SceneEntries {
		if n == skip {
			continue
		}
		ps = append(ps, container.Public{Name: n, Offset: uint64(i * 16)})
	}
	return ps
}

func TestBindScene(t *testing.T) {
	publics := append(scenePublics(""), container.Public{Name: "helper", Offset: 4})
	ep, err := BindScene("cube", publics, 0x1000, 256)
	if err != nil {
		t.Fatalf("BindScene: %v", err)
	}
	if ep.Render.Addr != 0x1000+7*16 || ep.Render.Name != EntryRender {
		t.Errorf("render bound to %+v", ep.Render)
	}
	if ep.InitGlobal.Addr != 0x1000 {
		t.Errorf("initGlobal bound to %+v", ep.InitGlobal)
	}
}

func TestBindSceneMissing(t *testing.T) {
	for _, missing := range SceneEntries {
		_, err := BindScene("cube", scenePublics(missing), 0x1000, 256)
		var e *rterrors.Error
		if !errors.As(err, &e) {
			t.Fatalf("missing %s: error %v", missing, err)
		}
		if e.Kind != rterrors.KindMissingEntryPoint || e.Symbol != missing || e.Asset != "cube" {
			t.Errorf("missing %s: got %+v", missing, e)
		}
	}
}

func TestBindOffsetOutOfRange(t *testing.T) {
	publics := []container.Public{
		{Name: EntryInitGlobal, Offset: 0},
		{Name: EntryDoneGlobal, Offset: 8},
		{Name: EntryCopy, Offset: 64},
	}
	_, err := BindTexture("checker", publics, 0x2000, 64)
	var e *rterrors.Error
	if !errors.As(err, &e) || e.Kind != rterrors.KindOutOfBounds {
		t.Fatalf("expected out of bounds error, got %v", err)
	}

	publics[2].Offset = 63
	ep, err := BindTexture("checker", publics, 0x2000, 64)
	if err != nil {
		t.Fatalf("BindTexture: %v", err)
	}
	if ep.Copy.Addr != 0x2000+63 {
		t.Errorf("copy bound to %#x", ep.Copy.Addr)
	}
}

func TestFuncsValidate(t *testing.T) {
	noop := func([]byte) {}
	f := &SceneFuncs{
		InitGlobalFunc:   func(_, _ []byte) {},
		DoneGlobalFunc:   noop,
		InitInstanceFunc: func(_, _ []byte) {},
		DoneInstanceFunc: noop,
		AddClipFunc:      func([]byte, int, []float32, float32, float32) {},
		UpdateFunc:       noop,
		BoundingBoxFunc:  func([]byte) BoundingBox { return BoundingBox{} },
	}
	err := f.Validate("s")
	var e *rterrors.Error
	if !errors.As(err, &e) || e.Symbol != EntryRender {
		t.Fatalf("Validate = %v, want missing render", err)
	}

	tf := &TextureFuncs{InitGlobalFunc: func(_, _ []byte) {}, DoneGlobalFunc: noop, CopyFunc: func(_, _ []byte) {}}
	if err := tf.Validate("t"); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestSceneInfoLookup(t *testing.T) {
	s := &SceneInfo{
		Attributes: []container.Attribute{{Name: "color"}, {Name: "size"}, {Name: "visible"}},
		AttributeSets: []container.AttributeSet{
			{Name: "body", ClipIndex: 0, NumClips: 2},
			{Name: "face", ClipIndex: 2, NumClips: 1},
			{Name: "broken", ClipIndex: 2, NumClips: 5},
		},
		Clips:   []container.Clip{{Name: "run"}, {Name: "walk"}, {Name: "blink"}},
		Objects: []container.ObjectID{{Name: "pCube1[0]"}, {Name: "pCube1[1]"}},
	}

	if i := s.AttributeIndex("size"); i != 1 {
		t.Errorf("AttributeIndex(size) = %d", i)
	}
	if i := s.AttributeIndex("alpha"); i != -1 {
		t.Errorf("AttributeIndex(alpha) = %d", i)
	}
	if i := s.AttributeSetIndex("face"); i != 1 {
		t.Errorf("AttributeSetIndex(face) = %d", i)
	}
	if i := s.ObjectIndex("pCube1[1]"); i != 1 {
		t.Errorf("ObjectIndex = %d", i)
	}
	if i := s.ClipIndex(&s.AttributeSets[0], "walk"); i != 1 {
		t.Errorf("ClipIndex(body, walk) = %d", i)
	}
	if i := s.ClipIndex(&s.AttributeSets[1], "blink"); i != 0 {
		t.Errorf("ClipIndex(face, blink) = %d", i)
	}
	if i := s.ClipIndex(&s.AttributeSets[1], "run"); i != -1 {
		t.Errorf("ClipIndex(face, run) = %d", i)
	}
	if clips := s.SetClips(&s.AttributeSets[2]); clips != nil {
		t.Errorf("SetClips outside range = %v", clips)
	}

	scenes := []SceneInfo{{Name: "a"}, {Name: "c"}, {Name: "e"}}
	if i := SceneIndex(scenes, "c"); i != 1 {
		t.Errorf("SceneIndex(c) = %d", i)
	}
	if i := SceneIndex(scenes, "d"); i != -1 {
		t.Errorf("SceneIndex(d) = %d", i)
	}
}
