package engine

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/wippyai/scene-runtime/abi"
	"github.com/wippyai/scene-runtime/errors"
	"github.com/wippyai/scene-runtime/inlinefile"
)

func TestNewRequiresGL(t *testing.T) {
	_, err := New()
	var e *errors.Error
	if !errors.As(err, &e) || e.Kind != errors.KindInvalidInput {
		t.Fatalf("New() err = %v, want invalid input", err)
	}
}

func TestGroupHandleReuse(t *testing.T) {
	h := newHarness(t, nil)
	for want := 0; want < 3; want++ {
		if got := h.e.CreateGroup(); got != want {
			t.Fatalf("CreateGroup = %d, want %d", got, want)
		}
	}
	h.e.DeleteGroup(1)
	h.e.DeleteGroup(1)
	if got := h.e.CreateGroup(); got != 1 {
		t.Errorf("CreateGroup after delete = %d, want 1", got)
	}
	if got := h.e.CreateGroup(); got != 3 {
		t.Errorf("CreateGroup = %d, want 3", got)
	}
}

func TestCreateScene(t *testing.T) {
	h := newHarness(t, nil)
	file := h.load(h.box("a"), h.box("b"))
	g := h.e.CreateGroup()

	tests := []struct {
		name  string
		file  int
		index int
		group int
		want  int
	}{
		{"bad file", 7, 0, g, -1},
		{"bad index", file, 2, g, -1},
		{"negative index", file, -1, g, -1},
		{"bad group", file, 0, 9, -1},
		{"first", file, 1, g, 0},
		{"second", file, 0, g, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.e.CreateScene(tt.file, tt.index, tt.group); got != tt.want {
				t.Errorf("CreateScene = %d, want %d", got, tt.want)
			}
		})
	}

	if got := h.e.CreateSceneByName(file, "b", g); got != 2 {
		t.Errorf("CreateSceneByName(b) = %d, want 2", got)
	}
	if got := h.e.CreateSceneByName(file, "c", g); got != -1 {
		t.Errorf("CreateSceneByName(c) = %d, want -1", got)
	}
	if got := h.e.SceneName(0); got != "b" {
		t.Errorf("SceneName(0) = %q, want b", got)
	}
	if got := h.e.NumScenes(file); got != 2 {
		t.Errorf("NumScenes = %d, want 2", got)
	}
	if got := h.e.FileSceneName(file, 1); got != "b" {
		t.Errorf("FileSceneName = %q, want b", got)
	}
	if got := len(h.logged("initInstance")); got != 3 {
		t.Errorf("initInstance calls = %d, want 3", got)
	}

	// the texture binding of matching type is copied, the other skipped
	tex := h.e.AttributeHandleByName(0, "tex")
	if got := h.e.Texture(tex); got != 42 {
		t.Errorf("Texture = %d, want 42", got)
	}
	if got := h.e.Int(h.e.AttributeHandleByName(0, "count")); got != 0 {
		t.Errorf("count = %d, want 0", got)
	}
	if got := len(h.logged("copy")); got != 3 {
		t.Errorf("texture copies = %d, want 3", got)
	}
}

func TestSceneMetadata(t *testing.T) {
	h := newHarness(t, nil)
	_, _, s := h.scene()

	if got := h.e.NumNodes(s); got != 2 {
		t.Errorf("NumNodes = %d, want 2", got)
	}
	if got := h.e.NodeName(s, 1); got != "mesh" {
		t.Errorf("NodeName = %q, want mesh", got)
	}
	if got := h.e.NodeType(s, 1); got != 3 {
		t.Errorf("NodeType = %d, want 3", got)
	}
	if got := h.e.NodeType(s, 2); got != abi.NodeInvalid {
		t.Errorf("NodeType out of range = %d", got)
	}
	if got := h.e.NumNodes(99); got != -1 {
		t.Errorf("NumNodes(invalid) = %d, want -1", got)
	}

	bb := h.e.BoundingBox(s)
	if bb.Center[0] != 1 || bb.Center[2] != 3 || bb.Size[1] != 5 {
		t.Errorf("BoundingBox = %+v", bb)
	}
	if bb := h.e.BoundingBox(99); bb != (abi.BoundingBox{}) {
		t.Errorf("BoundingBox(invalid) = %+v, want zero", bb)
	}
}

func TestObjectID(t *testing.T) {
	h := newHarness(t, nil)
	file, g, s := h.scene()
	other := h.e.CreateScene(file, 0, g)

	if got := h.e.NumObjects(s); got != 1 {
		t.Errorf("NumObjects = %d, want 1", got)
	}
	if got := h.e.ObjectIDByName(s, "pCube[0]"); got != 1 {
		t.Errorf("ObjectID = %d, want 1", got)
	}
	if got := h.e.ObjectID(s, 0); got != 1 {
		t.Errorf("ObjectID again = %d, want 1", got)
	}
	if got := h.e.ObjectID(other, 0); got != 2 {
		t.Errorf("ObjectID of second scene = %d, want 2", got)
	}
	if got := h.e.ObjectIDByName(s, "nope"); got != -1 {
		t.Errorf("ObjectIDByName(nope) = %d, want -1", got)
	}

	h.e.Clear()
	_, _, s = h.scene()
	if got := h.e.ObjectID(s, 0); got != 1 {
		t.Errorf("ObjectID after Clear = %d, want 1", got)
	}
}

func TestDeleteScene(t *testing.T) {
	h := newHarness(t, nil)
	file, g, s := h.scene()
	second := h.e.CreateScene(file, 0, g)

	ah := h.e.AttributeHandleByName(s, "label")
	h.e.SetString(ah, "hello")
	sh := h.e.AttributeSetHandle(s, 0)

	h.e.DeleteScene(s)
	h.e.DeleteScene(s)

	if got := h.logged("doneInstance"); len(got) != 1 {
		t.Errorf("doneInstance calls = %v, want one", got)
	}
	if h.e.AttributeName(ah) != "" || h.e.AttributeSetName(sh) != "" {
		t.Error("handles of deleted scene still resolve")
	}
	if len(h.e.strings) != 0 {
		t.Errorf("strings = %d, want 0", len(h.e.strings))
	}
	if got := h.e.Stats(); got.Scenes != 1 || got.Attributes != 0 || got.AttributeSets != 0 {
		t.Errorf("Stats = %+v", got)
	}

	// freed slots are reused lowest first
	if got := h.e.CreateScene(file, 0, g); got != s {
		t.Errorf("CreateScene = %d, want reused %d", got, s)
	}
	if got := h.e.AttributeHandle(second, 0); got != ah {
		t.Errorf("AttributeHandle = %d, want reused %d", got, ah)
	}
}

func TestDeleteGroup(t *testing.T) {
	h := newHarness(t, nil)
	file, g, _ := h.scene()
	keep := h.e.CreateGroup()
	kept := h.e.CreateScene(file, 0, keep)
	h.e.CreateScene(file, 0, g)

	h.e.DeleteGroup(g)
	if got := len(h.logged("doneInstance")); got != 2 {
		t.Errorf("doneInstance calls = %d, want 2", got)
	}
	if h.e.SceneName(kept) != "box" {
		t.Error("scene of other group deleted")
	}

	fe, _ := h.e.files.Get(file)
	if len(fe.scenes) != 1 {
		t.Errorf("file scenes = %d, want 1", len(fe.scenes))
	}
	if got := h.e.CreateScene(file, 0, g); got != -1 {
		t.Errorf("CreateScene in deleted group = %d, want -1", got)
	}
}

func TestUnloadFile(t *testing.T) {
	h := newHarness(t, nil)
	file, g, s := h.scene()
	other := h.load(h.box("other"))
	survivor := h.e.CreateScene(other, 0, g)

	h.e.UnloadFile(file)
	h.e.UnloadFile(file)

	want := []string{"doneInstance box", "doneGlobal stone", "doneGlobal box"}
	got := append(h.logged("doneInstance"), h.logged("doneGlobal")...)
	if !slices.Equal(got, want) {
		t.Errorf("teardown = %v, want %v", got, want)
	}
	if h.e.SceneName(s) != "" || h.e.NumScenes(file) != -1 {
		t.Error("unloaded file still resolves")
	}

	grp, _ := h.e.groups.Get(g)
	if len(grp.scenes) != 1 || grp.scenes[0].handle != survivor {
		t.Errorf("group scenes = %d, want only %d", len(grp.scenes), survivor)
	}
}

func TestClear(t *testing.T) {
	h := newHarness(t, nil)
	h.scene()
	h.e.PickGroup(0, ident, ident, 0, 0)
	h.gl.Reset()
	h.log = nil

	h.e.Clear()
	if got := h.e.Stats(); got != (Stats{}) {
		t.Errorf("Stats = %+v, want zero", got)
	}
	if h.gl.Count("DeleteFramebuffer") != 1 {
		t.Errorf("pick framebuffer not deleted:\n%s", h.gl)
	}
	want := []string{"doneInstance box", "doneGlobal stone", "doneGlobal box"}
	if !slices.Equal(h.log, want) {
		t.Errorf("log = %v, want %v", h.log, want)
	}
	if got := h.e.CreateGroup(); got != 0 {
		t.Errorf("CreateGroup after Clear = %d, want 0", got)
	}
}

func TestLoadFile(t *testing.T) {
	h := newHarness(t, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.inl")
	if err := os.WriteFile(path, []byte{1}, 0o644); err != nil {
		t.Fatal(err)
	}

	h.e.AddLoader(".inl", LoaderFunc(func(p string) (File, error) {
		return inlinefile.Load(p, nil, []abi.SceneInfo{h.box("box")})
	}))

	fh, err := h.e.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if fh != 0 || h.e.NumScenes(fh) != 1 {
		t.Errorf("LoadFile = %d with %d scenes", fh, h.e.NumScenes(fh))
	}
	if h.gl.Index("PixelStorei(UNPACK_ALIGNMENT, 1)", 0) < 0 {
		t.Error("state not set around loading")
	}

	_, err = h.e.LoadFile(filepath.Join(dir, "scene.mc"))
	var e *errors.Error
	if !errors.As(err, &e) || e.Kind != errors.KindNotFound {
		t.Errorf("LoadFile without loader err = %v, want not found", err)
	}

	if got := h.e.AddFile(nil); got != -1 {
		t.Errorf("AddFile(nil) = %d, want -1", got)
	}

	ih, err := h.e.LoadInlineFile(path, nil, []abi.SceneInfo{h.box("inline")})
	if err != nil || ih != 1 {
		t.Errorf("LoadInlineFile = %d, %v", ih, err)
	}
}
