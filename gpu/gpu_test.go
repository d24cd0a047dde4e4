package gpu_test

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/wippyai/scene-runtime/gpu"
	"github.com/wippyai/scene-runtime/gpu/gputest"
)

func TestStateSetter(t *testing.T) {
	rec := gputest.New()
	func() {
		defer gpu.SetState(rec).Restore()
		rec.Calls = append(rec.Calls, "scene")
	}()

	want := []string{
		"PixelStorei(UNPACK_ALIGNMENT, 1)",
		"scene",
		"PixelStorei(UNPACK_ALIGNMENT, 4)",
		"BindBuffer(ARRAY_BUFFER, 0)",
		"BindVertexArray(0)",
		"UseProgram(0)",
	}
	if !reflect.DeepEqual(rec.Calls, want) {
		t.Fatalf("calls:\n%s", rec)
	}
}

func TestAlphaPass(t *testing.T) {
	rec := gputest.New()
	gpu.BeginAlpha(rec)
	gpu.EndAlpha(rec)
	gpu.ResetCull(rec)

	want := []string{
		"DepthMask(false)",
		"Enable(BLEND)",
		"BlendFunc(ONE, ONE_MINUS_SRC_ALPHA)",
		"BlendFunc(ONE, ZERO)",
		"Disable(BLEND)",
		"DepthMask(true)",
		"Disable(CULL_FACE)",
		"CullFace(BACK)",
	}
	if !reflect.DeepEqual(rec.Calls, want) {
		t.Fatalf("calls:\n%s", rec)
	}
}

func TestPickTargetLazy(t *testing.T) {
	rec := gputest.New()
	p := gpu.NewPickTarget(rec, gpu.PickRGB8)

	if !p.Ensure() {
		t.Fatal("Ensure failed on a complete framebuffer")
	}
	if n := rec.Count("GenFramebuffer"); n != 1 {
		t.Fatalf("GenFramebuffer called %d times", n)
	}
	if rec.Index("RenderbufferStorage(RENDERBUFFER, RGB8, 1, 1)", 0) < 0 {
		t.Errorf("color storage not RGB8:\n%s", rec)
	}
	if rec.Index("RenderbufferStorage(RENDERBUFFER, DEPTH_COMPONENT, 1, 1)", 0) < 0 {
		t.Errorf("depth storage not DEPTH_COMPONENT:\n%s", rec)
	}
	if n := rec.Count("DeleteRenderbuffer"); n != 2 {
		t.Errorf("DeleteRenderbuffer called %d times, want 2", n)
	}

	p.Ensure()
	if n := rec.Count("GenFramebuffer"); n != 1 {
		t.Fatalf("framebuffer recreated, GenFramebuffer called %d times", n)
	}
}

func TestPickTargetIncomplete(t *testing.T) {
	rec := gputest.New()
	rec.Status = 0
	p := gpu.NewPickTarget(rec, gpu.PickRGB565)

	if p.Ensure() {
		t.Fatal("Ensure succeeded on an incomplete framebuffer")
	}
	if rec.Index("RenderbufferStorage(RENDERBUFFER, RGB565, 1, 1)", 0) < 0 {
		t.Errorf("color storage not RGB565:\n%s", rec)
	}
	if n := rec.Count("DeleteFramebuffer"); n != 1 {
		t.Errorf("DeleteFramebuffer called %d times, want 1", n)
	}

	rec.Status = gpu.FramebufferComplete
	if !p.Ensure() {
		t.Fatal("Ensure did not retry")
	}
}

func TestPickReadback(t *testing.T) {
	rec := gputest.New()
	rec.Pixel = [4]byte{3, 2, 1, 255}
	p := gpu.NewPickTarget(rec, gpu.PickRGB8)
	p.Ensure()
	rec.Reset()

	p.Begin()
	id := p.End()
	if want := 3 + 2*256 + 1*65536; id != want {
		t.Errorf("id = %d, want %d", id, want)
	}
	want := []string{
		"BindFramebuffer(FRAMEBUFFER, 3)",
		"Viewport(0, 0, 1, 1)",
		"ClearColor(0, 0, 0, 1)",
		"Clear(COLOR_BUFFER_BIT|DEPTH_BUFFER_BIT)",
		"ReadPixels(0, 0, 1, 1, RGBA, UNSIGNED_BYTE)",
		"BindFramebuffer(FRAMEBUFFER, 0)",
	}
	if !reflect.DeepEqual(rec.Calls, want) {
		t.Fatalf("calls:\n%s", rec)
	}

	p.Delete()
	p.Delete()
	if n := rec.Count("DeleteFramebuffer"); n != 1 {
		t.Errorf("DeleteFramebuffer called %d times, want 1", n)
	}
}

func TestDecodePickID(t *testing.T) {
	tests := []struct {
		pixel  [4]byte
		format gpu.PickFormat
		want   int
	}{
		{[4]byte{0, 0, 0, 255}, gpu.PickRGB8, 0},
		{[4]byte{255, 255, 255, 255}, gpu.PickRGB8, 0xFFFFFF},
		{[4]byte{1, 0, 0, 0}, gpu.PickRGB8, 1},
		{[4]byte{8, 0, 0, 0}, gpu.PickRGB565, 1},
		{[4]byte{0, 4, 0, 0}, gpu.PickRGB565, 32},
		{[4]byte{0, 0, 8, 0}, gpu.PickRGB565, 2048},
		{[4]byte{255, 255, 255, 0}, gpu.PickRGB565, 0xFFFF},
	}
	for _, tt := range tests {
		if got := gpu.DecodePickID(tt.pixel, tt.format); got != tt.want {
			t.Errorf("DecodePickID(%v, %v) = %d, want %d", tt.pixel, tt.format, got, tt.want)
		}
	}
}

func TestPickArea(t *testing.T) {
	m := gpu.PickArea(0.25, -0.5)
	p := m.Mul4x1(mgl32.Vec4{0.25, -0.5, 0.3, 1})
	if p.X() != 0 || p.Y() != 0 || p.Z() != 0.3 {
		t.Errorf("picked point maps to %v, want origin", p)
	}
}

func TestParsePickFormat(t *testing.T) {
	for _, f := range []gpu.PickFormat{gpu.PickRGB8, gpu.PickRGB565} {
		got, ok := gpu.ParsePickFormat(f.String())
		if !ok || got != f {
			t.Errorf("ParsePickFormat(%q) = %v, %v", f.String(), got, ok)
		}
	}
	if _, ok := gpu.ParsePickFormat("bgra"); ok {
		t.Error("ParsePickFormat accepted bgra")
	}
}
