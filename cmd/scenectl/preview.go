package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/wippyai/scene-runtime/abi"
	"github.com/wippyai/scene-runtime/abi/native"
	"github.com/wippyai/scene-runtime/config"
	"github.com/wippyai/scene-runtime/engine"
	"github.com/wippyai/scene-runtime/gpu"
	"github.com/wippyai/scene-runtime/gpu/opengl"
	"github.com/wippyai/scene-runtime/loader"
)

func init() {
	// GL calls must come from the thread that owns the context.
	runtime.LockOSThread()
}

type previewOptions struct {
	path          string
	frames        int
	width, height int
}

// camera frames the union of the scene bounding boxes.
func camera(boxes []abi.BoundingBox, aspect float32) (view, proj mgl32.Mat4) {
	lo := mgl32.Vec3{-1, -1, -1}
	hi := mgl32.Vec3{1, 1, 1}
	for i, bb := range boxes {
		mn, mx := bb.Min(), bb.Max()
		if i == 0 {
			lo, hi = mn, mx
			continue
		}
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], mn[k])
			hi[k] = max(hi[k], mx[k])
		}
	}
	center := lo.Add(hi).Mul(0.5)
	radius := max(hi.Sub(lo).Len()*0.5, 0.01)
	eye := center.Add(mgl32.Vec3{0, 0, radius * 2.5})
	view = mgl32.LookAtV(eye, center, mgl32.Vec3{0, 1, 0})
	proj = mgl32.Perspective(mgl32.DegToRad(45), aspect, radius*0.1, radius*10)
	return view, proj
}

// runPreview loads a container into an engine on a hidden window,
// instantiates every scene and renders a few frames.
func runPreview(w io.Writer, cfg *config.Config, logger *zap.Logger, opts previewOptions) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(opts.width, opts.height, "scenectl", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()

	if err := opengl.Init(); err != nil {
		return err
	}
	logger.Info("OpenGL context", zap.String("version", opengl.Version()))

	binder := native.NewBinder()
	defer binder.Close()

	gl := opengl.New()
	e, err := engine.New(engine.WithConfig(cfg), engine.WithGL(gl), engine.WithLogger(logger.Named("engine")))
	if err != nil {
		return err
	}
	defer e.Close()
	e.AddLoader(loader.Extension, engine.MCLoader(loader.Options{
		Symbols: hostTable(cfg, opengl.Symbols()),
		Binder:  binder,
		Linker:  cfg.LinkerOptions(),
	}))

	file, err := e.LoadFile(opts.path)
	if err != nil {
		return err
	}
	grp := e.CreateGroup()
	var boxes []abi.BoundingBox
	for i := 0; i < e.NumScenes(file); i++ {
		h := e.CreateScene(file, i, grp)
		if h < 0 {
			continue
		}
		e.UpdateScene(h)
		bb := e.BoundingBox(h)
		boxes = append(boxes, bb)
		fmt.Fprintf(w, "%-24s nodes %d, objects %d, bounds %v .. %v\n",
			e.SceneName(h), e.NumNodes(h), e.NumObjects(h), bb.Min(), bb.Max())
	}

	fbw, fbh := window.GetFramebufferSize()
	view, proj := camera(boxes, float32(fbw)/float32(max(fbh, 1)))
	for range opts.frames {
		e.UpdateGroup(grp)
		gl.Viewport(0, 0, int32(fbw), int32(fbh))
		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)
		e.RenderGroup(grp, view, proj, 0)
		window.SwapBuffers()
		glfw.PollEvents()
	}

	id := e.PickGroup(grp, view, proj, 0, 0)
	st := e.Stats()
	fmt.Fprintf(w, "rendered %d frames, object at center %d\n", opts.frames, id)
	fmt.Fprintf(w, "files %d, groups %d, scenes %d, attributes %d, attribute sets %d\n",
		st.Files, st.Groups, st.Scenes, st.Attributes, st.AttributeSets)
	return nil
}
