package engine

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/wippyai/scene-runtime/gpu"
	"github.com/wippyai/scene-runtime/render"
)

// PickLayer is the layer scenes render object ids into.
const PickLayer = -1

// RenderGroup renders every scene of a group. Opaque jobs are drawn per
// shader after each scene; transparent jobs are drawn back to front after
// all scenes. The default GL state is assumed on entry and restored on
// return.
func (e *Engine) RenderGroup(h int, view, proj mgl32.Mat4, layer int) {
	g, ok := e.groups.Get(h)
	if !ok {
		return
	}
	q := e.queues
	q.Reset()

	setter := gpu.SetState(e.gl)
	for _, s := range g.scenes {
		s.info.Code.Render(s.mem(), &view, &proj, layer, q)
		q.FlushOpaque()
	}

	if q.AlphaHead() != render.Nil {
		gpu.BeginAlpha(e.gl)
		q.SortAlpha()
		q.FlushAlpha()
		gpu.EndAlpha(e.gl)
	}

	gpu.ResetCull(e.gl)
	setter.Restore()

	if n := q.Dropped(); n > 0 {
		Logger().Debug("render jobs dropped",
			zap.Int("group", h),
			zap.Int("dropped", n),
			zap.Int("capacity", e.arena.Cap()))
	}
}

// PickGroup renders the object ids of a group at clip-space position
// (x, y), each in [-1, 1], and returns the id hit, 0 for none. Ids come
// from ObjectID. It returns -1 when no pick framebuffer can be created.
// The viewport and clear color are left changed.
func (e *Engine) PickGroup(h int, view, proj mgl32.Mat4, x, y float32) int {
	if !e.pick.Ensure() {
		Logger().Warn("pick framebuffer incomplete", zap.Stringer("format", e.pick.Format()))
		return -1
	}
	area := gpu.PickArea(x, y)
	e.pick.Begin()
	e.RenderGroup(h, view, area.Mul4(proj), PickLayer)
	return e.pick.End()
}
