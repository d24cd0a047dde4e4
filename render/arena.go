// Package render holds the per-frame render job arena, the opaque and alpha
// queues carved from it, and the stable alpha sort.
//
// Jobs are int32 indices into a struct-of-arrays arena. Nothing is freed
// individually; the live range is reset once per frame.
package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultCapacity is the number of jobs available per frame.
const DefaultCapacity = 20000

// Nil terminates job lists.
const Nil int32 = -1

// RenderFunc renders one job. Implementations usually bind state from the
// job and then call its DrawFunc.
type RenderFunc func(a *Arena, job int32)

// DrawFunc issues the draw calls of one job.
type DrawFunc func(instance []byte)

// Arena is a fixed-capacity struct-of-arrays job store.
type Arena struct {
	Matrix   []mgl32.Mat4
	Distance []float32
	ID       []int32
	Render   []RenderFunc
	Draw     []DrawFunc
	Instance [][]byte
	// Ref is an opaque per-job reference owned by whoever produced the
	// job, such as the address of a foreign job record.
	Ref  []uintptr
	next []int32
}

// NewArena allocates an arena with room for capacity jobs.
func NewArena(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{
		Matrix:   make([]mgl32.Mat4, capacity),
		Distance: make([]float32, capacity),
		ID:       make([]int32, capacity),
		Render:   make([]RenderFunc, capacity),
		Draw:     make([]DrawFunc, capacity),
		Instance: make([][]byte, capacity),
		Ref:      make([]uintptr, capacity),
		next:     make([]int32, capacity),
	}
}

// Cap returns the number of jobs the arena holds.
func (a *Arena) Cap() int {
	return len(a.next)
}

// Next returns the job linked after job, or Nil.
func (a *Arena) Next(job int32) int32 {
	return a.next[job]
}

// SetNext links next after job.
func (a *Arena) SetNext(job, next int32) {
	a.next[job] = next
}

// clear resets the fields of one job before it is handed out.
func (a *Arena) clear(job int32) {
	a.Matrix[job] = mgl32.Ident4()
	a.Distance[job] = 0
	a.ID[job] = 0
	a.Render[job] = nil
	a.Draw[job] = nil
	a.Instance[job] = nil
	a.Ref[job] = 0
	a.next[job] = Nil
}

// DrawJob is the default RenderFunc: it calls the job's DrawFunc.
func DrawJob(a *Arena, job int32) {
	if d := a.Draw[job]; d != nil {
		d(a.Instance[job])
	}
}

// Walk renders every job of the list starting at head in list order.
func Walk(a *Arena, head int32) int {
	n := 0
	for job := head; job != Nil; job = a.next[job] {
		if r := a.Render[job]; r != nil {
			r(a, job)
		}
		n++
	}
	return n
}
