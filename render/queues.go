package render

import (
	"github.com/wippyai/scene-runtime/errors"
)

// Queues partitions the arena for one frame. Opaque jobs are taken from
// the front of the live range and linked into per-shader lists. Alpha jobs
// are taken from the back and linked into one shared list in insertion
// order.
type Queues struct {
	arena *Arena

	begin, end int32

	alphaHead, alphaTail int32
	shaderHeads          []int32
	shaderTails          []int32

	dropped int
}

// NewQueues creates queues over arena.
func NewQueues(arena *Arena) *Queues {
	q := &Queues{arena: arena}
	q.Reset()
	return q
}

// Arena returns the backing arena.
func (q *Queues) Arena() *Arena {
	return q.arena
}

// Reset makes the whole arena available again and empties every list.
func (q *Queues) Reset() {
	q.begin = 0
	q.end = int32(q.arena.Cap())
	q.alphaHead, q.alphaTail = Nil, Nil
	for i := range q.shaderHeads {
		q.shaderHeads[i], q.shaderTails[i] = Nil, Nil
	}
	q.dropped = 0
}

// Range returns the live [begin, end) range.
func (q *Queues) Range() (begin, end int32) {
	return q.begin, q.end
}

// Available returns the number of jobs left this frame.
func (q *Queues) Available() int {
	return int(q.end - q.begin)
}

// Dropped returns the number of jobs refused this frame because the arena
// was exhausted.
func (q *Queues) Dropped() int {
	return q.dropped
}

// Opaque takes a job from the front and appends it to the list of shader.
// It returns false when the arena is exhausted or shader is negative; the
// caller skips the job. Only exhaustion counts as dropped.
func (q *Queues) Opaque(shader int) (int32, bool) {
	if shader < 0 {
		return Nil, false
	}
	if q.begin == q.end {
		q.dropped++
		return Nil, false
	}
	job := q.begin
	q.begin++
	q.arena.clear(job)

	for shader >= len(q.shaderHeads) {
		q.shaderHeads = append(q.shaderHeads, Nil)
		q.shaderTails = append(q.shaderTails, Nil)
	}
	if tail := q.shaderTails[shader]; tail != Nil {
		q.arena.next[tail] = job
	} else {
		q.shaderHeads[shader] = job
	}
	q.shaderTails[shader] = job
	return job, true
}

// Alpha takes a job from the back and appends it to the alpha list. It
// returns false when the arena is exhausted; the caller skips the job.
func (q *Queues) Alpha() (int32, bool) {
	if q.begin == q.end {
		q.dropped++
		return Nil, false
	}
	q.end--
	job := q.end
	q.arena.clear(job)
	q.AppendAlpha(job, job)
	return job, true
}

// AppendAlpha splices the chain head..tail, already linked through the
// arena, onto the end of the alpha list.
func (q *Queues) AppendAlpha(head, tail int32) {
	if head == Nil {
		return
	}
	q.arena.next[tail] = Nil
	if q.alphaTail != Nil {
		q.arena.next[q.alphaTail] = head
	} else {
		q.alphaHead = head
	}
	q.alphaTail = tail
}

// AlphaHead returns the first job of the alpha list, or Nil.
func (q *Queues) AlphaHead() int32 {
	return q.alphaHead
}

// Consume records that an external producer took the jobs [begin, newBegin)
// and [newEnd, end) directly. The new bounds must lie inside the live range.
func (q *Queues) Consume(newBegin, newEnd int32) error {
	if newBegin < q.begin || newEnd > q.end || newBegin > newEnd {
		return errors.New(errors.PhaseRuntime, errors.KindOutOfBounds).
			Detail("range [%d, %d) outside live range [%d, %d)", newBegin, newEnd, q.begin, q.end).
			Build()
	}
	q.begin, q.end = newBegin, newEnd
	return nil
}

// FlushOpaque renders every shader list in shader order and empties them.
// It returns the number of jobs rendered.
func (q *Queues) FlushOpaque() int {
	n := 0
	for i, head := range q.shaderHeads {
		if head == Nil {
			continue
		}
		n += Walk(q.arena, head)
		q.shaderHeads[i], q.shaderTails[i] = Nil, Nil
	}
	return n
}

// SortAlpha stably sorts the alpha list by descending distance.
func (q *Queues) SortAlpha() {
	q.alphaHead, q.alphaTail = Sort(q.arena, q.alphaHead)
}

// FlushAlpha renders the alpha list in its current order and empties it.
func (q *Queues) FlushAlpha() int {
	n := Walk(q.arena, q.alphaHead)
	q.alphaHead, q.alphaTail = Nil, Nil
	return n
}
