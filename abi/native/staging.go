//go:build cgo

package native

/*
#include <stdlib.h>
#include <string.h>
#include "scene.h"

static RenderJob* alloc_jobs(int n) {
	size_t size = (size_t)n * sizeof(RenderJob);
#ifdef _WIN32
	void* p = _aligned_malloc(size, 16);
#else
	void* p = NULL;
	if (posix_memalign(&p, 16, size) != 0) {
		return NULL;
	}
#endif
	if (p != NULL) {
		memset(p, 0, size);
	}
	return (RenderJob*)p;
}

static void free_jobs(RenderJob* jobs) {
#ifdef _WIN32
	_aligned_free(jobs);
#else
	free(jobs);
#endif
}

static void call_job_render(RenderJob* jobs, int index) {
	RenderJob* job = &jobs[index];
	if (job->render != NULL) {
		job->render(job);
	}
}
*/
import "C"

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/scene-runtime/render"
)

var jobSize = unsafe.Sizeof(C.RenderJob{})

// staging is the C job array handed to compiled render functions. Job i
// of the array stands for job i of the arena.
type staging struct {
	arena     *render.Arena
	jobs      *C.RenderJob
	n         int32
	alpha     []bool
	renderJob render.RenderFunc
}

func newStaging(a *render.Arena) *staging {
	s := &staging{arena: a, n: int32(a.Cap())}
	if s.n > 0 {
		s.jobs = C.alloc_jobs(C.int(s.n))
		if s.jobs == nil {
			return nil
		}
	}
	s.alpha = make([]bool, s.n)
	s.renderJob = s.renderAt
	return s
}

func (s *staging) free() {
	if s.jobs != nil {
		C.free_jobs(s.jobs)
		s.jobs = nil
	}
}

func (s *staging) job(i int32) *C.RenderJob {
	return (*C.RenderJob)(unsafe.Add(unsafe.Pointer(s.jobs), uintptr(i)*jobSize))
}

// index maps a job pointer back to its arena index. The one-past-the-end
// pointer maps to n. Pointers outside the array return -1.
func (s *staging) index(j *C.RenderJob) int32 {
	base := uintptr(unsafe.Pointer(s.jobs))
	p := uintptr(unsafe.Pointer(j))
	if p < base || (p-base)%jobSize != 0 {
		return -1
	}
	i := (p - base) / jobSize
	if i > uintptr(s.n) {
		return -1
	}
	return int32(i)
}

// queues exposes the live range of q.
func (s *staging) queues(q *render.Queues) C.RenderQueues {
	begin, end := q.Range()
	return C.RenderQueues{begin: s.job(begin), end: s.job(end)}
}

// finish takes over what the compiled render function did to cq. Jobs it
// took from the front were drawn immediately; jobs it linked into the
// alpha list are copied into the arena and appended to q in the order
// they were pushed.
func (s *staging) finish(q *render.Queues, cq *C.RenderQueues) {
	_, end := q.Range()
	newBegin, newEnd := s.index(cq.begin), s.index(cq.end)
	if newBegin < 0 || newEnd < 0 {
		Logger().Warn("render queues moved outside the job array")
		return
	}
	if err := q.Consume(newBegin, newEnd); err != nil {
		Logger().Warn("render queues invalid", zap.Error(err))
		return
	}

	for j := cq.alphaSort; j != nil; j = j.next {
		i := s.index(j)
		if i < newEnd || i >= end {
			Logger().Warn("alpha job outside the reserved range", zap.Int32("job", i))
			break
		}
		if s.alpha[i] {
			break
		}
		s.alpha[i] = true
	}

	a := s.arena
	head, tail := render.Nil, render.Nil
	for i := end - 1; i >= newEnd; i-- {
		if !s.alpha[i] {
			continue
		}
		s.alpha[i] = false
		cj := s.job(i)
		for k := range a.Matrix[i] {
			a.Matrix[i][k] = float32(cj.matrix[k])
		}
		a.Distance[i] = float32(cj.distance)
		a.ID[i] = int32(cj.id)
		a.Render[i] = s.renderJob
		a.Draw[i] = nil
		a.Instance[i] = nil
		a.Ref[i] = uintptr(unsafe.Pointer(cj))
		if tail == render.Nil {
			head = i
		} else {
			a.SetNext(tail, i)
		}
		tail = i
	}
	q.AppendAlpha(head, tail)
}

func (s *staging) renderAt(_ *render.Arena, job int32) {
	if s.jobs == nil || job < 0 || job >= s.n {
		return
	}
	C.call_job_render(s.jobs, C.int(job))
}
