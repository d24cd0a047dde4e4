package render

import (
	"reflect"
	"testing"
)

func alphaOrder(q *Queues) (ids []int32, dist []float32) {
	a := q.Arena()
	for j := q.AlphaHead(); j != Nil; j = a.Next(j) {
		ids = append(ids, a.ID[j])
		dist = append(dist, a.Distance[j])
	}
	return ids, dist
}

func TestSortStable(t *testing.T) {
	q := NewQueues(NewArena(16))
	a := q.Arena()
	for i, d := range []float32{3, 1, 4, 1, 5, 9, 2, 6} {
		job, ok := q.Alpha()
		if !ok {
			t.Fatalf("Alpha %d: arena exhausted", i)
		}
		a.Distance[job] = d
		a.ID[job] = int32(i)
	}
	q.SortAlpha()

	ids, dist := alphaOrder(q)
	wantDist := []float32{9, 6, 5, 4, 3, 2, 1, 1}
	if !reflect.DeepEqual(dist, wantDist) {
		t.Fatalf("distances = %v, want %v", dist, wantDist)
	}
	// the two 1s were inserted as 1 then 3
	wantIDs := []int32{5, 7, 4, 2, 0, 6, 1, 3}
	if !reflect.DeepEqual(ids, wantIDs) {
		t.Fatalf("ids = %v, want %v", ids, wantIDs)
	}
}

func TestSortEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		dist []float32
	}{
		{"empty", nil},
		{"single", []float32{1}},
		{"sorted", []float32{5, 4, 3, 2, 1}},
		{"reversed", []float32{1, 2, 3, 4, 5}},
		{"equal", []float32{2, 2, 2, 2, 2, 2, 2}},
		{"odd", []float32{0.5, -1, 7, 3, 3, 0, 12, -4, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueues(NewArena(32))
			a := q.Arena()
			for i, d := range tt.dist {
				job, _ := q.Alpha()
				a.Distance[job] = d
				a.ID[job] = int32(i)
			}
			q.SortAlpha()
			ids, dist := alphaOrder(q)
			if len(ids) != len(tt.dist) {
				t.Fatalf("got %d jobs, want %d", len(ids), len(tt.dist))
			}
			for i := 1; i < len(dist); i++ {
				if dist[i-1] < dist[i] {
					t.Fatalf("not descending at %d: %v", i, dist)
				}
				if dist[i-1] == dist[i] && ids[i-1] > ids[i] {
					t.Fatalf("tie order broken at %d: %v", i, ids)
				}
			}
		})
	}
}

func TestSortTail(t *testing.T) {
	a := NewArena(4)
	for i := int32(0); i < 4; i++ {
		a.Distance[i] = float32(i)
		a.SetNext(i, i+1)
	}
	a.SetNext(3, Nil)
	head, tail := Sort(a, 0)
	if head != 3 || tail != 0 {
		t.Fatalf("Sort = (%d, %d), want (3, 0)", head, tail)
	}
	if a.Next(tail) != Nil {
		t.Fatalf("tail not terminated")
	}
}

func TestQueuesNegativeShader(t *testing.T) {
	q := NewQueues(NewArena(2))
	if job, ok := q.Opaque(-1); ok || job != Nil {
		t.Fatalf("Opaque(-1) = %d, %v, want Nil, false", job, ok)
	}
	if q.Available() != 2 || q.Dropped() != 0 {
		t.Errorf("negative shader: available %d dropped %d, want 2 and 0", q.Available(), q.Dropped())
	}
}

func TestQueuesExhaustion(t *testing.T) {
	q := NewQueues(NewArena(3))
	if _, ok := q.Opaque(0); !ok {
		t.Fatal("Opaque failed")
	}
	if _, ok := q.Alpha(); !ok {
		t.Fatal("Alpha failed")
	}
	if _, ok := q.Opaque(1); !ok {
		t.Fatal("Opaque failed")
	}
	if _, ok := q.Alpha(); ok {
		t.Fatal("Alpha succeeded on a full arena")
	}
	if _, ok := q.Opaque(0); ok {
		t.Fatal("Opaque succeeded on a full arena")
	}
	if _, ok := q.Opaque(-1); ok {
		t.Fatal("Opaque accepted a negative shader")
	}
	if q.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", q.Dropped())
	}
	if q.Available() != 0 {
		t.Errorf("Available() = %d, want 0", q.Available())
	}

	q.Reset()
	if q.Available() != 3 || q.Dropped() != 0 {
		t.Errorf("after Reset: available %d dropped %d", q.Available(), q.Dropped())
	}
	if q.AlphaHead() != Nil {
		t.Errorf("alpha list survived Reset")
	}
}

func TestFlushOpaqueOrder(t *testing.T) {
	q := NewQueues(NewArena(8))
	a := q.Arena()

	var got []int32
	record := func(a *Arena, job int32) { got = append(got, a.ID[job]) }

	for i, shader := range []int{2, 0, 2, 1, 0} {
		job, ok := q.Opaque(shader)
		if !ok {
			t.Fatalf("Opaque %d failed", i)
		}
		a.ID[job] = int32(i)
		a.Render[job] = record
	}
	if n := q.FlushOpaque(); n != 5 {
		t.Fatalf("FlushOpaque() = %d, want 5", n)
	}
	want := []int32{1, 4, 3, 0, 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}

	got = nil
	if n := q.FlushOpaque(); n != 0 || got != nil {
		t.Fatalf("second flush rendered %d jobs", n)
	}
}

func TestDrawJob(t *testing.T) {
	q := NewQueues(NewArena(2))
	a := q.Arena()
	var seen []byte
	job, _ := q.Alpha()
	a.Instance[job] = []byte{7}
	a.Render[job] = DrawJob
	a.Draw[job] = func(inst []byte) { seen = inst }
	if n := q.FlushAlpha(); n != 1 {
		t.Fatalf("FlushAlpha() = %d, want 1", n)
	}
	if len(seen) != 1 || seen[0] != 7 {
		t.Fatalf("draw saw %v", seen)
	}
}

func TestAppendAlphaKeepsOrder(t *testing.T) {
	q := NewQueues(NewArena(8))
	a := q.Arena()

	first, _ := q.Alpha()
	a.ID[first] = 1

	// jobs 0..1 taken by an external producer and chained 0 -> 1
	if err := q.Consume(2, 7); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	a.ID[0], a.ID[1] = 2, 3
	a.SetNext(0, 1)
	q.AppendAlpha(0, 1)

	ids, _ := alphaOrder(q)
	if want := []int32{1, 2, 3}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
}

func TestConsumeBounds(t *testing.T) {
	q := NewQueues(NewArena(4))
	tests := []struct {
		begin, end int32
		ok         bool
	}{
		{0, 4, true},
		{1, 3, true},
		{-1, 4, false},
		{0, 5, false},
		{3, 2, false},
	}
	for _, tt := range tests {
		q.Reset()
		err := q.Consume(tt.begin, tt.end)
		if (err == nil) != tt.ok {
			t.Errorf("Consume(%d, %d) error = %v, want ok=%v", tt.begin, tt.end, err, tt.ok)
		}
	}
}

func TestSortDoesNotAllocate(t *testing.T) {
	q := NewQueues(NewArena(512))
	a := q.Arena()
	fill := func() {
		q.Reset()
		for i := 0; i < 512; i++ {
			job, _ := q.Alpha()
			a.Distance[job] = float32((i * 7919) % 113)
			a.Render[job] = DrawJob
		}
	}
	fill()
	allocs := testing.AllocsPerRun(10, func() {
		q.SortAlpha()
		q.FlushAlpha()
		fill()
	})
	if allocs != 0 {
		t.Fatalf("sort and draw allocated %v times per run", allocs)
	}
}
