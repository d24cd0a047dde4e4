// Package memory provides the code and data blocks that back loaded assets
// and scene instances.
//
// Code blocks are mapped readable, writable and executable. Data blocks are
// zero-filled and aligned to at least 16 bytes. A block of size zero is a
// valid empty value that can be freed any number of times.
package memory

import (
	"unsafe"

	sceneruntime "github.com/wippyai/scene-runtime"
	"github.com/wippyai/scene-runtime/errors"
)

// Alignment is the minimum alignment of every data block.
const Alignment = 16

// Block owns one contiguous memory region.
type Block struct {
	b    []byte
	free func([]byte) error
	exec bool
}

// Bytes returns the block contents. The slice is nil for an empty block.
func (m *Block) Bytes() []byte {
	if m == nil {
		return nil
	}
	return m.b
}

// Addr returns the address of the first byte, or 0 for an empty block.
func (m *Block) Addr() uintptr {
	if m == nil || len(m.b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&m.b[0]))
}

// Pointer returns the first byte as an unsafe.Pointer, or nil.
func (m *Block) Pointer() unsafe.Pointer {
	if m == nil || len(m.b) == 0 {
		return nil
	}
	return unsafe.Pointer(&m.b[0])
}

// Size returns the block length in bytes.
func (m *Block) Size() int {
	if m == nil {
		return 0
	}
	return len(m.b)
}

// Executable reports whether the block was mapped for execution.
func (m *Block) Executable() bool {
	return m != nil && m.exec
}

// Swap exchanges ownership of two blocks.
func (m *Block) Swap(other *Block) {
	*m, *other = *other, *m
}

// Free releases the block. Freeing an empty or already freed block is a no-op.
func (m *Block) Free() error {
	if m == nil || m.b == nil {
		return nil
	}
	b, free := m.b, m.free
	m.b, m.free = nil, nil
	if free == nil {
		return nil
	}
	if err := free(b); err != nil {
		return errors.Wrap(errors.PhaseAllocate, errors.KindAllocation, err, "release memory")
	}
	return nil
}

// NewCode maps size bytes of executable memory from the operating system.
func NewCode(size int) (*Block, error) {
	if size <= 0 {
		return &Block{}, nil
	}
	b, err := mapCode(size)
	if err != nil {
		return nil, errors.AllocationFailed(size, err)
	}
	return &Block{b: b, free: unmap, exec: true}, nil
}

// NewData maps size bytes of zeroed memory from the operating system. Pages
// are always aligned well beyond Alignment.
func NewData(size int) (*Block, error) {
	if size <= 0 {
		return &Block{}, nil
	}
	b, err := mapData(size)
	if err != nil {
		return nil, errors.AllocationFailed(size, err)
	}
	return &Block{b: b, free: unmap}, nil
}

// NewHeap allocates size zeroed bytes from the Go heap, aligned to
// Alignment. Heap blocks are not executable and must not be retained by
// foreign code; they back assets whose entry points are Go functions.
func NewHeap(size int) *Block {
	if size <= 0 {
		return &Block{}
	}
	raw := make([]byte, size+Alignment-1)
	off := int(-uintptr(unsafe.Pointer(&raw[0])) & (Alignment - 1))
	return &Block{b: raw[off : off+size : off+size]}
}

// OS allocates code and data blocks with operating system page mappings.
type OS struct{}

var _ sceneruntime.Allocator = OS{}

func (OS) Code(size int) (sceneruntime.Region, error) { return NewCode(size) }
func (OS) Data(size int) (sceneruntime.Region, error) { return NewData(size) }

// Heap allocates both code and data from the Go heap. Code placed there
// cannot run; it serves tooling that only relocates and inspects.
type Heap struct{}

var _ sceneruntime.Allocator = Heap{}

func (Heap) Code(size int) (sceneruntime.Region, error) { return NewHeap(size), nil }
func (Heap) Data(size int) (sceneruntime.Region, error) { return NewHeap(size), nil }
