package sceneruntime

// Region is a contiguous block of memory owned by a loaded asset or a
// scene instance.
type Region interface {
	Bytes() []byte
	Addr() uintptr
	Size() int
	// Free releases the memory. It is safe to call more than once.
	Free() error
}

// Allocator provides code and data regions for the loader.
type Allocator interface {
	// Code returns readable, writable and executable memory.
	Code(size int) (Region, error)
	// Data returns zero-initialized memory aligned to 16 bytes.
	Data(size int) (Region, error)
}
