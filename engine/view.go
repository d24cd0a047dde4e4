package engine

import (
	"unsafe"

	"github.com/wippyai/scene-runtime/abi"
)

const wordSize = int(unsafe.Sizeof(uintptr(0)))

// Instance memory is shared with scene code and read in host byte order.

func floats(b []byte, n int) []float32 {
	if n == 0 || len(b) < n*4 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), n)
}

func int32At(b []byte) *int32 {
	return (*int32)(unsafe.Pointer(&b[0]))
}

func uint32At(b []byte) *uint32 {
	return (*uint32)(unsafe.Pointer(&b[0]))
}

func wordAt(b []byte) *uintptr {
	return (*uintptr)(unsafe.Pointer(&b[0]))
}

// attributeSize returns the bytes an attribute of type t occupies.
func attributeSize(t abi.AttributeType) int {
	n := max(t.Elements(), 1)
	switch b := t.Base(); {
	case b == abi.TypeBool:
		return n
	case b >= abi.TypeInt && b <= abi.TypeInt4:
		return n * 4 * int(b-abi.TypeInt+1)
	case t.FloatComponents() > 0:
		return t.FloatCount() * 4
	case b == abi.TypeProjection:
		return n * abi.ProjectionSize
	case t.IsTexture():
		return n * 4
	case b == abi.TypeString:
		return n * wordSize
	}
	return 0
}

// slice returns b[off:off+size], or nil when it does not fit.
func slice(b []byte, off, size int) []byte {
	if off < 0 || size < 0 || off > len(b) || size > len(b)-off {
		return nil
	}
	return b[off : off+size : off+size]
}
