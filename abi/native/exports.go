//go:build cgo

package native

// #include <stdint.h>
import "C"

import (
	"unsafe"

	"github.com/wippyai/scene-runtime/track"
)

// Key counts passed by compiled code describe n keys. Spline values hold
// 3*(n-1)+1 entries, as do the key times of weighted tracks.

func splineLen(n int) int {
	if n <= 0 {
		return 0
	}
	return 3*(n-1) + 1
}

func floats(p *C.float, n int) []float32 {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(p)), n)
}

func uint16s(p *C.uint16_t, n int) []uint16 {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(p)), n)
}

// catmullRomLen covers the four keys read around x.
func catmullRomLen(x float32) int {
	if x < 0 {
		return 0
	}
	return int(x) + 4
}

//export evalStepTrack
func evalStepTrack(xs, ys *C.float, numKeys C.int, x C.float) C.float {
	n := int(numKeys)
	return C.float(track.Step(floats(xs, n), floats(ys, n), float32(x)))
}

//export evalHermiteTrack
func evalHermiteTrack(xs, ys *C.float, numKeys C.int, x C.float) C.float {
	return C.float(track.Hermite(floats(xs, int(numKeys)), floats(ys, splineLen(int(numKeys))), float32(x)))
}

//export evalWeightedHermiteTrack
func evalWeightedHermiteTrack(xs, ys *C.float, numKeys C.int, x C.float) C.float {
	n := splineLen(int(numKeys))
	return C.float(track.WeightedHermite(floats(xs, n), floats(ys, n), float32(x)))
}

//export evalBezierTrack
func evalBezierTrack(xs, ys *C.float, numKeys C.int, x C.float) C.float {
	return C.float(track.Bezier(floats(xs, int(numKeys)), floats(ys, splineLen(int(numKeys))), float32(x)))
}

//export evalWeightedBezierTrack
func evalWeightedBezierTrack(xs, ys *C.float, numKeys C.int, x C.float) C.float {
	n := splineLen(int(numKeys))
	return C.float(track.WeightedBezier(floats(xs, n), floats(ys, n), float32(x)))
}

//export evalCatmullRomTrack
func evalCatmullRomTrack(ys *C.float, x C.float) C.float {
	n := catmullRomLen(float32(x))
	if n == 0 {
		return 0
	}
	return C.float(track.CatmullRom(floats(ys, n), float32(x)))
}

//export evalStepTrack16
func evalStepTrack16(xs, ys *C.uint16_t, numKeys C.int, x C.float) C.float {
	n := int(numKeys)
	return C.float(track.Step16(uint16s(xs, n), uint16s(ys, n), float32(x)))
}

//export evalBezierTrack16
func evalBezierTrack16(xs, ys *C.uint16_t, numKeys C.int, x C.float) C.float {
	return C.float(track.Bezier16(uint16s(xs, int(numKeys)), uint16s(ys, splineLen(int(numKeys))), float32(x)))
}

//export evalWeightedBezierTrack16
func evalWeightedBezierTrack16(xs, ys *C.uint16_t, numKeys C.int, x C.float) C.float {
	n := splineLen(int(numKeys))
	return C.float(track.WeightedBezier16(uint16s(xs, n), uint16s(ys, n), float32(x)))
}

//export evalCatmullRomTrack16
func evalCatmullRomTrack16(ys *C.uint16_t, x C.float) C.float {
	n := catmullRomLen(float32(x))
	if n == 0 {
		return 0
	}
	return C.float(track.CatmullRom16(uint16s(ys, n), float32(x)))
}
