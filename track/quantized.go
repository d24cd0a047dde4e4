package track

import (
	"github.com/chewxy/math32"
)

// Quantized tracks store key times and values as uint16. Key lookup
// compares against the integer part of x.

func findIndex16(n int, x float32, key func(i int) uint16) int {
	xi := int(x)
	return findIndex(n, float32(xi), func(i int) float32 { return float32(key(i)) })
}

func segment16(ys []uint16, i int) [4]float32 {
	return [4]float32{float32(ys[i]), float32(ys[i+1]), float32(ys[i+2]), float32(ys[i+3])}
}

// Step16 is Step over quantized keys.
func Step16(xs, ys []uint16, x float32) float32 {
	if len(xs) == 0 {
		return 0
	}
	return float32(ys[findIndex16(len(xs), x, func(i int) uint16 { return xs[i] })])
}

// Bezier16 is Bezier over quantized keys.
func Bezier16(xs, ys []uint16, x float32) float32 {
	n := len(xs)
	if n < 2 {
		if len(ys) > 0 {
			return float32(ys[0])
		}
		return 0
	}
	index := findIndex16(n-1, x, func(i int) uint16 { return xs[i] })
	x0, x1 := float32(xs[index]), float32(xs[index+1])
	u := (x - x0) / (x1 - x0)
	return bezier.eval(u, segment16(ys, index*3))
}

// WeightedBezier16 is WeightedBezier over quantized keys.
func WeightedBezier16(xs, ys []uint16, x float32) float32 {
	n := (len(xs) + 2) / 3
	if n < 2 {
		if len(ys) > 0 {
			return float32(ys[0])
		}
		return 0
	}
	index := findIndex16(n-1, x, func(i int) uint16 { return xs[i*3] })
	i3 := index * 3
	u := bezier.solve(x, segment16(xs, i3))
	return bezier.eval(u, segment16(ys, i3))
}

// CatmullRom16 is CatmullRom over quantized keys.
func CatmullRom16(ys []uint16, x float32) float32 {
	ix := math32.Floor(x)
	i := int(ix)
	return catmullRom(float32(ys[i]), float32(ys[i+1]), float32(ys[i+2]), float32(ys[i+3]), x-ix)
}
