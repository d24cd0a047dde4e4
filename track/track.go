// Package track evaluates animation tracks: step, hermite and bezier
// splines over sorted key times, their weighted forms whose x values are
// splines too, and equidistant catmull-rom curves. Each has a float32 form
// and, where quantized tracks exist, a uint16 form.
//
// Spline y values are interleaved per segment:
//
//	y(0), out(0), in(1), y(1), out(1), in(2), y(2), ...
//
// Weighted x values use the same layout. Compiled scene code calls these
// through the host symbol table.
package track

import (
	"github.com/chewxy/math32"
)

// basis is a cubic basis matrix stored by column; the spline value for
// parameter u is sum_j p[j] * dot((u^3, u^2, u, 1), basis[j]).
type basis [4][4]float32

var (
	hermite = basis{
		{2, -3, 0, 1},
		{1, -2, 1, 0},
		{1, -1, 0, 0},
		{-2, 3, 0, 0},
	}
	bezier = basis{
		{-1, 3, -3, 1},
		{3, -6, 3, 0},
		{-3, 3, 0, 0},
		{1, 0, 0, 0},
	}
)

// newtonSteps is the number of refinements used to invert a weighted
// x-spline.
const newtonSteps = 3

func dot4(a, b [4]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

func powers(u float32) [4]float32 {
	u2 := u * u
	return [4]float32{u2 * u, u2, u, 1}
}

// eval returns the spline value at u for control values p.
func (m *basis) eval(u float32, p [4]float32) float32 {
	uv := powers(u)
	var r float32
	for j := range m {
		r += p[j] * dot4(uv, m[j])
	}
	return r
}

// coefficients returns the polynomial coefficients (u^3, u^2, u, 1) of
// the spline through p.
func (m *basis) coefficients(p [4]float32) [4]float32 {
	var h [4]float32
	for j := range m {
		for i := range h {
			h[i] += m[j][i] * p[j]
		}
	}
	return h
}

// solve finds u with spline(u) = x by Newton iteration from a linear guess.
func (m *basis) solve(x float32, px [4]float32) float32 {
	u := (x - px[0]) / (px[3] - px[0])
	h := m.coefficients(px)
	for i := 0; i < newtonSteps; i++ {
		uv := powers(u)
		du := [4]float32{3 * uv[1], 2 * u, 1, 0}
		u -= (dot4(uv, h) - x) / dot4(du, h)
	}
	return u
}

// findIndex returns the last index i in [0, n) with key(i) <= x, or 0 when
// x precedes every key.
func findIndex(n int, x float32, key func(i int) float32) int {
	low, high := 0, n
	index := (low + high) >> 1
	for low < high-1 {
		if key(index) > x {
			high = index
		} else {
			low = index
		}
		index = (low + high) >> 1
	}
	return index
}

func segment(ys []float32, i int) [4]float32 {
	return [4]float32{ys[i], ys[i+1], ys[i+2], ys[i+3]}
}

// Step returns the y value of the last key at or before x.
func Step(xs, ys []float32, x float32) float32 {
	if len(xs) == 0 {
		return 0
	}
	return ys[findIndex(len(xs), x, func(i int) float32 { return xs[i] })]
}

func evalSpline(m *basis, xs, ys []float32, x float32) float32 {
	n := len(xs)
	if n < 2 {
		if len(ys) > 0 {
			return ys[0]
		}
		return 0
	}
	// the last key starts no segment
	index := findIndex(n-1, x, func(i int) float32 { return xs[i] })
	x0, x1 := xs[index], xs[index+1]
	u := (x - x0) / (x1 - x0)
	return m.eval(u, segment(ys, index*3))
}

func evalWeighted(m *basis, xs, ys []float32, x float32) float32 {
	n := (len(xs) + 2) / 3
	if n < 2 {
		if len(ys) > 0 {
			return ys[0]
		}
		return 0
	}
	index := findIndex(n-1, x, func(i int) float32 { return xs[i*3] })
	i3 := index * 3
	u := m.solve(x, segment(xs, i3))
	return m.eval(u, segment(ys, i3))
}

// Hermite evaluates a hermite spline with tangents in ys.
func Hermite(xs, ys []float32, x float32) float32 {
	return evalSpline(&hermite, xs, ys, x)
}

// WeightedHermite evaluates a hermite spline whose key times carry
// tangents as well.
func WeightedHermite(xs, ys []float32, x float32) float32 {
	return evalWeighted(&hermite, xs, ys, x)
}

// Bezier evaluates a cubic bezier spline with control points in ys.
func Bezier(xs, ys []float32, x float32) float32 {
	return evalSpline(&bezier, xs, ys, x)
}

// WeightedBezier evaluates a bezier spline whose key times carry control
// points as well.
func WeightedBezier(xs, ys []float32, x float32) float32 {
	return evalWeighted(&bezier, xs, ys, x)
}

// CatmullRom interpolates equidistant keys; x is measured in keys and
// reads ys[floor(x)] through ys[floor(x)+3].
func CatmullRom(ys []float32, x float32) float32 {
	ix := math32.Floor(x)
	i := int(ix)
	return catmullRom(ys[i], ys[i+1], ys[i+2], ys[i+3], x-ix)
}

func catmullRom(p0, p1, p2, p3, t float32) float32 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * (2*p1 +
		(p2-p0)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(3*p1-p0-3*p2+p3)*t3)
}
