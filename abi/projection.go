package abi

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ProjectionSize is the byte size of a Projection in instance memory.
const ProjectionSize = 8 * 4

// Projection describes a camera. Mode 1..4 selects perspective fit
// (fill, horizontal, vertical, overscan); -1..-4 the orthographic fits.
// Scale is the focal length, or the width for orthographic cameras.
type Projection struct {
	Mode       float32
	Scale      float32
	FilmSize   mgl32.Vec2
	FilmOffset mgl32.Vec2
	Near       float32
	Far        float32
}

// ReadProjection decodes a Projection from instance memory.
func ReadProjection(b []byte) Projection {
	f := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return Projection{
		Mode:       f(0),
		Scale:      f(1),
		FilmSize:   mgl32.Vec2{f(2), f(3)},
		FilmOffset: mgl32.Vec2{f(4), f(5)},
		Near:       f(6),
		Far:        f(7),
	}
}

// Put encodes p into instance memory.
func (p Projection) Put(b []byte) {
	for i, v := range [8]float32{p.Mode, p.Scale, p.FilmSize[0], p.FilmSize[1], p.FilmOffset[0], p.FilmOffset[1], p.Near, p.Far} {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
}

// fitX reports whether the field of view is fixed horizontally.
func (p Projection) fitX(aspect float32) bool {
	m := p.Mode * p.Mode
	switch {
	case m < 2:
		// fill: match the window along the axis where the film is smaller
		return aspect*p.FilmSize[1] > p.FilmSize[0]
	case m < 5:
		return true
	case m < 10:
		return false
	default:
		// overscan
		return aspect*p.FilmSize[1] < p.FilmSize[0]
	}
}

// Matrix returns the projection matrix for a view with the given physical
// aspect ratio.
func (p Projection) Matrix(aspect float32) mgl32.Mat4 {
	film := p.FilmSize
	if p.fitX(aspect) {
		film[1] = film[0] / aspect
	} else {
		film[0] = film[1] * aspect
	}

	f := mgl32.Vec2{2 * p.Scale / film[0], 2 * p.Scale / film[1]}
	o := mgl32.Vec2{2 * p.FilmOffset[0] / film[0], 2 * p.FilmOffset[1] / film[1]}
	nf := 1 / (p.Near - p.Far)

	if p.Mode < 0 {
		return mgl32.Mat4{
			f[0], 0, 0, 0,
			0, f[1], 0, 0,
			0, 0, 2 * nf, 0,
			o[0], o[1], (p.Far + p.Near) * nf, 1,
		}
	}
	return mgl32.Mat4{
		f[0], 0, 0, 0,
		0, f[1], 0, 0,
		o[0], o[1], (p.Far + p.Near) * nf, -1,
		0, 0, 2 * p.Far * p.Near * nf, 0,
	}
}
