package fractal

import "math/cmplx"

// Limit is the escape radius. Orbits whose magnitude stays at or below it
// are treated as bounded.
const Limit = 100.0

// Point holds the orbit of a single grid cell.
type Point struct {
	c          complex128
	z          complex128
	iterations int
}

func NewPoint(re, im float64) Point {
	return Point{c: complex(re, im)}
}

// Step applies one map iteration. Escaped points are frozen.
func (p *Point) Step() {
	if p.Escaped() {
		return
	}
	p.z = p.z*p.z + p.c
	p.iterations++
}

func (p Point) Escaped() bool { return cmplx.Abs(p.z) > Limit }

func (p Point) Count() int    { return p.iterations }
func (p Point) C() complex128 { return p.c }
func (p Point) Z() complex128 { return p.z }
