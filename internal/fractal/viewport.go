package fractal

import "fmt"

// Range is a closed interval on one axis of the complex plane.
type Range struct {
	Min, Max float64
}

func (r Range) Extent() float64 { return r.Max - r.Min }

func (r Range) shift(off float64) Range {
	return Range{Min: r.Min + off, Max: r.Max + off}
}

// zoom keeps the middle half of the range.
func (r Range) zoom() Range {
	lo := r.Min + r.Extent()/4
	return Range{Min: lo, Max: lo + r.Extent()/2}
}

// Viewport is the window of the complex plane mapped onto the grid.
// X spans the real axis and Y the imaginary axis.
type Viewport struct {
	X, Y Range
}

// DefaultViewport frames the whole Mandelbrot silhouette.
var DefaultViewport = Viewport{
	X: Range{Min: -2.25, Max: 0.75},
	Y: Range{Min: -1.25, Max: 1.75},
}

func (v Viewport) Center() complex128 {
	return complex((v.X.Min+v.X.Max)/2, (v.Y.Min+v.Y.Max)/2)
}

func (v Viewport) String() string {
	return fmt.Sprintf("re[%.6g, %.6g] im[%.6g, %.6g]", v.X.Min, v.X.Max, v.Y.Min, v.Y.Max)
}
