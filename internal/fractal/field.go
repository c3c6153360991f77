package fractal

import (
	"fmt"
	"image"
	"time"
)

// DefaultTick is the period of one synchronized step.
const DefaultTick = 50 * time.Millisecond

// Field is a width×height grid of Points mapped onto a Viewport.
type Field struct {
	width, height int
	view          Viewport
	grid          []Point
	globalStep    int
	elapsed       time.Duration
	tick          time.Duration
	aspect        bool
}

type Option func(*Field)

func WithViewport(v Viewport) Option {
	return func(f *Field) { f.view = v }
}

// WithTick overrides the step period. Non-positive periods are ignored.
func WithTick(d time.Duration) Option {
	return func(f *Field) {
		if d > 0 {
			f.tick = d
		}
	}
}

// WithAspectCorrection interpolates rows over the grid height. By default
// rows are interpolated over the width, which stretches the image
// vertically whenever width != height.
func WithAspectCorrection() Option {
	return func(f *Field) { f.aspect = true }
}

// New creates a field of the given pixel size over DefaultViewport.
// It panics if either dimension is not positive.
func New(width, height int, opts ...Option) *Field {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("fractal: invalid field size %dx%d", width, height))
	}
	f := &Field{
		width:  width,
		height: height,
		view:   DefaultViewport,
		tick:   DefaultTick,
		grid:   make([]Point, width*height),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.rebuild()
	return f
}

func (f *Field) rebuild() {
	rows := float64(f.width)
	if f.aspect {
		rows = float64(f.height)
	}
	cols := float64(f.width)
	xs, ys := f.view.X.Extent(), f.view.Y.Extent()

	for idx := range f.grid {
		x := idx % f.width
		y := idx / f.width
		re := f.view.X.Min + (float64(x)/cols)*xs
		im := f.view.Y.Min + (float64(y)/rows)*ys
		f.grid[idx] = NewPoint(re, im)
	}

	f.globalStep = 0
	f.elapsed = 0
}

func (f *Field) Width() int             { return f.width }
func (f *Field) Height() int            { return f.height }
func (f *Field) GlobalStep() int        { return f.globalStep }
func (f *Field) Viewport() Viewport     { return f.view }
func (f *Field) Elapsed() time.Duration { return f.elapsed }
func (f *Field) Tick() time.Duration    { return f.tick }
func (f *Field) ScaleWidth() float64    { return f.view.X.Extent() }
func (f *Field) ScaleHeight() float64   { return f.view.Y.Extent() }
func (f *Field) At(x, y int) Point      { return f.grid[y*f.width+x] }

// Zoom halves both extents, keeping the middle of the current window.
func (f *Field) Zoom() {
	f.view = Viewport{X: f.view.X.zoom(), Y: f.view.Y.zoom()}
	f.rebuild()
}

// Shift translates the viewport. A zero offset leaves the grid untouched.
func (f *Field) Shift(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	f.view = Viewport{X: f.view.X.shift(dx), Y: f.view.Y.shift(dy)}
	f.rebuild()
}

// Step accumulates dt and advances every Point once per elapsed tick.
// Ticks that piled up while the host was busy are all run in this call.
func (f *Field) Step(dt time.Duration) {
	if dt > 0 {
		f.elapsed += dt
	}
	for f.elapsed >= f.tick {
		f.elapsed -= f.tick
		for i := range f.grid {
			f.grid[i].Step()
		}
		f.globalStep++
	}
}

// Draw writes one RGBA8 pixel per Point into buf, row-major from the top.
// buf must hold at least Width()*Height()*4 bytes.
func (f *Field) Draw(buf []byte) {
	for i, p := range f.grid {
		c := PixelColor(p, f.globalStep)
		px := buf[i*4 : i*4+4 : i*4+4]
		px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
	}
}

// Image renders the field into a freshly allocated RGBA image.
func (f *Field) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	f.Draw(img.Pix)
	return img
}

// Escaped reports how many Points have left the escape radius.
func (f *Field) Escaped() int {
	n := 0
	for _, p := range f.grid {
		if p.Escaped() {
			n++
		}
	}
	return n
}

func (f *Field) EscapedFraction() float64 {
	return float64(f.Escaped()) / float64(len(f.grid))
}
