package fractal

import (
	"math"
	"testing"
	"time"
)

func TestNewFieldDefaults(t *testing.T) {
	f := New(4, 3)

	if f.Width() != 4 || f.Height() != 3 {
		t.Errorf("expected 4x3, got %dx%d", f.Width(), f.Height())
	}
	if len(f.grid) != 12 {
		t.Errorf("expected 12 points, got %d", len(f.grid))
	}
	if f.Viewport() != DefaultViewport {
		t.Errorf("expected default viewport, got %v", f.Viewport())
	}
	if f.Tick() != DefaultTick {
		t.Errorf("expected tick %v, got %v", DefaultTick, f.Tick())
	}
	if f.GlobalStep() != 0 {
		t.Errorf("expected global step 0, got %d", f.GlobalStep())
	}
}

func TestNewFieldInvalidSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 3},
		{"zero height", 4, 0},
		{"negative", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			New(tt.width, tt.height)
		})
	}
}

func TestFieldGridMapping(t *testing.T) {
	f := New(4, 3)

	tests := []struct {
		x, y int
		want complex128
	}{
		{0, 0, complex(-2.25, -1.25)},
		{1, 0, complex(-1.5, -1.25)},
		{3, 0, complex(0, -1.25)},
		// rows step by extent/width, not extent/height
		{0, 1, complex(-2.25, -0.5)},
		{2, 2, complex(-0.75, 0.25)},
	}

	for _, tt := range tests {
		if got := f.At(tt.x, tt.y).C(); got != tt.want {
			t.Errorf("At(%d, %d).C() = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFieldAspectCorrection(t *testing.T) {
	f := New(4, 3, WithAspectCorrection())

	// 3 rows over an extent of 3
	if got := f.At(0, 1).C(); got != complex(-2.25, -0.25) {
		t.Errorf("At(0, 1).C() = %v, want -2.25-0.25i", got)
	}
	if got := f.At(0, 2).C(); got != complex(-2.25, 0.75) {
		t.Errorf("At(0, 2).C() = %v, want -2.25+0.75i", got)
	}
}

func TestFieldWithViewport(t *testing.T) {
	v := Viewport{X: Range{Min: 0, Max: 1}, Y: Range{Min: 0, Max: 2}}
	f := New(2, 2, WithViewport(v))

	if f.ScaleWidth() != 1 || f.ScaleHeight() != 2 {
		t.Errorf("expected scale 1x2, got %vx%v", f.ScaleWidth(), f.ScaleHeight())
	}
	if got := f.At(1, 1).C(); got != complex(0.5, 1) {
		t.Errorf("At(1, 1).C() = %v, want 0.5+1i", got)
	}
}

func TestFieldWithTickIgnoresNonPositive(t *testing.T) {
	if got := New(1, 1, WithTick(0)).Tick(); got != DefaultTick {
		t.Errorf("expected default tick, got %v", got)
	}
	if got := New(1, 1, WithTick(-time.Second)).Tick(); got != DefaultTick {
		t.Errorf("expected default tick, got %v", got)
	}
	if got := New(1, 1, WithTick(10*time.Millisecond)).Tick(); got != 10*time.Millisecond {
		t.Errorf("expected 10ms tick, got %v", got)
	}
}

func TestFieldZoom(t *testing.T) {
	f := New(4, 3)
	f.Zoom()

	want := Viewport{
		X: Range{Min: -1.5, Max: 0},
		Y: Range{Min: -0.5, Max: 1},
	}
	if f.Viewport() != want {
		t.Errorf("after zoom expected %v, got %v", want, f.Viewport())
	}
	if got := f.At(0, 0).C(); got != complex(-1.5, -0.5) {
		t.Errorf("grid not rebuilt, At(0, 0).C() = %v", got)
	}

	w := DefaultViewport.X.Extent()
	f.Zoom()
	if math.Abs(f.ScaleWidth()-w/4) > 1e-12 {
		t.Errorf("expected width %v after two zooms, got %v", w/4, f.ScaleWidth())
	}
}

func TestFieldZoomResetsProgress(t *testing.T) {
	f := New(4, 3)
	f.Step(3*DefaultTick + 10*time.Millisecond)
	f.Zoom()

	if f.GlobalStep() != 0 {
		t.Errorf("expected global step 0 after zoom, got %d", f.GlobalStep())
	}
	if f.Elapsed() != 0 {
		t.Errorf("expected elapsed 0 after zoom, got %v", f.Elapsed())
	}
	for i, p := range f.grid {
		if p.Count() != 0 {
			t.Fatalf("point %d has %d iterations after zoom", i, p.Count())
		}
	}
}

func TestFieldShift(t *testing.T) {
	f := New(4, 3)
	f.Step(2 * DefaultTick)
	f.Shift(0.5, -0.25)

	want := Viewport{
		X: Range{Min: -1.75, Max: 1.25},
		Y: Range{Min: -1.5, Max: 1.5},
	}
	if f.Viewport() != want {
		t.Errorf("after shift expected %v, got %v", want, f.Viewport())
	}
	if f.GlobalStep() != 0 {
		t.Errorf("expected global step 0 after shift, got %d", f.GlobalStep())
	}
}

func TestFieldShiftZeroIsNoop(t *testing.T) {
	f := New(4, 3)
	f.Step(5*DefaultTick + 20*time.Millisecond)

	before := make([]Point, len(f.grid))
	copy(before, f.grid)
	step, elapsed := f.GlobalStep(), f.Elapsed()

	f.Shift(0, 0)

	if f.GlobalStep() != step {
		t.Errorf("global step changed: %d -> %d", step, f.GlobalStep())
	}
	if f.Elapsed() != elapsed {
		t.Errorf("elapsed changed: %v -> %v", elapsed, f.Elapsed())
	}
	for i := range before {
		if before[i] != f.grid[i] {
			t.Fatalf("point %d changed: %+v -> %+v", i, before[i], f.grid[i])
		}
	}
}

func TestFieldStepCadence(t *testing.T) {
	tests := []struct {
		name     string
		dts      []time.Duration
		steps    int
		leftover time.Duration
	}{
		{"nothing", nil, 0, 0},
		{"under one tick", []time.Duration{49 * time.Millisecond}, 0, 49 * time.Millisecond},
		{"exactly one tick", []time.Duration{50 * time.Millisecond}, 1, 0},
		{"one tick in pieces", []time.Duration{20 * time.Millisecond, 30 * time.Millisecond}, 1, 0},
		{"two and a half", []time.Duration{125 * time.Millisecond}, 2, 25 * time.Millisecond},
		{"stall catches up", []time.Duration{time.Second}, 20, 0},
		{"negative ignored", []time.Duration{-time.Second, 60 * time.Millisecond}, 1, 10 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(4, 3)
			for _, dt := range tt.dts {
				f.Step(dt)
			}
			if f.GlobalStep() != tt.steps {
				t.Errorf("expected %d steps, got %d", tt.steps, f.GlobalStep())
			}
			if f.Elapsed() != tt.leftover {
				t.Errorf("expected %v left over, got %v", tt.leftover, f.Elapsed())
			}
		})
	}
}

func TestFieldStepAdvancesEveryPoint(t *testing.T) {
	f := New(4, 3)
	f.Step(DefaultTick)

	for i, p := range f.grid {
		if p.Count() != 1 {
			t.Errorf("point %d: expected 1 iteration, got %d", i, p.Count())
		}
		if p.Z() != p.C() {
			t.Errorf("point %d: expected z = c after one step", i)
		}
	}
}

func TestFieldDrawFresh(t *testing.T) {
	f := New(8, 6)
	buf := make([]byte, 8*6*4)
	for i := range buf {
		buf[i] = 0xaa
	}

	f.Draw(buf)

	for i := 0; i < len(buf); i += 4 {
		if buf[i] != 0 || buf[i+1] != 0 || buf[i+2] != 0 || buf[i+3] != 255 {
			t.Fatalf("pixel %d: expected opaque black, got %v", i/4, buf[i:i+4])
		}
	}
}

func TestFieldDrawShortBufferPanics(t *testing.T) {
	f := New(4, 3)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on short buffer")
		}
	}()
	f.Draw(make([]byte, 4*3*4-1))
}

func TestFieldImage(t *testing.T) {
	f := New(4, 3)
	f.Step(8 * DefaultTick)

	img := f.Image()
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}

	buf := make([]byte, 4*3*4)
	f.Draw(buf)
	for i := range buf {
		if img.Pix[i] != buf[i] {
			t.Fatalf("image byte %d = %d, draw byte = %d", i, img.Pix[i], buf[i])
		}
	}
}

func TestFieldEscaped(t *testing.T) {
	f := New(4, 3)
	if f.Escaped() != 0 {
		t.Errorf("expected no escaped points, got %d", f.Escaped())
	}

	f.Step(8 * DefaultTick)
	if f.Escaped() != 8 {
		t.Errorf("expected 8 escaped points, got %d", f.Escaped())
	}
	if math.Abs(f.EscapedFraction()-8.0/12.0) > 1e-12 {
		t.Errorf("expected fraction 2/3, got %v", f.EscapedFraction())
	}
}
