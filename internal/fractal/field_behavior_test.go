package fractal_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/forktal/internal/fractal"
)

func px(r byte) []byte { return []byte{r, 0, 0, 255} }

var black = px(0)

func golden(pixels ...[]byte) []byte {
	out := make([]byte, 0, len(pixels)*4)
	for _, p := range pixels {
		out = append(out, p...)
	}
	return out
}

var _ = Describe("Field", func() {
	var f *fractal.Field

	BeforeEach(func() {
		f = fractal.New(4, 3)
	})

	draw := func() []byte {
		buf := make([]byte, f.Width()*f.Height()*4)
		f.Draw(buf)
		return buf
	}

	Describe("stepping", func() {
		It("advances once per full tick", func() {
			f.Step(fractal.DefaultTick)
			Expect(f.GlobalStep()).To(Equal(1))
			Expect(f.Elapsed()).To(BeZero())
		})

		It("carries the remainder of a partial tick", func() {
			f.Step(5 * fractal.DefaultTick / 2)
			Expect(f.GlobalStep()).To(Equal(2))
			Expect(f.Elapsed()).To(Equal(fractal.DefaultTick / 2))

			f.Step(fractal.DefaultTick / 2)
			Expect(f.GlobalStep()).To(Equal(3))
			Expect(f.Elapsed()).To(BeZero())
		})

		It("keeps every point in lock-step until it escapes", func() {
			f.Step(8 * fractal.DefaultTick)
			for y := 0; y < f.Height(); y++ {
				for x := 0; x < f.Width(); x++ {
					p := f.At(x, y)
					if p.Escaped() {
						Expect(p.Count()).To(BeNumerically("<=", f.GlobalStep()))
					} else {
						Expect(p.Count()).To(Equal(f.GlobalStep()))
					}
				}
			}
		})
	})

	Describe("viewport", func() {
		It("quarters the extents after two zooms", func() {
			w, h := f.ScaleWidth(), f.ScaleHeight()
			f.Zoom()
			f.Zoom()
			Expect(f.ScaleWidth()).To(BeNumerically("~", w/4, 1e-12))
			Expect(f.ScaleHeight()).To(BeNumerically("~", h/4, 1e-12))
		})

		It("zooms toward the same relative point", func() {
			f.Zoom()
			Expect(f.Viewport().X.Min).To(BeNumerically("~", -1.5, 1e-12))
			Expect(f.Viewport().Y.Min).To(BeNumerically("~", -0.5, 1e-12))
		})

		It("leaves the grid alone on a zero shift", func() {
			f.Step(3 * fractal.DefaultTick)
			before := f.At(2, 1)

			f.Shift(0, 0)

			Expect(f.GlobalStep()).To(Equal(3))
			Expect(f.At(2, 1)).To(Equal(before))
		})

		It("restarts iteration on a real shift", func() {
			f.Step(3 * fractal.DefaultTick)
			f.Shift(f.ScaleWidth()/10, 0)

			Expect(f.GlobalStep()).To(BeZero())
			Expect(f.At(0, 0).Count()).To(BeZero())
		})
	})

	Describe("drawing", func() {
		It("is all opaque black before the first tick", func() {
			Expect(draw()).To(Equal(golden(
				black, black, black, black,
				black, black, black, black,
				black, black, black, black,
			)))
		})

		It("is all black after a single tick", func() {
			f.Step(fractal.DefaultTick)
			Expect(draw()).To(Equal(golden(
				black, black, black, black,
				black, black, black, black,
				black, black, black, black,
			)))
		})

		It("matches the golden frame after eight ticks", func() {
			for _, dt := range []time.Duration{130 * time.Millisecond, 130 * time.Millisecond, 140 * time.Millisecond} {
				f.Step(dt)
			}
			Expect(f.GlobalStep()).To(Equal(8))
			Expect(draw()).To(Equal(golden(
				px(128), px(159), px(159), px(191),
				px(159), px(191), black, black,
				px(159), px(255), black, black,
			)))
		})

		It("is reproducible", func() {
			other := fractal.New(4, 3)
			f.Step(400 * time.Millisecond)
			other.Step(400 * time.Millisecond)

			buf := make([]byte, 4*3*4)
			other.Draw(buf)
			Expect(draw()).To(Equal(buf))
		})
	})
})
