package fractal

import (
	"image/color"
	"math"
)

var opaqueBlack = color.RGBA{A: 0xff}

// Shade maps an escape count to a red intensity relative to the number of
// ticks the field has run. It returns 0 before the first tick.
func Shade(count, globalStep int) uint8 {
	if globalStep <= 0 {
		return 0
	}
	v := math.Round(255 * float64(count) / float64(globalStep))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// PixelColor returns the color of p after globalStep ticks: a red gradient
// for escaped points and opaque black for the rest.
func PixelColor(p Point, globalStep int) color.RGBA {
	if globalStep <= 0 || !p.Escaped() {
		return opaqueBlack
	}
	return color.RGBA{R: Shade(p.Count(), globalStep), A: 0xff}
}
