package gui

import (
	"image/color"
	"strings"
)

type panKeys struct {
	left, right, up, down bool
}

// offset is the viewport shift for the held pan keys: frac of the current
// scale per axis. Up moves towards smaller y.
func (k panKeys) offset(scaleW, scaleH, frac float64) (dx, dy float64) {
	if k.right {
		dx += scaleW * frac
	}
	if k.left {
		dx -= scaleW * frac
	}
	if k.down {
		dy += scaleH * frac
	}
	if k.up {
		dy -= scaleH * frac
	}
	return dx, dy
}

// copyPixels repacks an RGBA8 frame for texture upload.
func copyPixels(dst []color.RGBA, src []byte) {
	for i := range dst {
		j := i * 4
		dst[i] = color.RGBA{R: src[j], G: src[j+1], B: src[j+2], A: src[j+3]}
	}
}

// meter renders level in [0, 1] as a bar of width cells.
func meter(level float64, width int) string {
	bars := int(level * float64(width))
	bars = max(0, min(bars, width))
	return strings.Repeat("|", bars) + strings.Repeat(" ", width-bars)
}
