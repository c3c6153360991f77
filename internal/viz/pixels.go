package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const halfBlock = "▀"

// pixelPainter turns an RGBA8 frame into rows of half-block cells.
// Rendered cells are cached by color pair; the fractal palette is small.
type pixelPainter struct {
	cells map[uint64]string
}

func newPixelPainter() *pixelPainter {
	return &pixelPainter{cells: make(map[uint64]string)}
}

func rgbHex(px []byte) lipgloss.Color {
	c := colorful.Color{
		R: float64(px[0]) / 255,
		G: float64(px[1]) / 255,
		B: float64(px[2]) / 255,
	}
	return lipgloss.Color(c.Hex())
}

func (p *pixelPainter) cell(top, bottom []byte) string {
	key := uint64(top[0])<<40 | uint64(top[1])<<32 | uint64(top[2])<<24 |
		uint64(bottom[0])<<16 | uint64(bottom[1])<<8 | uint64(bottom[2])
	if s, ok := p.cells[key]; ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(rgbHex(top)).
		Background(rgbHex(bottom)).
		Render(halfBlock)
	p.cells[key] = s
	return s
}

// Paint renders a width×height RGBA8 frame. An odd last row is paired with
// black.
func (p *pixelPainter) Paint(buf []byte, width, height int) string {
	black := []byte{0, 0, 0, 0xff}
	var sb strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			top := buf[i : i+4]
			bottom := black
			if y+1 < height {
				j := ((y+1)*width + x) * 4
				bottom = buf[j : j+4]
			}
			sb.WriteString(p.cell(top, bottom))
		}
		if y+2 < height {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
