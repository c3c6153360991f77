package config

import (
	"sort"

	"github.com/san-kum/forktal/internal/fractal"
)

func region(xmin, xmax, ymin, ymax float64) fractal.Viewport {
	return fractal.Viewport{
		X: fractal.Range{Min: xmin, Max: xmax},
		Y: fractal.Range{Min: ymin, Max: ymax},
	}
}

// Presets are classic landmarks of the Mandelbrot set.
var Presets = map[string]fractal.Viewport{
	"classic":  fractal.DefaultViewport,
	"seahorse": region(-0.8, -0.7, 0.05, 0.15),
	"elephant": region(-1.85, -1.75, -0.10, -0.02),
	"spiral":   region(-0.7435, -0.7420, 0.1310, 0.1325),
	"triple":   region(-0.7480, -0.7450, 0.0950, 0.0980),
	"dragon":   region(-0.7400, -0.7350, 0.1800, 0.1850),
	"minibrot": region(-1.7390, -1.7375, -0.0235, -0.0220),
}

var presetInfo = map[string]string{
	"classic":  "whole set",
	"seahorse": "curled filaments",
	"elephant": "trunk-like tendrils",
	"spiral":   "minibrot with spiral arms",
	"triple":   "threefold spiral",
	"dragon":   "deep spiral filaments",
	"minibrot": "self-similar copy",
}

func GetPreset(name string) (fractal.Viewport, bool) {
	v, ok := Presets[name]
	return v, ok
}

func PresetInfo(name string) string { return presetInfo[name] }

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
