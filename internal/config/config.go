package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/forktal/internal/fractal"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth       = 400
	DefaultHeight      = 300
	DefaultScale       = 3
	DefaultPanFraction = 0.1
	DefaultFPS         = 30
	DefaultTheme       = "cyberpunk"
)

type Config struct {
	Width         int             `yaml:"width"`
	Height        int             `yaml:"height"`
	Scale         int             `yaml:"scale"`
	Tick          time.Duration   `yaml:"tick"`
	PanFraction   float64         `yaml:"pan_fraction"`
	AspectCorrect bool            `yaml:"aspect_correct"`
	FPS           int             `yaml:"fps"`
	Theme         string          `yaml:"theme"`
	Preset        string          `yaml:"preset,omitempty"`
	Viewport      *ViewportConfig `yaml:"viewport,omitempty"`
	Audio         bool            `yaml:"audio"`
}

type ViewportConfig struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Scale:       DefaultScale,
		Tick:        fractal.DefaultTick,
		PanFraction: DefaultPanFraction,
		FPS:         DefaultFPS,
		Theme:       DefaultTheme,
	}
}

// Load reads a YAML config on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidScale, c.Scale)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTick, c.Tick)
	}
	if c.PanFraction <= 0 || c.PanFraction > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidPanFraction, c.PanFraction)
	}
	if c.Preset != "" {
		if _, ok := Presets[c.Preset]; !ok {
			return fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, c.Preset, ListPresets())
		}
	}
	if v := c.Viewport; v != nil {
		if !(v.XMax > v.XMin) || !(v.YMax > v.YMin) {
			return fmt.Errorf("%w: %s", ErrInvalidViewport, v.view())
		}
	}
	return nil
}

func (v ViewportConfig) view() fractal.Viewport {
	return fractal.Viewport{
		X: fractal.Range{Min: v.XMin, Max: v.XMax},
		Y: fractal.Range{Min: v.YMin, Max: v.YMax},
	}
}

// View resolves the starting viewport: an explicit viewport wins over a
// preset, which wins over the default window.
func (c *Config) View() fractal.Viewport {
	if c.Viewport != nil {
		return c.Viewport.view()
	}
	if v, ok := Presets[c.Preset]; ok {
		return v
	}
	return fractal.DefaultViewport
}

// FieldOptions translates the config into fractal options.
func (c *Config) FieldOptions() []fractal.Option {
	opts := []fractal.Option{
		fractal.WithViewport(c.View()),
		fractal.WithTick(c.Tick),
	}
	if c.AspectCorrect {
		opts = append(opts, fractal.WithAspectCorrection())
	}
	return opts
}

// NewField builds a field of the configured size.
func (c *Config) NewField() *fractal.Field {
	return fractal.New(c.Width, c.Height, c.FieldOptions()...)
}
