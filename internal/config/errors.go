package config

import "errors"

// Validation errors for config values.
var (
	// ErrInvalidSize indicates a non-positive grid width or height.
	ErrInvalidSize = errors.New("config: grid size must be positive")

	// ErrInvalidScale indicates a non-positive window scale.
	ErrInvalidScale = errors.New("config: scale must be positive")

	// ErrInvalidTick indicates a non-positive tick period.
	ErrInvalidTick = errors.New("config: tick must be positive")

	// ErrInvalidPanFraction indicates a pan fraction outside (0, 1].
	ErrInvalidPanFraction = errors.New("config: pan fraction must be in (0, 1]")

	// ErrInvalidViewport indicates an empty or inverted viewport.
	ErrInvalidViewport = errors.New("config: viewport max must exceed min")

	// ErrUnknownPreset indicates a preset name with no viewport.
	ErrUnknownPreset = errors.New("config: unknown preset")
)
