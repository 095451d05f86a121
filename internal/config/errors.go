package config

import "errors"

// Domain errors for configuration loading.
var (
	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("config: unknown preset")
)
