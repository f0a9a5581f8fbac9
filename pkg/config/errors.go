package config

import "errors"

// Package-specific errors
var (
	// ErrUnsupportedFormat is returned for config files whose extension is
	// neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrParseConfig is returned when the raw document cannot be decoded.
	ErrParseConfig = errors.New("failed to parse config document")

	// ErrInvalidConfig is returned when the document decodes but does not
	// satisfy the configuration schema.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrMissingField is returned when a service entry lacks a required
	// field after validation.
	ErrMissingField = errors.New("missing required field")

	// ErrParseEnv is returned when environment variables cannot be parsed
	// into the settings struct.
	ErrParseEnv = errors.New("failed to parse environment settings")
)
