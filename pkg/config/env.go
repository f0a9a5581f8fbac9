package config

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds process-level settings read from the environment. File-based
// configuration describes *what* to supervise; Env describes *how* the
// supervisor itself runs. A .env file in the working directory is loaded
// once before parsing, if present.
type Env struct {
	// ConfigFile is the path of the configuration document to load.
	ConfigFile string `env:"SERVICEKIT_CONFIG" envDefault:"config.json"`

	// CheckInterval is the pause between supervision rounds.
	CheckInterval time.Duration `env:"SERVICEKIT_CHECK_INTERVAL" envDefault:"5s"`

	// HTTPAddr enables the HTTP status surface when non-empty.
	HTTPAddr string `env:"SERVICEKIT_HTTP_ADDR"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"SERVICEKIT_LOG_LEVEL" envDefault:"info"`

	// LogFormat is one of json, text.
	LogFormat string `env:"SERVICEKIT_LOG_FORMAT" envDefault:"json"`

	// LogFile mirrors log records into the named file in addition to
	// stdout when non-empty.
	LogFile string `env:"SERVICEKIT_LOG_FILE"`

	// TraceValidation dumps every validation step of the config load at
	// debug level.
	TraceValidation bool `env:"SERVICEKIT_TRACE_VALIDATION"`
}

var dotenvOnce sync.Once

// LoadEnv parses supervisor settings from the environment.
func LoadEnv() (Env, error) {
	dotenvOnce.Do(func() {
		// The .env file is optional; a missing one is not an error.
		_ = godotenv.Load()
	})

	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, errors.Join(ErrParseEnv, err)
	}
	return e, nil
}
