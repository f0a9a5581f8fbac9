package supervisor

import (
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type managerOptions struct {
	interval time.Duration
	spawn    Spawner
	logger   *slog.Logger
	backoff  func() backoff.BackOff
}

// Option configures a Manager.
type Option func(*managerOptions)

// WithInterval sets the pause between supervision rounds. Default 5s.
func WithInterval(d time.Duration) Option {
	return func(o *managerOptions) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithSpawner replaces the process spawner. Default ExecSpawner.
func WithSpawner(s Spawner) Option {
	return func(o *managerOptions) {
		if s != nil {
			o.spawn = s
		}
	}
}

// WithLogger sets the structured logger. Default slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(o *managerOptions) {
		if log != nil {
			o.logger = log
		}
	}
}

// WithBackOff sets the factory producing each service's restart backoff.
// One backoff instance is created per service, since backoff state is
// not shareable.
func WithBackOff(factory func() backoff.BackOff) Option {
	return func(o *managerOptions) {
		if factory != nil {
			o.backoff = factory
		}
	}
}
