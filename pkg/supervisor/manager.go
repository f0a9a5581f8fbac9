package supervisor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/dmitrymomot/servicekit/pkg/config"
)

// Manager supervises the services of a configuration: a periodic loop
// checks every service and restarts the ones that went down.
type Manager struct {
	id       uuid.UUID
	services []*Service
	interval time.Duration
	log      *slog.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a manager for a validated configuration.
func New(cfg config.Config, opts ...Option) *Manager {
	options := managerOptions{
		interval: 5 * time.Second,
		spawn:    ExecSpawner,
		logger:   slog.Default(),
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxInterval = time.Minute
			b.MaxElapsedTime = 0 // keep restarting forever
			return b
		},
	}
	for _, opt := range opts {
		opt(&options)
	}

	m := &Manager{
		id:       uuid.New(),
		interval: options.interval,
		log:      options.logger,
	}
	for _, svc := range cfg.Services {
		m.services = append(m.services, newService(svc, options.spawn, options.logger, options.backoff()))
	}
	return m
}

// CheckAll runs one supervision round over every service.
func (m *Manager) CheckAll() {
	for _, svc := range m.services {
		svc.Check()
	}
}

// Status reports a snapshot of every supervised service, in configuration
// order.
func (m *Manager) Status() []ServiceStatus {
	out := make([]ServiceStatus, len(m.services))
	for i, svc := range m.services {
		out[i] = svc.Status()
	}
	return out
}

// LogStatus writes one info record per service, mirroring Status.
func (m *Manager) LogStatus() {
	for _, st := range m.Status() {
		state := "DOWN"
		if st.Up {
			state = "UP"
		}
		m.log.Info("service status",
			slog.String("service", st.Name),
			slog.String("state", state),
			slog.Int("starts", st.Starts))
	}
}

// Start launches the periodic check loop in the background. The first
// round runs immediately so services come up without waiting a full
// interval.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	m.mu.Unlock()

	go m.run()

	m.log.Info("supervisor started",
		slog.String("manager_id", m.id.String()),
		slog.Int("services", len(m.services)),
		slog.Duration("interval", m.interval))
	return nil
}

// Stop cancels the loop, waits for the current round to finish and
// terminates all running services.
func (m *Manager) Stop() error {
	m.mu.Lock()
	if m.cancel == nil {
		m.mu.Unlock()
		return ErrNotStarted
	}
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	<-m.done

	for _, svc := range m.services {
		svc.terminate()
	}
	m.log.Info("supervisor stopped", slog.String("manager_id", m.id.String()))
	return nil
}

// Run starts the manager and returns a function suitable for errgroup:
// it blocks until the context is canceled, then stops the manager.
func (m *Manager) Run(ctx context.Context) func() error {
	return func() error {
		if err := m.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		return m.Stop()
	}
}

func (m *Manager) run() {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.CheckAll()
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.CheckAll()
		}
	}
}
