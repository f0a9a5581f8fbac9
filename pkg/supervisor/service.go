package supervisor

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/dmitrymomot/servicekit/pkg/config"
)

// Service supervises one process: it spawns it, polls its exit status and
// restarts it when it goes down. A spawn error (as opposed to a process
// exiting) latches the service as failed and stops further attempts — if
// the executable cannot even be started, retrying every round only fills
// the log.
type Service struct {
	cfg   config.Service
	spawn Spawner
	log   *slog.Logger

	mu        sync.Mutex
	proc      Process
	failed    bool
	restarts  int
	backoff   backoff.BackOff
	nextStart time.Time
	now       func() time.Time
}

func newService(cfg config.Service, spawn Spawner, log *slog.Logger, b backoff.BackOff) *Service {
	return &Service{
		cfg:     cfg,
		spawn:   spawn,
		log:     log.With(slog.String("service", cfg.Name)),
		backoff: b,
		now:     time.Now,
	}
}

// Name returns the configured service name.
func (s *Service) Name() string { return s.cfg.Name }

// Check inspects the process and restarts it if it has exited. Restarts
// are paced by an exponential backoff that resets once the process is
// observed running again.
func (s *Service) Check() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.proc == nil {
		s.start()
		return
	}

	exited, code := s.proc.Poll()
	if !exited {
		s.backoff.Reset()
		return
	}

	s.proc = nil
	s.log.Info("service exited, scheduling restart", slog.Int("code", code))
	s.nextStart = s.now().Add(s.backoff.NextBackOff())
	s.start()
}

// start spawns the process if the service is not latched failed and the
// backoff window has passed. Callers hold s.mu.
func (s *Service) start() {
	if s.failed || s.now().Before(s.nextStart) {
		return
	}

	s.log.Info("starting service",
		slog.String("command", strings.Join(append([]string{s.cfg.Exec}, s.cfg.Args...), " ")),
		slog.String("dir", s.cfg.Dir))

	proc, err := s.spawn(s.cfg)
	if err != nil {
		s.log.Error("could not start service", slog.String("error", err.Error()))
		s.failed = true
		return
	}
	s.restarts++
	s.proc = proc
	s.log.Info("service started", slog.Int("pid", proc.PID()))
}

// Status reports a point-in-time view of the service.
func (s *Service) Status() ServiceStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := ServiceStatus{
		Name:   s.cfg.Name,
		Starts: s.restarts,
		Failed: s.failed,
	}
	if s.proc != nil {
		if exited, _ := s.proc.Poll(); !exited {
			st.Up = true
			st.PID = s.proc.PID()
		}
	}
	return st
}

// terminate kills the process if one is running.
func (s *Service) terminate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proc == nil {
		return
	}
	if err := s.proc.Terminate(); err != nil {
		s.log.Error("could not terminate service", slog.String("error", err.Error()))
	}
	s.proc = nil
}

// ServiceStatus is a snapshot of one supervised service.
type ServiceStatus struct {
	Name   string `json:"name"`
	Up     bool   `json:"up"`
	PID    int    `json:"pid,omitempty"`
	Starts int    `json:"starts"`
	Failed bool   `json:"failed"`
}
