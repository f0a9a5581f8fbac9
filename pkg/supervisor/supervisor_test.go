package supervisor_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/servicekit/pkg/config"
	"github.com/dmitrymomot/servicekit/pkg/supervisor"
)

type fakeProcess struct {
	mu         sync.Mutex
	pid        int
	exited     bool
	code       int
	terminated bool
}

func (p *fakeProcess) PID() int {
	return p.pid
}

func (p *fakeProcess) Poll() (bool, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exited, p.code
}

func (p *fakeProcess) Terminate() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.terminated = true
	p.exited = true
	return nil
}

func (p *fakeProcess) exit(code int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exited = true
	p.code = code
}

// fakeSpawner hands out fake processes and records every spawn.
type fakeSpawner struct {
	mu     sync.Mutex
	err    error
	next   int
	spawns []string
	procs  []*fakeProcess
}

func (s *fakeSpawner) spawn(svc config.Service) (supervisor.Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spawns = append(s.spawns, svc.Name)
	if s.err != nil {
		return nil, s.err
	}
	s.next++
	p := &fakeProcess{pid: 1000 + s.next}
	s.procs = append(s.procs, p)
	return p, nil
}

func (s *fakeSpawner) spawnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.spawns)
}

func (s *fakeSpawner) last() *fakeProcess {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.procs) == 0 {
		return nil
	}
	return s.procs[len(s.procs)-1]
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(names ...string) config.Config {
	cfg := config.Config{}
	for _, name := range names {
		cfg.Services = append(cfg.Services, config.Service{
			Name: name, Exec: "run.sh", Dir: "./",
		})
	}
	return cfg
}

func newManager(cfg config.Config, spawn *fakeSpawner, opts ...supervisor.Option) *supervisor.Manager {
	base := []supervisor.Option{
		supervisor.WithSpawner(spawn.spawn),
		supervisor.WithLogger(quietLogger()),
		supervisor.WithBackOff(func() backoff.BackOff { return &backoff.ZeroBackOff{} }),
	}
	return supervisor.New(cfg, append(base, opts...)...)
}

func TestManager_CheckAll(t *testing.T) {
	t.Parallel()

	t.Run("first round starts every service", func(t *testing.T) {
		t.Parallel()
		spawn := &fakeSpawner{}
		m := newManager(testConfig("a", "b"), spawn)

		m.CheckAll()
		assert.Equal(t, []string{"a", "b"}, spawn.spawns)

		status := m.Status()
		require.Len(t, status, 2)
		for _, st := range status {
			assert.True(t, st.Up)
			assert.NotZero(t, st.PID)
			assert.Equal(t, 1, st.Starts)
		}
	})

	t.Run("running services are left alone", func(t *testing.T) {
		t.Parallel()
		spawn := &fakeSpawner{}
		m := newManager(testConfig("a"), spawn)

		m.CheckAll()
		m.CheckAll()
		m.CheckAll()
		assert.Equal(t, 1, spawn.spawnCount())
	})

	t.Run("exited service is restarted", func(t *testing.T) {
		t.Parallel()
		spawn := &fakeSpawner{}
		m := newManager(testConfig("a"), spawn)

		m.CheckAll()
		spawn.last().exit(1)
		m.CheckAll()

		assert.Equal(t, 2, spawn.spawnCount())
		st := m.Status()[0]
		assert.True(t, st.Up)
		assert.Equal(t, 2, st.Starts)
	})

	t.Run("spawn error latches the service as failed", func(t *testing.T) {
		t.Parallel()
		spawn := &fakeSpawner{err: errors.New("no such file")}
		m := newManager(testConfig("a"), spawn)

		m.CheckAll()
		m.CheckAll()

		// only the first round attempted a spawn
		assert.Equal(t, 1, spawn.spawnCount())
		st := m.Status()[0]
		assert.False(t, st.Up)
		assert.True(t, st.Failed)
	})

	t.Run("backoff delays the restart", func(t *testing.T) {
		t.Parallel()
		spawn := &fakeSpawner{}
		m := newManager(testConfig("a"), spawn, supervisor.WithBackOff(func() backoff.BackOff {
			return backoff.NewConstantBackOff(time.Hour)
		}))

		m.CheckAll()
		spawn.last().exit(1)
		m.CheckAll()
		m.CheckAll()

		// restart stays pending inside the backoff window
		assert.Equal(t, 1, spawn.spawnCount())
		assert.False(t, m.Status()[0].Up)
	})
}

func TestManager_Lifecycle(t *testing.T) {
	t.Parallel()

	t.Run("run loop supervises until stopped", func(t *testing.T) {
		t.Parallel()
		spawn := &fakeSpawner{}
		m := newManager(testConfig("a"), spawn, supervisor.WithInterval(10*time.Millisecond))

		require.NoError(t, m.Start(context.Background()))

		require.Eventually(t, func() bool {
			return spawn.spawnCount() >= 1
		}, time.Second, time.Millisecond)

		spawn.last().exit(2)
		require.Eventually(t, func() bool {
			return spawn.spawnCount() >= 2
		}, time.Second, time.Millisecond)

		require.NoError(t, m.Stop())
	})

	t.Run("stop terminates running services", func(t *testing.T) {
		t.Parallel()
		spawn := &fakeSpawner{}
		m := newManager(testConfig("a"), spawn, supervisor.WithInterval(10*time.Millisecond))

		require.NoError(t, m.Start(context.Background()))
		require.Eventually(t, func() bool {
			return spawn.spawnCount() >= 1
		}, time.Second, time.Millisecond)

		require.NoError(t, m.Stop())
		assert.True(t, spawn.last().terminated)
	})

	t.Run("double start is rejected", func(t *testing.T) {
		t.Parallel()
		spawn := &fakeSpawner{}
		m := newManager(testConfig("a"), spawn)

		require.NoError(t, m.Start(context.Background()))
		assert.ErrorIs(t, m.Start(context.Background()), supervisor.ErrAlreadyStarted)
		require.NoError(t, m.Stop())
	})

	t.Run("stop without start is rejected", func(t *testing.T) {
		t.Parallel()
		m := newManager(testConfig("a"), &fakeSpawner{})
		assert.ErrorIs(t, m.Stop(), supervisor.ErrNotStarted)
	})

	t.Run("run blocks until context cancel", func(t *testing.T) {
		t.Parallel()
		spawn := &fakeSpawner{}
		m := newManager(testConfig("a"), spawn, supervisor.WithInterval(10*time.Millisecond))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- m.Run(ctx)() }()

		require.Eventually(t, func() bool {
			return spawn.spawnCount() >= 1
		}, time.Second, time.Millisecond)

		cancel()
		require.NoError(t, <-done)
	})
}
