package supervisor

import (
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"

	"github.com/dmitrymomot/servicekit/pkg/config"
	"github.com/dmitrymomot/servicekit/pkg/logger"
)

// Process is a handle to a spawned child process.
type Process interface {
	// PID returns the operating system process id.
	PID() int

	// Poll reports whether the process has exited and, if so, its exit
	// code. It never blocks.
	Poll() (exited bool, code int)

	// Terminate kills the process. Safe to call on an exited process.
	Terminate() error
}

// Spawner starts a process for a service record. Injectable so the
// supervision logic is testable without real executables.
type Spawner func(svc config.Service) (Process, error)

// ExecSpawner spawns via os/exec with the service's working directory and
// arguments. Child output inherits the parent's stdout and stderr so it
// stays visible; use NewLogSpawner to capture it into the log stream
// instead.
func ExecSpawner(svc config.Service) (Process, error) {
	return spawn(svc, os.Stdout, os.Stderr)
}

// NewExecSpawner returns a Spawner that writes child stdout and stderr to
// the given writers. Nil writers fall back to the parent's streams.
func NewExecSpawner(stdout, stderr io.Writer) Spawner {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return func(svc config.Service) (Process, error) {
		return spawn(svc, stdout, stderr)
	}
}

// NewLogSpawner returns a Spawner that forwards child output line by line
// into the structured log, tagged with the service name and stream:
// stdout at info, stderr at error.
func NewLogSpawner(log *slog.Logger) Spawner {
	if log == nil {
		log = slog.Default()
	}
	return func(svc config.Service) (Process, error) {
		tagged := log.With(slog.String("service", svc.Name))
		return spawn(svc,
			logger.NewWriter(tagged.With(slog.String("stream", "stdout")), slog.LevelInfo),
			logger.NewWriter(tagged.With(slog.String("stream", "stderr")), slog.LevelError),
		)
	}
}

func spawn(svc config.Service, stdout, stderr io.Writer) (Process, error) {
	cmd := exec.Command(svc.Exec, svc.Args...)
	cmd.Dir = svc.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	p := &execProcess{cmd: cmd, done: make(chan struct{})}
	go func() {
		defer close(p.done)
		// Wait also drains the output copy goroutines, so once done is
		// closed every child byte has reached the writers.
		err := cmd.Wait()

		p.mu.Lock()
		defer p.mu.Unlock()
		p.exited = true
		p.code = cmd.ProcessState.ExitCode()
		if err != nil && p.code == 0 {
			p.code = -1
		}
	}()
	return p, nil
}

type execProcess struct {
	cmd  *exec.Cmd
	done chan struct{}

	mu     sync.Mutex
	exited bool
	code   int
}

func (p *execProcess) PID() int {
	return p.cmd.Process.Pid
}

func (p *execProcess) Poll() (bool, int) {
	select {
	case <-p.done:
	default:
		return false, 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exited, p.code
}

func (p *execProcess) Terminate() error {
	if exited, _ := p.Poll(); exited {
		return nil
	}
	return p.cmd.Process.Kill()
}
