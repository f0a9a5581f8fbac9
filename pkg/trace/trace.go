package trace

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Step describes a single evaluation step reported by the validator engine.
type Step struct {
	// Depth is the recursion depth of the step, starting at zero for the
	// root validator. Sinks indent by two spaces per level.
	Depth int

	// Matched reports whether the step accepted its input.
	Matched bool

	// Result is the value produced by the step. Nil when the step failed.
	Result any

	// Input is the raw value the step was evaluated against.
	Input any

	// Validator is the display name of the validator that ran the step.
	Validator string
}

func (s Step) outcome() string {
	if s.Matched {
		return fmt.Sprintf("matched(%v)", s.Result)
	}
	return "failed"
}

// Sink receives evaluation steps. Implementations must be safe for
// concurrent use when the same validator tree is evaluated from multiple
// goroutines; the engine itself never serializes writes.
type Sink interface {
	Record(Step)
}

// Nop discards all steps. It is the default sink used by untraced
// evaluation.
func Nop() Sink { return nopSink{} }

type nopSink struct{}

func (nopSink) Record(Step) {}

// NewWriter returns a sink that renders one line per step to w, indented by
// two spaces per depth level. Writes are serialized with a mutex so the
// sink can be shared between concurrent evaluations.
func NewWriter(w io.Writer) Sink {
	return &writerSink{w: w}
}

type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *writerSink) Record(step Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "%s%s %v %s\n",
		strings.Repeat("  ", step.Depth), step.outcome(), step.Input, step.Validator)
}

// NewLogger returns a sink that forwards steps to a structured logger at
// debug level. Useful for wiring validation diagnostics into the
// application's log stream instead of a dedicated writer.
func NewLogger(log *slog.Logger) Sink {
	if log == nil {
		log = slog.Default()
	}
	return &loggerSink{log: log}
}

type loggerSink struct {
	log *slog.Logger
}

func (s *loggerSink) Record(step Step) {
	s.log.LogAttrs(context.Background(), slog.LevelDebug, "validation step",
		slog.Int("depth", step.Depth),
		slog.Bool("matched", step.Matched),
		slog.Any("input", step.Input),
		slog.Any("result", step.Result),
		slog.String("validator", step.Validator),
	)
}
