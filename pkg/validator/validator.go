package validator

import (
	"github.com/dmitrymomot/servicekit/pkg/trace"
)

// Validator is an immutable node in a validator tree. A tree is built once
// and may then be evaluated concurrently against any number of values;
// evaluation never mutates the tree.
//
// The evaluate method is unexported to keep the algebra closed: every
// variant lives in this package and upholds the Outcome contract (never a
// bare value, never a sentinel that doubles as a payload).
type Validator interface {
	// Name returns the display name used in trace output.
	Name() string

	evaluate(v any, ev *evaluation) (Outcome, error)
}

// evaluation threads the trace sink and recursion depth through a single
// walk. Depth is only ever used for trace indentation.
type evaluation struct {
	sink  trace.Sink
	depth int
}

// step runs one validator against a value, reports the result to the trace
// sink and returns it. Children evaluated by val itself run one level
// deeper.
func (ev *evaluation) step(val Validator, v any) (Outcome, error) {
	child := &evaluation{sink: ev.sink, depth: ev.depth + 1}
	out, err := val.evaluate(v, child)
	if err != nil {
		return Failed(), err
	}
	ev.sink.Record(trace.Step{
		Depth:     ev.depth,
		Matched:   out.ok,
		Result:    out.value,
		Input:     v,
		Validator: val.Name(),
	})
	return out, nil
}

// Evaluate runs a validator tree against a value without tracing. The
// returned error is reserved for faults in the tree itself (see
// ErrAmbiguousMatch); an ordinary mismatch is reported as a failed
// Outcome, never as an error.
func Evaluate(val Validator, v any) (Outcome, error) {
	return EvaluateTraced(val, v, nil)
}

// EvaluateTraced runs a validator tree against a value, reporting every
// step to sink. A nil sink disables tracing.
func EvaluateTraced(val Validator, v any, sink trace.Sink) (Outcome, error) {
	if sink == nil {
		sink = trace.Nop()
	}
	ev := &evaluation{sink: sink}
	return ev.step(val, v)
}

// settings collects the per-variant knobs. Each constructor starts from
// its own defaults; options override them.
type settings struct {
	shortCircuit bool
	allowEmpty   bool
	matchLength  bool
	removeFailed bool
}

// Option adjusts a validator at construction time. Options not understood
// by a variant are ignored.
type Option func(*settings)

// WithShortCircuit stops evaluating further children once the combinator's
// verdict is already determined. For Any this disables ambiguity
// detection, since detecting overlap requires scanning every branch; the
// two modes are mutually exclusive.
func WithShortCircuit() Option {
	return func(s *settings) { s.shortCircuit = true }
}

// WithAllowEmpty controls whether a combinator with zero children accepts
// its input. Defaults: All and Any reject (false), TupleOf accepts (true).
func WithAllowEmpty(allow bool) Option {
	return func(s *settings) { s.allowEmpty = allow }
}

// WithMatchLength controls whether TupleOf rejects inputs whose arity
// differs from its validator count. Default true.
func WithMatchLength(match bool) Option {
	return func(s *settings) { s.matchLength = match }
}

// WithRemoveFailed controls whether List and Dict drop elements or entries
// that failed validation from their result. Default true; with removal
// disabled the raw per-element outcomes are returned instead.
func WithRemoveFailed(remove bool) Option {
	return func(s *settings) { s.removeFailed = remove }
}
