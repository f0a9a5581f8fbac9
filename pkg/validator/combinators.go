package validator

import "fmt"

// All evaluates every child against the same input and accepts iff all of
// them do, returning the original value unchanged; transformed outputs of
// the children are discarded, only their verdict counts. With zero
// children it fails unless WithAllowEmpty(true) is set.
//
// WithShortCircuit skips remaining children after the first failure. The
// verdict is identical either way; short-circuiting only saves work (and
// trace output for the skipped children).
func All(children []Validator, opts ...Option) Validator {
	cfg := settings{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return allValidator{children: cloneChildren("All", children), cfg: cfg}
}

type allValidator struct {
	children []Validator
	cfg      settings
}

func (val allValidator) Name() string {
	return fmt.Sprintf("All[%d]", len(val.children))
}

func (val allValidator) evaluate(v any, ev *evaluation) (Outcome, error) {
	if len(val.children) == 0 {
		if val.cfg.allowEmpty {
			return Matched(v), nil
		}
		return Failed(), nil
	}

	passed := true
	for _, child := range val.children {
		out, err := ev.step(child, v)
		if err != nil {
			return Failed(), err
		}
		passed = passed && out.Matched()
		if val.cfg.shortCircuit && !passed {
			break
		}
	}
	if passed {
		return Matched(v), nil
	}
	return Failed(), nil
}

// Any evaluates every child against the same input and requires exactly
// one to match, returning that branch's payload. Requiring exactly one —
// not at least one — makes Any usable as an unambiguous discriminated
// union: overlapping branches are a schema bug, reported as
// ErrAmbiguousMatch rather than folded into an ordinary failure.
//
// A branch counts as matching only if its outcome Conforms, i.e. matched
// with no failed positions embedded in the payload. This is what lets
// tuple branches such as TupleOf(Value("name"), Type(KindString)) act as
// selectors: a tuple whose positions failed does not select the branch.
//
// WithShortCircuit returns the first conforming branch without scanning
// the rest. Ambiguity detection requires scanning every branch, so the
// two modes are mutually exclusive; short-circuiting deliberately trades
// the overlap check away.
func Any(children []Validator, opts ...Option) Validator {
	cfg := settings{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return anyValidator{children: cloneChildren("Any", children), cfg: cfg}
}

type anyValidator struct {
	children []Validator
	cfg      settings
}

func (val anyValidator) Name() string {
	return fmt.Sprintf("Any[%d]", len(val.children))
}

func (val anyValidator) evaluate(v any, ev *evaluation) (Outcome, error) {
	if len(val.children) == 0 {
		if val.cfg.allowEmpty {
			return Matched(v), nil
		}
		return Failed(), nil
	}

	winner := Failed()
	found := false
	for _, child := range val.children {
		out, err := ev.step(child, v)
		if err != nil {
			return Failed(), err
		}
		if !out.Conforms() {
			continue
		}
		if found {
			return Failed(), fmt.Errorf("%w: input %v", ErrAmbiguousMatch, v)
		}
		winner, found = out, true
		if val.cfg.shortCircuit {
			break
		}
	}
	if !found {
		return Failed(), nil
	}
	return winner, nil
}

// cloneChildren copies the child slice so later mutation of the caller's
// slice cannot alias into the tree, and rejects nil children up front.
func cloneChildren(name string, children []Validator) []Validator {
	out := make([]Validator, len(children))
	for i, c := range children {
		if c == nil {
			panic(fmt.Sprintf("validator: %s child %d is nil", name, i))
		}
		out[i] = c
	}
	return out
}
