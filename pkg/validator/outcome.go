package validator

import "fmt"

// Outcome is the result of evaluating a validator against a value. It is a
// two-case tagged union: Matched carries the accepted (possibly
// transformed) value, Failed carries nothing. A matched nil, empty string
// or zero is a legitimate success and is never conflated with failure;
// combinators branch on the tag, never on value truthiness.
type Outcome struct {
	value any
	ok    bool
}

// Matched wraps an accepted value.
func Matched(v any) Outcome {
	return Outcome{value: v, ok: true}
}

// Failed reports a structural mismatch. It carries no payload.
func Failed() Outcome {
	return Outcome{}
}

// Matched reports whether the outcome accepted its input.
func (o Outcome) Matched() bool { return o.ok }

// Value returns the accepted payload. It is nil for failed outcomes, but a
// nil return alone does not imply failure; check Matched.
func (o Outcome) Value() any { return o.value }

// Conforms reports whether the outcome matched and its payload contains no
// embedded failures. Structural validators such as TupleOf and List (with
// removal disabled) succeed with a payload of per-position outcomes; those
// positions may themselves have failed. Conforms descends through Tuple
// and []Outcome payloads so callers can ask "did everything underneath
// pass" without walking the result by hand. Any uses this as its match
// criterion when selecting a branch.
func (o Outcome) Conforms() bool {
	if !o.ok {
		return false
	}
	return conforms(o.value)
}

func conforms(v any) bool {
	switch t := v.(type) {
	case Outcome:
		return t.Conforms()
	case Tuple:
		for _, e := range t {
			if !conforms(e) {
				return false
			}
		}
		return true
	case []Outcome:
		for _, e := range t {
			if !e.Conforms() {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (o Outcome) String() string {
	if !o.ok {
		return "failed"
	}
	return fmt.Sprintf("matched(%v)", o.value)
}

// resolve strips the outcome wrappers from a validated payload, replacing
// every nested Outcome with its value. Failed outcomes resolve to nil; a
// caller filtering on Conforms never observes one.
func resolve(v any) any {
	switch t := v.(type) {
	case Outcome:
		return resolve(t.value)
	case Tuple:
		out := make(Tuple, len(t))
		for i, e := range t {
			out[i] = resolve(e)
		}
		return out
	case []Outcome:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = resolve(e.value)
		}
		return out
	default:
		return v
	}
}
