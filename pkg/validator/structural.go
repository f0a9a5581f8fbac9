package validator

import (
	"fmt"
	"reflect"
)

// List validates every element of a sequence independently and in order
// with elem. A non-sequence input fails; element content never does. With
// removal enabled (the default) the result is the ordered []any of
// matched payloads, failed elements dropped — an empty result is still a
// success. With WithRemoveFailed(false) the result is the raw []Outcome,
// one per element, and callers decide what a failed position means.
// Callers needing "fail the whole list if any element fails" compose the
// raw outcomes with Outcome.Conforms.
func List(elem Validator, opts ...Option) Validator {
	if elem == nil {
		panic("validator: List requires a non-nil element validator")
	}
	cfg := settings{removeFailed: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return listValidator{elem: elem, cfg: cfg}
}

type listValidator struct {
	elem Validator
	cfg  settings
}

func (val listValidator) Name() string {
	return fmt.Sprintf("List[%s]", val.elem.Name())
}

func (val listValidator) evaluate(v any, ev *evaluation) (Outcome, error) {
	items, ok := elements(v)
	if !ok {
		return Failed(), nil
	}

	if val.cfg.removeFailed {
		kept := make([]any, 0, len(items))
		for _, item := range items {
			out, err := ev.step(val.elem, item)
			if err != nil {
				return Failed(), err
			}
			if out.Matched() {
				kept = append(kept, out.Value())
			}
		}
		return Matched(kept), nil
	}

	outs := make([]Outcome, len(items))
	for i, item := range items {
		out, err := ev.step(val.elem, item)
		if err != nil {
			return Failed(), err
		}
		outs[i] = out
	}
	return Matched(outs), nil
}

// TupleOf validates a fixed-arity positional sequence. Only a Tuple value
// is accepted; plain slices are sequences and belong to List. Each child
// validates the position it occupies, and the result is the Tuple of
// per-position outcomes — TupleOf itself does not require every position
// to succeed. Any treats a tuple with failed positions as non-matching,
// and other callers test positions via Outcome.Conforms.
//
// Defaults: an input whose arity differs from the validator count fails
// (WithMatchLength(false) disables the check), and zero validators accept
// any tuple (WithAllowEmpty(false) makes that a failure instead).
func TupleOf(children []Validator, opts ...Option) Validator {
	cfg := settings{allowEmpty: true, matchLength: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return tupleValidator{children: cloneChildren("TupleOf", children), cfg: cfg}
}

type tupleValidator struct {
	children []Validator
	cfg      settings
}

func (val tupleValidator) Name() string {
	return fmt.Sprintf("Tuple[%d]", len(val.children))
}

func (val tupleValidator) evaluate(v any, ev *evaluation) (Outcome, error) {
	tup, ok := v.(Tuple)
	if !ok {
		return Failed(), nil
	}
	if len(val.children) == 0 {
		if val.cfg.allowEmpty {
			return Matched(tup), nil
		}
		return Failed(), nil
	}
	if val.cfg.matchLength && len(tup) != len(val.children) {
		return Failed(), nil
	}

	n := min(len(tup), len(val.children))
	outs := make(Tuple, n)
	for i := 0; i < n; i++ {
		out, err := ev.step(val.children[i], tup[i])
		if err != nil {
			return Failed(), err
		}
		outs[i] = out
	}
	return Matched(outs), nil
}

// Dict validates a mapping through a three-stage pipeline: each key runs
// through key, each value through value, and the resulting (key, value)
// pair — as a 2-tuple — through pair. The pair stage is where schema-less
// structural validation happens: supply an Any over one TupleOf branch
// per permitted (key name, value type) pairing and every entry must
// satisfy exactly one of them. A failed key or value stage fails the
// entry outright, since there is no validated half to build the pair
// from; recovery, where wanted, belongs inside the stage validators
// themselves (see Replace).
//
// Nil stage validators default to Pass. With removal enabled (the
// default) entries whose pipeline failed are dropped and the result is a
// plain map of validated keys to validated values; otherwise every entry
// is retained under its original key with its raw pair Outcome as the
// value. Validated keys must resolve to strings to be placed in the
// result. Go maps are unordered, so no entry ordering is preserved.
func Dict(key, value, pair Validator, opts ...Option) Validator {
	if key == nil {
		key = Pass()
	}
	if value == nil {
		value = Pass()
	}
	if pair == nil {
		pair = Pass()
	}
	cfg := settings{removeFailed: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return dictValidator{key: key, value: value, pair: pair, cfg: cfg}
}

type dictValidator struct {
	key   Validator
	value Validator
	pair  Validator
	cfg   settings
}

func (val dictValidator) Name() string {
	return fmt.Sprintf("Dict[key=%s, value=%s, pair=%s]",
		val.key.Name(), val.value.Name(), val.pair.Name())
}

func (val dictValidator) evaluate(v any, ev *evaluation) (Outcome, error) {
	entries, ok := mapping(v)
	if !ok {
		return Failed(), nil
	}

	result := make(map[string]any, len(entries))
	for k, item := range entries {
		out, err := val.entry(k, item, ev)
		if err != nil {
			return Failed(), err
		}
		if val.cfg.removeFailed {
			if !out.Conforms() {
				continue
			}
			resolved, ok := resolve(out.Value()).(Tuple)
			if !ok || len(resolved) != 2 {
				continue
			}
			rk, ok := resolved[0].(string)
			if !ok {
				continue
			}
			result[rk] = resolved[1]
		} else {
			result[k] = out
		}
	}
	return Matched(result), nil
}

func (val dictValidator) entry(k string, v any, ev *evaluation) (Outcome, error) {
	kOut, err := ev.step(val.key, k)
	if err != nil {
		return Failed(), err
	}
	vOut, err := ev.step(val.value, v)
	if err != nil {
		return Failed(), err
	}
	if !kOut.Matched() || !vOut.Matched() {
		return Failed(), nil
	}
	return ev.step(val.pair, Tuple{kOut.Value(), vOut.Value()})
}

// mapping adapts mapping-kinded values to map[string]any. Maps with
// non-string keys are not part of the configuration value domain and are
// rejected.
func mapping(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
