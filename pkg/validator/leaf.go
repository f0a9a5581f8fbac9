package validator

import (
	"fmt"
	"reflect"
)

// Pass accepts every value unchanged. It is the neutral element of the
// algebra and the default wherever a child validator is optional.
func Pass() Validator { return passValidator{} }

type passValidator struct{}

func (passValidator) Name() string { return "Pass" }

func (passValidator) evaluate(v any, _ *evaluation) (Outcome, error) {
	return Matched(v), nil
}

// Value accepts a value iff it is equal to the given constant, using
// structural equality for composites and exact equality for scalars.
// Typical use is discriminating on a literal key or tag.
func Value(want any) Validator { return valueValidator{want: want} }

type valueValidator struct {
	want any
}

func (val valueValidator) Name() string {
	return fmt.Sprintf("Value[%v]", val.want)
}

func (val valueValidator) evaluate(v any, _ *evaluation) (Outcome, error) {
	if reflect.DeepEqual(v, val.want) {
		return Matched(v), nil
	}
	return Failed(), nil
}

// Type accepts a value iff its runtime kind matches the given tag. No
// coercion is attempted: "1" never satisfies KindInt, 1 never satisfies
// KindString. KindNumber is the only composite tag, accepting both int
// and float kinds.
func Type(kind Kind) Validator { return typeValidator{kind: kind} }

type typeValidator struct {
	kind Kind
}

func (val typeValidator) Name() string {
	return fmt.Sprintf("Type[%s]", val.kind)
}

func (val typeValidator) evaluate(v any, _ *evaluation) (Outcome, error) {
	if val.kind.matches(KindOf(v)) {
		return Matched(v), nil
	}
	return Failed(), nil
}

// Replace evaluates inner and substitutes fallback when it fails. The
// result can never fail, so Replace is only appropriate where "if missing
// or invalid, use a default" is the intended policy; it must not wrap
// checks whose failure has to propagate.
func Replace(inner Validator, fallback any) Validator {
	if inner == nil {
		panic("validator: Replace requires a non-nil inner validator")
	}
	return replaceValidator{inner: inner, fallback: fallback}
}

type replaceValidator struct {
	inner    Validator
	fallback any
}

func (val replaceValidator) Name() string {
	return fmt.Sprintf("Replace[%s, fallback=%v]", val.inner.Name(), val.fallback)
}

func (val replaceValidator) evaluate(v any, ev *evaluation) (Outcome, error) {
	out, err := ev.step(val.inner, v)
	if err != nil {
		return Failed(), err
	}
	if out.Matched() {
		return out, nil
	}
	return Matched(val.fallback), nil
}
