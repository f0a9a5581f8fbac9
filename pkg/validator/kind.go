package validator

import "reflect"

// Tuple is a fixed-arity positional sequence. It is a distinct type from
// []any on purpose: tuples are matched position-wise by TupleOf, while
// plain slices are homogeneous sequences handled by List.
type Tuple []any

// Kind tags the runtime shape of a value in the dynamic value domain the
// engine operates on (the result of unmarshalling JSON or YAML into any).
type Kind string

const (
	KindNil      Kind = "nil"
	KindBool     Kind = "bool"
	KindInt      Kind = "int"
	KindFloat    Kind = "float"
	KindString   Kind = "string"
	KindSequence Kind = "sequence"
	KindTuple    Kind = "tuple"
	KindMapping  Kind = "mapping"

	// KindNumber matches both KindInt and KindFloat. JSON unmarshalling
	// yields float64 for every number while YAML yields int where it can,
	// so schemas that accept either decoder use this tag.
	KindNumber Kind = "number"
)

// KindOf reports the kind of a dynamic value. Slices and arrays of any
// element type count as sequences; maps of any key type count as mappings.
// Strings are scalars, never sequences.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNil
	case bool:
		return KindBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case float32, float64:
		return KindFloat
	case string:
		return KindString
	case Tuple:
		return KindTuple
	case []any:
		return KindSequence
	case map[string]any:
		return KindMapping
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return KindSequence
	case reflect.Map:
		return KindMapping
	default:
		return Kind(reflect.TypeOf(v).Kind().String())
	}
}

// matches reports whether a value kind satisfies a schema tag.
func (k Kind) matches(v Kind) bool {
	if k == KindNumber {
		return v == KindInt || v == KindFloat
	}
	return k == v
}

// elements adapts any sequence-kinded value to []any for elementwise
// traversal. The second return is false for non-sequences.
func elements(v any) ([]any, bool) {
	switch t := v.(type) {
	case Tuple:
		return t, true
	case []any:
		return t, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
