// Package validator implements a small algebra of composable validators
// that walk arbitrary nested dynamic values — scalars, sequences,
// fixed-arity tuples and string-keyed mappings — and either produce a
// validated (possibly transformed) result or signal a structural
// mismatch. It validates heterogeneous, schema-less configuration
// records without a schema description language: each field's allowed
// shape is expressed procedurally as a disjunction of tuple matchers.
//
// # Architecture
//
// A validator tree is assembled once from immutable nodes and evaluated
// any number of times; evaluation is pure, re-entrant and safe for
// concurrent use. Every evaluation yields an Outcome, an explicit
// two-case union of Matched(value) and Failed — a matched nil or empty
// value is never confused with a failure, and combinators branch on the
// tag alone.
//
// The node variants:
//   - Pass, Value, Type — terminal checks with no children
//   - Replace           — substitutes a default when its child fails
//   - All, Any          — evaluate every child against the same input
//     with all-must-pass / exactly-one-must-pass semantics
//   - List, TupleOf, Dict — decompose a container and delegate to child
//     validators per element, position or entry
//
// Any requires exactly one branch to match; two or more matching
// branches mean the schema itself is ill-formed and surface as
// ErrAmbiguousMatch, a distinct fault rather than an ordinary mismatch.
//
// Tracing is a side channel: EvaluateTraced reports each step to a
// trace.Sink with its recursion depth, and evaluation without a sink
// performs no I/O at all.
//
// # Usage
//
// A configuration record whose permitted value type depends on the field
// name is validated by a Dict whose pair stage dispatches over one tuple
// branch per field:
//
//	schema := validator.Dict(
//		validator.Type(validator.KindString),
//		validator.Pass(),
//		validator.Any([]validator.Validator{
//			validator.TupleOf([]validator.Validator{
//				validator.Value("name"), validator.Type(validator.KindString),
//			}),
//			validator.TupleOf([]validator.Validator{
//				validator.Value("args"), validator.List(validator.Type(validator.KindString)),
//			}),
//		}),
//	)
//
//	out, err := validator.Evaluate(schema, record)
//
// Entries matching no branch are dropped; err is non-nil only when the
// tree itself is faulty.
package validator
