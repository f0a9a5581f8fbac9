// Package trace provides diagnostic sinks for the validator engine.
//
// Validation is pure; tracing is a side channel. The engine reports each
// evaluation step to a Sink injected at evaluation time, so evaluation
// stays testable without capturing output. Three sinks ship with the
// package: Nop (default, discards everything), NewWriter (line-oriented
// text indented two spaces per recursion level), and NewLogger (bridges
// steps into a *slog.Logger at debug level).
//
// # Usage
//
//	sink := trace.NewWriter(os.Stderr)
//	out, err := validator.EvaluateTraced(schema, doc, sink)
//
// The writer sink serializes writes internally, so a single sink may be
// shared by concurrent evaluations.
package trace
