// Package logger provides a small factory around log/slog with functional
// options for level, format, output destination and static attributes.
// ParseLevel and ParseFormat bridge the string-typed settings coming from
// the environment into slog values with safe fallbacks.
package logger
