// Package status exposes the supervisor over HTTP: a liveness endpoint
// for the supervisor itself and a JSON snapshot of every supervised
// service. The surface is read-only and optional; it is only started
// when a listen address is configured.
package status
