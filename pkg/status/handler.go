package status

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/servicekit/pkg/supervisor"
)

// Source provides service snapshots for the status endpoints. Satisfied
// by *supervisor.Manager.
type Source interface {
	Status() []supervisor.ServiceStatus
}

// NewHandler returns the HTTP surface of the supervisor: GET /healthz
// reports liveness of the supervisor itself, GET /status reports the
// supervised services.
func NewHandler(src Source) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		services := src.Status()
		code := http.StatusOK
		for _, svc := range services {
			if !svc.Up {
				// degraded but alive: some service is down or latched
				code = http.StatusServiceUnavailable
				break
			}
		}
		writeJSON(w, code, map[string]any{"services": services})
	})

	return r
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
