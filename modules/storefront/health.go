package storefront

import (
	"context"
	"net/http"
	"time"
)

const healthTimeout = 5 * time.Second

// Healthcheck probes one dependency.
type Healthcheck func(context.Context) error

// HealthHandler reports the status of named dependencies. It answers 200
// when every check passes and 503 otherwise, with a per-dependency
// breakdown in the body.
func HealthHandler(checks map[string]Healthcheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		status := http.StatusOK
		deps := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				deps[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "ok"
		}

		respondJSON(w, status, deps)
	}
}
