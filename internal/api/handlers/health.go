package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/5w1tchy/passkit/internal/api/httpx"
)

type Check func(ctx context.Context) error

const checkTimeout = 2 * time.Second

// Healthz reports "ok" when every named dependency answers, 503 otherwise.
// With no checks it is a plain liveness check.
func Healthz(checks map[string]Check) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for n := range checks {
		names = append(names, n)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		status := http.StatusOK
		deps := make(map[string]string, len(names))
		for _, n := range names {
			if err := checks[n](ctx); err != nil {
				deps[n] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			deps[n] = "up"
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		httpx.WriteJSON(w, status, map[string]any{"status": state, "deps": deps})
	}
}
