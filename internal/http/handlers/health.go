package handlers

import (
	"context"
	"net/http"

	"github.com/sanchey92/storefront/internal/http/lib/api/response"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports liveness plus database reachability.
func Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "unavailable", "database unreachable")
			return
		}
		response.OK(w, map[string]string{"status": "ok"})
	}
}
