package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sanchey92/storefront/internal/http/middlewares"
)

// NewRouter wires the storefront routes. Customer auth is optional on order
// creation (guests may check out) and enforced inside the read handlers.
func NewRouter(log *slog.Logger, jwtSecret string, orders *Orders, db Pinger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middlewares.Recovery(log))
	r.Use(middlewares.RequestLogger(log))

	r.Get("/healthz", Health(db))

	r.Route("/storefront/{tenantHandle}/orders", func(r chi.Router) {
		r.Use(middlewares.CustomerAuth(jwtSecret))
		r.Post("/", orders.Create)
		r.Get("/", orders.List)
		r.Get("/{orderID}", orders.Get)
	})

	return r
}
