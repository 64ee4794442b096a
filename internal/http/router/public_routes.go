package router

import (
	"github.com/go-chi/chi/v5"

	mw "github.com/dropDatabas3/unosign/internal/http/middlewares"
)

// registerPublicRoutes registra catálogo público y health.
func registerPublicRoutes(r chi.Router, deps Deps) {
	r.With(
		mw.WithLogging("/v1/services"),
	).Get("/v1/services", deps.OAuth.Services.List)

	// healthz sin logging: los probes no aportan al log.
	r.Get("/healthz", deps.Health.Healthz)
}
