package router

import (
	"github.com/go-chi/chi/v5"

	mw "github.com/dropDatabas3/unosign/internal/http/middlewares"
)

// registerOAuthRoutes registra el flujo de autorización downstream.
func registerOAuthRoutes(r chi.Router, deps Deps) {
	c := deps.OAuth

	// authorize exige usuario autenticado (browser con cookie o bearer).
	r.With(
		requireAuth(deps),
		mw.WithLogging("/v1/oauth/authorize"),
	).Get("/v1/oauth/authorize", c.Authorize.Authorize)

	// token lo llama el backend del servicio downstream, sin sesión.
	r.With(
		mw.WithLogging("/v1/oauth/token"),
	).Post("/v1/oauth/token", c.Token.Token)
}
