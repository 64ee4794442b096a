package router

import (
	"github.com/go-chi/chi/v5"

	mw "github.com/dropDatabas3/unosign/internal/http/middlewares"
)

// registerAuthRoutes registra el flujo de login passwordless.
func registerAuthRoutes(r chi.Router, deps Deps) {
	c := deps.Auth

	// Públicos, con rate limit por IP.
	r.With(
		mw.WithRateLimit(deps.LoginLimiter, "login"),
		mw.WithLogging("/v1/auth/login"),
	).Post("/v1/auth/login", c.Login.Login)

	r.With(
		mw.WithRateLimit(deps.VerifyLimiter, "verify"),
		mw.WithLogging("/v1/auth/verify"),
	).Post("/v1/auth/verify", c.Verify.Verify)

	// Protegidos: token (header o cookie) requerido.
	r.With(
		requireAuth(deps),
		mw.WithLogging("/v1/auth/logout"),
	).Post("/v1/auth/logout", c.Logout.Logout)

	r.With(
		requireAuth(deps),
		mw.WithLogging("/v1/auth/me"),
	).Get("/v1/auth/me", c.Me.Me)

	r.With(
		requireAuth(deps),
		mw.WithLogging("/v1/auth/userinfo"),
	).Get("/v1/auth/userinfo", c.Me.UserInfo)
}
