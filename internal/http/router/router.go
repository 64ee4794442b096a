// Package router arma el árbol de rutas del broker sobre chi.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/unosign/internal/directory"
	adminctrl "github.com/dropDatabas3/unosign/internal/http/controllers/admin"
	authctrl "github.com/dropDatabas3/unosign/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/unosign/internal/http/controllers/health"
	oauthctrl "github.com/dropDatabas3/unosign/internal/http/controllers/oauth"
	mw "github.com/dropDatabas3/unosign/internal/http/middlewares"
	"github.com/dropDatabas3/unosign/internal/rate"
	"github.com/dropDatabas3/unosign/internal/session"
	"github.com/dropDatabas3/unosign/internal/token"
)

// Deps contiene todo lo que el router necesita para registrar rutas.
type Deps struct {
	Auth   *authctrl.Controllers
	OAuth  *oauthctrl.Controllers
	Admin  *adminctrl.Controllers
	Health *healthctrl.Controller

	Issuer     *token.Issuer
	CookieName string

	// La superficie admin re-resuelve sesión y roles frescos.
	Sessions  *session.Manager
	Directory *directory.Directory

	// Limiters por endpoint sensible; nil = sin límite.
	LoginLimiter  rate.Limiter
	VerifyLimiter rate.Limiter

	CORSAllowedOrigins []string
}

// New construye el router completo.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Middlewares globales: recover primero, después request id y CORS.
	r.Use(mw.WithRecover())
	r.Use(mw.WithRequestID())
	if len(deps.CORSAllowedOrigins) > 0 {
		r.Use(mw.WithCORS(deps.CORSAllowedOrigins))
	}

	registerAuthRoutes(r, deps)
	registerOAuthRoutes(r, deps)
	registerAdminRoutes(r, deps)
	registerPublicRoutes(r, deps)

	return r
}

// requireAuth arma el par RequireAuth para las rutas protegidas.
func requireAuth(deps Deps) mw.Middleware {
	return mw.RequireAuth(deps.Issuer, deps.CookieName)
}
