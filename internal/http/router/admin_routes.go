package router

import (
	"github.com/go-chi/chi/v5"

	mw "github.com/dropDatabas3/unosign/internal/http/middlewares"
)

// registerAdminRoutes registra la superficie administrativa.
// Todo el grupo exige token válido, sesión viva y rol admin fresco.
func registerAdminRoutes(r chi.Router, deps Deps) {
	c := deps.Admin

	r.Route("/v1/admin", func(r chi.Router) {
		r.Use(requireAuth(deps))
		r.Use(mw.RequireAdmin(deps.Sessions, deps.Directory))
		r.Use(mw.WithLogging("/v1/admin"))

		r.Get("/users", c.Users.List)
		r.Patch("/users/{userID}", c.Users.Patch)

		r.Get("/entitlements", c.Entitlements.List)
		r.Post("/entitlements", c.Entitlements.Grant)
		r.Delete("/entitlements", c.Entitlements.Revoke)

		r.Get("/services", c.Services.List)
		r.Post("/services", c.Services.Create)
		r.Put("/services/{serviceID}", c.Services.Update)
	})
}
