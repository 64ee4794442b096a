package auth

import (
	"net/http"

	httperrors "github.com/dropDatabas3/unosign/internal/http/errors"
	"github.com/dropDatabas3/unosign/internal/http/helpers"
	mw "github.com/dropDatabas3/unosign/internal/http/middlewares"
	svc "github.com/dropDatabas3/unosign/internal/http/services/auth"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
)

// LogoutController maneja POST /v1/auth/logout.
type LogoutController struct {
	service svc.LogoutService
	cookie  helpers.SessionCookie
}

// NewLogoutController crea el controller de logout.
func NewLogoutController(service svc.LogoutService, cookie helpers.SessionCookie) *LogoutController {
	return &LogoutController{service: service, cookie: cookie}
}

// Logout destruye la sesión del token y limpia la cookie. Idempotente:
// repetirlo con el mismo token responde igual.
func (c *LogoutController) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cl := mw.GetClaims(ctx)
	if cl == nil {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	if err := c.service.Logout(ctx, cl.SessionID); err != nil {
		logger.From(ctx).Error("logout failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	c.cookie.Clear(w)
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
