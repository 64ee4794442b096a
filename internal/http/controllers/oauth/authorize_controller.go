package oauth

import (
	"net/http"
	"net/url"

	httperrors "github.com/dropDatabas3/unosign/internal/http/errors"
	mw "github.com/dropDatabas3/unosign/internal/http/middlewares"
	svc "github.com/dropDatabas3/unosign/internal/http/services/oauth"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
	"go.uber.org/zap"
)

// AuthorizeController maneja GET /v1/oauth/authorize.
type AuthorizeController struct {
	service svc.AuthorizeService
}

// NewAuthorizeController crea el controller de autorización.
func NewAuthorizeController(service svc.AuthorizeService) *AuthorizeController {
	return &AuthorizeController{service: service}
}

// Authorize emite un código y redirige (302) al callback del servicio
// con code y state en la query. El state es opaco: va y vuelve intacto.
func (c *AuthorizeController) Authorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AuthorizeController.Authorize"))

	cl := mw.GetClaims(ctx)
	if cl == nil {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	q := r.URL.Query()
	serviceID := q.Get("service_id")
	redirectURI := q.Get("redirect_uri")
	state := q.Get("state")

	result, err := c.service.Authorize(ctx, cl.SessionID, serviceID, redirectURI)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	dest, perr := url.Parse(result.RedirectURL)
	if perr != nil {
		log.Error("registered redirect url unparseable", logger.Err(perr))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}
	dq := dest.Query()
	dq.Set("code", result.Code.Code)
	if state != "" {
		dq.Set("state", state)
	}
	dest.RawQuery = dq.Encode()

	http.Redirect(w, r, dest.String(), http.StatusFound)
}

// handleError mapea errores del service a respuestas HTTP.
func (c *AuthorizeController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrSessionGone:
		httperrors.WriteError(w, httperrors.ErrSessionExpired)
	case svc.ErrAccountSuspended:
		httperrors.WriteError(w, httperrors.ErrAccountSuspended)
	case svc.ErrServiceNotFound:
		httperrors.WriteError(w, httperrors.ErrServiceNotFound)
	case svc.ErrEntitlementRequired:
		httperrors.WriteError(w, httperrors.ErrEntitlementRequired)
	case svc.ErrRedirectMismatch:
		httperrors.WriteError(w, httperrors.ErrRedirectMismatch)
	default:
		log.Error("unexpected authorize error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
