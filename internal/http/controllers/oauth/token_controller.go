package oauth

import (
	"net/http"
	"strings"
	"time"

	authdto "github.com/dropDatabas3/unosign/internal/http/dto/auth"
	dto "github.com/dropDatabas3/unosign/internal/http/dto/oauth"
	httperrors "github.com/dropDatabas3/unosign/internal/http/errors"
	"github.com/dropDatabas3/unosign/internal/http/helpers"
	svc "github.com/dropDatabas3/unosign/internal/http/services/oauth"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
	"go.uber.org/zap"
)

// TokenController maneja POST /v1/oauth/token.
type TokenController struct {
	service svc.TokenService
}

// NewTokenController crea el controller de canje.
func NewTokenController(service svc.TokenService) *TokenController {
	return &TokenController{service: service}
}

// Token canjea un authorization code. Acepta JSON o form-encoded (los
// backends downstream suelen mandar form, estilo OAuth).
func (c *TokenController) Token(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("TokenController.Token"))

	var req dto.TokenRequest
	ct := strings.ToLower(r.Header.Get("Content-Type"))
	if strings.Contains(ct, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			httperrors.WriteError(w, httperrors.ErrBadRequest)
			return
		}
		req.Code = r.PostFormValue("code")
		req.ServiceID = r.PostFormValue("service_id")
		req.RedirectURI = r.PostFormValue("redirect_uri")
	} else {
		if !helpers.ReadJSON(w, r, &req) {
			return
		}
	}

	// los tres parámetros son obligatorios; un canje sin redirect_uri no
	// llega al broker
	if req.Code == "" || req.ServiceID == "" || req.RedirectURI == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("code, service_id y redirect_uri son requeridos"))
		return
	}

	result, err := c.service.Exchange(ctx, req.Code, req.ServiceID, req.RedirectURI)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: result.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(result.ExpiresAt).Seconds()),
		User: authdto.UserInfo{
			UserID: result.User.ID,
			Email:  result.User.Email,
			Roles:  result.User.Roles.Slice(),
		},
	})
}

// handleError mapea cada razón de rechazo del canje a su propio error.
func (c *TokenController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrInvalidGrant:
		httperrors.WriteError(w, httperrors.ErrInvalidGrant)
	case svc.ErrCodeUsed:
		httperrors.WriteError(w, httperrors.ErrCodeAlreadyUsed)
	case svc.ErrCodeExpired:
		httperrors.WriteError(w, httperrors.ErrCodeExpired)
	case svc.ErrServiceMismatch:
		httperrors.WriteError(w, httperrors.ErrServiceMismatch)
	case svc.ErrRedirectMismatch:
		httperrors.WriteError(w, httperrors.ErrRedirectMismatch)
	default:
		log.Error("unexpected token error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
