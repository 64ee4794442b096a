package auth

import (
	"net/http"
	"time"

	dto "github.com/dropDatabas3/unosign/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/unosign/internal/http/errors"
	"github.com/dropDatabas3/unosign/internal/http/helpers"
	svc "github.com/dropDatabas3/unosign/internal/http/services/auth"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
	"go.uber.org/zap"
)

// VerifyController maneja POST /v1/auth/verify.
type VerifyController struct {
	service svc.VerifyService
	cookie  helpers.SessionCookie
}

// NewVerifyController crea el controller de verificación.
func NewVerifyController(service svc.VerifyService, cookie helpers.SessionCookie) *VerifyController {
	return &VerifyController{service: service, cookie: cookie}
}

// Verify canjea el OTP por sesión + token. El token también viaja en la
// cookie de sesión para los clientes browser.
func (c *VerifyController) Verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("VerifyController.Verify"))

	var req dto.VerifyRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	result, err := c.service.Verify(ctx, req.Email, req.Code, helpers.DeviceInfo(r), helpers.ClientIP(r))
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	c.cookie.Set(w, result.Token, result.ExpiresAt)

	helpers.WriteJSON(w, http.StatusOK, dto.VerifyResponse{
		AccessToken: result.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(result.ExpiresAt).Seconds()),
		User: dto.UserInfo{
			UserID: result.User.ID,
			Email:  result.User.Email,
			Roles:  result.User.Roles.Slice(),
		},
	})
}

// handleError mapea errores del service a respuestas HTTP.
func (c *VerifyController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrMissingFields:
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("email and code are required"))
	case svc.ErrInvalidOTP, svc.ErrExpiredOTP:
		// Misma respuesta para inválido y vencido: no damos pistas.
		httperrors.WriteError(w, httperrors.ErrInvalidOTP)
	case svc.ErrAccountSuspended:
		httperrors.WriteError(w, httperrors.ErrAccountSuspended)
	default:
		log.Error("unexpected verify error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
