package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/unosign/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/unosign/internal/http/errors"
	"github.com/dropDatabas3/unosign/internal/http/helpers"
	svc "github.com/dropDatabas3/unosign/internal/http/services/auth"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
	"go.uber.org/zap"
)

// LoginController maneja POST /v1/auth/login.
type LoginController struct {
	service svc.LoginService
}

// NewLoginController crea el controller de login.
func NewLoginController(service svc.LoginService) *LoginController {
	return &LoginController{service: service}
}

// Login pide un OTP para el email. La respuesta no revela si la cuenta
// existe.
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	var req dto.LoginRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	if err := c.service.RequestCode(ctx, req.Email); err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.LoginResponse{
		Message: "Verification code sent",
	})
}

// handleError mapea errores del service a respuestas HTTP.
func (c *LoginController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrMissingEmail:
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("email is required"))
	case svc.ErrInvalidEmail:
		httperrors.WriteError(w, httperrors.ErrInvalidFormat.WithDetail("invalid email"))
	case svc.ErrAccountSuspended:
		httperrors.WriteError(w, httperrors.ErrAccountSuspended)
	case svc.ErrDeliveryFailed:
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("could not deliver code"))
	default:
		log.Error("unexpected login error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
