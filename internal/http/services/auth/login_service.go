package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dropDatabas3/unosign/internal/directory"
	"github.com/dropDatabas3/unosign/internal/metrics"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
)

// LoginService inicia el flujo passwordless enviando un OTP por mail.
type LoginService interface {
	RequestCode(ctx context.Context, email string) error
}

// Errores de login
var (
	ErrMissingEmail     = fmt.Errorf("missing email")
	ErrInvalidEmail     = fmt.Errorf("invalid email")
	ErrAccountSuspended = fmt.Errorf("account suspended")
	ErrDeliveryFailed   = fmt.Errorf("otp delivery failed")
)

type loginService struct {
	deps Deps
}

// NewLoginService crea el servicio de pedido de OTP.
func NewLoginService(deps Deps) LoginService {
	return &loginService{deps: deps}
}

// RequestCode emite y envía un OTP para el email. La cuenta no se crea
// acá: la auto-provisión espera a que el email pruebe su propiedad en
// Verify. La respuesta es idéntica exista o no la cuenta.
func (s *loginService) RequestCode(ctx context.Context, email string) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("RequestCode"),
	)

	email = directory.NormalizeEmail(email)
	if email == "" {
		return ErrMissingEmail
	}
	if _, err := mail.ParseAddress(email); err != nil || strings.ContainsAny(email, " \t") {
		return ErrInvalidEmail
	}

	// Si la cuenta existe y está suspendida, no mandamos código.
	u, err := s.deps.Directory.GetByEmail(ctx, email)
	if err == nil && !u.Active() {
		log.Info("login blocked for suspended account", logger.UserID(u.ID))
		return ErrAccountSuspended
	} else if err != nil && !errors.Is(err, directory.ErrUserNotFound) {
		return err
	}

	if err := s.deps.OTP.Issue(ctx, email); err != nil {
		log.Error("otp issue failed", logger.Err(err))
		return ErrDeliveryFailed
	}

	metrics.OTPIssued.Inc()
	return nil
}
