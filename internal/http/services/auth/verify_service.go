package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dropDatabas3/unosign/internal/directory"
	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/metrics"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
	"github.com/dropDatabas3/unosign/internal/otp"
)

// VerifyService canjea un OTP por una sesión y un bearer token.
type VerifyService interface {
	Verify(ctx context.Context, email, code, deviceInfo, ip string) (*VerifyResult, error)
}

// VerifyResult es el resultado interno del canje exitoso.
type VerifyResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
	Session   domain.Session
}

// Errores de verificación
var (
	ErrMissingFields = fmt.Errorf("missing required fields")
	ErrInvalidOTP    = fmt.Errorf("invalid otp")
	ErrExpiredOTP    = fmt.Errorf("expired otp")
)

type verifyService struct {
	deps Deps
}

// NewVerifyService crea el servicio de verificación.
func NewVerifyService(deps Deps) VerifyService {
	return &verifyService{deps: deps}
}

// Verify valida el OTP, resuelve (o crea) la cuenta y abre la sesión.
// La sesión nueva desplaza cualquier sesión previa del usuario.
func (s *verifyService) Verify(ctx context.Context, email, code, deviceInfo, ip string) (*VerifyResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.verify"),
		logger.Op("Verify"),
	)

	email = directory.NormalizeEmail(email)
	if email == "" || code == "" {
		return nil, ErrMissingFields
	}

	if err := s.deps.OTP.Verify(ctx, email, code); err != nil {
		switch {
		case errors.Is(err, otp.ErrOTPExpired):
			metrics.OTPVerified.WithLabelValues("expired").Inc()
			return nil, ErrExpiredOTP
		case errors.Is(err, otp.ErrOTPInvalid):
			metrics.OTPVerified.WithLabelValues("invalid").Inc()
			return nil, ErrInvalidOTP
		default:
			return nil, err
		}
	}
	metrics.OTPVerified.WithLabelValues("ok").Inc()

	// El email probó su propiedad: recién acá auto-provisionamos.
	user, _, err := s.deps.Directory.ResolveOrCreate(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.Active() {
		log.Info("verify blocked for suspended account", logger.UserID(user.ID))
		return nil, ErrAccountSuspended
	}

	sess, err := s.deps.Sessions.Create(ctx, user.ID, deviceInfo, ip)
	if err != nil {
		return nil, err
	}
	metrics.SessionsCreated.Inc()

	// El token espeja la vida de la sesión.
	ttl := time.Until(sess.ExpiresAt)
	tok, exp, err := s.deps.Issuer.Mint(sess.ID, user.ID, user.Email, user.Roles, ttl)
	if err != nil {
		return nil, err
	}

	log.Info("login completed", logger.UserID(user.ID), logger.SessionID(sess.ID))
	return &VerifyResult{
		Token:     tok,
		ExpiresAt: exp,
		User:      user,
		Session:   sess,
	}, nil
}
