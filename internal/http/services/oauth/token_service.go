package oauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dropDatabas3/unosign/internal/broker"
	"github.com/dropDatabas3/unosign/internal/directory"
	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/metrics"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
)

// TokenService canjea un authorization code por un token service-scoped.
type TokenService interface {
	Exchange(ctx context.Context, code, serviceID, redirectURI string) (*ExchangeResult, error)
}

// ExchangeResult es el resultado interno del canje exitoso.
type ExchangeResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

// Razones de rechazo del canje. Se reportan distintas al caller HTTP
// (es el backend de un servicio registrado); ErrRedirectMismatch se
// comparte con el authorize. Usuario borrado o suspendido se normaliza a
// ErrInvalidGrant para no filtrar estado de cuentas.
var (
	ErrInvalidGrant    = fmt.Errorf("invalid grant")
	ErrCodeUsed        = fmt.Errorf("code already used")
	ErrCodeExpired     = fmt.Errorf("code expired")
	ErrServiceMismatch = fmt.Errorf("service mismatch")
)

type tokenService struct {
	deps Deps
}

// NewTokenService crea el servicio de canje.
func NewTokenService(deps Deps) TokenService {
	return &tokenService{deps: deps}
}

// Exchange canjea el código (single-use) y emite un token service-scoped
// de vida corta. El token no lleva session_id: prueba identidad al
// momento del canje, no una sesión del broker.
func (s *tokenService) Exchange(ctx context.Context, code, serviceID, redirectURI string) (*ExchangeResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("oauth.token"),
		logger.Op("Exchange"),
		logger.ServiceID(serviceID),
	)

	if code == "" || serviceID == "" || redirectURI == "" {
		return nil, ErrInvalidGrant
	}

	ac, err := s.deps.Broker.Redeem(ctx, code, serviceID, redirectURI)
	if err != nil {
		var result string
		var rejection error
		switch {
		case errors.Is(err, broker.ErrCodeNotFound):
			result, rejection = "not_found", ErrInvalidGrant
		case errors.Is(err, broker.ErrCodeExpired):
			result, rejection = "expired", ErrCodeExpired
		case errors.Is(err, broker.ErrCodeUsed):
			result, rejection = "used", ErrCodeUsed
		case errors.Is(err, broker.ErrCodeServiceMismatch):
			result, rejection = "service_mismatch", ErrServiceMismatch
		case errors.Is(err, broker.ErrCodeRedirectMismatch):
			result, rejection = "redirect_mismatch", ErrRedirectMismatch
		default:
			return nil, err
		}
		metrics.AuthCodesRedeemed.WithLabelValues(result).Inc()
		log.Info("code redemption rejected", logger.String("reason", result))
		return nil, rejection
	}
	metrics.AuthCodesRedeemed.WithLabelValues("ok").Inc()

	user, err := s.deps.Directory.GetByID(ctx, ac.UserID)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return nil, ErrInvalidGrant
		}
		return nil, err
	}
	if !user.Active() {
		return nil, ErrInvalidGrant
	}

	tok, exp, err := s.deps.Issuer.Mint("", user.ID, user.Email, user.Roles, s.deps.ExchangeTTL)
	if err != nil {
		return nil, err
	}

	log.Info("code exchanged", logger.UserID(user.ID))
	return &ExchangeResult{Token: tok, ExpiresAt: exp, User: user}, nil
}
