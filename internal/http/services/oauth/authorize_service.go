package oauth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropDatabas3/unosign/internal/broker"
	"github.com/dropDatabas3/unosign/internal/catalog"
	"github.com/dropDatabas3/unosign/internal/directory"
	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/metrics"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
	"github.com/dropDatabas3/unosign/internal/session"
)

// AuthorizeService emite un authorization code para un servicio
// downstream en nombre del usuario autenticado.
type AuthorizeService interface {
	Authorize(ctx context.Context, sessionID, serviceID, redirectURI string) (*AuthorizeResult, error)
}

// AuthorizeResult contiene el código emitido y el destino del redirect.
type AuthorizeResult struct {
	Code        domain.AuthCode
	RedirectURL string // callback registrado del servicio, sin query aún
}

// Errores de autorización
var (
	ErrSessionGone         = fmt.Errorf("session gone")
	ErrAccountSuspended    = fmt.Errorf("account suspended")
	ErrServiceNotFound     = fmt.Errorf("service not found")
	ErrEntitlementRequired = fmt.Errorf("entitlement required")
	ErrRedirectMismatch    = fmt.Errorf("redirect mismatch")
)

type authorizeService struct {
	deps Deps
}

// NewAuthorizeService crea el servicio de autorización.
func NewAuthorizeService(deps Deps) AuthorizeService {
	return &authorizeService{deps: deps}
}

// Authorize exige liveness de la sesión (un token huérfano no autoriza
// nada), valida el servicio, pasa el gate de entitlements y emite el
// código. El código nuevo desplaza cualquier código vivo del par.
func (s *authorizeService) Authorize(ctx context.Context, sessionID, serviceID, redirectURI string) (*AuthorizeResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("oauth.authorize"),
		logger.Op("Authorize"),
		logger.ServiceID(serviceID),
	)

	if serviceID == "" {
		return nil, ErrServiceNotFound
	}

	sess, err := s.deps.Sessions.Resolve(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, ErrSessionGone
		}
		return nil, err
	}

	user, err := s.deps.Directory.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return nil, ErrSessionGone
		}
		return nil, err
	}
	if !user.Active() {
		return nil, ErrAccountSuspended
	}

	svc, err := s.deps.Catalog.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	allowed, err := s.deps.Gate.CanAuthorize(ctx, user.ID, svc)
	if err != nil {
		return nil, err
	}
	if !allowed {
		log.Info("authorization denied: no entitlement", logger.UserID(user.ID))
		return nil, ErrEntitlementRequired
	}

	code, err := s.deps.Broker.Issue(ctx, user.ID, svc, redirectURI)
	if err != nil {
		if errors.Is(err, broker.ErrRedirectNotAllowed) {
			return nil, ErrRedirectMismatch
		}
		return nil, err
	}
	metrics.AuthCodesIssued.Inc()

	log.Info("authorization code issued", logger.UserID(user.ID))
	return &AuthorizeResult{Code: code, RedirectURL: svc.RedirectURL}, nil
}
