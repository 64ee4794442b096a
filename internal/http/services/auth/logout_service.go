package auth

import (
	"context"

	"github.com/dropDatabas3/unosign/internal/metrics"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
)

// LogoutService destruye la sesión del token presentado.
type LogoutService interface {
	Logout(ctx context.Context, sessionID string) error
}

type logoutService struct {
	deps Deps
}

// NewLogoutService crea el servicio de logout.
func NewLogoutService(deps Deps) LogoutService {
	return &logoutService{deps: deps}
}

// Logout es idempotente: destruir una sesión inexistente es éxito.
func (s *logoutService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.deps.Sessions.Destroy(ctx, sessionID); err != nil {
		return err
	}
	metrics.SessionsRevoked.Inc()
	logger.From(ctx).Info("session destroyed",
		logger.Layer("service"),
		logger.Component("auth.logout"),
		logger.SessionID(sessionID),
	)
	return nil
}
