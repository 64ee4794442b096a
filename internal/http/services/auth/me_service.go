package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropDatabas3/unosign/internal/directory"
	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/session"
)

// MeService resuelve la identidad viva detrás de un token válido.
type MeService interface {
	Me(ctx context.Context, sessionID string) (*MeResult, error)
}

// MeResult agrupa usuario y sesión vigentes.
type MeResult struct {
	User    domain.User
	Session domain.Session
}

// ErrSessionGone indica que la sesión del token ya no existe: fue
// desplazada por un login más nuevo, destruida por logout, o venció.
var ErrSessionGone = fmt.Errorf("session gone")

type meService struct {
	deps Deps
}

// NewMeService crea el servicio de identidad.
func NewMeService(deps Deps) MeService {
	return &meService{deps: deps}
}

// Me re-resuelve la sesión contra el store: un token firmado y vigente
// no alcanza si su sesión fue desplazada. También refresca
// last_active_at best-effort.
func (s *meService) Me(ctx context.Context, sessionID string) (*MeResult, error) {
	if sessionID == "" {
		return nil, ErrSessionGone
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

	s.deps.Sessions.Touch(ctx, sessionID)

	return &MeResult{User: user, Session: sess}, nil
}
