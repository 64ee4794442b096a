package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropDatabas3/unosign/internal/directory"
	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
)

// UsersService administra cuentas: listado, roles y estado.
type UsersService interface {
	List(ctx context.Context) ([]domain.User, error)
	SetRole(ctx context.Context, actorID, targetID string, role domain.Role, add bool) (domain.User, error)
	SetStatus(ctx context.Context, targetID string, status domain.UserStatus) (domain.User, error)
}

// Errores de administración de usuarios
var (
	ErrUserNotFound = fmt.Errorf("user not found")
	ErrInvalidRole  = fmt.Errorf("invalid role")
	ErrSelfDemotion = fmt.Errorf("admin cannot remove own admin role")
	ErrInvalidState = fmt.Errorf("invalid status")
)

type usersService struct {
	deps Deps
}

// NewUsersService crea el servicio de usuarios.
func NewUsersService(deps Deps) UsersService {
	return &usersService{deps: deps}
}

func (s *usersService) List(ctx context.Context) ([]domain.User, error) {
	return s.deps.Directory.List(ctx)
}

// SetRole muta los roles del target. Guardrail: el actor no puede
// quitarse su propio rol admin (evita dejar el sistema sin admins por
// accidente). El piso {user} lo aplica el directorio.
func (s *usersService) SetRole(ctx context.Context, actorID, targetID string, role domain.Role, add bool) (domain.User, error) {
	if !domain.ValidRole(string(role)) {
		return domain.User{}, ErrInvalidRole
	}
	if !add && role == domain.RoleAdmin && actorID == targetID {
		return domain.User{}, ErrSelfDemotion
	}

	u, err := s.deps.Directory.SetRole(ctx, targetID, role, add)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	logger.From(ctx).Info("admin role change",
		logger.Layer("service"),
		logger.Component("admin.users"),
		logger.String("actor", actorID),
		logger.UserID(targetID),
		logger.String("role", string(role)),
		logger.Bool("added", add),
	)
	return u, nil
}

func (s *usersService) SetStatus(ctx context.Context, targetID string, status domain.UserStatus) (domain.User, error) {
	if status != domain.StatusActive && status != domain.StatusSuspended {
		return domain.User{}, ErrInvalidState
	}
	u, err := s.deps.Directory.SetStatus(ctx, targetID, status)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
