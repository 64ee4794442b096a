package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dropDatabas3/unosign/internal/catalog"
	"github.com/dropDatabas3/unosign/internal/directory"
	"github.com/dropDatabas3/unosign/internal/domain"
)

// EntitlementsService administra grants usuario→servicio.
type EntitlementsService interface {
	Grant(ctx context.Context, userID, serviceID string, tier domain.TierLevel, validUntil time.Time) (domain.Entitlement, error)
	Revoke(ctx context.Context, userID, serviceID string) error
	ListForUser(ctx context.Context, userID string) ([]domain.Entitlement, error)
}

// Errores de administración de entitlements
var (
	ErrInvalidTier     = fmt.Errorf("invalid tier")
	ErrServiceNotFound = fmt.Errorf("service not found")
)

type entitlementsService struct {
	deps Deps
}

// NewEntitlementsService crea el servicio de entitlements.
func NewEntitlementsService(deps Deps) EntitlementsService {
	return &entitlementsService{deps: deps}
}

// Grant valida que usuario y servicio existan antes de otorgar.
func (s *entitlementsService) Grant(ctx context.Context, userID, serviceID string, tier domain.TierLevel, validUntil time.Time) (domain.Entitlement, error) {
	if tier != domain.TierFree && tier != domain.TierPro {
		return domain.Entitlement{}, ErrInvalidTier
	}

	if _, err := s.deps.Directory.GetByID(ctx, userID); err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return domain.Entitlement{}, ErrUserNotFound
		}
		return domain.Entitlement{}, err
	}
	if _, err := s.deps.Catalog.GetService(ctx, serviceID); err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			return domain.Entitlement{}, ErrServiceNotFound
		}
		return domain.Entitlement{}, err
	}

	return s.deps.Gate.Grant(ctx, userID, serviceID, tier, validUntil)
}

func (s *entitlementsService) Revoke(ctx context.Context, userID, serviceID string) error {
	return s.deps.Gate.Revoke(ctx, userID, serviceID)
}

func (s *entitlementsService) ListForUser(ctx context.Context, userID string) ([]domain.Entitlement, error) {
	return s.deps.Gate.ListForUser(ctx, userID)
}
