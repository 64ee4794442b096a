package oauth

import (
	"context"

	"github.com/dropDatabas3/unosign/internal/domain"
)

// CatalogService expone la vista pública del catálogo de servicios.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Service, error)
}

type catalogService struct {
	deps Deps
}

// NewCatalogService crea el servicio de listado.
func NewCatalogService(deps Deps) CatalogService {
	return &catalogService{deps: deps}
}

func (s *catalogService) List(ctx context.Context) ([]domain.Service, error) {
	return s.deps.Catalog.ListServices(ctx)
}
