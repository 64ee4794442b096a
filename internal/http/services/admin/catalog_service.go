package admin

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dropDatabas3/unosign/internal/catalog"
	"github.com/dropDatabas3/unosign/internal/domain"
)

// CatalogService administra el registro de servicios downstream.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Service, error)
	Create(ctx context.Context, svc domain.Service) error
	Update(ctx context.Context, svc domain.Service) error
}

// Errores de administración del catálogo
var (
	ErrMissingFields   = fmt.Errorf("missing required fields")
	ErrInvalidRedirect = fmt.Errorf("invalid redirect url")
	ErrServiceExists   = fmt.Errorf("service already exists")
)

type catalogService struct {
	deps Deps
}

// NewCatalogService crea el servicio de catálogo admin.
func NewCatalogService(deps Deps) CatalogService {
	return &catalogService{deps: deps}
}

func (s *catalogService) List(ctx context.Context) ([]domain.Service, error) {
	return s.deps.Catalog.ListServices(ctx)
}

func (s *catalogService) Create(ctx context.Context, svc domain.Service) error {
	if err := validateService(svc); err != nil {
		return err
	}
	if err := s.deps.Catalog.Create(ctx, svc); err != nil {
		if errors.Is(err, catalog.ErrServiceExists) {
			return ErrServiceExists
		}
		return err
	}
	return nil
}

func (s *catalogService) Update(ctx context.Context, svc domain.Service) error {
	if err := validateService(svc); err != nil {
		return err
	}
	if err := s.deps.Catalog.Update(ctx, svc); err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	return nil
}

// validateService exige id, nombre y un callback http(s) absoluto.
func validateService(svc domain.Service) error {
	if strings.TrimSpace(svc.ID) == "" || strings.TrimSpace(svc.Name) == "" {
		return ErrMissingFields
	}
	u, err := url.Parse(svc.RedirectURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidRedirect
	}
	return nil
}
