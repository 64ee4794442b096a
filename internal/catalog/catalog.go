// Package catalog expone la tabla Services. Para el flujo de
// autorización el catálogo es read-only y casi estático, así que las
// lecturas pasan por un cache en memoria con TTL corto; las escrituras
// (superficie admin) lo invalidan completo.
package catalog

import (
	"context"
	"errors"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
	"github.com/dropDatabas3/unosign/internal/store/core"
)

// Errores del catálogo.
var (
	ErrServiceNotFound = errors.New("service not found")
	ErrServiceExists   = errors.New("service already exists")
)

const listKey = "services:all"

// Catalog lee y administra servicios downstream registrados.
type Catalog struct {
	store core.RowStore
	cache *gocache.Cache
}

// New crea el catálogo con un cache de lectura con el TTL dado.
func New(store core.RowStore, cacheTTL time.Duration) *Catalog {
	return &Catalog{
		store: store,
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// GetService devuelve el servicio por id, sirviendo desde cache si hay.
func (c *Catalog) GetService(ctx context.Context, serviceID string) (domain.Service, error) {
	if v, ok := c.cache.Get("service:" + serviceID); ok {
		return v.(domain.Service), nil
	}

	row, err := c.store.FindByColumn(ctx, core.TableServices, "service_id", serviceID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return domain.Service{}, ErrServiceNotFound
		}
		return domain.Service{}, err
	}

	svc := serviceFromRow(row)
	c.cache.SetDefault("service:"+serviceID, svc)
	return svc, nil
}

// ListServices devuelve todos los servicios registrados.
func (c *Catalog) ListServices(ctx context.Context) ([]domain.Service, error) {
	if v, ok := c.cache.Get(listKey); ok {
		return v.([]domain.Service), nil
	}

	rows, err := c.store.GetAll(ctx, core.TableServices)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Service, 0, len(rows))
	for _, r := range rows {
		out = append(out, serviceFromRow(r))
	}
	c.cache.SetDefault(listKey, out)
	return out, nil
}

// Create registra un servicio nuevo. El service_id debe ser único.
func (c *Catalog) Create(ctx context.Context, svc domain.Service) error {
	_, err := c.store.FindByColumn(ctx, core.TableServices, "service_id", svc.ID)
	if err == nil {
		return ErrServiceExists
	}
	if !errors.Is(err, core.ErrNotFound) {
		return err
	}

	if err := c.store.Append(ctx, core.TableServices, rowFromService(svc)); err != nil {
		return err
	}
	c.cache.Flush()

	logger.From(ctx).Info("service registered",
		logger.Component("catalog"),
		logger.ServiceID(svc.ID),
	)
	return nil
}

// Update reescribe un servicio existente.
func (c *Catalog) Update(ctx context.Context, svc domain.Service) error {
	idx, err := c.store.IndexOfByColumn(ctx, core.TableServices, "service_id", svc.ID)
	if err != nil {
		return err
	}
	if idx < 0 {
		return ErrServiceNotFound
	}
	if err := c.store.UpdateByIndex(ctx, core.TableServices, idx, rowFromService(svc)); err != nil {
		return err
	}
	c.cache.Flush()
	return nil
}

func rowFromService(s domain.Service) core.Row {
	return core.Row{
		"service_id":        s.ID,
		"name":              s.Name,
		"description":       s.Description,
		"redirect_url":      s.RedirectURL,
		"free_tier_enabled": strconv.FormatBool(s.FreeTierEnabled),
	}
}

func serviceFromRow(r core.Row) domain.Service {
	free, _ := strconv.ParseBool(r["free_tier_enabled"])
	return domain.Service{
		ID:              r["service_id"],
		Name:            r["name"],
		Description:     r["description"],
		RedirectURL:     r["redirect_url"],
		FreeTierEnabled: free,
	}
}
