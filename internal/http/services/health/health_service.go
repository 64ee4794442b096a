// Package health contiene el service de health check.
package health

import (
	"context"
	"time"

	"github.com/dropDatabas3/unosign/internal/cache"
	dto "github.com/dropDatabas3/unosign/internal/http/dto/health"
)

// Pinger es lo mínimo que necesitamos de un backend para chequearlo.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps contiene las dependencias del health service.
type Deps struct {
	Store   Pinger // nil si el backend no soporta ping (memoria)
	Cache   cache.Client
	Version string
}

// Service arma el estado de salud agregado.
type Service struct {
	deps Deps
}

// New crea el health service.
func New(deps Deps) *Service {
	return &Service{deps: deps}
}

// Check chequea store y cache. El estado agregado es "ready" solo si
// ningún componente reporta error.
func (s *Service) Check(ctx context.Context) dto.HealthResponse {
	components := map[string]dto.HealthStatus{}
	overall := "ready"

	if s.deps.Store != nil {
		if err := s.deps.Store.Ping(ctx); err != nil {
			components["store"] = dto.HealthStatus{Status: "error", Message: err.Error()}
			overall = "degraded"
		} else {
			components["store"] = dto.HealthStatus{Status: "ok"}
		}
	} else {
		components["store"] = dto.HealthStatus{Status: "ok", Message: "in-memory"}
	}

	if s.deps.Cache != nil {
		if err := s.deps.Cache.Ping(ctx); err != nil {
			components["cache"] = dto.HealthStatus{Status: "error", Message: err.Error()}
			overall = "degraded"
		} else {
			components["cache"] = dto.HealthStatus{Status: "ok"}
		}
	} else {
		components["cache"] = dto.HealthStatus{Status: "disabled"}
	}

	return dto.HealthResponse{
		Status:     overall,
		Components: components,
		Version:    s.deps.Version,
		Timestamp:  time.Now().UTC(),
	}
}
