package oauth

import (
	"net/http"

	dto "github.com/dropDatabas3/unosign/internal/http/dto/oauth"
	httperrors "github.com/dropDatabas3/unosign/internal/http/errors"
	"github.com/dropDatabas3/unosign/internal/http/helpers"
	svc "github.com/dropDatabas3/unosign/internal/http/services/oauth"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
)

// ServicesController maneja GET /v1/services (catálogo público).
type ServicesController struct {
	service svc.CatalogService
}

// NewServicesController crea el controller del catálogo público.
func NewServicesController(service svc.CatalogService) *ServicesController {
	return &ServicesController{service: service}
}

// List devuelve el catálogo sin el redirect_url (eso es del admin).
func (c *ServicesController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	services, err := c.service.List(ctx)
	if err != nil {
		logger.From(ctx).Error("catalog list failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	out := make([]dto.ServiceInfo, 0, len(services))
	for _, s := range services {
		out = append(out, dto.ServiceInfo{
			ServiceID:       s.ID,
			Name:            s.Name,
			Description:     s.Description,
			FreeTierEnabled: s.FreeTierEnabled,
		})
	}

	helpers.WriteJSON(w, http.StatusOK, map[string]any{"services": out})
}
