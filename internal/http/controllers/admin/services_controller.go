package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dropDatabas3/unosign/internal/domain"
	dto "github.com/dropDatabas3/unosign/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/unosign/internal/http/errors"
	"github.com/dropDatabas3/unosign/internal/http/helpers"
	svc "github.com/dropDatabas3/unosign/internal/http/services/admin"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
)

// ServicesController maneja /v1/admin/services.
type ServicesController struct {
	service svc.CatalogService
}

// NewServicesController crea el controller del catálogo admin.
func NewServicesController(service svc.CatalogService) *ServicesController {
	return &ServicesController{service: service}
}

// List devuelve el catálogo completo, redirect_url incluido.
func (c *ServicesController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	services, err := c.service.List(ctx)
	if err != nil {
		logger.From(ctx).Error("catalog list failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	out := make([]dto.ServiceView, 0, len(services))
	for _, s := range services {
		out = append(out, serviceView(s))
	}
	helpers.WriteJSON(w, http.StatusOK, dto.ListServicesResponse{Services: out})
}

// Create registra un servicio nuevo.
func (c *ServicesController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ServicesController.Create"))

	var req dto.ServiceUpsertRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	if err := c.service.Create(ctx, serviceFromUpsert(req)); err != nil {
		c.handleError(w, err, log)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, map[string]string{"service_id": req.ServiceID})
}

// Update reescribe un servicio existente. El id viene del path.
func (c *ServicesController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ServicesController.Update"))

	serviceID := chi.URLParam(r, "serviceID")
	if serviceID == "" {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("missing service id"))
		return
	}

	var req dto.ServiceUpsertRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	req.ServiceID = serviceID

	if err := c.service.Update(ctx, serviceFromUpsert(req)); err != nil {
		c.handleError(w, err, log)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"service_id": serviceID})
}

// handleError mapea errores del service a respuestas HTTP.
func (c *ServicesController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrMissingFields:
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("service_id, name and redirect_url are required"))
	case svc.ErrInvalidRedirect:
		httperrors.WriteError(w, httperrors.ErrInvalidFormat.WithDetail("redirect_url must be an absolute http(s) url"))
	case svc.ErrServiceExists:
		httperrors.WriteError(w, httperrors.ErrAlreadyExists)
	case svc.ErrServiceNotFound:
		httperrors.WriteError(w, httperrors.ErrServiceNotFound)
	default:
		log.Error("unexpected admin services error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}

func serviceFromUpsert(req dto.ServiceUpsertRequest) domain.Service {
	return domain.Service{
		ID:              req.ServiceID,
		Name:            req.Name,
		Description:     req.Description,
		RedirectURL:     req.RedirectURL,
		FreeTierEnabled: req.FreeTierEnabled,
	}
}

func serviceView(s domain.Service) dto.ServiceView {
	return dto.ServiceView{
		ServiceID:       s.ID,
		Name:            s.Name,
		Description:     s.Description,
		RedirectURL:     s.RedirectURL,
		FreeTierEnabled: s.FreeTierEnabled,
	}
}
