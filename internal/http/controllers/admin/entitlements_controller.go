package admin

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dropDatabas3/unosign/internal/domain"
	dto "github.com/dropDatabas3/unosign/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/unosign/internal/http/errors"
	"github.com/dropDatabas3/unosign/internal/http/helpers"
	svc "github.com/dropDatabas3/unosign/internal/http/services/admin"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
)

// EntitlementsController maneja /v1/admin/entitlements.
type EntitlementsController struct {
	service svc.EntitlementsService
}

// NewEntitlementsController crea el controller de entitlements admin.
func NewEntitlementsController(service svc.EntitlementsService) *EntitlementsController {
	return &EntitlementsController{service: service}
}

// Grant otorga (o reemplaza) el grant del par usuario→servicio.
func (c *EntitlementsController) Grant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("EntitlementsController.Grant"))

	var req dto.GrantEntitlementRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.UserID == "" || req.ServiceID == "" || req.Tier == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("user_id, service_id and tier are required"))
		return
	}

	var validUntil time.Time
	if req.ValidUntil != "" {
		t, err := time.Parse(time.RFC3339, req.ValidUntil)
		if err != nil {
			httperrors.WriteError(w, httperrors.ErrInvalidFormat.WithDetail("valid_until must be RFC3339"))
			return
		}
		validUntil = t
	}

	ent, err := c.service.Grant(ctx, req.UserID, req.ServiceID, domain.TierLevel(req.Tier), validUntil)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, entitlementView(ent))
}

// List devuelve los grants de un usuario (?user_id=...).
func (c *EntitlementsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("user_id is required"))
		return
	}

	ents, err := c.service.ListForUser(ctx, userID)
	if err != nil {
		logger.From(ctx).Error("entitlement list failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	out := make([]dto.EntitlementView, 0, len(ents))
	for _, e := range ents {
		out = append(out, entitlementView(e))
	}
	helpers.WriteJSON(w, http.StatusOK, dto.ListEntitlementsResponse{Entitlements: out})
}

// Revoke elimina el grant del par. Ausencia también es 204.
func (c *EntitlementsController) Revoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.URL.Query().Get("user_id")
	serviceID := r.URL.Query().Get("service_id")
	if userID == "" || serviceID == "" {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("user_id and service_id are required"))
		return
	}

	if err := c.service.Revoke(ctx, userID, serviceID); err != nil {
		logger.From(ctx).Error("entitlement revoke failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleError mapea errores del service a respuestas HTTP.
func (c *EntitlementsController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrUserNotFound:
		httperrors.WriteError(w, httperrors.ErrUserNotFound)
	case svc.ErrServiceNotFound:
		httperrors.WriteError(w, httperrors.ErrServiceNotFound)
	case svc.ErrInvalidTier:
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("invalid tier"))
	default:
		log.Error("unexpected entitlement error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}

func entitlementView(e domain.Entitlement) dto.EntitlementView {
	v := dto.EntitlementView{
		EntitlementID: e.ID,
		UserID:        e.UserID,
		ServiceID:     e.ServiceID,
		Tier:          string(e.Tier),
	}
	if !e.ValidUntil.IsZero() {
		v.ValidUntil = e.ValidUntil.UTC().Format(time.RFC3339)
	}
	return v
}
