package auth

import (
	"net/http"
	"time"

	dto "github.com/dropDatabas3/unosign/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/unosign/internal/http/errors"
	"github.com/dropDatabas3/unosign/internal/http/helpers"
	mw "github.com/dropDatabas3/unosign/internal/http/middlewares"
	svc "github.com/dropDatabas3/unosign/internal/http/services/auth"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
	"go.uber.org/zap"
)

// MeController maneja GET /v1/auth/me y GET /v1/auth/userinfo.
type MeController struct {
	service svc.MeService
}

// NewMeController crea el controller de identidad.
func NewMeController(service svc.MeService) *MeController {
	return &MeController{service: service}
}

// Me devuelve usuario y sesión vivos. Un token válido cuya sesión fue
// desplazada responde 401: la firma no alcanza, la sesión debe existir.
func (c *MeController) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cl := mw.GetClaims(ctx)
	if cl == nil {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	result, err := c.service.Me(ctx, cl.SessionID)
	if err != nil {
		c.handleError(w, err, logger.From(ctx))
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.MeResponse{
		User: dto.UserInfo{
			UserID: result.User.ID,
			Email:  result.User.Email,
			Roles:  result.User.Roles.Slice(),
		},
		Session: dto.SessionInfo{
			SessionID:  result.Session.ID,
			CreatedAt:  result.Session.CreatedAt.UTC().Format(time.RFC3339),
			ExpiresAt:  result.Session.ExpiresAt.UTC().Format(time.RFC3339),
			DeviceInfo: result.Session.DeviceInfo,
		},
	})
}

// UserInfo es la variante mínima para servicios downstream: solo la
// identidad, sin datos de sesión.
func (c *MeController) UserInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cl := mw.GetClaims(ctx)
	if cl == nil {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	// Tokens service-scoped (sin session_id) responden con los claims
	// del propio token; tokens de sesión exigen liveness.
	if cl.SessionID == "" {
		helpers.WriteJSON(w, http.StatusOK, dto.UserInfo{
			UserID: cl.UserID,
			Email:  cl.Email,
			Roles:  cl.RoleSet().Slice(),
		})
		return
	}

	result, err := c.service.Me(ctx, cl.SessionID)
	if err != nil {
		c.handleError(w, err, logger.From(ctx))
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.UserInfo{
		UserID: result.User.ID,
		Email:  result.User.Email,
		Roles:  result.User.Roles.Slice(),
	})
}

func (c *MeController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrSessionGone:
		httperrors.WriteError(w, httperrors.ErrSessionExpired)
	case svc.ErrAccountSuspended:
		httperrors.WriteError(w, httperrors.ErrAccountSuspended)
	default:
		log.Error("unexpected me error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
