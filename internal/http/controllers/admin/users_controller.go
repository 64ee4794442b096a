package admin

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dropDatabas3/unosign/internal/domain"
	dto "github.com/dropDatabas3/unosign/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/unosign/internal/http/errors"
	"github.com/dropDatabas3/unosign/internal/http/helpers"
	mw "github.com/dropDatabas3/unosign/internal/http/middlewares"
	svc "github.com/dropDatabas3/unosign/internal/http/services/admin"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
)

// UsersController maneja /v1/admin/users.
type UsersController struct {
	service svc.UsersService
}

// NewUsersController crea el controller de usuarios admin.
func NewUsersController(service svc.UsersService) *UsersController {
	return &UsersController{service: service}
}

// List devuelve todos los usuarios.
func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := c.service.List(ctx)
	if err != nil {
		logger.From(ctx).Error("user list failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	out := make([]dto.UserView, 0, len(users))
	for _, u := range users {
		out = append(out, userView(u))
	}
	helpers.WriteJSON(w, http.StatusOK, dto.ListUsersResponse{Users: out, Total: len(out)})
}

// Patch aplica una acción sobre el usuario del path:
// add_role | remove_role | set_status.
func (c *UsersController) Patch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("UsersController.Patch"))

	targetID := chi.URLParam(r, "userID")
	if targetID == "" {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("missing user id"))
		return
	}

	var req dto.PatchUserRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	actorID := mw.GetUserID(ctx)

	var (
		u   domain.User
		err error
	)
	switch req.Action {
	case "add_role":
		u, err = c.service.SetRole(ctx, actorID, targetID, domain.Role(req.Role), true)
	case "remove_role":
		u, err = c.service.SetRole(ctx, actorID, targetID, domain.Role(req.Role), false)
	case "set_status":
		u, err = c.service.SetStatus(ctx, targetID, domain.UserStatus(req.Status))
	default:
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("unknown action"))
		return
	}
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, userView(u))
}

// handleError mapea errores del service a respuestas HTTP.
func (c *UsersController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch err {
	case svc.ErrUserNotFound:
		httperrors.WriteError(w, httperrors.ErrUserNotFound)
	case svc.ErrInvalidRole:
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("invalid role"))
	case svc.ErrInvalidState:
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("invalid status"))
	case svc.ErrSelfDemotion:
		httperrors.WriteError(w, httperrors.ErrSelfRoleChange)
	default:
		log.Error("unexpected admin users error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}

func userView(u domain.User) dto.UserView {
	return dto.UserView{
		UserID:    u.ID,
		Email:     u.Email,
		Roles:     u.Roles.Slice(),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
