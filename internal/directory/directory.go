// Package directory administra la tabla Users: resolución por email con
// auto-provisión, lectura por id y mutación de roles/estado.
//
// Es el único escritor de Users. La mutación de roles re-resuelve el
// índice inmediatamente antes de escribir (los índices del row store son
// posicionales y un delete concurrente los corre).
package directory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
	"github.com/dropDatabas3/unosign/internal/store/core"
)

// Errores del directorio.
var (
	ErrUserNotFound = errors.New("user not found")
)

// Directory resuelve y muta usuarios sobre el row store.
type Directory struct {
	store core.RowStore
	now   func() time.Time
}

// New crea el directorio.
func New(store core.RowStore) *Directory {
	return &Directory{store: store, now: time.Now}
}

// NormalizeEmail canonicaliza un email para lookup (trim + lowercase).
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ResolveOrCreate devuelve el usuario para el email, creándolo si no
// existe (auto-provisión del flujo passwordless). El segundo retorno
// indica si la cuenta fue creada en esta llamada.
func (d *Directory) ResolveOrCreate(ctx context.Context, email string) (domain.User, bool, error) {
	email = NormalizeEmail(email)

	row, err := d.store.FindByColumn(ctx, core.TableUsers, "email", email)
	if err == nil {
		return userFromRow(row), false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return domain.User{}, false, err
	}

	u := domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Roles:     domain.NewRoleSet(domain.RoleUser),
		Status:    domain.StatusActive,
		CreatedAt: d.now().UTC(),
	}
	if err := d.store.Append(ctx, core.TableUsers, rowFromUser(u)); err != nil {
		return domain.User{}, false, err
	}

	logger.From(ctx).Info("user auto-provisioned",
		logger.Component("directory"),
		logger.UserID(u.ID),
		logger.Email(u.Email),
	)
	return u, true, nil
}

// GetByID devuelve el usuario por user_id. ErrUserNotFound si no existe.
func (d *Directory) GetByID(ctx context.Context, userID string) (domain.User, error) {
	row, err := d.store.FindByColumn(ctx, core.TableUsers, "user_id", userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return userFromRow(row), nil
}

// GetByEmail devuelve el usuario por email. ErrUserNotFound si no existe.
func (d *Directory) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := d.store.FindByColumn(ctx, core.TableUsers, "email", NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return userFromRow(row), nil
}

// List devuelve todos los usuarios en orden de inserción.
func (d *Directory) List(ctx context.Context) ([]domain.User, error) {
	rows, err := d.store.GetAll(ctx, core.TableUsers)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, r := range rows {
		out = append(out, userFromRow(r))
	}
	return out, nil
}

// SetRole agrega o quita un rol y persiste el set resultante. El piso
// {user} se aplica acá: quitar el último rol deja al usuario con "user".
// La regla "un admin no se quita su propio rol admin" es del caller, que
// conoce quién ejecuta la mutación.
func (d *Directory) SetRole(ctx context.Context, userID string, role domain.Role, add bool) (domain.User, error) {
	u, err := d.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	if add {
		u.Roles = u.Roles.Add(role)
	} else {
		u.Roles = u.Roles.Remove(role)
	}

	if err := d.update(ctx, u); err != nil {
		return domain.User{}, err
	}

	logger.From(ctx).Info("user roles updated",
		logger.Component("directory"),
		logger.UserID(u.ID),
		logger.String("roles", u.Roles.Encode()),
	)
	return u, nil
}

// SetStatus cambia el estado de la cuenta (active|suspended).
func (d *Directory) SetStatus(ctx context.Context, userID string, status domain.UserStatus) (domain.User, error) {
	u, err := d.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	u.Status = status
	if err := d.update(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// update re-resuelve el índice y reescribe la fila completa.
func (d *Directory) update(ctx context.Context, u domain.User) error {
	idx, err := d.store.IndexOfByColumn(ctx, core.TableUsers, "user_id", u.ID)
	if err != nil {
		return err
	}
	if idx < 0 {
		return ErrUserNotFound
	}
	return d.store.UpdateByIndex(ctx, core.TableUsers, idx, rowFromUser(u))
}

func rowFromUser(u domain.User) core.Row {
	return core.Row{
		"user_id":    u.ID,
		"email":      u.Email,
		"role":       u.Roles.Encode(),
		"created_at": u.CreatedAt.UTC().Format(time.RFC3339),
		"status":     string(u.Status),
	}
}

func userFromRow(r core.Row) domain.User {
	created, _ := time.Parse(time.RFC3339, r["created_at"])
	status := domain.UserStatus(r["status"])
	if status == "" {
		status = domain.StatusActive
	}
	return domain.User{
		ID:        r["user_id"],
		Email:     r["email"],
		Roles:     domain.ParseRoles(r["role"]),
		Status:    status,
		CreatedAt: created,
	}
}
