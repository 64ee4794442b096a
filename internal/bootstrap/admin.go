// Package bootstrap deja el sistema operable en el primer arranque.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/unosign/internal/directory"
	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/observability/logger"
)

// EnsureAdmin garantiza que exista al menos un admin. Si no hay ninguno y
// adminEmail viene seteado, provisiona (o promueve) esa cuenta con rol admin.
// El login sigue siendo por OTP: acá no hay credenciales, solo el rol.
// Con adminEmail vacío y cero admins solo deja un warning; el PATCH de roles
// queda inaccesible hasta que alguien promueva un admin por otra vía.
func EnsureAdmin(ctx context.Context, dir *directory.Directory, adminEmail string) error {
	log := logger.From(ctx).With(logger.Component("bootstrap"))

	users, err := dir.List(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: listar usuarios: %w", err)
	}
	for _, u := range users {
		if u.Roles.Has(domain.RoleAdmin) {
			return nil
		}
	}

	if adminEmail == "" {
		log.Warn("no hay admins y BOOTSTRAP_ADMIN_EMAIL está vacío: la superficie /v1/admin queda sin acceso")
		return nil
	}

	u, created, err := dir.ResolveOrCreate(ctx, adminEmail)
	if err != nil {
		return fmt.Errorf("bootstrap: provisionar admin: %w", err)
	}
	if _, err := dir.SetRole(ctx, u.ID, domain.RoleAdmin, true); err != nil {
		return fmt.Errorf("bootstrap: asignar rol admin: %w", err)
	}

	log.Info("admin inicial provisionado",
		logger.UserID(u.ID),
		logger.Email(u.Email),
		logger.Bool("created", created),
	)
	return nil
}
