// Package admin contiene los services de la superficie administrativa.
package admin

import (
	"github.com/dropDatabas3/unosign/internal/catalog"
	"github.com/dropDatabas3/unosign/internal/directory"
	"github.com/dropDatabas3/unosign/internal/entitlement"
)

// Deps contiene las dependencias para crear los services admin.
type Deps struct {
	Directory *directory.Directory
	Gate      *entitlement.Gate
	Catalog   *catalog.Catalog
}

// Services agrupa todos los services del dominio admin.
type Services struct {
	Users        UsersService
	Entitlements EntitlementsService
	Catalog      CatalogService
}

// NewServices crea el agregador de services admin.
func NewServices(d Deps) Services {
	return Services{
		Users:        NewUsersService(d),
		Entitlements: NewEntitlementsService(d),
		Catalog:      NewCatalogService(d),
	}
}
