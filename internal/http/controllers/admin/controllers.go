// Package admin contiene los controllers de la superficie administrativa.
package admin

import svc "github.com/dropDatabas3/unosign/internal/http/services/admin"

// Controllers agrupa todos los controllers del dominio admin.
type Controllers struct {
	Users        *UsersController
	Entitlements *EntitlementsController
	Services     *ServicesController
}

// NewControllers crea el agregador de controllers admin.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		Users:        NewUsersController(s.Users),
		Entitlements: NewEntitlementsController(s.Entitlements),
		Services:     NewServicesController(s.Catalog),
	}
}
