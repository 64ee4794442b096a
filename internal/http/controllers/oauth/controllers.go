// Package oauth contiene los controllers del flujo de autorización.
package oauth

import svc "github.com/dropDatabas3/unosign/internal/http/services/oauth"

// Controllers agrupa todos los controllers del dominio oauth.
type Controllers struct {
	Authorize *AuthorizeController
	Token     *TokenController
	Services  *ServicesController
}

// NewControllers crea el agregador de controllers oauth.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		Authorize: NewAuthorizeController(s.Authorize),
		Token:     NewTokenController(s.Token),
		Services:  NewServicesController(s.Catalog),
	}
}
