// Package oauth contiene los services del flujo de autorización hacia
// servicios downstream.
package oauth

import (
	"time"

	"github.com/dropDatabas3/unosign/internal/broker"
	"github.com/dropDatabas3/unosign/internal/catalog"
	"github.com/dropDatabas3/unosign/internal/directory"
	"github.com/dropDatabas3/unosign/internal/entitlement"
	"github.com/dropDatabas3/unosign/internal/session"
	"github.com/dropDatabas3/unosign/internal/token"
)

// Deps contiene las dependencias para crear los services oauth.
type Deps struct {
	Catalog     *catalog.Catalog
	Gate        *entitlement.Gate
	Broker      *broker.Broker
	Sessions    *session.Manager
	Directory   *directory.Directory
	Issuer      *token.Issuer
	ExchangeTTL time.Duration // vida del token service-scoped del canje
}

// Services agrupa todos los services del dominio oauth.
type Services struct {
	Authorize AuthorizeService
	Token     TokenService
	Catalog   CatalogService
}

// NewServices crea el agregador de services oauth.
func NewServices(d Deps) Services {
	return Services{
		Authorize: NewAuthorizeService(d),
		Token:     NewTokenService(d),
		Catalog:   NewCatalogService(d),
	}
}
