// Package auth contiene los services del flujo de autenticación.
package auth

import (
	"time"

	"github.com/dropDatabas3/unosign/internal/directory"
	"github.com/dropDatabas3/unosign/internal/otp"
	"github.com/dropDatabas3/unosign/internal/session"
	"github.com/dropDatabas3/unosign/internal/token"
)

// Deps contiene las dependencias para crear los services auth.
type Deps struct {
	Directory  *directory.Directory
	OTP        *otp.Manager
	Sessions   *session.Manager
	Issuer     *token.Issuer
	SessionTTL time.Duration
}

// Services agrupa todos los services del dominio auth.
type Services struct {
	Login  LoginService
	Verify VerifyService
	Logout LogoutService
	Me     MeService
}

// NewServices crea el agregador de services auth.
func NewServices(d Deps) Services {
	return Services{
		Login:  NewLoginService(d),
		Verify: NewVerifyService(d),
		Logout: NewLogoutService(d),
		Me:     NewMeService(d),
	}
}
