// Package auth contiene los controllers del flujo de autenticación.
package auth

import (
	"github.com/dropDatabas3/unosign/internal/http/helpers"
	svc "github.com/dropDatabas3/unosign/internal/http/services/auth"
)

// Controllers agrupa todos los controllers del dominio auth.
type Controllers struct {
	Login  *LoginController
	Verify *VerifyController
	Logout *LogoutController
	Me     *MeController
}

// NewControllers crea el agregador de controllers auth.
func NewControllers(s svc.Services, cookie helpers.SessionCookie) *Controllers {
	return &Controllers{
		Login:  NewLoginController(s.Login),
		Verify: NewVerifyController(s.Verify, cookie),
		Logout: NewLogoutController(s.Logout, cookie),
		Me:     NewMeController(s.Me),
	}
}
