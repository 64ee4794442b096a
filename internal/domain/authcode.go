package domain

import "time"

// AuthCode es el código de autorización single-use que transfiere la
// identidad probada hacia un servicio downstream sin exponer el token de
// sesión. Invariante: a lo sumo un código vivo por (user_id, service_id).
type AuthCode struct {
	Code        string // opaco, no adivinable
	UserID      string
	ServiceID   string
	RedirectURI string
	Used        bool
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Expired indica si el código venció respecto de now.
func (c AuthCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
