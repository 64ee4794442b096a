package domain

import "time"

// TierLevel es el nivel de un entitlement.
type TierLevel string

const (
	TierFree TierLevel = "free"
	TierPro  TierLevel = "pro"
)

// Entitlement es un grant usuario→servicio, opcionalmente acotado en el
// tiempo. ValidUntil en cero significa sin vencimiento.
type Entitlement struct {
	ID         string
	UserID     string
	ServiceID  string
	Tier       TierLevel
	ValidUntil time.Time
}

// Expired indica si el grant venció. Un grant vencido se trata como
// ausente (la expiración se evalúa en lectura, nunca se barre).
func (e Entitlement) Expired(now time.Time) bool {
	return !e.ValidUntil.IsZero() && now.After(e.ValidUntil)
}
