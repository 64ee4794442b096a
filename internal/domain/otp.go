package domain

import "time"

// OTPChallenge es el código de login vigente para un email.
// Invariante: a lo sumo un challenge vivo por email; single-use.
type OTPChallenge struct {
	Email     string
	Code      string // 6 dígitos, ceros a la izquierda preservados
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired indica si el challenge venció respecto de now.
func (c OTPChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
