// Package domain contiene las entidades del broker SSO.
// El encoding de persistencia (todo string, fechas RFC3339, roles
// comma-joined) es un asunto de los adapters/managers, no de estos tipos.
package domain

import "time"

// UserStatus es el estado de la cuenta.
type UserStatus string

const (
	StatusActive    UserStatus = "active"
	StatusSuspended UserStatus = "suspended"
)

// User es una identidad resuelta por email.
type User struct {
	ID        string
	Email     string
	Roles     RoleSet
	Status    UserStatus
	CreatedAt time.Time
}

// Active indica si la cuenta puede operar.
func (u User) Active() bool {
	return u.Status == StatusActive
}

// IsAdmin indica si el usuario tiene el rol admin.
func (u User) IsAdmin() bool {
	return u.Roles.Has(RoleAdmin)
}
