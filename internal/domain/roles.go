package domain

import (
	"sort"
	"strings"
)

// Role es un rol del sistema. Set chico y cerrado: user | admin.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ValidRole indica si el string es un rol conocido.
func ValidRole(r string) bool {
	switch Role(r) {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// RoleSet es un conjunto de roles sin orden. Nunca debe quedar vacío
// para un usuario persistido; Normalize() aplica el piso {user}.
type RoleSet map[Role]struct{}

// NewRoleSet arma un set desde roles sueltos.
func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// ParseRoles decodifica el encoding de persistencia (comma-joined).
// Strings vacíos o roles desconocidos se descartan; un resultado vacío
// se normaliza a {user}.
func ParseRoles(encoded string) RoleSet {
	s := make(RoleSet)
	for _, part := range strings.Split(encoded, ",") {
		part = strings.TrimSpace(part)
		if ValidRole(part) {
			s[Role(part)] = struct{}{}
		}
	}
	return s.Normalize()
}

// Encode produce el encoding de persistencia (comma-joined, orden estable).
func (s RoleSet) Encode() string {
	return strings.Join(s.Slice(), ",")
}

// Slice devuelve los roles ordenados (estable para persistencia y JSON).
func (s RoleSet) Slice() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}

// Has indica pertenencia.
func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// Add devuelve una copia con el rol agregado.
func (s RoleSet) Add(r Role) RoleSet {
	out := s.clone()
	out[r] = struct{}{}
	return out
}

// Remove devuelve una copia sin el rol. El resultado se normaliza:
// un usuario nunca queda sin roles (piso {user}).
func (s RoleSet) Remove(r Role) RoleSet {
	out := s.clone()
	delete(out, r)
	return out.Normalize()
}

// Normalize garantiza el invariante "roles nunca vacío".
func (s RoleSet) Normalize() RoleSet {
	if len(s) == 0 {
		return NewRoleSet(RoleUser)
	}
	return s
}

func (s RoleSet) clone() RoleSet {
	out := make(RoleSet, len(s))
	for r := range s {
		out[r] = struct{}{}
	}
	return out
}
