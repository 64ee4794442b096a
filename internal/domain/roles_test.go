package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRoles(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"user", []string{"user"}},
		{"user,admin", []string{"admin", "user"}},
		{"admin", []string{"admin"}},
		{" user , admin ", []string{"admin", "user"}},
		// roles desconocidos se descartan
		{"user,superroot", []string{"user"}},
		// vacío o basura pura normaliza al piso {user}
		{"", []string{"user"}},
		{"superroot", []string{"user"}},
	}
	for _, c := range cases {
		got := ParseRoles(c.in)
		require.Equal(t, c.want, got.Slice(), "input %q", c.in)
	}
}

func TestRoleSetEncodeRoundtrip(t *testing.T) {
	s := NewRoleSet(RoleAdmin, RoleUser)
	require.Equal(t, "admin,user", s.Encode())
	require.Equal(t, s.Slice(), ParseRoles(s.Encode()).Slice())
}

func TestRoleSetRemoveKeepsFloor(t *testing.T) {
	s := NewRoleSet(RoleUser)
	// quitar el último rol nunca deja el set vacío
	s = s.Remove(RoleUser)
	require.True(t, s.Has(RoleUser))

	s = NewRoleSet(RoleUser, RoleAdmin)
	s = s.Remove(RoleAdmin)
	require.False(t, s.Has(RoleAdmin))
	require.True(t, s.Has(RoleUser))
}

func TestRoleSetAddDoesNotMutate(t *testing.T) {
	orig := NewRoleSet(RoleUser)
	_ = orig.Add(RoleAdmin)
	require.False(t, orig.Has(RoleAdmin))
}

func TestValidRole(t *testing.T) {
	require.True(t, ValidRole("user"))
	require.True(t, ValidRole("admin"))
	require.False(t, ValidRole(""))
	require.False(t, ValidRole("Admin"))
	require.False(t, ValidRole("root"))
}
