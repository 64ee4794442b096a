package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/unosign/internal/domain"
)

const testSecret = "un-secreto-de-al-menos-32-bytes!"

func TestMintVerifyRoundtrip(t *testing.T) {
	iss := NewIssuer(testSecret, "https://sso.test")

	raw, exp, err := iss.Mint("sess-1", "user-1", "maria@acme.com", domain.NewRoleSet(domain.RoleUser), time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := iss.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "sess-1", claims.SessionID)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "maria@acme.com", claims.Email)
	require.Equal(t, []string{"user"}, claims.Roles)
	require.Equal(t, "user-1", claims.Subject)
}

func TestVerifyRejectsTamper(t *testing.T) {
	iss := NewIssuer(testSecret, "https://sso.test")
	raw, _, err := iss.Mint("sess-1", "user-1", "x@y.com", domain.NewRoleSet(domain.RoleUser), time.Hour)
	require.NoError(t, err)

	// alterar el payload invalida la firma
	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1][:len(parts[1])-2] + "xx." + parts[2]

	_, err = iss.Verify(tampered)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	a := NewIssuer(testSecret, "https://sso.test")
	b := NewIssuer("otro-secreto-distinto-de-32-bytes", "https://sso.test")

	raw, _, err := a.Mint("s", "u", "x@y.com", domain.NewRoleSet(domain.RoleUser), time.Hour)
	require.NoError(t, err)

	_, err = b.Verify(raw)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsExpired(t *testing.T) {
	iss := NewIssuer(testSecret, "https://sso.test")
	raw, _, err := iss.Mint("s", "u", "x@y.com", domain.NewRoleSet(domain.RoleUser), -time.Minute)
	require.NoError(t, err)

	_, err = iss.Verify(raw)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	a := NewIssuer(testSecret, "https://sso-a.test")
	b := NewIssuer(testSecret, "https://sso-b.test")

	raw, _, err := a.Mint("s", "u", "x@y.com", domain.NewRoleSet(domain.RoleUser), time.Hour)
	require.NoError(t, err)

	_, err = b.Verify(raw)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExchangeTokenHasEmptySession(t *testing.T) {
	iss := NewIssuer(testSecret, "https://sso.test")
	raw, _, err := iss.Mint("", "user-1", "x@y.com", domain.NewRoleSet(domain.RoleUser), time.Hour)
	require.NoError(t, err)

	claims, err := iss.Verify(raw)
	require.NoError(t, err)
	require.Empty(t, claims.SessionID)
}

func TestClaimsRoleSetDropsUnknown(t *testing.T) {
	c := &Claims{Roles: []string{"admin", "root", ""}}
	s := c.RoleSet()
	require.True(t, s.Has(domain.RoleAdmin))
	require.False(t, s.Has(domain.Role("root")))
}
