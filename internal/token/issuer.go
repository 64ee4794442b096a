// Package token emite y valida los bearer tokens del broker.
//
// La verificación es pura: firma + expiry, sin tocar el store. La
// revocación es implícita: borrar la Session referida deja el token
// huérfano, y cualquier operación que exija "liveness" debe re-resolver
// session_id contra el Session Manager. Ver DESIGN.md.
package token

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/unosign/internal/domain"
)

// Claims son los claims propios del broker dentro del JWT.
type Claims struct {
	SessionID string   `json:"session_id"`
	UserID    string   `json:"user_id"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	jwtv5.RegisteredClaims
}

// RoleSet materializa los roles del token como set del dominio.
func (c *Claims) RoleSet() domain.RoleSet {
	s := make(domain.RoleSet, len(c.Roles))
	for _, r := range c.Roles {
		if domain.ValidRole(r) {
			s[domain.Role(r)] = struct{}{}
		}
	}
	return s.Normalize()
}

// Issuer firma y valida tokens HS256 con un secreto compartido de proceso.
type Issuer struct {
	secret []byte
	iss    string
}

// Errores de validación.
var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// NewIssuer crea el issuer. El secreto es read-only después del arranque.
func NewIssuer(secret, iss string) *Issuer {
	return &Issuer{secret: []byte(secret), iss: iss}
}

// Mint emite un bearer token atado a (session, user, email, roles) con el
// TTL dado. Para tokens de sesión el TTL espeja la duración de la sesión;
// para tokens service-scoped del exchange el session_id viaja vacío.
func (i *Issuer) Mint(sessionID, userID, email string, roles domain.RoleSet, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)

	claims := Claims{
		SessionID: sessionID,
		UserID:    userID,
		Email:     email,
		Roles:     roles.Slice(),
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    i.iss,
			Subject:   userID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
		},
	}

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify valida firma y expiry, y devuelve los claims. No consulta el
// store: un token válido solo prueba identidad al momento de emisión.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	var claims Claims
	opts := []jwtv5.ParserOption{
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithExpirationRequired(),
	}
	if i.iss != "" {
		opts = append(opts, jwtv5.WithIssuer(i.iss))
	}
	tk, err := jwtv5.ParseWithClaims(raw, &claims, func(t *jwtv5.Token) (any, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tk.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}
