package helpers

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extrae la IP del cliente, considerando proxies.
func ClientIP(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// DeviceInfo arma un descriptor simple del dispositivo para auditar la
// sesión. Hoy: el User-Agent recortado.
func DeviceInfo(r *http.Request) string {
	ua := strings.TrimSpace(r.UserAgent())
	if len(ua) > 256 {
		ua = ua[:256]
	}
	if ua == "" {
		ua = "unknown"
	}
	return ua
}

// BearerToken extrae el token del header Authorization.
// Devuelve "" si no hay Bearer.
func BearerToken(r *http.Request) string {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return ""
	}
	return strings.TrimSpace(ah[len("Bearer "):])
}

// TokenFromRequest busca el bearer token en el header Authorization y,
// como fallback, en la cookie de sesión.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if tok := BearerToken(r); tok != "" {
		return tok
	}
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil {
			return c.Value
		}
	}
	return ""
}
