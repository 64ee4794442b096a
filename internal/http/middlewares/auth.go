package middlewares

import (
	stderrors "errors"
	"net/http"

	"github.com/dropDatabas3/unosign/internal/directory"
	"github.com/dropDatabas3/unosign/internal/domain"
	"github.com/dropDatabas3/unosign/internal/http/errors"
	"github.com/dropDatabas3/unosign/internal/http/helpers"
	"github.com/dropDatabas3/unosign/internal/session"
	"github.com/dropDatabas3/unosign/internal/token"
)

// RequireAuth valida el bearer token (header Authorization o cookie de
// sesión) y guarda los claims en el contexto. La validación es stateless:
// firma + expiry. Las operaciones que exigen que la sesión siga viva
// re-resuelven session_id en la capa de servicios.
func RequireAuth(issuer *token.Issuer, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := helpers.TokenFromRequest(r, cookieName)
			if raw == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="missing bearer token"`)
				errors.WriteError(w, errors.ErrTokenMissing)
				return
			}

			claims, err := issuer.Verify(raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				if stderrors.Is(err, token.ErrTokenExpired) {
					errors.WriteError(w, errors.ErrTokenExpired)
					return
				}
				errors.WriteError(w, errors.ErrTokenInvalid)
				return
			}

			ctx := WithTokenClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin protege las mutaciones administrativas. No alcanza con el
// rol embebido en el token: acá la sesión debe seguir viva y los roles se
// releen del directorio, así un logout o una degradación cortan el acceso
// al instante en vez de esperar el expiry del JWT. Debe encadenarse
// después de RequireAuth.
func RequireAdmin(sessions *session.Manager, dir *directory.Directory) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			cl := GetClaims(ctx)
			if cl == nil {
				errors.WriteError(w, errors.ErrUnauthorized.WithDetail("no claims in context"))
				return
			}

			// los tokens de canje no llevan session_id y no entran acá
			if _, err := sessions.Resolve(ctx, cl.SessionID); err != nil {
				if stderrors.Is(err, session.ErrSessionNotFound) {
					errors.WriteError(w, errors.ErrSessionExpired)
					return
				}
				errors.WriteError(w, errors.ErrInternalServerError.WithCause(err))
				return
			}

			u, err := dir.GetByID(ctx, cl.UserID)
			if err != nil {
				if stderrors.Is(err, directory.ErrUserNotFound) {
					errors.WriteError(w, errors.ErrSessionExpired)
					return
				}
				errors.WriteError(w, errors.ErrInternalServerError.WithCause(err))
				return
			}
			if !u.Active() {
				errors.WriteError(w, errors.ErrAccountSuspended)
				return
			}
			if !u.Roles.Has(domain.RoleAdmin) {
				errors.WriteError(w, errors.ErrForbidden.WithDetail("admin required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
