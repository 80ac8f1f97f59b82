package middleware

import (
	"net/http"
	"strings"

	"github.com/shashiranjanraj/dressshop/pkg/auth"
	"github.com/shashiranjanraj/dressshop/pkg/principal"
	"github.com/shashiranjanraj/dressshop/pkg/response"
)

// PrincipalLoader resolves a validated token subject into a live principal.
// Implemented by the auth service so revoked or deleted accounts are rejected
// even while their token is still within its 7-day window.
type PrincipalLoader interface {
	LoadPrincipal(r *http.Request, kind, id string) (principal.Principal, error)
}

// Authenticate validates the Bearer token and stores the resolved principal
// in the request context. It accepts both user and admin tokens; route
// groups that need admin rights chain RequireAdmin after it.
func Authenticate(loader PrincipalLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				response.Unauthorized(w, "Authentication required")
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				if err == auth.ErrTokenExpired {
					response.Unauthorized(w, "Token expired")
					return
				}
				response.Unauthorized(w, "Invalid token")
				return
			}

			p, err := loader.LoadPrincipal(r, claims.Kind, claims.Subject)
			if err != nil {
				response.Unauthorized(w, "Account not found")
				return
			}

			next.ServeHTTP(w, r.WithContext(principal.WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireAdmin rejects requests whose principal is not an admin.
// Must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal.FromCtx(r.Context())
		if !ok || !p.IsAdmin() {
			response.Forbidden(w, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
