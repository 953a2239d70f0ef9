package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/cw-prime/Payton-Place/internal/auth"
	"github.com/cw-prime/Payton-Place/internal/transport"
)

type adminClaimsKey struct{}

// AdminAuth verifies the bearer token and attaches the admin identity
// claims to the request context.
func AdminAuth(manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager == nil {
				transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
				return
			}

			token := bearerToken(r)
			if token == "" {
				transport.WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
				return
			}

			claims, err := manager.Parse(token)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					transport.WriteError(w, http.StatusUnauthorized, "Token expired. Please log in again.", nil)
					return
				}
				transport.WriteError(w, http.StatusUnauthorized, "Invalid token. Please log in again.", nil)
				return
			}

			ctx := context.WithValue(r.Context(), adminClaimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSuperAdmin gates a route to the super-admin role. It must run
// after AdminAuth.
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := AdminFromContext(r.Context())
		if claims == nil || claims.Role != "super-admin" {
			transport.WriteError(w, http.StatusForbidden, "Super admin access required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func AdminFromContext(ctx context.Context) *auth.Claims {
	if v := ctx.Value(adminClaimsKey{}); v != nil {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
