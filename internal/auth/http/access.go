package http

import (
	"net/http"

	"github.com/aussiebroadwan/tenantry/internal/auth/service"
	"github.com/aussiebroadwan/tenantry/pkg/httpx"
	"github.com/aussiebroadwan/tenantry/pkg/slogx"
)

// AuthnMiddleware resolves the bearer token into a principal. The user and
// membership are read fresh, so revocation takes effect on the next request.
func AuthnMiddleware(ac *service.AccessControl) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := httpx.BearerToken(r)
			if !ok {
				writeError(w, r, service.ErrUnauthenticated)
				return
			}

			p, err := ac.Authenticate(r.Context(), token)
			if err != nil {
				writeError(w, r, err)
				return
			}

			ctx := service.ContextWithPrincipal(r.Context(), p)
			ctx = httpx.ContextWithUserID(ctx, p.UserID)
			ctx = slogx.WithAttrs(ctx, "user_id", p.UserID, "tenant_id", p.TenantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOperation rejects principals whose role may not perform op. It must
// run after AuthnMiddleware.
func RequireOperation(ac *service.AccessControl, op service.Operation) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := service.PrincipalFromContext(r.Context())
			if !ok {
				writeError(w, r, service.ErrUnauthenticated)
				return
			}
			if err := ac.Authorize(p, op); err != nil {
				slogx.FromContext(r.Context()).Info("operation denied",
					"operation", string(op),
					"role", p.Role.String(),
				)
				writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// principal returns the caller placed in the context by AuthnMiddleware.
func principal(r *http.Request) service.Principal {
	p, _ := service.PrincipalFromContext(r.Context())
	return p
}
