package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/darshan4295/interview-app/internal/access"
	"github.com/darshan4295/interview-app/internal/auth"
	"github.com/darshan4295/interview-app/internal/models"
	"github.com/darshan4295/interview-app/internal/utils"
)

const principalKey contextKey = "principal"

// Authenticator turns a bearer token into the caller as currently stored.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*access.Principal, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// reloaded principal in the request context.
func Authenticate(authenticator Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r)
			if err != nil {
				utils.WriteError(w, logger, models.AuthenticationError(""))
				return
			}
			p, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				utils.WriteError(w, logger, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireRole lets only the listed roles through. Finer checks stay with access.CanAccess.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFrom(r.Context())
			if p == nil {
				utils.WriteError(w, nil, models.AuthenticationError(""))
				return
			}
			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.WriteError(w, nil, models.ForbiddenError(""))
		})
	}
}

func WithPrincipal(ctx context.Context, p *access.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns the authenticated caller, or nil outside Authenticate.
func PrincipalFrom(ctx context.Context) *access.Principal {
	p, _ := ctx.Value(principalKey).(*access.Principal)
	return p
}
