package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hartantowib/account-service/internal/domain"
	"github.com/hartantowib/account-service/internal/token"
	"github.com/hartantowib/account-service/internal/transport/http/response"
)

type ctxKey string

const ctxUser ctxKey = "user"

// UserLoader resolves token claims to a live user record at use time.
type UserLoader interface {
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// BearerAuth inspects the Authorization header. A missing header passes the
// request through anonymously; a present one must carry a valid Bearer token
// whose user still exists, otherwise the request fails 401.
func BearerAuth(tokens *token.Service, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, tokenStr, found := strings.Cut(authHeader, " ")
			if !found || scheme != "Bearer" || tokenStr == "" {
				response.WriteError(w, domain.ErrTokenInvalid())
				return
			}

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				response.WriteError(w, err)
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.ID)
			if err != nil {
				// token verified but the user is gone; treat as anonymous
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests that did not authenticate.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			response.WriteError(w, domain.ErrUnauthorized())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext retrieves the user set by BearerAuth.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(ctxUser).(*domain.User)
	return u, ok
}

// WithUser injects a user into the context; test helper for handlers.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, ctxUser, user)
}
