package middleware

import (
	"context"
	"net/http"

	"github.com/psokolov/sweeper/internal/config"
)

type CtxKey int

const (
	CtxSessionClaims CtxKey = iota
)

// Auth parses session-ownership cookies into the request context. Requests
// without a valid token pass through unauthenticated; the handlers decide
// which operations require ownership.
func Auth(cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParseSessionClaims(r)
			if err != nil {
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxSessionClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnedSession extracts the session id vouched for by the auth middleware.
func OwnedSession(ctx context.Context) (string, bool) {
	claims, ok := ctx.Value(CtxSessionClaims).(*config.SessionClaims)
	if !ok {
		return "", false
	}
	return claims.SessionId, true
}
