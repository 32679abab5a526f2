// internal/auth/middleware.go

package auth

import (
	"net/http"
	"strings"

	"github.com/nivkoren/levmatch-backend/internal/common/utils"
)

// Middleware provides authentication middleware
type Middleware struct {
	verifier *Verifier
}

// NewMiddleware creates a new auth middleware
func NewMiddleware(verifier *Verifier) *Middleware {
	return &Middleware{verifier: verifier}
}

// Authenticate is the main middleware function that protects routes.
// It verifies the bearer token and adds the caller's user id to the
// request context. Requests without a valid identity are rejected
// before reaching any handler.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.extractToken(r)
		if token == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "missing or invalid authorization header")
			return
		}

		claims, err := m.verifier.VerifyToken(token)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := WithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken gets the token from the Authorization header
func (m *Middleware) extractToken(r *http.Request) string {
	bearer := r.Header.Get("Authorization")
	if len(bearer) > 7 && strings.EqualFold(bearer[:7], "bearer ") {
		return bearer[7:]
	}
	return ""
}
