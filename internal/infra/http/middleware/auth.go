package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/propline/lead-service/internal/infra/auth"
)

type contextKey string

const claimsKey contextKey = "claims"

// Authenticate validates the bearer token and stashes its claims in the
// request context. Role checks happen in the use case, not here.
func Authenticate(tokens *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenStr == "" {
				unauthorized(w, "Missing or invalid token")
				return
			}

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				unauthorized(w, "Missing or invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
