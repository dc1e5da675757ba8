package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"sales_insights/pkg/utils"
)

// RequireAdmin rejects requests without a valid admin token, taken from the
// Authorization header or the Bearer cookie.
func RequireAdmin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				utils.WriteAppError(w, utils.UnauthorizedError("missing bearer token"))
				return
			}

			claims, err := utils.ParseToken(secret, token)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					utils.WriteAppError(w, utils.UnauthorizedError("token expired"))
					return
				}
				utils.WriteAppError(w, utils.UnauthorizedError("invalid token"))
				return
			}

			if role, _ := claims["role"].(string); role != utils.RoleAdmin {
				utils.WriteAppError(w, utils.UnauthorizedError("admin role required"))
				return
			}

			ctx := context.WithValue(r.Context(), utils.ContextKey("role"), claims["role"])
			ctx = context.WithValue(ctx, utils.ContextKey("expiresAt"), claims["exp"])
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := r.Cookie("Bearer"); err == nil {
		return strings.TrimPrefix(cookie.Value, "Bearer ")
	}
	return ""
}
