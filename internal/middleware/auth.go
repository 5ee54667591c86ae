package middleware

import (
	"net/http"
	"strings"
	"time"

	"junta-vecinos/backend/internal/auth"
	"junta-vecinos/backend/internal/common"
)

// AuthMiddleware validates the Bearer access token and stores its claims in
// the request context.
func AuthMiddleware(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				common.RespondError(w, initTime, "Token de acceso requerido.", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			claims, err := tokens.ParseAccess(tokenStr)
			if err != nil {
				message := "Token de acceso inválido."
				if err == auth.ErrTokenExpired {
					message = "Token de acceso expirado."
				}
				common.RespondError(w, initTime, message, http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
