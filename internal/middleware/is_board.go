package middleware

import (
	"net/http"
	"time"

	"junta-vecinos/backend/internal/auth"
	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/constants"
	"junta-vecinos/backend/internal/db/repositories"
	"junta-vecinos/backend/internal/logging"
)

// RequireActiveBoard admits only vecinos whose directiva term is current.
// Tokens without a board projection are rejected outright; the rest get the
// member row re-read and the term date range re-evaluated, so a token minted
// before a term expired carries no weight.
func RequireActiveBoard(members *repositories.MemberRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				common.RespondError(w, initTime, "Token de acceso requerido.", http.StatusUnauthorized)
				return
			}

			if !claims.IsActiveBoardMember {
				logging.Debug("directiva access denied", "memberId", claims.MemberID, "endpoint", r.URL.Path)
				common.RespondError(w, initTime, "Se requiere pertenecer a la directiva vigente.", http.StatusForbidden)
				return
			}

			member, err := members.FindByID(r.Context(), claims.MemberID)
			if err != nil {
				common.RespondError(w, initTime, "Sesión inválida.", http.StatusUnauthorized)
				return
			}

			if !member.BoardActiveAt(time.Now()) {
				logging.Debug("directiva access denied", "memberId", member.ID, "endpoint", r.URL.Path)
				common.RespondError(w, initTime, "Se requiere pertenecer a la directiva vigente.", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireJuntaRole admits only the named junta roles.
func RequireJuntaRole(roles ...constants.JuntaRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				common.RespondError(w, initTime, "Token de acceso requerido.", http.StatusUnauthorized)
				return
			}

			if !claims.HasRole(roles...) {
				common.RespondError(w, initTime, "No tiene permisos para esta operación.", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
