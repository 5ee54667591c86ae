package api

import (
	"net/http"
	"time"

	"junta-vecinos/backend/internal/auth"
	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/models/dtos"
)

// refreshCookieName carries the refresh token between /auth calls.
const refreshCookieName = "jid_vecinos"

// refreshCookiePath limits the cookie to the renewal endpoint.
const refreshCookiePath = "/api/v1/auth/refresh"

func setRefreshCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// LoginHandler handles POST /api/v1/auth/login
func LoginHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.LoginRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			respondValidationError(w, initTime, details)
			return
		}

		pair, member, err := deps.Services.Auth.Login(r.Context(), req)
		if err != nil {
			common.RespondError(w, initTime, "Credenciales inválidas.", http.StatusUnauthorized)
			return
		}

		setRefreshCookie(w, pair.RefreshToken, deps.Tokens.RefreshTTL(), deps.SecureCookies)
		common.RespondSuccess(w, initTime, "Inicio de sesión exitoso", dtos.LoginResponse{
			AccessToken: pair.AccessToken,
			Member:      dtos.NewMemberResponse(member),
		})
	}
}

// RegisterHandler handles POST /api/v1/auth/register
func RegisterHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RegisterRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			respondValidationError(w, initTime, details)
			return
		}

		member, err := deps.Services.Auth.Register(r.Context(), req)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Vecino registrado exitosamente", dtos.NewMemberResponse(member), http.StatusCreated)
	}
}

// RefreshHandler handles POST /api/v1/auth/refresh. The refresh token travels
// only in the HttpOnly cookie; a renewed cookie is issued on success.
func RefreshHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		cookie, err := r.Cookie(refreshCookieName)
		if err != nil || cookie.Value == "" {
			common.RespondError(w, initTime, "Sesión no encontrada.", http.StatusUnauthorized)
			return
		}

		pair, err := deps.Services.Auth.Refresh(r.Context(), cookie.Value)
		if err != nil {
			clearRefreshCookie(w, deps.SecureCookies)
			common.RespondError(w, initTime, "Sesión expirada, inicie sesión nuevamente.", http.StatusUnauthorized)
			return
		}

		setRefreshCookie(w, pair.RefreshToken, deps.Tokens.RefreshTTL(), deps.SecureCookies)
		common.RespondSuccess(w, initTime, "Sesión renovada", dtos.RefreshResponse{AccessToken: pair.AccessToken})
	}
}

// LogoutHandler handles POST /api/v1/auth/logout. Sessions are stateless, so
// logging out only clears the refresh cookie.
func LogoutHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		clearRefreshCookie(w, deps.SecureCookies)
		common.RespondSuccess(w, initTime, "Sesión cerrada", nil)
	}
}

// ProfileHandler handles GET /api/v1/auth/profile
func ProfileHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Token de acceso requerido.", http.StatusUnauthorized)
			return
		}

		member, err := deps.Services.Auth.Profile(r.Context(), claims.MemberID)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Perfil obtenido", dtos.NewMemberResponse(member))
	}
}

// ChangePasswordHandler handles POST /api/v1/auth/change-password
func ChangePasswordHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Token de acceso requerido.", http.StatusUnauthorized)
			return
		}

		var req dtos.ChangePasswordRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			respondValidationError(w, initTime, details)
			return
		}

		if err := deps.Services.Auth.ChangePassword(r.Context(), claims.MemberID, req); err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Contraseña actualizada", nil)
	}
}
