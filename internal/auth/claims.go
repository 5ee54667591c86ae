package auth

import (
	"junta-vecinos/backend/internal/constants"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload carried by the access token. It identifies the
// vecino plus the projections the authorization predicates need.
type AccessClaims struct {
	MemberID            uint                `json:"id"`
	Email               string              `json:"email"`
	Role                constants.JuntaRole `json:"rolJunta"`
	IsActiveBoardMember bool                `json:"esMiembroDirectivaVigente"`
	jwt.RegisteredClaims
}

// RefreshClaims carries the minimum needed to re-identify the session owner.
type RefreshClaims struct {
	MemberID uint `json:"id"`
	jwt.RegisteredClaims
}

// TokenPair bundles the two credentials issued at login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"-"`
}

// HasRole reports whether the principal holds one of the allowed junta roles.
func (c *AccessClaims) HasRole(allowed ...constants.JuntaRole) bool {
	for _, role := range allowed {
		if c.Role == role {
			return true
		}
	}
	return false
}
