package auth

import (
	"context"
)

type contextKey string

var userClaimsKey contextKey = "user_claims"

func SetUserClaims(ctx context.Context, claims *AccessClaims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

func GetUserClaims(ctx context.Context) *AccessClaims {
	val := ctx.Value(userClaimsKey)
	if claims, ok := val.(*AccessClaims); ok {
		return claims
	}
	return nil
}
