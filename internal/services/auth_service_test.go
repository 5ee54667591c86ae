package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/constants"
	"junta-vecinos/backend/internal/models/dtos"
)

func TestRegisterAssignsBaseRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	member, err := env.auth.Register(ctx, dtos.RegisterRequest{
		FirstNames: "Pedro",
		LastNames:  "Rojas Díaz",
		Email:      "Pedro@Example.com",
		Password:   "supersecreta",
	})
	require.NoError(t, err)

	assert.Equal(t, constants.RoleVecino, member.JuntaRole)
	assert.Equal(t, "pedro@example.com", member.Email)
	assert.NotEqual(t, "supersecreta", member.PasswordHash)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := dtos.RegisterRequest{
		FirstNames: "Pedro",
		LastNames:  "Rojas Díaz",
		Email:      "pedro@example.com",
		Password:   "supersecreta",
	}
	_, err := env.auth.Register(ctx, req)
	require.NoError(t, err)

	_, err = env.auth.Register(ctx, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)

	var count int64
	env.db.Table("vecinos").Where("email = ?", "pedro@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterRejectsMalformedRUT(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(context.Background(), dtos.RegisterRequest{
		FirstNames: "Pedro",
		LastNames:  "Rojas Díaz",
		Email:      "pedro@example.com",
		Password:   "supersecreta",
		NationalID: strPtr("no-es-un-rut"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedMember(t, env.db, "vecina@example.com", constants.RoleVecino, false)

	_, _, errUnknown := env.auth.Login(ctx, dtos.LoginRequest{
		Email:    "nadie@example.com",
		Password: "password123",
	})
	_, _, errWrongPass := env.auth.Login(ctx, dtos.LoginRequest{
		Email:    "vecina@example.com",
		Password: "incorrecta",
	})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPass)
	assert.ErrorIs(t, errUnknown, common.ErrUnauthorized)
	assert.ErrorIs(t, errWrongPass, common.ErrUnauthorized)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestLoginIssuesVerifiableTokens(t *testing.T) {
	env := newTestEnv(t)
	member := seedMember(t, env.db, "vecina@example.com", constants.RoleVecino, false)

	pair, logged, err := env.auth.Login(context.Background(), dtos.LoginRequest{
		Email:    "vecina@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, member.ID, logged.ID)

	claims, err := env.tokens.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, member.ID, claims.MemberID)
	assert.Equal(t, constants.RoleVecino, claims.Role)

	refresh, err := env.tokens.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, member.ID, refresh.MemberID)
}

func TestLoginRecomputesExpiredBoardTerm(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	member := seedMember(t, env.db, "expresidenta@example.com", constants.RoleDirectiva, true)
	past := member.BoardTermStart.AddDate(0, 1, 0)
	require.NoError(t, env.db.Model(member).Update("board_term_end", past).Error)

	pair, _, err := env.auth.Login(ctx, dtos.LoginRequest{
		Email:    "expresidenta@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	claims, err := env.tokens.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.False(t, claims.IsActiveBoardMember)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedMember(t, env.db, "vecina@example.com", constants.RoleVecino, false)

	pair, _, err := env.auth.Login(ctx, dtos.LoginRequest{
		Email:    "vecina@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	renewed, err := env.auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
	assert.NotEmpty(t, renewed.RefreshToken)

	_, err = env.auth.Refresh(ctx, "garbage-token")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	member := seedMember(t, env.db, "vecina@example.com", constants.RoleVecino, false)

	err := env.auth.ChangePassword(ctx, member.ID, dtos.ChangePasswordRequest{
		CurrentPassword: "incorrecta",
		NewPassword:     "otraclave123",
	})
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	err = env.auth.ChangePassword(ctx, member.ID, dtos.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "otraclave123",
	})
	require.NoError(t, err)

	_, _, err = env.auth.Login(ctx, dtos.LoginRequest{Email: "vecina@example.com", Password: "otraclave123"})
	assert.NoError(t, err)
}
