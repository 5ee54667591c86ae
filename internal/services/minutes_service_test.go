package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/constants"
	"junta-vecinos/backend/internal/models/dtos"
	gormmodels "junta-vecinos/backend/internal/models/gorm"
)

func TestMinutesCreateDefaultsToDraft(t *testing.T) {
	env := newTestEnv(t)
	organizer := seedMember(t, env.db, "secretaria@example.com", constants.RoleSecretario, true)
	assembly := seedAssembly(t, env.db, organizer.ID, constants.AssemblyHeld)

	minutes, err := env.minutes.Create(context.Background(), assembly.ID, dtos.MinutesCreateRequest{
		Content:  "Asistencia: 40 vecinos. Se aprueba la cuenta anual.",
		AuthorID: &organizer.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, constants.MinutesDraft, minutes.Status)
	assert.Nil(t, minutes.ApprovedAt)
	assert.Equal(t, assembly.ID, minutes.AssemblyID)
}

func TestMinutesCreateMissingAssemblyIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.minutes.Create(context.Background(), 424242, dtos.MinutesCreateRequest{
		Content: "Acta huérfana",
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMinutesCreateUnknownAuthorIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	organizer := seedMember(t, env.db, "secretaria@example.com", constants.RoleSecretario, true)
	assembly := seedAssembly(t, env.db, organizer.ID, constants.AssemblyHeld)

	authorID := uint(999)
	_, err := env.minutes.Create(context.Background(), assembly.ID, dtos.MinutesCreateRequest{
		Content:  "Acta sin autor real",
		AuthorID: &authorID,
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSecondActaForSameAssemblyConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	organizer := seedMember(t, env.db, "secretaria@example.com", constants.RoleSecretario, true)
	assembly := seedAssembly(t, env.db, organizer.ID, constants.AssemblyHeld)

	_, err := env.minutes.Create(ctx, assembly.ID, dtos.MinutesCreateRequest{Content: "Primera acta"})
	require.NoError(t, err)

	_, err = env.minutes.Create(ctx, assembly.ID, dtos.MinutesCreateRequest{Content: "Segunda acta"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)

	var count int64
	env.db.Model(&gormmodels.Minutes{}).Where("assembly_id = ?", assembly.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestApprovingActaStampsApprovedAt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	organizer := seedMember(t, env.db, "secretaria@example.com", constants.RoleSecretario, true)
	assembly := seedAssembly(t, env.db, organizer.ID, constants.AssemblyHeld)

	_, err := env.minutes.Create(ctx, assembly.ID, dtos.MinutesCreateRequest{Content: "Borrador del acta"})
	require.NoError(t, err)

	approved := constants.MinutesApproved
	minutes, err := env.minutes.Update(ctx, assembly.ID, dtos.MinutesUpdateRequest{Status: &approved})
	require.NoError(t, err)
	require.NotNil(t, minutes.ApprovedAt)

	// Back to revision drops the stamp
	review := constants.MinutesInReview
	minutes, err = env.minutes.Update(ctx, assembly.ID, dtos.MinutesUpdateRequest{Status: &review})
	require.NoError(t, err)
	assert.Nil(t, minutes.ApprovedAt)
}

func TestApprovedActaContentIsImmutable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	organizer := seedMember(t, env.db, "secretaria@example.com", constants.RoleSecretario, true)
	assembly := seedAssembly(t, env.db, organizer.ID, constants.AssemblyHeld)

	approved := constants.MinutesApproved
	_, err := env.minutes.Create(ctx, assembly.ID, dtos.MinutesCreateRequest{
		Content: "Texto definitivo",
		Status:  &approved,
	})
	require.NoError(t, err)

	_, err = env.minutes.Update(ctx, assembly.ID, dtos.MinutesUpdateRequest{
		Content: strPtr("Texto alterado"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)

	stored, err := env.minutes.GetByAssembly(ctx, assembly.ID)
	require.NoError(t, err)
	assert.Equal(t, "Texto definitivo", stored.Content)
	assert.NotNil(t, stored.ApprovedAt)
}

func TestMinutesDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	organizer := seedMember(t, env.db, "secretaria@example.com", constants.RoleSecretario, true)
	assembly := seedAssembly(t, env.db, organizer.ID, constants.AssemblyHeld)

	_, err := env.minutes.Create(ctx, assembly.ID, dtos.MinutesCreateRequest{Content: "Acta transitoria"})
	require.NoError(t, err)

	require.NoError(t, env.minutes.Delete(ctx, assembly.ID))

	_, err = env.minutes.GetByAssembly(ctx, assembly.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
