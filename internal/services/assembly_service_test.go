package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/constants"
	"junta-vecinos/backend/internal/models/dtos"
	gormmodels "junta-vecinos/backend/internal/models/gorm"
)

func TestAssemblyCreateByActiveBoard(t *testing.T) {
	env := newTestEnv(t)
	organizer := seedMember(t, env.db, "presidenta@example.com", constants.RolePresidente, true)

	assembly, err := env.assemblies.Create(context.Background(), organizer.ID, dtos.AssemblyCreateRequest{
		Title:    "Asamblea general ordinaria",
		Agenda:   strPtr("Cuenta anual y elección de delegados"),
		DateTime: time.Now().Add(96 * time.Hour),
		Location: strPtr("Sede vecinal"),
	})
	require.NoError(t, err)

	assert.Equal(t, constants.AssemblyPlanned, assembly.Status)
	assert.Equal(t, organizer.ID, assembly.OrganizerID)
}

func TestAssemblyCreateByPlainVecinoLeavesNoRow(t *testing.T) {
	env := newTestEnv(t)
	vecino := seedMember(t, env.db, "vecino@example.com", constants.RoleVecino, false)

	_, err := env.assemblies.Create(context.Background(), vecino.ID, dtos.AssemblyCreateRequest{
		Title:    "Asamblea clandestina",
		DateTime: time.Now().Add(48 * time.Hour),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrForbidden)

	var count int64
	env.db.Model(&gormmodels.Assembly{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAssemblyCreateExpiredTermIsRejected(t *testing.T) {
	env := newTestEnv(t)
	former := seedMember(t, env.db, "exdirectiva@example.com", constants.RoleDirectiva, true)
	past := former.BoardTermStart.AddDate(0, 1, 0)
	require.NoError(t, env.db.Model(former).Update("board_term_end", past).Error)

	_, err := env.assemblies.Create(context.Background(), former.ID, dtos.AssemblyCreateRequest{
		Title:    "Asamblea fuera de período",
		DateTime: time.Now().Add(48 * time.Hour),
	})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestAssemblyCreatePresidentWithoutTermLeavesNoRow(t *testing.T) {
	env := newTestEnv(t)
	president := seedMember(t, env.db, "presidenta@example.com", constants.RolePresidente, false)

	_, err := env.assemblies.Create(context.Background(), president.ID, dtos.AssemblyCreateRequest{
		Title:    "Asamblea sin mandato",
		DateTime: time.Now().Add(48 * time.Hour),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrForbidden)

	var count int64
	env.db.Model(&gormmodels.Assembly{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAssemblyCreateRequiresFutureDate(t *testing.T) {
	env := newTestEnv(t)
	organizer := seedMember(t, env.db, "presidenta@example.com", constants.RolePresidente, true)

	_, err := env.assemblies.Create(context.Background(), organizer.ID, dtos.AssemblyCreateRequest{
		Title:    "Asamblea en el pasado",
		DateTime: time.Now().Add(-time.Hour),
	})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestHeldAssemblyLocksContentButAllowsCancel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	organizer := seedMember(t, env.db, "presidenta@example.com", constants.RolePresidente, true)
	assembly := seedAssembly(t, env.db, organizer.ID, constants.AssemblyHeld)

	_, err := env.assemblies.Update(ctx, assembly.ID, dtos.AssemblyUpdateRequest{
		Title: strPtr("Título corregido a posteriori"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)

	cancelled := constants.AssemblyCancelled
	updated, err := env.assemblies.Update(ctx, assembly.ID, dtos.AssemblyUpdateRequest{
		Status: &cancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.AssemblyCancelled, updated.Status)
}

func TestAssemblyStatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	organizer := seedMember(t, env.db, "presidenta@example.com", constants.RolePresidente, true)

	// cancelada is terminal
	cancelledAssembly := seedAssembly(t, env.db, organizer.ID, constants.AssemblyCancelled)
	held := constants.AssemblyHeld
	_, err := env.assemblies.Update(ctx, cancelledAssembly.ID, dtos.AssemblyUpdateRequest{Status: &held})
	assert.ErrorIs(t, err, common.ErrConflict)

	// pospuesta can return to planificada
	postponed := seedAssembly(t, env.db, organizer.ID, constants.AssemblyPostponed)
	planned := constants.AssemblyPlanned
	updated, err := env.assemblies.Update(ctx, postponed.ID, dtos.AssemblyUpdateRequest{Status: &planned})
	require.NoError(t, err)
	assert.Equal(t, constants.AssemblyPlanned, updated.Status)
}

func TestAssemblyListFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	organizer := seedMember(t, env.db, "presidenta@example.com", constants.RolePresidente, true)

	seedAssembly(t, env.db, organizer.ID, constants.AssemblyPlanned)
	seedAssembly(t, env.db, organizer.ID, constants.AssemblyCancelled)

	assemblies, total, err := env.assemblies.List(ctx, dtos.AssemblyListQuery{
		Status: constants.AssemblyPlanned,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, assemblies, 1)
	assert.Equal(t, constants.AssemblyPlanned, assemblies[0].Status)

	_, _, err = env.assemblies.List(ctx, dtos.AssemblyListQuery{Status: "inventada"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAssemblyDeleteRemovesActa(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	organizer := seedMember(t, env.db, "presidenta@example.com", constants.RolePresidente, true)
	assembly := seedAssembly(t, env.db, organizer.ID, constants.AssemblyHeld)

	_, err := env.minutes.Create(ctx, assembly.ID, dtos.MinutesCreateRequest{
		Content: "Se aprueba la cuenta anual.",
	})
	require.NoError(t, err)

	require.NoError(t, env.assemblies.Delete(ctx, assembly.ID))

	var count int64
	env.db.Model(&gormmodels.Minutes{}).Where("assembly_id = ?", assembly.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	_, err = env.assemblies.GetByID(ctx, assembly.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
