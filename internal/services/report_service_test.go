package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/models/dtos"
)

func TestReportCreateAndSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.reports.Create(ctx, dtos.ReportCreateRequest{
		Title:  "Informe primer semestre",
		Income: i64Ptr(500000),
		Loss:   i64Ptr(120000),
	})
	require.NoError(t, err)

	_, err = env.reports.Create(ctx, dtos.ReportCreateRequest{
		Title:  "Informe segundo semestre",
		Income: i64Ptr(300000),
		Loss:   i64Ptr(450000),
	})
	require.NoError(t, err)

	summary, err := env.reports.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.TotalInformes)
	assert.Equal(t, int64(800000), summary.TotalIncome)
	assert.Equal(t, int64(570000), summary.TotalLoss)
	assert.Equal(t, int64(230000), summary.Balance)
}

func TestReportSummaryEmpty(t *testing.T) {
	env := newTestEnv(t)

	summary, err := env.reports.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.TotalInformes)
	assert.Equal(t, int64(0), summary.Balance)
}

func TestReportRejectsNegativeAmounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.reports.Create(ctx, dtos.ReportCreateRequest{
		Title:  "Informe inválido",
		Income: i64Ptr(-1),
		Loss:   i64Ptr(0),
	})
	assert.ErrorIs(t, err, common.ErrValidation)

	report, err := env.reports.Create(ctx, dtos.ReportCreateRequest{
		Title:  "Informe válido",
		Income: i64Ptr(1000),
		Loss:   i64Ptr(0),
	})
	require.NoError(t, err)

	_, err = env.reports.Update(ctx, report.ID, dtos.ReportUpdateRequest{Loss: i64Ptr(-5)})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestReportUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	report, err := env.reports.Create(ctx, dtos.ReportCreateRequest{
		Title:  "Informe de caja",
		Income: i64Ptr(1000),
		Loss:   i64Ptr(200),
	})
	require.NoError(t, err)

	updated, err := env.reports.Update(ctx, report.ID, dtos.ReportUpdateRequest{
		Title:  strPtr("Informe de caja corregido"),
		Income: i64Ptr(1500),
	})
	require.NoError(t, err)
	assert.Equal(t, "Informe de caja corregido", updated.Title)
	assert.Equal(t, int64(1500), updated.Income)
	assert.Equal(t, int64(200), updated.Loss)

	require.NoError(t, env.reports.Delete(ctx, report.ID))
	_, err = env.reports.GetByID(ctx, report.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = env.reports.Delete(ctx, report.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
