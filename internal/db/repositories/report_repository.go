package repositories

import (
	"context"
	"errors"
	"fmt"

	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/constants"
	gormmodels "junta-vecinos/backend/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// ReportSummaryRow is the aggregate row produced by the informe summary
// query.
type ReportSummaryRow struct {
	TotalInformes int64 `db:"total_informes"`
	TotalIncome   int64 `db:"total_income"`
	TotalLoss     int64 `db:"total_loss"`
}

// ReportRepository persists informes through GORM and answers the
// aggregate summary through sqlx.
type ReportRepository struct {
	db  *gorm.DB
	sdb *sqlx.DB
}

func NewReportRepository(db *gorm.DB, sdb *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db, sdb: sdb}
}

func (r *ReportRepository) Create(ctx context.Context, report *gormmodels.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create informe: %w", err)
	}
	return nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id uint) (*gormmodels.Report, error) {
	var report gormmodels.Report
	err := r.db.WithContext(ctx).First(&report, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("informe %d: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch informe %d: %w", id, err)
	}
	return &report, nil
}

func (r *ReportRepository) List(ctx context.Context) ([]gormmodels.Report, error) {
	var reports []gormmodels.Report
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list informes: %w", err)
	}
	return reports, nil
}

func (r *ReportRepository) Update(ctx context.Context, report *gormmodels.Report) error {
	if err := r.db.WithContext(ctx).Save(report).Error; err != nil {
		return fmt.Errorf("failed to update informe %d: %w", report.ID, err)
	}
	return nil
}

func (r *ReportRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&gormmodels.Report{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete informe %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("informe %d: %w", id, common.ErrNotFound)
	}
	return nil
}

// Summary aggregates all informes in a single SQL round trip. When no
// sqlx handle is configured (tests) it falls back to the ORM.
func (r *ReportRepository) Summary(ctx context.Context) (*ReportSummaryRow, error) {
	if r.sdb == nil {
		return r.summaryORM(ctx)
	}
	var row ReportSummaryRow
	if err := r.sdb.GetContext(ctx, &row, constants.GetInformeSummary); err != nil {
		return nil, fmt.Errorf("failed to compute informe summary: %w", err)
	}
	return &row, nil
}

func (r *ReportRepository) summaryORM(ctx context.Context) (*ReportSummaryRow, error) {
	var row ReportSummaryRow
	err := r.db.WithContext(ctx).Model(&gormmodels.Report{}).
		Select("COUNT(*) AS total_informes, COALESCE(SUM(income), 0) AS total_income, COALESCE(SUM(loss), 0) AS total_loss").
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute informe summary: %w", err)
	}
	return &row, nil
}
