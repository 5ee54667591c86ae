package services

import (
	"context"
	"fmt"

	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/db/repositories"
	"junta-vecinos/backend/internal/logging"
	"junta-vecinos/backend/internal/models/dtos"
	gormmodels "junta-vecinos/backend/internal/models/gorm"
)

// ReportService implements the informe CRUD and the financial summary.
type ReportService struct {
	reports *repositories.ReportRepository
}

func NewReportService(reports *repositories.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

func (s *ReportService) Create(ctx context.Context, req dtos.ReportCreateRequest) (*gormmodels.Report, error) {
	if *req.Income < 0 || *req.Loss < 0 {
		return nil, fmt.Errorf("los montos no pueden ser negativos: %w", common.ErrValidation)
	}

	report := &gormmodels.Report{
		Title:  req.Title,
		Income: *req.Income,
		Loss:   *req.Loss,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	logging.Info("informe created", "informeId", report.ID)
	return report, nil
}

func (s *ReportService) GetByID(ctx context.Context, id uint) (*gormmodels.Report, error) {
	return s.reports.FindByID(ctx, id)
}

func (s *ReportService) List(ctx context.Context) ([]gormmodels.Report, error) {
	return s.reports.List(ctx)
}

func (s *ReportService) Update(ctx context.Context, id uint, req dtos.ReportUpdateRequest) (*gormmodels.Report, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		report.Title = *req.Title
	}
	if req.Income != nil {
		if *req.Income < 0 {
			return nil, fmt.Errorf("los montos no pueden ser negativos: %w", common.ErrValidation)
		}
		report.Income = *req.Income
	}
	if req.Loss != nil {
		if *req.Loss < 0 {
			return nil, fmt.Errorf("los montos no pueden ser negativos: %w", common.ErrValidation)
		}
		report.Loss = *req.Loss
	}

	if err := s.reports.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) Delete(ctx context.Context, id uint) error {
	if err := s.reports.Delete(ctx, id); err != nil {
		return err
	}
	logging.Info("informe deleted", "informeId", id)
	return nil
}

// Summary aggregates every informe into totals and the resulting balance.
func (s *ReportService) Summary(ctx context.Context) (*dtos.ReportSummaryResponse, error) {
	row, err := s.reports.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return &dtos.ReportSummaryResponse{
		TotalInformes: row.TotalInformes,
		TotalIncome:   row.TotalIncome,
		TotalLoss:     row.TotalLoss,
		Balance:       row.TotalIncome - row.TotalLoss,
	}, nil
}
