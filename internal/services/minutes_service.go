package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/constants"
	"junta-vecinos/backend/internal/db/repositories"
	"junta-vecinos/backend/internal/logging"
	"junta-vecinos/backend/internal/models/dtos"
	gormmodels "junta-vecinos/backend/internal/models/gorm"
)

// MinutesService implements the acta lifecycle: at most one acta per
// asamblea, and approved content is frozen.
type MinutesService struct {
	db         *gorm.DB
	minutes    *repositories.MinutesRepository
	assemblies *repositories.AssemblyRepository
	members    *repositories.MemberRepository
}

func NewMinutesService(
	db *gorm.DB,
	minutes *repositories.MinutesRepository,
	assemblies *repositories.AssemblyRepository,
	members *repositories.MemberRepository,
) *MinutesService {
	return &MinutesService{
		db:         db,
		minutes:    minutes,
		assemblies: assemblies,
		members:    members,
	}
}

// Create attaches an acta to an asamblea. The presence check runs inside the
// transaction and the unique index on assembly_id backs it up, so two
// concurrent creates cannot both land.
func (s *MinutesService) Create(ctx context.Context, assemblyID uint, req dtos.MinutesCreateRequest) (*gormmodels.Minutes, error) {
	status := constants.MinutesDraft
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("estado de acta desconocido %q: %w", *req.Status, common.ErrValidation)
		}
		status = *req.Status
	}

	if req.AuthorID != nil {
		if _, err := s.members.FindByID(ctx, *req.AuthorID); err != nil {
			return nil, fmt.Errorf("autor del acta: %w", err)
		}
	}

	minutes := &gormmodels.Minutes{
		Content:    req.Content,
		Status:     status,
		AssemblyID: assemblyID,
		AuthorID:   req.AuthorID,
	}
	if status == constants.MinutesApproved {
		now := time.Now()
		minutes.ApprovedAt = &now
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.assemblies.WithTx(tx).FindByID(ctx, assemblyID); err != nil {
			return err
		}

		repo := s.minutes.WithTx(tx)
		exists, err := repo.ExistsForAssembly(ctx, assemblyID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("la asamblea ya tiene un acta: %w", common.ErrConflict)
		}
		return repo.Create(ctx, minutes)
	})
	if err != nil {
		return nil, err
	}

	logging.Info("acta created", "actaId", minutes.ID, "asambleaId", assemblyID)
	return minutes, nil
}

// GetByAssembly returns the acta attached to an asamblea. The asamblea is
// checked first so a missing asamblea and a missing acta report differently.
func (s *MinutesService) GetByAssembly(ctx context.Context, assemblyID uint) (*gormmodels.Minutes, error) {
	if _, err := s.assemblies.FindByID(ctx, assemblyID); err != nil {
		return nil, err
	}
	return s.minutes.FindByAssemblyID(ctx, assemblyID)
}

// Update edits an acta. Approved content is immutable; a status change on an
// approved acta is still allowed so it can return to revision.
func (s *MinutesService) Update(ctx context.Context, assemblyID uint, req dtos.MinutesUpdateRequest) (*gormmodels.Minutes, error) {
	minutes, err := s.GetByAssembly(ctx, assemblyID)
	if err != nil {
		return nil, err
	}

	if minutes.Status == constants.MinutesApproved && req.Content != nil {
		return nil, fmt.Errorf("el contenido de un acta aprobada no puede modificarse: %w", common.ErrConflict)
	}

	if req.AuthorID != nil {
		if _, err := s.members.FindByID(ctx, *req.AuthorID); err != nil {
			return nil, fmt.Errorf("autor del acta: %w", err)
		}
		minutes.AuthorID = req.AuthorID
	}
	if req.Content != nil {
		minutes.Content = *req.Content
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("estado de acta desconocido %q: %w", *req.Status, common.ErrValidation)
		}
		if *req.Status == constants.MinutesApproved && minutes.Status != constants.MinutesApproved {
			now := time.Now()
			minutes.ApprovedAt = &now
		}
		if *req.Status != constants.MinutesApproved {
			minutes.ApprovedAt = nil
		}
		minutes.Status = *req.Status
	}

	if err := s.minutes.Update(ctx, minutes); err != nil {
		return nil, err
	}
	return minutes, nil
}

// Delete removes the acta of an asamblea.
func (s *MinutesService) Delete(ctx context.Context, assemblyID uint) error {
	minutes, err := s.GetByAssembly(ctx, assemblyID)
	if err != nil {
		return err
	}
	if err := s.minutes.Delete(ctx, minutes.ID); err != nil {
		return err
	}
	logging.Info("acta deleted", "actaId", minutes.ID, "asambleaId", assemblyID)
	return nil
}
