package repositories

import (
	"context"
	"errors"
	"fmt"

	"junta-vecinos/backend/internal/common"
	gormmodels "junta-vecinos/backend/internal/models/gorm"

	"gorm.io/gorm"
)

// MinutesRepository persists actas de asamblea through GORM.
type MinutesRepository struct {
	db *gorm.DB
}

func NewMinutesRepository(db *gorm.DB) *MinutesRepository {
	return &MinutesRepository{db: db}
}

func (r *MinutesRepository) WithTx(tx *gorm.DB) *MinutesRepository {
	return &MinutesRepository{db: tx}
}

func (r *MinutesRepository) Create(ctx context.Context, minutes *gormmodels.Minutes) error {
	if err := r.db.WithContext(ctx).Create(minutes).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("asamblea %d already has an acta: %w", minutes.AssemblyID, common.ErrConflict)
		}
		return fmt.Errorf("failed to create acta: %w", err)
	}
	return nil
}

func (r *MinutesRepository) FindByID(ctx context.Context, id uint) (*gormmodels.Minutes, error) {
	var minutes gormmodels.Minutes
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&minutes, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("acta %d: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch acta %d: %w", id, err)
	}
	return &minutes, nil
}

func (r *MinutesRepository) FindByAssemblyID(ctx context.Context, assemblyID uint) (*gormmodels.Minutes, error) {
	var minutes gormmodels.Minutes
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("assembly_id = ?", assemblyID).
		First(&minutes).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("acta for asamblea %d: %w", assemblyID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch acta for asamblea %d: %w", assemblyID, err)
	}
	return &minutes, nil
}

// ExistsForAssembly reports whether an acta already exists for the
// assembly, used inside the create transaction before the unique index
// has the final say.
func (r *MinutesRepository) ExistsForAssembly(ctx context.Context, assemblyID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gormmodels.Minutes{}).
		Where("assembly_id = ?", assemblyID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check acta presence for asamblea %d: %w", assemblyID, err)
	}
	return count > 0, nil
}

func (r *MinutesRepository) Update(ctx context.Context, minutes *gormmodels.Minutes) error {
	if err := r.db.WithContext(ctx).Save(minutes).Error; err != nil {
		return fmt.Errorf("failed to update acta %d: %w", minutes.ID, err)
	}
	return nil
}

func (r *MinutesRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&gormmodels.Minutes{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete acta %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("acta %d: %w", id, common.ErrNotFound)
	}
	return nil
}
