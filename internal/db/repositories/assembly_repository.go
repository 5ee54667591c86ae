package repositories

import (
	"context"
	"errors"
	"fmt"

	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/models/dtos"
	gormmodels "junta-vecinos/backend/internal/models/gorm"

	"gorm.io/gorm"
)

// AssemblyRepository persists asambleas through GORM.
type AssemblyRepository struct {
	db *gorm.DB
}

func NewAssemblyRepository(db *gorm.DB) *AssemblyRepository {
	return &AssemblyRepository{db: db}
}

func (r *AssemblyRepository) WithTx(tx *gorm.DB) *AssemblyRepository {
	return &AssemblyRepository{db: tx}
}

func (r *AssemblyRepository) Create(ctx context.Context, assembly *gormmodels.Assembly) error {
	if err := r.db.WithContext(ctx).Create(assembly).Error; err != nil {
		return fmt.Errorf("failed to create asamblea: %w", err)
	}
	return nil
}

func (r *AssemblyRepository) FindByID(ctx context.Context, id uint) (*gormmodels.Assembly, error) {
	var assembly gormmodels.Assembly
	err := r.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Minutes").
		First(&assembly, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("asamblea %d: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch asamblea %d: %w", id, err)
	}
	return &assembly, nil
}

// List returns a page of asambleas ordered by soonest first, plus the
// total matching the same filters.
func (r *AssemblyRepository) List(ctx context.Context, query dtos.AssemblyListQuery) ([]gormmodels.Assembly, int64, error) {
	q := r.db.WithContext(ctx).Model(&gormmodels.Assembly{})
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.DateFrom != nil {
		q = q.Where("scheduled_at >= ?", *query.DateFrom)
	}
	if query.DateTo != nil {
		q = q.Where("scheduled_at <= ?", *query.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count asambleas: %w", err)
	}

	var assemblies []gormmodels.Assembly
	err := q.Preload("Organizer").
		Order("scheduled_at ASC").
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&assemblies).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list asambleas: %w", err)
	}
	return assemblies, total, nil
}

func (r *AssemblyRepository) CountByOrganizer(ctx context.Context, organizerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gormmodels.Assembly{}).
		Where("organizer_id = ?", organizerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count asambleas for organizer %d: %w", organizerID, err)
	}
	return count, nil
}

func (r *AssemblyRepository) Update(ctx context.Context, assembly *gormmodels.Assembly) error {
	if err := r.db.WithContext(ctx).Save(assembly).Error; err != nil {
		return fmt.Errorf("failed to update asamblea %d: %w", assembly.ID, err)
	}
	return nil
}

func (r *AssemblyRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&gormmodels.Assembly{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete asamblea %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("asamblea %d: %w", id, common.ErrNotFound)
	}
	return nil
}
