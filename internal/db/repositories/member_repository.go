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

// MemberRepository persists vecinos through GORM.
type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *MemberRepository) WithTx(tx *gorm.DB) *MemberRepository {
	return &MemberRepository{db: tx}
}

func (r *MemberRepository) Create(ctx context.Context, member *gormmodels.Member) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("vecino already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("failed to create vecino: %w", err)
	}
	return nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id uint) (*gormmodels.Member, error) {
	var member gormmodels.Member
	err := r.db.WithContext(ctx).First(&member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vecino %d: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch vecino %d: %w", id, err)
	}
	return &member, nil
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*gormmodels.Member, error) {
	var member gormmodels.Member
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vecino with email %q: %w", email, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch vecino by email: %w", err)
	}
	return &member, nil
}

// ExistsByEmail reports whether another vecino already uses the email.
// excludeID is ignored when zero.
func (r *MemberRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&gormmodels.Member{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	return count > 0, nil
}

func (r *MemberRepository) ExistsByNationalID(ctx context.Context, nationalID string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&gormmodels.Member{}).Where("national_id = ?", nationalID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check national id uniqueness: %w", err)
	}
	return count > 0, nil
}

// List returns a page of vecinos ordered by surname, plus the unfiltered
// total for the same filters.
func (r *MemberRepository) List(ctx context.Context, query dtos.MemberListQuery) ([]gormmodels.Member, int64, error) {
	q := r.db.WithContext(ctx).Model(&gormmodels.Member{})
	if query.JuntaRole != "" {
		q = q.Where("junta_role = ?", query.JuntaRole)
	}
	if query.Board != nil {
		q = q.Where("is_active_board_member = ?", *query.Board)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count vecinos: %w", err)
	}

	var members []gormmodels.Member
	err := q.Order("last_names ASC, first_names ASC").
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&members).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vecinos: %w", err)
	}
	return members, total, nil
}

// ListEmails returns the email of every registered vecino, used for
// assembly convocation fan-out.
func (r *MemberRepository) ListEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).Model(&gormmodels.Member{}).
		Order("email ASC").
		Pluck("email", &emails).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vecino emails: %w", err)
	}
	return emails, nil
}

func (r *MemberRepository) Update(ctx context.Context, member *gormmodels.Member) error {
	if err := r.db.WithContext(ctx).Save(member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("vecino update collides with existing record: %w", common.ErrConflict)
		}
		return fmt.Errorf("failed to update vecino %d: %w", member.ID, err)
	}
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&gormmodels.Member{}, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("vecino %d is referenced by other records: %w", id, common.ErrConflict)
		}
		return fmt.Errorf("failed to delete vecino %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("vecino %d: %w", id, common.ErrNotFound)
	}
	return nil
}
