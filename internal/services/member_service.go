package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"junta-vecinos/backend/internal/auth"
	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/constants"
	"junta-vecinos/backend/internal/db/repositories"
	"junta-vecinos/backend/internal/logging"
	"junta-vecinos/backend/internal/models/dtos"
	gormmodels "junta-vecinos/backend/internal/models/gorm"
)

// rutPattern accepts Chilean RUTs with optional dots and hyphen, e.g.
// 12.345.678-5 or 12345678K.
var rutPattern = regexp.MustCompile(`^[0-9]{1,2}\.?[0-9]{3}\.?[0-9]{3}-?[0-9kK]$`)

// ValidRUT reports whether the national ID matches the accepted RUT shape.
func ValidRUT(rut string) bool {
	return rutPattern.MatchString(strings.TrimSpace(rut))
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// MemberService implements vecino administration, available to the active
// directiva only.
type MemberService struct {
	db            *gorm.DB
	members       *repositories.MemberRepository
	assemblies    *repositories.AssemblyRepository
	notifications *NotificationService
}

func NewMemberService(
	db *gorm.DB,
	members *repositories.MemberRepository,
	assemblies *repositories.AssemblyRepository,
	notifications *NotificationService,
) *MemberService {
	return &MemberService{
		db:            db,
		members:       members,
		assemblies:    assemblies,
		notifications: notifications,
	}
}

// Create registers a vecino on behalf of the directiva, optionally with a
// junta role and a directiva appointment.
func (s *MemberService) Create(ctx context.Context, req dtos.MemberCreateRequest) (*gormmodels.Member, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	role := req.JuntaRole
	if role == "" {
		role = constants.RoleVecino
	}
	if !role.Valid() {
		return nil, fmt.Errorf("rol de junta desconocido %q: %w", role, common.ErrValidation)
	}

	if req.NationalID != nil && *req.NationalID != "" && !ValidRUT(*req.NationalID) {
		return nil, fmt.Errorf("formato de RUT inválido: %w", common.ErrValidation)
	}

	if err := validateBoardFields(req.BoardTitle, req.BoardTermStart, req.BoardTermEnd); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := &gormmodels.Member{
		FirstNames:     strings.TrimSpace(req.FirstNames),
		LastNames:      strings.TrimSpace(req.LastNames),
		NationalID:     req.NationalID,
		Email:          email,
		PasswordHash:   hash,
		Address:        req.Address,
		HouseNumber:    req.HouseNumber,
		Phone:          req.Phone,
		JuntaRole:      role,
		BoardTitle:     req.BoardTitle,
		BoardTermStart: req.BoardTermStart,
		BoardTermEnd:   req.BoardTermEnd,
	}
	member.RecomputeBoardFlag(time.Now())

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.members.WithTx(tx)

		taken, err := repo.ExistsByEmail(ctx, email, 0)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("el email ya está registrado: %w", common.ErrConflict)
		}

		if member.NationalID != nil && *member.NationalID != "" {
			taken, err := repo.ExistsByNationalID(ctx, *member.NationalID, 0)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("el RUT ya está registrado: %w", common.ErrConflict)
			}
		}

		return repo.Create(ctx, member)
	})
	if err != nil {
		return nil, err
	}

	s.notifications.InvalidateRecipients()
	logging.Info("vecino created by directiva", "memberId", member.ID)
	return member, nil
}

func (s *MemberService) GetByID(ctx context.Context, id uint) (*gormmodels.Member, error) {
	return s.members.FindByID(ctx, id)
}

// List returns a paginated vecino directory ordered by surname.
func (s *MemberService) List(ctx context.Context, query dtos.MemberListQuery) ([]gormmodels.Member, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = defaultPageSize
	}
	if query.Limit > maxPageSize {
		query.Limit = maxPageSize
	}
	if query.JuntaRole != "" && !query.JuntaRole.Valid() {
		return nil, 0, fmt.Errorf("rol de junta desconocido %q: %w", query.JuntaRole, common.ErrValidation)
	}
	return s.members.List(ctx, query)
}

// Update applies a partial update. Passwords never travel this path; they are
// changed only through the authenticated change-password operation.
func (s *MemberService) Update(ctx context.Context, id uint, req dtos.MemberUpdateRequest) (*gormmodels.Member, error) {
	if req.NationalID != nil && *req.NationalID != "" && !ValidRUT(*req.NationalID) {
		return nil, fmt.Errorf("formato de RUT inválido: %w", common.ErrValidation)
	}
	if req.JuntaRole != nil && !req.JuntaRole.Valid() {
		return nil, fmt.Errorf("rol de junta desconocido %q: %w", *req.JuntaRole, common.ErrValidation)
	}

	var updated *gormmodels.Member
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.members.WithTx(tx)

		member, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			taken, err := repo.ExistsByEmail(ctx, email, id)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("el email ya está registrado: %w", common.ErrConflict)
			}
			member.Email = email
		}
		if req.NationalID != nil {
			if *req.NationalID != "" {
				taken, err := repo.ExistsByNationalID(ctx, *req.NationalID, id)
				if err != nil {
					return err
				}
				if taken {
					return fmt.Errorf("el RUT ya está registrado: %w", common.ErrConflict)
				}
			}
			member.NationalID = req.NationalID
		}
		if req.FirstNames != nil {
			member.FirstNames = strings.TrimSpace(*req.FirstNames)
		}
		if req.LastNames != nil {
			member.LastNames = strings.TrimSpace(*req.LastNames)
		}
		if req.Address != nil {
			member.Address = req.Address
		}
		if req.HouseNumber != nil {
			member.HouseNumber = req.HouseNumber
		}
		if req.Phone != nil {
			member.Phone = req.Phone
		}
		if req.JuntaRole != nil {
			member.JuntaRole = *req.JuntaRole
		}
		if req.BoardTitle != nil {
			member.BoardTitle = req.BoardTitle
		}
		if req.BoardTermStart != nil {
			member.BoardTermStart = req.BoardTermStart
		}
		if req.BoardTermEnd != nil {
			member.BoardTermEnd = req.BoardTermEnd
		}

		if err := validateBoardFields(member.BoardTitle, member.BoardTermStart, member.BoardTermEnd); err != nil {
			return err
		}
		member.RecomputeBoardFlag(time.Now())

		if err := repo.Update(ctx, member); err != nil {
			return err
		}
		updated = member
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifications.InvalidateRecipients()
	return updated, nil
}

// Delete removes a vecino. A vecino who organizes asambleas cannot be deleted
// while those asambleas remain.
func (s *MemberService) Delete(ctx context.Context, id uint) error {
	if _, err := s.members.FindByID(ctx, id); err != nil {
		return err
	}

	organized, err := s.assemblies.CountByOrganizer(ctx, id)
	if err != nil {
		return err
	}
	if organized > 0 {
		return fmt.Errorf("el vecino organiza %d asamblea(s) y no puede ser eliminado: %w", organized, common.ErrConflict)
	}

	if err := s.members.Delete(ctx, id); err != nil {
		return err
	}

	s.notifications.InvalidateRecipients()
	logging.Info("vecino deleted", "memberId", id)
	return nil
}

// validateBoardFields checks the directiva appointment invariants: a known
// cargo, and a term whose start does not follow its end.
func validateBoardFields(title *string, start, end *time.Time) error {
	if title != nil && *title != "" && !constants.ValidBoardTitle(*title) {
		return fmt.Errorf("cargo de directiva desconocido %q: %w", *title, common.ErrValidation)
	}
	if title != nil && *title != "" && start == nil {
		return fmt.Errorf("un cargo de directiva requiere fecha de inicio: %w", common.ErrValidation)
	}
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("el término del período no puede preceder a su inicio: %w", common.ErrValidation)
	}
	return nil
}
