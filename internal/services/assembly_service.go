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
	"junta-vecinos/backend/internal/metrics"
	"junta-vecinos/backend/internal/models/dtos"
	gormmodels "junta-vecinos/backend/internal/models/gorm"
)

// AssemblyService implements the asamblea lifecycle.
type AssemblyService struct {
	db            *gorm.DB
	assemblies    *repositories.AssemblyRepository
	members       *repositories.MemberRepository
	notifications *NotificationService
	metrics       *metrics.MetricsRegistry
}

func NewAssemblyService(
	db *gorm.DB,
	assemblies *repositories.AssemblyRepository,
	members *repositories.MemberRepository,
	notifications *NotificationService,
	registry *metrics.MetricsRegistry,
) *AssemblyService {
	return &AssemblyService{
		db:            db,
		assemblies:    assemblies,
		members:       members,
		notifications: notifications,
		metrics:       registry,
	}
}

// Create schedules a new asamblea. The organizer is always re-read from the
// database so a stale token cannot vouch for an expired directiva term. The
// convocation fan-out runs after the row is committed and its outcome never
// affects the response.
func (s *AssemblyService) Create(ctx context.Context, organizerID uint, req dtos.AssemblyCreateRequest) (*gormmodels.Assembly, error) {
	organizer, err := s.members.FindByID(ctx, organizerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !organizer.BoardActiveAt(now) {
		return nil, fmt.Errorf("solo la directiva vigente puede convocar asambleas: %w", common.ErrForbidden)
	}
	if !req.DateTime.After(now) {
		return nil, fmt.Errorf("la asamblea debe programarse a futuro: %w", common.ErrValidation)
	}

	assembly := &gormmodels.Assembly{
		Title:       req.Title,
		Agenda:      req.Agenda,
		ScheduledAt: req.DateTime,
		Location:    req.Location,
		Status:      constants.AssemblyPlanned,
		OrganizerID: organizer.ID,
	}

	if err := s.assemblies.Create(ctx, assembly); err != nil {
		return nil, err
	}
	assembly.Organizer = organizer

	s.metrics.AssembliesCreatedTotal.Inc()
	logging.Info("asamblea created", "asambleaId", assembly.ID, "organizerId", organizer.ID)

	// Detached from the request so a slow mail transport cannot hold the
	// response. Failures are logged inside the service.
	go s.notifications.NotifyAssemblyCreated(context.WithoutCancel(ctx), assembly)

	return assembly, nil
}

func (s *AssemblyService) GetByID(ctx context.Context, id uint) (*gormmodels.Assembly, error) {
	return s.assemblies.FindByID(ctx, id)
}

// List returns a paginated agenda ordered by date, optionally filtered by
// status and date window.
func (s *AssemblyService) List(ctx context.Context, query dtos.AssemblyListQuery) ([]gormmodels.Assembly, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = defaultPageSize
	}
	if query.Limit > maxPageSize {
		query.Limit = maxPageSize
	}
	if query.Status != "" && !query.Status.Valid() {
		return nil, 0, fmt.Errorf("estado de asamblea desconocido %q: %w", query.Status, common.ErrValidation)
	}
	if query.DateFrom != nil && query.DateTo != nil && query.DateTo.Before(*query.DateFrom) {
		return nil, 0, fmt.Errorf("el rango de fechas está invertido: %w", common.ErrValidation)
	}
	return s.assemblies.List(ctx, query)
}

// Update applies a partial update. Once an asamblea is realizada its
// substantive fields are locked; only a status change to cancelada remains
// possible.
func (s *AssemblyService) Update(ctx context.Context, id uint, req dtos.AssemblyUpdateRequest) (*gormmodels.Assembly, error) {
	assembly, err := s.assemblies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if assembly.Status == constants.AssemblyHeld {
		if req.Title != nil || req.Agenda != nil || req.DateTime != nil || req.Location != nil {
			return nil, fmt.Errorf("una asamblea realizada no admite cambios de contenido: %w", common.ErrValidation)
		}
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("estado de asamblea desconocido %q: %w", *req.Status, common.ErrValidation)
		}
		if !assembly.Status.CanTransition(*req.Status) {
			return nil, fmt.Errorf("transición de %s a %s no permitida: %w", assembly.Status, *req.Status, common.ErrConflict)
		}
		assembly.Status = *req.Status
	}
	if req.Title != nil {
		assembly.Title = *req.Title
	}
	if req.Agenda != nil {
		assembly.Agenda = req.Agenda
	}
	if req.DateTime != nil {
		if !req.DateTime.After(time.Now()) {
			return nil, fmt.Errorf("la asamblea debe programarse a futuro: %w", common.ErrValidation)
		}
		assembly.ScheduledAt = *req.DateTime
	}
	if req.Location != nil {
		assembly.Location = req.Location
	}

	if err := s.assemblies.Update(ctx, assembly); err != nil {
		return nil, err
	}
	return assembly, nil
}

// Delete removes an asamblea. Its acta, if any, goes with it through the
// cascade.
func (s *AssemblyService) Delete(ctx context.Context, id uint) error {
	if _, err := s.assemblies.FindByID(ctx, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assembly_id = ?", id).Delete(&gormmodels.Minutes{}).Error; err != nil {
			return fmt.Errorf("failed to delete acta for asamblea %d: %w", id, err)
		}
		return s.assemblies.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	logging.Info("asamblea deleted", "asambleaId", id)
	return nil
}
