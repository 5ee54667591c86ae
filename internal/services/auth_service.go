package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"junta-vecinos/backend/internal/auth"
	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/constants"
	"junta-vecinos/backend/internal/db/repositories"
	"junta-vecinos/backend/internal/logging"
	"junta-vecinos/backend/internal/metrics"
	"junta-vecinos/backend/internal/models/dtos"
	gormmodels "junta-vecinos/backend/internal/models/gorm"
)

// credentialsMessage is the single message returned for any login failure, so
// responses never reveal whether an email is registered.
const credentialsMessage = "credenciales inválidas"

// AuthService implements login, registration and session renewal.
type AuthService struct {
	db            *gorm.DB
	members       *repositories.MemberRepository
	tokens        *auth.TokenManager
	metrics       *metrics.MetricsRegistry
	notifications *NotificationService
}

func NewAuthService(
	db *gorm.DB,
	members *repositories.MemberRepository,
	tokens *auth.TokenManager,
	registry *metrics.MetricsRegistry,
	notifications *NotificationService,
) *AuthService {
	return &AuthService{
		db:            db,
		members:       members,
		tokens:        tokens,
		metrics:       registry,
		notifications: notifications,
	}
}

// Login verifies credentials and issues a token pair. Every failure mode
// returns the same unauthorized error.
func (s *AuthService) Login(ctx context.Context, req dtos.LoginRequest) (*auth.TokenPair, *gormmodels.Member, error) {
	member, err := s.members.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		s.metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, nil, fmt.Errorf("%s: %w", credentialsMessage, common.ErrUnauthorized)
	}

	if !auth.ComparePassword(req.Password, member.PasswordHash) {
		s.metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, nil, fmt.Errorf("%s: %w", credentialsMessage, common.ErrUnauthorized)
	}

	// The claims must reflect current directiva standing, not what was
	// cached when the row was last written.
	s.refreshBoardFlag(ctx, member)

	pair, err := s.tokens.GeneratePair(member)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	logging.Info("vecino logged in", "memberId", member.ID)
	return pair, member, nil
}

// Register self-enrolls a vecino with the base role. Uniqueness of email and
// RUT is checked inside the transaction; the unique indexes have the final say.
func (s *AuthService) Register(ctx context.Context, req dtos.RegisterRequest) (*gormmodels.Member, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if req.NationalID != nil && *req.NationalID != "" && !ValidRUT(*req.NationalID) {
		return nil, fmt.Errorf("formato de RUT inválido: %w", common.ErrValidation)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := &gormmodels.Member{
		FirstNames:   strings.TrimSpace(req.FirstNames),
		LastNames:    strings.TrimSpace(req.LastNames),
		NationalID:   req.NationalID,
		Email:        email,
		PasswordHash: hash,
		Address:      req.Address,
		HouseNumber:  req.HouseNumber,
		Phone:        req.Phone,
		JuntaRole:    constants.RoleVecino,
	}

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

	if s.notifications != nil {
		s.notifications.InvalidateRecipients()
	}
	logging.Info("vecino registered", "memberId", member.ID, "email", member.Email)
	return member, nil
}

// Refresh re-identifies the session owner from the refresh token and issues a
// fresh pair with current role and directiva standing.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrUnauthorized)
	}

	member, err := s.members.FindByID(ctx, claims.MemberID)
	if err != nil {
		return nil, fmt.Errorf("sesión inválida: %w", common.ErrUnauthorized)
	}

	s.refreshBoardFlag(ctx, member)

	pair, err := s.tokens.GeneratePair(member)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return pair, nil
}

// Profile returns the authenticated vecino's own record.
func (s *AuthService) Profile(ctx context.Context, memberID uint) (*gormmodels.Member, error) {
	return s.members.FindByID(ctx, memberID)
}

// ChangePassword verifies the current password before writing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, memberID uint, req dtos.ChangePasswordRequest) error {
	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return err
	}

	if !auth.ComparePassword(req.CurrentPassword, member.PasswordHash) {
		return fmt.Errorf("la contraseña actual no es correcta: %w", common.ErrUnauthorized)
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	member.PasswordHash = hash
	if err := s.members.Update(ctx, member); err != nil {
		return err
	}
	logging.Info("password changed", "memberId", memberID)
	return nil
}

// refreshBoardFlag reconciles the cached directiva flag with the term date
// range before tokens are minted. A stale flag is corrected in place and
// persisted opportunistically.
func (s *AuthService) refreshBoardFlag(ctx context.Context, member *gormmodels.Member) {
	was := member.IsActiveBoardMember
	member.RecomputeBoardFlag(time.Now())
	if member.IsActiveBoardMember != was {
		if err := s.members.Update(ctx, member); err != nil {
			logging.Warn("could not persist recomputed board flag", "memberId", member.ID, "error", err)
		}
	}
}
