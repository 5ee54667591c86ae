package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"junta-vecinos/backend/internal/auth"
	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/constants"
	"junta-vecinos/backend/internal/db/repositories"
	"junta-vecinos/backend/internal/metrics"
	gormmodels "junta-vecinos/backend/internal/models/gorm"
)

var (
	testMetricsOnce sync.Once
	testMetrics     *metrics.MetricsRegistry
)

// metricsRegistry returns the per-process registry. Prometheus collectors can
// only be registered once, so every test shares it.
func metricsRegistry() *metrics.MetricsRegistry {
	testMetricsOnce.Do(func() {
		testMetrics = metrics.NewMetricsRegistry()
	})
	return testMetrics
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&gormmodels.Member{},
		&gormmodels.Assembly{},
		&gormmodels.Minutes{},
		&gormmodels.Report{},
	))
	return db
}

type testEnv struct {
	db            *gorm.DB
	tokens        *auth.TokenManager
	memberRepo    *repositories.MemberRepository
	assemblyRepo  *repositories.AssemblyRepository
	minutesRepo   *repositories.MinutesRepository
	auth          *AuthService
	members       *MemberService
	assemblies    *AssemblyService
	minutes       *MinutesService
	reports       *ReportService
	notifications *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	reg := metricsRegistry()

	memberRepo := repositories.NewMemberRepository(db)
	assemblyRepo := repositories.NewAssemblyRepository(db)
	minutesRepo := repositories.NewMinutesRepository(db)
	reportRepo := repositories.NewReportRepository(db, nil)

	tokens := auth.NewTokenManager("test-access-secret", "test-refresh-secret", time.Hour, 24*time.Hour)

	// Disabled SMTP config keeps the mailer a no-op; no Redis means the
	// fan-out runs inline.
	mailer := common.NewSMTPMailer(common.SMTPConfig{})
	cache := common.NewCacheService(60, 120)
	notifications := NewNotificationService(memberRepo, cache, nil, mailer, reg)

	return &testEnv{
		db:            db,
		tokens:        tokens,
		memberRepo:    memberRepo,
		assemblyRepo:  assemblyRepo,
		minutesRepo:   minutesRepo,
		auth:          NewAuthService(db, memberRepo, tokens, reg, notifications),
		members:       NewMemberService(db, memberRepo, assemblyRepo, notifications),
		assemblies:    NewAssemblyService(db, assemblyRepo, memberRepo, notifications, reg),
		minutes:       NewMinutesService(db, minutesRepo, assemblyRepo, memberRepo),
		reports:       NewReportService(reportRepo),
		notifications: notifications,
	}
}

// seedMember inserts a vecino directly. When board is true the member gets a
// current directiva term.
func seedMember(t *testing.T, db *gorm.DB, email string, role constants.JuntaRole, board bool) *gormmodels.Member {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	member := &gormmodels.Member{
		FirstNames:   "Juana",
		LastNames:    "Pérez Soto",
		Email:        email,
		PasswordHash: hash,
		JuntaRole:    role,
	}
	if board {
		title := "Presidente/a"
		start := time.Now().AddDate(0, -6, 0)
		end := time.Now().AddDate(1, 0, 0)
		member.BoardTitle = &title
		member.BoardTermStart = &start
		member.BoardTermEnd = &end
		member.IsActiveBoardMember = true
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func seedAssembly(t *testing.T, db *gorm.DB, organizerID uint, status constants.AssemblyStatus) *gormmodels.Assembly {
	t.Helper()

	assembly := &gormmodels.Assembly{
		Title:       "Asamblea ordinaria de prueba",
		ScheduledAt: time.Now().Add(72 * time.Hour),
		Status:      status,
		OrganizerID: organizerID,
	}
	require.NoError(t, db.Create(assembly).Error)
	return assembly
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func i64Ptr(n int64) *int64 { return &n }
