package api

import (
	"junta-vecinos/backend/internal/auth"
	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/config"
	"junta-vecinos/backend/internal/db"
	"junta-vecinos/backend/internal/db/repositories"
	"junta-vecinos/backend/internal/metrics"
	"junta-vecinos/backend/internal/services"
)

type Repositories struct {
	Members    *repositories.MemberRepository
	Assemblies *repositories.AssemblyRepository
	Minutes    *repositories.MinutesRepository
	Reports    *repositories.ReportRepository
}

type Services struct {
	Auth          *services.AuthService
	Members       *services.MemberService
	Assemblies    *services.AssemblyService
	Minutes       *services.MinutesService
	Reports       *services.ReportService
	Notifications *services.NotificationService
	Cache         common.CacheInterface
	RedisQueue    *common.RedisQueueService
}

// Dependencies is the DI container handed to every handler.
type Dependencies struct {
	Repo          *Repositories
	Services      *Services
	Tokens        *auth.TokenManager
	Metrics       *metrics.MetricsRegistry
	SecureCookies bool
}

// InitDependencies wires repositories, services and infrastructure clients
// from the global DB handles and the loaded configuration.
func InitDependencies(cfg *config.Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Members:    repositories.NewMemberRepository(db.PgDB),
		Assemblies: repositories.NewAssemblyRepository(db.PgDB),
		Minutes:    repositories.NewMinutesRepository(db.PgDB),
		Reports:    repositories.NewReportRepository(db.PgDB, db.DB),
	}

	cacheSvc := common.NewCacheService(300, 600)

	var redisQueue *common.RedisQueueService
	if client := common.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); client != nil {
		redisQueue = common.NewRedisQueueService(client)
	}

	mailer := common.NewSMTPMailer(common.SMTPConfig{
		Host:     cfg.MailHost,
		Port:     cfg.MailPort,
		Username: cfg.MailUser,
		Password: cfg.MailPass,
		From:     cfg.MailFrom,
		ReplyTo:  cfg.MailReplyTo,
	})

	tokens := auth.NewTokenManager(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	notificationSvc := services.NewNotificationService(repos.Members, cacheSvc, redisQueue, mailer, metricsReg)

	svcs := &Services{
		Auth:          services.NewAuthService(db.PgDB, repos.Members, tokens, metricsReg, notificationSvc),
		Members:       services.NewMemberService(db.PgDB, repos.Members, repos.Assemblies, notificationSvc),
		Assemblies:    services.NewAssemblyService(db.PgDB, repos.Assemblies, repos.Members, notificationSvc, metricsReg),
		Minutes:       services.NewMinutesService(db.PgDB, repos.Minutes, repos.Assemblies, repos.Members),
		Reports:       services.NewReportService(repos.Reports),
		Notifications: notificationSvc,
		Cache:         cacheSvc,
		RedisQueue:    redisQueue,
	}

	return &Dependencies{
		Repo:          repos,
		Services:      svcs,
		Tokens:        tokens,
		Metrics:       metricsReg,
		SecureCookies: cfg.AppEnv == "production",
	}, nil
}
