package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"junta-vecinos/backend/internal/api"
	"junta-vecinos/backend/internal/config"
	"junta-vecinos/backend/internal/constants"
	"junta-vecinos/backend/internal/db"
	"junta-vecinos/backend/internal/logging"
	"junta-vecinos/backend/internal/metrics"
	"junta-vecinos/backend/internal/middleware"
	"junta-vecinos/backend/internal/workers"
)

// RegisterRoutes builds the chi router, wires the DI container and starts the
// background workers.
func RegisterRoutes(cfg *config.Config, upSince time.Time) http.Handler {

	r := chi.NewRouter()

	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	deps, err := api.InitDependencies(cfg, metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	workers.InitWorkers(deps.Services.RedisQueue, deps.Services.Notifications)

	RegisterAPIRoutes(r, deps)

	return r
}

// RegisterAPIRoutes registers all API v1 routes. Kept separate from the main
// router setup so tests can mount the API over their own dependencies.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies) {
	r.Route("/api/v1", func(v1 chi.Router) {

		// Credential endpoints: public, rate limited per IP
		v1.Group(func(public chi.Router) {
			public.Use(middleware.RateLimitMiddleware)
			public.Post("/auth/login", api.LoginHandler(deps))
			public.Post("/auth/register", api.RegisterHandler(deps))
		})
		// Refresh rides on the HttpOnly cookie, no throttle
		v1.Post("/auth/refresh", api.RefreshHandler(deps))
		v1.Post("/auth/logout", api.LogoutHandler(deps))

		// Everything below requires a valid access token
		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.AuthMiddleware(deps.Tokens))

			authed.Get("/auth/profile", api.ProfileHandler(deps))
			authed.Post("/auth/change-password", api.ChangePasswordHandler(deps))

			// Read access for every vecino
			authed.Get("/asambleas", api.ListAssembliesHandler(deps))
			authed.Get("/asambleas/{id}", api.GetAssemblyHandler(deps))
			authed.Get("/asambleas/{id}/acta", api.GetMinutesHandler(deps))
			authed.Get("/informes", api.ListReportsHandler(deps))
			authed.Get("/informes/{id}", api.GetReportHandler(deps))

			// Directiva-only group: membership re-checked against the DB
			authed.Group(func(board chi.Router) {
				board.Use(middleware.RequireActiveBoard(deps.Repo.Members))

				board.Post("/vecinos", api.CreateMemberHandler(deps))
				board.Get("/vecinos", api.ListMembersHandler(deps))
				board.Get("/vecinos/{id}", api.GetMemberHandler(deps))
				board.Patch("/vecinos/{id}", api.UpdateMemberHandler(deps))

				board.Post("/asambleas", api.CreateAssemblyHandler(deps))
				board.Patch("/asambleas/{id}", api.UpdateAssemblyHandler(deps))

				board.Get("/informes/resumen", api.ReportSummaryHandler(deps))
				board.Post("/informes", api.CreateReportHandler(deps))
				board.Patch("/informes/{id}", api.UpdateReportHandler(deps))
				board.Delete("/informes/{id}", api.DeleteReportHandler(deps))
			})

			// Removing a vecino stays with the presidencia
			authed.Group(func(pres chi.Router) {
				pres.Use(middleware.RequireJuntaRole(constants.RolePresidente))
				pres.Delete("/vecinos/{id}", api.DeleteMemberHandler(deps))
			})

			// Actas and assembly removal belong to the secretariat
			authed.Group(func(secretariat chi.Router) {
				secretariat.Use(middleware.RequireJuntaRole(constants.RoleSecretario, constants.RolePresidente))

				secretariat.Delete("/asambleas/{id}", api.DeleteAssemblyHandler(deps))
				secretariat.Post("/asambleas/{id}/acta", api.CreateMinutesHandler(deps))
				secretariat.Patch("/asambleas/{id}/acta", api.UpdateMinutesHandler(deps))
				secretariat.Delete("/asambleas/{id}/acta", api.DeleteMinutesHandler(deps))
			})
		})
	})
}
