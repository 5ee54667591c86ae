package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"junta-vecinos/backend/internal/api"
	"junta-vecinos/backend/internal/auth"
	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/constants"
	"junta-vecinos/backend/internal/db/repositories"
	"junta-vecinos/backend/internal/metrics"
	"junta-vecinos/backend/internal/models/dtos"
	gormmodels "junta-vecinos/backend/internal/models/gorm"
	"junta-vecinos/backend/internal/services"
)

var testMetrics = metrics.NewMetricsRegistry()

func newTestRouter(t *testing.T) (chi.Router, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&gormmodels.Member{},
		&gormmodels.Assembly{},
		&gormmodels.Minutes{},
		&gormmodels.Report{},
	))

	repos := &api.Repositories{
		Members:    repositories.NewMemberRepository(db),
		Assemblies: repositories.NewAssemblyRepository(db),
		Minutes:    repositories.NewMinutesRepository(db),
		Reports:    repositories.NewReportRepository(db, nil),
	}

	tokens := auth.NewTokenManager("test-access-secret", "test-refresh-secret", time.Hour, 24*time.Hour)
	mailer := common.NewSMTPMailer(common.SMTPConfig{})
	cache := common.NewCacheService(60, 120)
	notificationSvc := services.NewNotificationService(repos.Members, cache, nil, mailer, testMetrics)

	deps := &api.Dependencies{
		Repo: repos,
		Services: &api.Services{
			Auth:          services.NewAuthService(db, repos.Members, tokens, testMetrics, notificationSvc),
			Members:       services.NewMemberService(db, repos.Members, repos.Assemblies, notificationSvc),
			Assemblies:    services.NewAssemblyService(db, repos.Assemblies, repos.Members, notificationSvc, testMetrics),
			Minutes:       services.NewMinutesService(db, repos.Minutes, repos.Assemblies, repos.Members),
			Reports:       services.NewReportService(repos.Reports),
			Notifications: notificationSvc,
			Cache:         cache,
		},
		Tokens:  tokens,
		Metrics: testMetrics,
	}

	r := chi.NewRouter()
	RegisterAPIRoutes(r, deps)
	return r, db
}

// doJSON performs a request with a fresh client address so the per-IP rate
// limiter never interferes across steps.
var clientSeq int

func doJSON(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	clientSeq++
	req.RemoteAddr = fmt.Sprintf("10.0.0.%d:5000", clientSeq%250+1)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func loginFor(t *testing.T, r http.Handler, email string) string {
	t.Helper()

	rr := doJSON(r, "POST", "/api/v1/auth/login", "", dtos.LoginRequest{
		Email:    email,
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var payload struct {
		Data dtos.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.Data.AccessToken)
	return payload.Data.AccessToken
}

func seedBoardMember(t *testing.T, db *gorm.DB, email string) *gormmodels.Member {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	title := "Presidente/a"
	start := time.Now().AddDate(0, -6, 0)
	end := time.Now().AddDate(1, 0, 0)
	member := &gormmodels.Member{
		FirstNames:          "Carmen",
		LastNames:           "Soto Hidalgo",
		Email:               email,
		PasswordHash:        hash,
		JuntaRole:           constants.RolePresidente,
		IsActiveBoardMember: true,
		BoardTitle:          &title,
		BoardTermStart:      &start,
		BoardTermEnd:        &end,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(r, "POST", "/api/v1/auth/register", "", dtos.RegisterRequest{
		FirstNames: "Andrés",
		LastNames:  "Paredes Núñez",
		Email:      "andres@example.com",
		Password:   "password123",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	token := loginFor(t, r, "andres@example.com")

	rr = doJSON(r, "GET", "/api/v1/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "andres@example.com")
	assert.Contains(t, rr.Body.String(), string(constants.RoleVecino))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(r, "GET", "/api/v1/asambleas", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doJSON(r, "GET", "/api/v1/asambleas", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPlainVecinoCannotReachDirectivaRoutes(t *testing.T) {
	r, db := newTestRouter(t)

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	require.NoError(t, db.Create(&gormmodels.Member{
		FirstNames:   "Luis",
		LastNames:    "Castro Peña",
		Email:        "luis@example.com",
		PasswordHash: hash,
		JuntaRole:    constants.RoleVecino,
	}).Error)

	token := loginFor(t, r, "luis@example.com")

	rr := doJSON(r, "POST", "/api/v1/asambleas", token, dtos.AssemblyCreateRequest{
		Title:    "Asamblea sin permisos",
		DateTime: time.Now().Add(48 * time.Hour),
	})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doJSON(r, "GET", "/api/v1/vecinos", token, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Reads stay open to every authenticated vecino
	rr = doJSON(r, "GET", "/api/v1/asambleas", token, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestPresidentWithoutCurrentTermCannotConvoke(t *testing.T) {
	r, db := newTestRouter(t)

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	require.NoError(t, db.Create(&gormmodels.Member{
		FirstNames:   "Rosa",
		LastNames:    "Fuentes Lira",
		Email:        "rosa@example.com",
		PasswordHash: hash,
		JuntaRole:    constants.RolePresidente,
	}).Error)

	token := loginFor(t, r, "rosa@example.com")

	rr := doJSON(r, "POST", "/api/v1/asambleas", token, dtos.AssemblyCreateRequest{
		Title:    "Asamblea sin mandato vigente",
		DateTime: time.Now().Add(48 * time.Hour),
	})
	assert.Equal(t, http.StatusForbidden, rr.Code, rr.Body.String())

	var count int64
	db.Model(&gormmodels.Assembly{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRefreshIsNotRateLimited(t *testing.T) {
	r, _ := newTestRouter(t)

	// Repeated calls from one address stay 401 (no cookie), never 429
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("POST", "/api/v1/auth/refresh", nil)
		req.RemoteAddr = "10.9.9.9:5000"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	}
}

func TestAssemblyActaLifecycleFlow(t *testing.T) {
	r, db := newTestRouter(t)
	seedBoardMember(t, db, "presidenta@example.com")
	token := loginFor(t, r, "presidenta@example.com")

	// Convoke
	rr := doJSON(r, "POST", "/api/v1/asambleas", token, dtos.AssemblyCreateRequest{
		Title:    "Asamblea general ordinaria",
		Agenda:   func() *string { s := "Cuenta anual"; return &s }(),
		DateTime: time.Now().Add(96 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created struct {
		Data dtos.AssemblyResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assemblyPath := fmt.Sprintf("/api/v1/asambleas/%d", created.Data.ID)

	// Mark held
	held := constants.AssemblyHeld
	rr = doJSON(r, "PATCH", assemblyPath, token, dtos.AssemblyUpdateRequest{Status: &held})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// Content edits on a held assembly are a 400, not a conflict
	title := "Título reescrito"
	rr = doJSON(r, "PATCH", assemblyPath, token, dtos.AssemblyUpdateRequest{Title: &title})
	assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())

	// Attach acta
	rr = doJSON(r, "POST", assemblyPath+"/acta", token, dtos.MinutesCreateRequest{
		Content: "Asistieron 52 vecinos. Se aprueba la cuenta anual.",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	// Second acta conflicts
	rr = doJSON(r, "POST", assemblyPath+"/acta", token, dtos.MinutesCreateRequest{
		Content: "Acta duplicada",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Approve
	approved := constants.MinutesApproved
	rr = doJSON(r, "PATCH", assemblyPath+"/acta", token, dtos.MinutesUpdateRequest{Status: &approved})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// Approved content is frozen
	newContent := "Texto alterado"
	rr = doJSON(r, "PATCH", assemblyPath+"/acta", token, dtos.MinutesUpdateRequest{Content: &newContent})
	assert.Equal(t, http.StatusConflict, rr.Code)

	// The assembly now embeds its acta
	rr = doJSON(r, "GET", assemblyPath, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Se aprueba la cuenta anual.")
}

func TestInformeSummaryFlow(t *testing.T) {
	r, db := newTestRouter(t)
	seedBoardMember(t, db, "tesorera@example.com")
	token := loginFor(t, r, "tesorera@example.com")

	income := int64(900000)
	loss := int64(400000)
	rr := doJSON(r, "POST", "/api/v1/informes", token, dtos.ReportCreateRequest{
		Title:  "Informe anual",
		Income: &income,
		Loss:   &loss,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doJSON(r, "GET", "/api/v1/informes/resumen", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var payload struct {
		Data dtos.ReportSummaryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	assert.Equal(t, int64(1), payload.Data.TotalInformes)
	assert.Equal(t, int64(500000), payload.Data.Balance)
}
