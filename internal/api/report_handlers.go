package api

import (
	"net/http"
	"time"

	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/models/dtos"
)

// CreateReportHandler handles POST /api/v1/informes
func CreateReportHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.ReportCreateRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			respondValidationError(w, initTime, details)
			return
		}

		report, err := deps.Services.Reports.Create(r.Context(), req)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Informe creado exitosamente", dtos.NewReportResponse(report), http.StatusCreated)
	}
}

// ListReportsHandler handles GET /api/v1/informes
func ListReportsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		reports, err := deps.Services.Reports.List(r.Context())
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		responses := make([]dtos.ReportResponse, 0, len(reports))
		for i := range reports {
			responses = append(responses, *dtos.NewReportResponse(&reports[i]))
		}

		common.RespondSuccess(w, initTime, "Informes obtenidos", responses)
	}
}

// ReportSummaryHandler handles GET /api/v1/informes/resumen
func ReportSummaryHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		summary, err := deps.Services.Reports.Summary(r.Context())
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Resumen financiero obtenido", summary)
	}
}

// GetReportHandler handles GET /api/v1/informes/{id}
func GetReportHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, "Identificador inválido.", http.StatusBadRequest)
			return
		}

		report, err := deps.Services.Reports.GetByID(r.Context(), id)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Informe obtenido", dtos.NewReportResponse(report))
	}
}

// UpdateReportHandler handles PATCH /api/v1/informes/{id}
func UpdateReportHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, "Identificador inválido.", http.StatusBadRequest)
			return
		}

		var req dtos.ReportUpdateRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			respondValidationError(w, initTime, details)
			return
		}

		report, err := deps.Services.Reports.Update(r.Context(), id, req)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Informe actualizado", dtos.NewReportResponse(report))
	}
}

// DeleteReportHandler handles DELETE /api/v1/informes/{id}
func DeleteReportHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, "Identificador inválido.", http.StatusBadRequest)
			return
		}

		if err := deps.Services.Reports.Delete(r.Context(), id); err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Informe eliminado", nil)
	}
}
