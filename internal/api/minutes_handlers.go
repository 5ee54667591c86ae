package api

import (
	"net/http"
	"time"

	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/models/dtos"
)

// CreateMinutesHandler handles POST /api/v1/asambleas/{id}/acta
func CreateMinutesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		assemblyID, err := urlID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, "Identificador inválido.", http.StatusBadRequest)
			return
		}

		var req dtos.MinutesCreateRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			respondValidationError(w, initTime, details)
			return
		}

		minutes, err := deps.Services.Minutes.Create(r.Context(), assemblyID, req)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Acta creada exitosamente", dtos.NewMinutesResponse(minutes), http.StatusCreated)
	}
}

// GetMinutesHandler handles GET /api/v1/asambleas/{id}/acta
func GetMinutesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		assemblyID, err := urlID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, "Identificador inválido.", http.StatusBadRequest)
			return
		}

		minutes, err := deps.Services.Minutes.GetByAssembly(r.Context(), assemblyID)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Acta obtenida", dtos.NewMinutesResponse(minutes))
	}
}

// UpdateMinutesHandler handles PATCH /api/v1/asambleas/{id}/acta
func UpdateMinutesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		assemblyID, err := urlID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, "Identificador inválido.", http.StatusBadRequest)
			return
		}

		var req dtos.MinutesUpdateRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			respondValidationError(w, initTime, details)
			return
		}

		minutes, err := deps.Services.Minutes.Update(r.Context(), assemblyID, req)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Acta actualizada", dtos.NewMinutesResponse(minutes))
	}
}

// DeleteMinutesHandler handles DELETE /api/v1/asambleas/{id}/acta
func DeleteMinutesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		assemblyID, err := urlID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, "Identificador inválido.", http.StatusBadRequest)
			return
		}

		if err := deps.Services.Minutes.Delete(r.Context(), assemblyID); err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Acta eliminada", nil)
	}
}
