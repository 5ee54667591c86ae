package api

import (
	"net/http"
	"time"

	"junta-vecinos/backend/internal/auth"
	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/constants"
	"junta-vecinos/backend/internal/models/dtos"
)

// CreateAssemblyHandler handles POST /api/v1/asambleas
func CreateAssemblyHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, "Token de acceso requerido.", http.StatusUnauthorized)
			return
		}

		var req dtos.AssemblyCreateRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			respondValidationError(w, initTime, details)
			return
		}

		assembly, err := deps.Services.Assemblies.Create(r.Context(), claims.MemberID, req)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Asamblea convocada exitosamente", dtos.NewAssemblyResponse(assembly), http.StatusCreated)
	}
}

// ListAssembliesHandler handles GET /api/v1/asambleas
func ListAssembliesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		query := dtos.AssemblyListQuery{
			Page:     queryInt(r, "page", 1),
			Limit:    queryInt(r, "limit", 10),
			Status:   constants.AssemblyStatus(r.URL.Query().Get("status")),
			DateFrom: queryTime(r, "desde"),
			DateTo:   queryTime(r, "hasta"),
		}

		assemblies, total, err := deps.Services.Assemblies.List(r.Context(), query)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		responses := make([]dtos.AssemblyResponse, 0, len(assemblies))
		for i := range assemblies {
			responses = append(responses, *dtos.NewAssemblyResponse(&assemblies[i]))
		}

		common.RespondSuccess(w, initTime, "Asambleas obtenidas", dtos.AssemblyListResponse{
			Assemblies: responses,
			Total:      total,
			Page:       query.Page,
			Limit:      query.Limit,
		})
	}
}

// GetAssemblyHandler handles GET /api/v1/asambleas/{id}
func GetAssemblyHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, "Identificador inválido.", http.StatusBadRequest)
			return
		}

		assembly, err := deps.Services.Assemblies.GetByID(r.Context(), id)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Asamblea obtenida", dtos.NewAssemblyResponse(assembly))
	}
}

// UpdateAssemblyHandler handles PATCH /api/v1/asambleas/{id}
func UpdateAssemblyHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, "Identificador inválido.", http.StatusBadRequest)
			return
		}

		var req dtos.AssemblyUpdateRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			respondValidationError(w, initTime, details)
			return
		}

		assembly, err := deps.Services.Assemblies.Update(r.Context(), id, req)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Asamblea actualizada", dtos.NewAssemblyResponse(assembly))
	}
}

// DeleteAssemblyHandler handles DELETE /api/v1/asambleas/{id}
func DeleteAssemblyHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, "Identificador inválido.", http.StatusBadRequest)
			return
		}

		if err := deps.Services.Assemblies.Delete(r.Context(), id); err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Asamblea eliminada", nil)
	}
}
