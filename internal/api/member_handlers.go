package api

import (
	"net/http"
	"time"

	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/constants"
	"junta-vecinos/backend/internal/models/dtos"
)

// CreateMemberHandler handles POST /api/v1/vecinos
func CreateMemberHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.MemberCreateRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			respondValidationError(w, initTime, details)
			return
		}

		member, err := deps.Services.Members.Create(r.Context(), req)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Vecino creado exitosamente", dtos.NewMemberResponse(member), http.StatusCreated)
	}
}

// ListMembersHandler handles GET /api/v1/vecinos
func ListMembersHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		query := dtos.MemberListQuery{
			Page:      queryInt(r, "page", 1),
			Limit:     queryInt(r, "limit", 10),
			JuntaRole: constants.JuntaRole(r.URL.Query().Get("rolJunta")),
		}
		if raw := r.URL.Query().Get("directiva"); raw != "" {
			board := raw == "true"
			query.Board = &board
		}

		members, total, err := deps.Services.Members.List(r.Context(), query)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		responses := make([]dtos.MemberResponse, 0, len(members))
		for i := range members {
			responses = append(responses, *dtos.NewMemberResponse(&members[i]))
		}

		common.RespondSuccess(w, initTime, "Vecinos obtenidos", dtos.MemberListResponse{
			Members: responses,
			Total:   total,
			Page:    query.Page,
			Limit:   query.Limit,
		})
	}
}

// GetMemberHandler handles GET /api/v1/vecinos/{id}
func GetMemberHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, "Identificador inválido.", http.StatusBadRequest)
			return
		}

		member, err := deps.Services.Members.GetByID(r.Context(), id)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Vecino obtenido", dtos.NewMemberResponse(member))
	}
}

// UpdateMemberHandler handles PATCH /api/v1/vecinos/{id}
func UpdateMemberHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, "Identificador inválido.", http.StatusBadRequest)
			return
		}

		var req dtos.MemberUpdateRequest
		if details, err := decodeAndValidate(r, &req); err != nil {
			respondValidationError(w, initTime, details)
			return
		}

		member, err := deps.Services.Members.Update(r.Context(), id, req)
		if err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Vecino actualizado", dtos.NewMemberResponse(member))
	}
}

// DeleteMemberHandler handles DELETE /api/v1/vecinos/{id}
func DeleteMemberHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, "Identificador inválido.", http.StatusBadRequest)
			return
		}

		if err := deps.Services.Members.Delete(r.Context(), id); err != nil {
			common.RespondDomainError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Vecino eliminado", nil)
	}
}
