package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"junta-vecinos/backend/internal/common"
)

// validate is shared by every handler; the instance caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate decodes a JSON body into dst and runs struct validation.
// The returned details slice carries one human-readable entry per failed field.
func decodeAndValidate(r *http.Request, dst any) (details []string, err error) {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				details = append(details, fieldErrorMessage(fe))
			}
		}
		return details, err
	}
	return nil, nil
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("el campo %s es obligatorio", fe.Field())
	case "email":
		return fmt.Sprintf("el campo %s debe ser un email válido", fe.Field())
	case "min":
		return fmt.Sprintf("el campo %s debe tener al menos %s caracteres", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("el campo %s supera el largo máximo de %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("el campo %s no es válido (%s)", fe.Field(), fe.Tag())
	}
}

// respondValidationError reports a malformed or invalid request body, with
// per-field details when validation produced them.
func respondValidationError(w http.ResponseWriter, initTime time.Time, details []string) {
	if len(details) > 0 {
		common.RespondError(w, initTime, "Solicitud inválida.", http.StatusBadRequest, details)
		return
	}
	common.RespondError(w, initTime, "Solicitud inválida.", http.StatusBadRequest)
}

// urlID extracts a positive numeric {id}-style parameter from the route.
func urlID(r *http.Request, param string) (uint, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", param, raw)
	}
	return uint(id), nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func queryTime(r *http.Request, key string) *time.Time {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
