package common

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"junta-vecinos/backend/internal/logging"
)

const (
	APIStateSuccess = "Success"
	APIStateError   = "Error"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	State        string `json:"state"`
	Message      string `json:"message,omitempty"`
	ResponseTime string `json:"responseTime,omitempty"`
	Data         any    `json:"data,omitempty"`
	Details      any    `json:"details,omitempty"`
}

// GetResponseTime formats the elapsed time since initTime.
func GetResponseTime(initTime time.Time) string {
	return time.Since(initTime).Round(time.Millisecond).String()
}

// RespondSuccess sends a standardized JSON success response.
func RespondSuccess(w http.ResponseWriter, initTime time.Time, message string, data any, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := APIResponse{
		State:        APIStateSuccess,
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Data:         data,
	}

	writeJSON(w, code, response)
}

// RespondError sends a standardized JSON error response with an explicit code.
func RespondError(w http.ResponseWriter, initTime time.Time, message string, statusCode int, details ...any) {
	response := APIResponse{
		State:        APIStateError,
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
	}
	if len(details) > 0 {
		response.Details = details[0]
	}

	writeJSON(w, statusCode, response)
}

// RespondDomainError maps a service-layer error onto the envelope. Internal
// errors are sanitized: the raw error goes to the log, never to the caller.
func RespondDomainError(w http.ResponseWriter, initTime time.Time, err error) {
	code := HTTPStatus(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		logging.Error("internal error", "error", err.Error())
		msg = "Error interno del servidor."
	}
	RespondError(w, initTime, msg, code)
}

// writeJSON marshals the envelope and writes it to the HTTP response.
func writeJSON(w http.ResponseWriter, code int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("JSON encode failed: %v", err)
	}
}
