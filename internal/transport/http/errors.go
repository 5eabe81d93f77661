package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
)

// errInvalidDate marks a request date that failed RFC 3339 parsing; it never
// reaches the services.
var errInvalidDate = errors.New("invalid date format")

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeTitleRequired      = "title_required"
	codeDatesRequired      = "dates_required"
	codeInvalidDateRange   = "invalid_date_range"
	codeInvalidDate        = "invalid_date"
	codeInvalidCategory    = "invalid_category"
	codeInvalidCapacity    = "invalid_capacity"
	codeInvalidID          = "invalid_id"
	codeEventNotFound      = "event_not_found"
	codeEventFull          = "event_full"
	codeEventEnded         = "event_ended"
	codeStudentNotFound    = "student_not_found"
	codeEmailTaken         = "email_taken"
	codeInvalidCredentials = "invalid_credentials"
	codeSessionInvalid     = "session_invalid"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeDomainError maps service errors onto the JSON error envelope.
func writeDomainError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrTitleRequired:
		writeError(w, http.StatusBadRequest, codeTitleRequired, err.Error())
	case domain.ErrDatesRequired:
		writeError(w, http.StatusBadRequest, codeDatesRequired, err.Error())
	case domain.ErrInvalidDateRange:
		writeError(w, http.StatusBadRequest, codeInvalidDateRange, err.Error())
	case domain.ErrInvalidCategory:
		writeError(w, http.StatusBadRequest, codeInvalidCategory, err.Error())
	case domain.ErrInvalidCapacity:
		writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
	case domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case domain.ErrEventNotFound:
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case domain.ErrEventFull:
		writeError(w, http.StatusConflict, codeEventFull, err.Error())
	case domain.ErrEventEnded:
		writeError(w, http.StatusConflict, codeEventEnded, err.Error())
	case domain.ErrProfileNotFound:
		writeError(w, http.StatusNotFound, codeStudentNotFound, err.Error())
	case domain.ErrEmailTaken:
		writeError(w, http.StatusConflict, codeEmailTaken, err.Error())
	case domain.ErrInvalidCredentials:
		writeError(w, http.StatusUnauthorized, codeInvalidCredentials, err.Error())
	case domain.ErrSessionInvalid:
		writeError(w, http.StatusUnauthorized, codeSessionInvalid, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
