package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodePointNotFound     = "POINT_NOT_FOUND"
	CodeMissingScorer     = "MISSING_SCORER"
	CodeMissingAssist     = "MISSING_ASSIST"
	CodeUnknownTeam       = "UNKNOWN_TEAM"
	CodeStorageFull       = "STORAGE_FULL"
	CodeRosterUnavailable = "ROSTER_UNAVAILABLE"
	CodeNoPendingRestore  = "NO_PENDING_RESTORE"
	CodeSinkNotConfigured = "SINK_NOT_CONFIGURED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrPointNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePointNotFound, "Point not found"}}
	case errors.Is(err, model.ErrMissingScorer):
		return &httpError{http.StatusBadRequest, APIError{CodeMissingScorer, "Scorer name is required"}}
	case errors.Is(err, model.ErrMissingAssist):
		return &httpError{http.StatusBadRequest, APIError{CodeMissingAssist, "Assist name is required"}}
	case errors.Is(err, model.ErrUnknownTeam):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownTeam, "Team must be A or B"}}
	case errors.Is(err, model.ErrStoreFull):
		return &httpError{http.StatusInsufficientStorage, APIError{CodeStorageFull, "Storage is full"}}
	case errors.Is(err, model.ErrRosterUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeRosterUnavailable, "Roster source is unavailable"}}
	case errors.Is(err, model.ErrNoPendingRestore):
		return &httpError{http.StatusConflict, APIError{CodeNoPendingRestore, "No restore decision is pending"}}
	case errors.Is(err, model.ErrSinkNotConfigured):
		return &httpError{http.StatusConflict, APIError{CodeSinkNotConfigured, "No submission sink is configured"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
