package errors

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// ErrorDetail carries the caller-visible portion of an error.
type ErrorDetail struct {
	Message          string         `json:"message"`
	InternalError    string         `json:"internal_error,omitempty"`
	ReportableDetail map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// NewErrorResponse maps an error to its HTTP status code and response body.
// Unclassified errors are reported as internal errors without leaking detail.
func NewErrorResponse(err error) (int, ErrorResponse) {
	status := http.StatusInternalServerError
	detail := ErrorDetail{Message: "An unexpected error occurred"}

	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidOperation):
		status = http.StatusBadRequest
		detail.Message = "Invalid request"
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
		detail.Message = "Resource not found"
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrVersionConflict):
		status = http.StatusConflict
		detail.Message = "Resource conflict"
	case errors.Is(err, ErrPermissionDenied):
		status = http.StatusForbidden
		detail.Message = "Permission denied"
	case errors.Is(err, ErrDatabase):
		status = http.StatusInternalServerError
		detail.Message = "A storage error occurred"
	}

	var ie *InternalError
	if errors.As(err, &ie) {
		if ie.Hint() != "" {
			detail.Message = ie.Hint()
		}
		detail.ReportableDetail = ie.ReportableDetails()
		if status >= http.StatusInternalServerError {
			detail.InternalError = ie.Error()
		}
	}

	return status, ErrorResponse{Success: false, Error: detail}
}
