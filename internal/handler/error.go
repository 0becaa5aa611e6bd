// Package handler holds the HTTP response helpers shared by the API
// handlers: domain error mapping and JSON encoding.
package handler

import (
	"net/http"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/middleware"
	"github.com/dukerupert/tabletab/internal/telemetry"
)

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
// Unknown codes map to 500.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ETOOLARGE:
		return http.StatusRequestEntityTooLarge
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	case domain.ENOTIMPL:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse writes err as {"error":{"code","message"}} with the status
// for its code. Validation errors carry their field messages. Internal
// errors are logged and reported, and their details never reach the body.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := ErrorCodeToHTTPStatus(code)

	logger := middleware.GetLogger(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err, "op", domain.ErrorOp(err), "status", status)
		telemetry.CaptureErrorFromContext(r.Context(), err, map[string]interface{}{
			"op": domain.ErrorOp(err),
		})
	} else {
		logger.Debug("request rejected", "error", err, "code", code, "status", status)
	}

	body := errorBody{
		Code:    code,
		Message: domain.ErrorMessage(err),
	}
	if domain.IsValidationError(err) {
		body.Message = "The request has invalid fields"
		body.Fields = domain.GetValidationFields(err)
	}

	JSON(w, status, map[string]errorBody{"error": body})
}

// NotFoundResponse is the catch-all for unmatched routes.
func NotFoundResponse(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, domain.Errorf(domain.ENOTFOUND, "", "The requested resource was not found"))
}
