package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	mw "github.com/meharaz2020/fair-dashboard/internal/adapters/primary/http/middleware"
	apperrors "github.com/meharaz2020/fair-dashboard/internal/core/errors"
)

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	return mw.GetRequestID(ctx)
}

// ErrorResponse is the standard JSON error response format
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler with the given logger
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle processes an error and writes the appropriate HTTP response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	requestID := GetRequestID(r.Context())

	// Check for AppError first (our custom error type)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		h.logError(r, appErr.StatusCode, appErr.Err, requestID)
		h.writeErrorResponse(w, appErr.StatusCode, ErrorResponse{
			Error:   appErr.Message,
			Code:    appErr.Code,
			Details: appErr.Details,
		})
		return
	}

	// Map known domain errors to HTTP responses
	statusCode, response := h.mapDomainError(err)

	// Field-level validation errors ride along as details
	var validationErrs *apperrors.ValidationErrors
	if errors.As(err, &validationErrs) && validationErrs.HasErrors() {
		response.Details = map[string]interface{}{"fields": validationErrs.Errors}
	}

	h.logError(r, statusCode, err, requestID)
	h.writeErrorResponse(w, statusCode, response)
}

// mapDomainError converts domain errors to HTTP status codes and responses
func (h *ErrorHandler) mapDomainError(err error) (int, ErrorResponse) {
	switch {
	// Request errors
	case errors.Is(err, apperrors.ErrInvalidMode):
		return http.StatusBadRequest, ErrorResponse{
			Error: "Mode must be one of: 5min, hourly",
			Code:  "INVALID_MODE",
		}
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, ErrorResponse{
			Error: "Bad request",
			Code:  "BAD_REQUEST",
		}

	// Dashboard state
	case errors.Is(err, apperrors.ErrSnapshotUnavailable):
		return http.StatusServiceUnavailable, ErrorResponse{
			Error: "Dashboard data is not available yet",
			Code:  "SNAPSHOT_UNAVAILABLE",
		}
	case errors.Is(err, apperrors.ErrNoData):
		return http.StatusNotFound, ErrorResponse{
			Error: "No Data Available",
			Code:  "NO_DATA",
		}

	// Upstream data errors
	case errors.Is(err, apperrors.ErrQueryFailed):
		return http.StatusBadGateway, ErrorResponse{
			Error: "Failed to load fair data",
			Code:  "QUERY_FAILED",
		}
	case errors.Is(err, apperrors.ErrUnsupportedValue):
		return http.StatusBadGateway, ErrorResponse{
			Error: "Fair data has an unexpected format",
			Code:  "UNSUPPORTED_VALUE",
		}

	// Rate limiting
	case errors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests, ErrorResponse{
			Error: "Too many requests. Please try again later.",
			Code:  "RATE_LIMITED",
		}

	// Default to internal server error
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error: "An unexpected error occurred",
			Code:  "INTERNAL_ERROR",
		}
	}
}

// logError logs the error with appropriate context
func (h *ErrorHandler) logError(r *http.Request, statusCode int, err error, requestID string) {
	logAttrs := []any{
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
		"status_code", statusCode,
		"error", err.Error(),
	}

	// Log at different levels based on status code
	ctx := r.Context()
	switch {
	case statusCode >= 500:
		h.logger.ErrorContext(ctx, "server error", logAttrs...)
	case statusCode >= 400:
		h.logger.WarnContext(ctx, "client error", logAttrs...)
	default:
		h.logger.InfoContext(ctx, "request error", logAttrs...)
	}
}

// writeErrorResponse writes a JSON error response
func (h *ErrorHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, response ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}
