package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse represents the API error response format. Validation
// errors carry a list of messages, everything else a single string.
type ErrorResponse struct {
	Error interface{} `json:"error"`
}

// Handler maps errors to HTTP responses at the handler boundary. Client
// bodies stay opaque for server-side failures; full detail goes to the
// log only.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle processes an error and sends the appropriate HTTP response
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	status := http.StatusInternalServerError
	var body ErrorResponse

	if appErr := GetAppError(err); appErr != nil {
		if appErr.HTTPStatus != 0 {
			status = appErr.HTTPStatus
		}
		if appErr.Type == ErrorTypeValidation {
			body = ErrorResponse{Error: appErr.Messages}
		} else if status >= http.StatusInternalServerError {
			body = ErrorResponse{Error: "internal server error"}
		} else {
			body = ErrorResponse{Error: appErr.Message}
		}
		h.logError(r, err, status)
	} else {
		body = ErrorResponse{Error: "internal server error"}
		h.logError(r, err, status)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (h *Handler) logError(r *http.Request, err error, status int) {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Warn("request rejected", fields...)
	}
}
