package handlers

import (
	"errors"
	"net/http"

	"dpxcruise/internal/domain"
	"dpxcruise/internal/http/middleware"
	"dpxcruise/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Anything
// unrecognised is logged and reported as a generic server error.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsRateLimited(err):
		respondError(c, http.StatusTooManyRequests, "rate_limited", err.Error(), nil)
	case domain.IsInternal(err):
		utils.LogEvent(middleware.GetRequestID(c), "http", "internal_error", c.FullPath()+": "+errorChain(err))
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "internal_error", c.FullPath()+": "+err.Error())
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

func errorChain(err error) string {
	var ie domain.InternalError
	if errors.As(err, &ie) && ie.Err != nil {
		return err.Error() + ": " + ie.Err.Error()
	}
	return err.Error()
}
