package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/blood_desk_app/internal/apperrors"
	"github.com/SscSPs/blood_desk_app/internal/dto"
	"github.com/SscSPs/blood_desk_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps a service error to an HTTP status. Unexpected failures are
// reported as 400 with the underlying message; any transaction is already rolled back.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrAuthentication), errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// writeError logs err under msg and writes the {"error": ...} body.
func writeError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)
	if apperrors.IsDomainError(err) {
		logger.Warn(msg, slog.Int("status", status), slog.String("error", err.Error()))
	} else {
		logger.Error(msg, slog.String("error", err.Error()))
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

func writeBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// parseIDParam reads a positive integer path parameter. A malformed id never
// matches a record, so it is reported as not found.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
		return 0, false
	}
	return id, true
}
