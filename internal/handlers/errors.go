package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body every handler returns.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps a service error onto a status code. notFoundMsg replaces the
// generic message for ErrNotFound so callers can name the resource.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string, notFoundMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("action", action))
		if notFoundMsg == "" {
			notFoundMsg = "Resource not found"
		}
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFoundMsg})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrTwoFactorRequired),
		errors.Is(err, apperrors.ErrInvalidTwoFactorCode),
		errors.Is(err, apperrors.ErrRefreshTokenExpired):
		logger.Warn("Unauthorized", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: unwrapMessage(err)})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// unwrapMessage picks the sentinel message so internal context does not leak.
func unwrapMessage(err error) string {
	for _, sentinel := range []error{
		apperrors.ErrRefreshTokenExpired,
		apperrors.ErrTwoFactorRequired,
		apperrors.ErrInvalidTwoFactorCode,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "Unauthorized"
}

// requireUserID aborts with 401 when the auth middleware did not run.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return userID, ok
}
