package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saricycle/saricycle_backend/internal/apperrors"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

func middlewareAccountID(c *gin.Context) (string, bool) {
	return middleware.GetAccountIDFromCtx(c.Request.Context())
}

func middlewareRole(c *gin.Context) (string, bool) {
	return middleware.GetRoleFromCtx(c.Request.Context())
}

// respondError translates a service-layer error into an HTTP response. The
// expected failure modes each get their own status; everything else is a 500
// with a generic message so internals never leak to clients.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrUnknownAchievement):
		logger.Warn("validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		logger.Warn("insufficient balance", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrOutOfStock):
		logger.Warn("out of stock", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("conflicting update", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		logger.Error("store unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Backing store unavailable, try again later"})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

// requireSelfOrAdmin allows the request when the authenticated account is the
// target account or holds the admin role.
func requireSelfOrAdmin(c *gin.Context, targetAccountID string) (string, bool) {
	accountID, ok := middlewareAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	if accountID == targetAccountID {
		return accountID, true
	}
	if role, ok := middlewareRole(c); ok && role == "admin" {
		return accountID, true
	}
	c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	return "", false
}
