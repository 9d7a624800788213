package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/dto"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

// activityHandler exposes the read side of the activity log.
type activityHandler struct {
	activitySvc portssvc.ActivitySvcFacade
}

func RegisterActivityRoutes(rg *gin.RouterGroup, activitySvc portssvc.ActivitySvcFacade) {
	h := &activityHandler{activitySvc: activitySvc}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:id/activities", h.listActivities)
	}
}

func (h *activityHandler) listActivities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	if _, ok := requireSelfOrAdmin(c, accountID); !ok {
		return
	}

	var params dto.ListActivitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listActivities", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.activitySvc.ListActivities(c.Request.Context(), accountID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list activities")
		return
	}
	c.JSON(http.StatusOK, page)
}
