package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/dto"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

// achievementHandler exposes achievement progress and the explicit recompute
// trigger.
type achievementHandler struct {
	achievementSvc portssvc.AchievementSvcFacade
}

func RegisterAchievementRoutes(rg *gin.RouterGroup, achievementSvc portssvc.AchievementSvcFacade) {
	h := &achievementHandler{achievementSvc: achievementSvc}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:id/achievements", h.listAchievements)
		accounts.POST("/:id/achievements/recompute", h.recompute)
	}
}

func (h *achievementHandler) listAchievements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	if _, ok := requireSelfOrAdmin(c, accountID); !ok {
		return
	}

	progress, err := h.achievementSvc.ListProgress(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to list achievements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAchievementsResponse(progress))
}

func (h *achievementHandler) recompute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	if _, ok := requireSelfOrAdmin(c, accountID); !ok {
		return
	}

	newlyUnlocked, err := h.achievementSvc.RecomputeFromLog(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to recompute achievements")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accountID": accountID, "newlyUnlocked": newlyUnlocked})
}
