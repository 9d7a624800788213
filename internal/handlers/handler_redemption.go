package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/dto"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

// redemptionHandler lets the authenticated account spend points on a product.
type redemptionHandler struct {
	redemptionSvc portssvc.RedemptionSvcFacade
}

func RegisterRedemptionRoutes(rg *gin.RouterGroup, redemptionSvc portssvc.RedemptionSvcFacade) {
	h := &redemptionHandler{redemptionSvc: redemptionSvc}

	rg.POST("/redemptions", h.redeem)
}

func (h *redemptionHandler) redeem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middlewareAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for redeem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.redemptionSvc.Redeem(c.Request.Context(), accountID, req.ProductID)
	if err != nil {
		respondError(c, logger, err, "Failed to redeem product")
		return
	}
	c.JSON(http.StatusOK, result)
}
