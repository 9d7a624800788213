package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/dto"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountSvc portssvc.AccountSvcFacade
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountSvc portssvc.AccountSvcFacade) {
	h := &accountHandler{accountSvc: accountSvc}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", middleware.RequireRole("admin"), h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", middleware.RequireRole("admin"), h.updateAccount)
		accounts.GET("/:id/early-adopter", h.getEarlyAdopter)
	}
}

func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	if _, ok := requireSelfOrAdmin(c, accountID); !ok {
		return
	}

	account, err := h.accountSvc.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountSvc.ListAccounts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToListAccountResponse(accounts)})
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updatedBy, ok := middlewareAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountSvc.UpdateAccount(c.Request.Context(), accountID, req, updatedBy)
	if err != nil {
		respondError(c, logger, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) getEarlyAdopter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	if _, ok := requireSelfOrAdmin(c, accountID); !ok {
		return
	}

	early, err := h.accountSvc.IsEarlyAdopter(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to determine early-adopter status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accountID": accountID, "earlyAdopter": early})
}
