package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/dto"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

// ledgerHandler handles points crediting, debiting, balances and the
// reconciliation audit. Credits are how recycling centers and learning
// modules award points, so those routes are restricted to operator roles.
type ledgerHandler struct {
	ledgerSvc      portssvc.LedgerSvcFacade
	achievementSvc portssvc.AchievementSvcFacade
}

func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerSvc portssvc.LedgerSvcFacade, achievementSvc portssvc.AchievementSvcFacade) {
	h := &ledgerHandler{ledgerSvc: ledgerSvc, achievementSvc: achievementSvc}

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/credit", middleware.RequireRole("admin", "barangay"), h.credit)
		ledger.POST("/debit", middleware.RequireRole("admin"), h.debit)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:id/balance", h.getBalance)
		accounts.GET("/:id/reconciliation", middleware.RequireRole("admin"), h.reconcile)
	}
}

func (h *ledgerHandler) credit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for credit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	descriptor := domain.ActivityDescriptor{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Metadata:    req.Metadata,
	}
	if req.Material != "" {
		template, ok := domain.RecyclingTemplate(req.Material)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown material: " + req.Material})
			return
		}
		descriptor.Type = template.Type
		descriptor.Title = template.Title
		descriptor.Description = template.Description
		descriptor.Category = template.Category
	}

	newBalance, err := h.ledgerSvc.Credit(c.Request.Context(), req.AccountID, req.Amount, descriptor)
	if err != nil {
		respondError(c, logger, err, "Failed to credit points")
		return
	}

	// New earned points may cross achievement thresholds; the recompute is
	// derived entirely from the log so a failure here loses nothing.
	if _, err := h.achievementSvc.RecomputeFromLog(c.Request.Context(), req.AccountID); err != nil {
		logger.Warn("achievement recompute failed after credit", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{AccountID: req.AccountID, Balance: newBalance})
}

func (h *ledgerHandler) debit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DebitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for debit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	descriptor := domain.ActivityDescriptor{
		Type:        domain.ActivityRedemption,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Metadata:    req.Metadata,
	}

	newBalance, err := h.ledgerSvc.Debit(c.Request.Context(), req.AccountID, req.Amount, descriptor)
	if err != nil {
		respondError(c, logger, err, "Failed to debit points")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{AccountID: req.AccountID, Balance: newBalance})
}

func (h *ledgerHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	if _, ok := requireSelfOrAdmin(c, accountID); !ok {
		return
	}

	balance, err := h.ledgerSvc.CurrentBalance(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to read balance")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{AccountID: accountID, Balance: balance})
}

func (h *ledgerHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	report, err := h.ledgerSvc.Reconcile(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to reconcile account")
		return
	}
	c.JSON(http.StatusOK, report)
}
