package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/dto"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

// authHandler handles registration and login.
type authHandler struct {
	accountSvc portssvc.AccountSvcFacade
	authSvc    portssvc.AuthSvcFacade
}

// RegisterAuthRoutes registers the public authentication routes.
func RegisterAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := &authHandler{accountSvc: services.Account, authSvc: services.Auth}

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountSvc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to register account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		// Credential failures come back as forbidden; present them as 401.
		logger.Warn("Login rejected", slog.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
