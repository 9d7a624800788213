package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/middleware"
	"github.com/saricycle/saricycle_backend/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Public authentication routes
	RegisterAuthRoutes(r, services)

	// API v1 routes behind the auth middleware
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	RegisterAccountRoutes(v1, services.Account)
	RegisterLedgerRoutes(v1, services.Ledger, services.Achievement)
	RegisterActivityRoutes(v1, services.Activity)
	RegisterAchievementRoutes(v1, services.Achievement)
	RegisterRedemptionRoutes(v1, services.Redemption)
	RegisterProductRoutes(v1, services.Product)
	RegisterFeedRoutes(v1, services.Feed)
}
