package services

import (
	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/pkg/config"
)

// NewServiceContainer wires the full service graph from the repository
// provider and configuration.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	calculator := NewMetricsCalculator(cfg.WasteKgPerPoint, cfg.StreakLookbackDays)

	ledgerSvc := NewLedgerService(repos.LedgerRepo)
	activitySvc := NewActivityService(repos.ActivityRepo)
	achievementSvc := NewAchievementService(repos.AchievementRepo, repos.ActivityRepo, repos.AccountRepo, calculator, cfg.EarlyAdopterLimit)
	accountSvc := NewAccountService(repos.AccountRepo, activitySvc, achievementSvc, cfg.EarlyAdopterLimit)
	authSvc := NewAuthService(accountSvc, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	productSvc := NewProductService(repos.ProductRepo)
	redemptionSvc := NewRedemptionService(ledgerSvc, achievementSvc, repos.ProductRepo)
	feedSvc := NewFeedService(repos.Notifier, repos.ActivityRepo, achievementSvc)

	return &portssvc.ServiceContainer{
		Account:     accountSvc,
		Auth:        authSvc,
		Ledger:      ledgerSvc,
		Activity:    activitySvc,
		Achievement: achievementSvc,
		Redemption:  redemptionSvc,
		Product:     productSvc,
		Feed:        feedSvc,
	}
}
