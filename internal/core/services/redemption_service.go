package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/saricycle/saricycle_backend/internal/apperrors"
	"github.com/saricycle/saricycle_backend/internal/core/domain"
	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/dto"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

// RedemptionService exchanges points for catalog products. The workflow is
// sequential with short-circuit on failure: product lookup, fresh balance
// check, ledger debit with its correlated redemption record, then the stock
// decrement. The debit is the authoritative guard; the stock decrement is a
// separate write and a failure there is logged as an inconsistency rather
// than rolled back.
type RedemptionService struct {
	ledgerSvc      portssvc.LedgerSvcFacade
	achievementSvc portssvc.AchievementSvcFacade
	productRepo    portsrepo.ProductRepositoryFacade
}

func NewRedemptionService(
	ledgerSvc portssvc.LedgerSvcFacade,
	achievementSvc portssvc.AchievementSvcFacade,
	productRepo portsrepo.ProductRepositoryFacade,
) *RedemptionService {
	return &RedemptionService{
		ledgerSvc:      ledgerSvc,
		achievementSvc: achievementSvc,
		productRepo:    productRepo,
	}
}

var _ portssvc.RedemptionSvcFacade = (*RedemptionService)(nil)

// Redeem performs the redemption workflow for one product unit.
func (s *RedemptionService) Redeem(ctx context.Context, accountID string, productID string) (*dto.RedemptionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %s is not available", apperrors.ErrNotFound, productID)
	}
	if product.Stock <= 0 {
		return nil, fmt.Errorf("%w: product %s has no stock left", apperrors.ErrOutOfStock, productID)
	}

	// Fresh read for the explicit check; the debit below re-enforces it
	// atomically, so a concurrent spend between the two cannot overdraw.
	balance, err := s.ledgerSvc.CurrentBalance(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if balance < product.PointsRequired {
		return nil, fmt.Errorf("%w: balance %d is below the %d required for %s",
			apperrors.ErrInsufficientBalance, balance, product.PointsRequired, product.Name)
	}

	now := time.Now()
	activityID := uuid.NewString()
	descriptor := domain.ActivityDescriptor{
		ActivityID:  activityID,
		Type:        domain.ActivityRedemption,
		Title:       "Redeemed: " + product.Name,
		Description: product.Description,
		Category:    product.Category,
		Metadata: map[string]string{
			"productID":      product.ProductID,
			"productName":    product.Name,
			"pointsRequired": strconv.FormatInt(product.PointsRequired, 10),
		},
		OccurredAt: now,
	}

	newBalance, err := s.ledgerSvc.Debit(ctx, accountID, product.PointsRequired, descriptor)
	if err != nil {
		return nil, err
	}

	// The debit already committed. A stock-decrement failure here leaves the
	// catalog ahead of the ledger; reconciliation surfaces it, the points
	// stay spent.
	if err := s.productRepo.DecrementStock(ctx, productID); err != nil {
		logger.Error("stock decrement failed after debit",
			"accountID", accountID, "productID", productID, "pointsSpent", product.PointsRequired, "error", err)
	}

	if _, err := s.achievementSvc.RecomputeFromLog(ctx, accountID); err != nil {
		logger.Warn("achievement recompute failed after redemption", "accountID", accountID, "error", err)
	}

	result := &dto.RedemptionResult{
		ProductID:   product.ProductID,
		ProductName: product.Name,
		PointsSpent: product.PointsRequired,
		NewBalance:  newBalance,
		ActivityID:  activityID,
		RedeemedAt:  now,
	}

	logger.Info("redeemed product", "accountID", accountID, "productID", productID, "pointsSpent", product.PointsRequired, "newBalance", newBalance)
	return result, nil
}
