package services

import (
	"context"

	"github.com/saricycle/saricycle_backend/internal/dto"
)

// RedemptionSvcFacade orchestrates exchanging points for a catalog product:
// fresh balance check, ledger debit with its correlated redemption record,
// then the catalog stock decrement.
type RedemptionSvcFacade interface {
	// Redeem performs the workflow with short-circuit on failure. Expected
	// failure modes are apperrors.ErrInsufficientBalance and
	// apperrors.ErrOutOfStock; neither leaves the account mutated.
	Redeem(ctx context.Context, accountID string, productID string) (*dto.RedemptionResult, error)
}
