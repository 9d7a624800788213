package services

import (
	"context"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
	"github.com/saricycle/saricycle_backend/internal/dto"
)

// LedgerSvcFacade maintains the authoritative point balance per account.
// Every mutation appends the corresponding activity record atomically with
// the balance change; the balance is never settable through any other path.
type LedgerSvcFacade interface {
	// Credit adds amount points (amount > 0) and returns the new balance.
	Credit(ctx context.Context, accountID string, amount int64, descriptor domain.ActivityDescriptor) (int64, error)

	// Debit removes amount points (amount > 0). Fails entirely with
	// apperrors.ErrInsufficientBalance when the current balance is lower than
	// amount; no partial debit ever occurs. Returns the new balance.
	Debit(ctx context.Context, accountID string, amount int64, descriptor domain.ActivityDescriptor) (int64, error)

	// CurrentBalance re-reads the balance from the store.
	CurrentBalance(ctx context.Context, accountID string) (int64, error)

	// Reconcile compares the stored balance against the activity-log sum and
	// reports the result. Mismatches are logged as reconciliation errors.
	Reconcile(ctx context.Context, accountID string) (*dto.ReconciliationReport, error)
}
