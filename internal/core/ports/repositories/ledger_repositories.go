package repositories

import (
	"context"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
)

// LedgerRepositoryFacade is the store adapter for per-account point balances.
//
// Balance changes are atomic conditional increments at the store level, never
// read-modify-write: two concurrent operations against the same account can
// never lose an update, and a debit that would drive the balance negative
// affects zero rows. The activity record is written in the same store
// transaction as the balance change, so the log and the balance cannot
// diverge through a partial failure.
type LedgerRepositoryFacade interface {
	// ReadBalance returns the current balance for the account. It always hits
	// the store; callers needing freshness must not cache the result.
	ReadBalance(ctx context.Context, accountID string) (int64, error)

	// ApplyDelta atomically adjusts the balance by record.PointsDelta and
	// appends the record, both in one transaction. A negative delta that
	// exceeds the current balance fails the whole operation with
	// apperrors.ErrInsufficientBalance and performs no write.
	// Returns the balance after the change.
	ApplyDelta(ctx context.Context, record domain.ActivityRecord) (int64, error)

	// SumActivityDeltas recomputes the balance from the activity-log sum.
	// This is the audit path for reconciliation checks.
	SumActivityDeltas(ctx context.Context, accountID string) (int64, error)
}
