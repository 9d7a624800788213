package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saricycle/saricycle_backend/internal/apperrors"
	"github.com/saricycle/saricycle_backend/internal/core/domain"
	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/dto"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

// LedgerService maintains per-account point balances. It never computes a new
// balance in application code: every mutation is delegated to the store
// adapter's atomic conditional increment, with the activity record appended
// in the same transaction.
type LedgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo}
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// buildRecord assembles the immutable activity record for one ledger
// operation. OccurredAt falls back to now; CreatedAt is always now and is the
// ordering the ledger applies changes in.
func buildRecord(accountID string, delta int64, d domain.ActivityDescriptor) domain.ActivityRecord {
	now := time.Now()
	occurredAt := d.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}
	activityID := d.ActivityID
	if activityID == "" {
		activityID = uuid.NewString()
	}
	return domain.ActivityRecord{
		ActivityID:  activityID,
		AccountID:   accountID,
		Type:        d.Type,
		Title:       d.Title,
		Description: d.Description,
		PointsDelta: delta,
		Category:    d.Category,
		Metadata:    d.Metadata,
		OccurredAt:  occurredAt,
		CreatedAt:   now,
	}
}

// Credit adds amount points to the account.
func (s *LedgerService) Credit(ctx context.Context, accountID string, amount int64, descriptor domain.ActivityDescriptor) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount <= 0 {
		return 0, fmt.Errorf("%w: credit amount must be positive, got %d", apperrors.ErrInvalidAmount, amount)
	}
	if !descriptor.Type.IsValid() {
		return 0, fmt.Errorf("%w: unknown activity type %q", apperrors.ErrValidation, descriptor.Type)
	}
	if descriptor.Type == domain.ActivityRedemption {
		return 0, fmt.Errorf("%w: redemption records cannot carry a credit", apperrors.ErrValidation)
	}

	record := buildRecord(accountID, amount, descriptor)
	newBalance, err := s.ledgerRepo.ApplyDelta(ctx, record)
	if err != nil {
		logger.Error("failed to credit account", "accountID", accountID, "amount", amount, "error", err)
		return 0, err
	}

	logger.Info("credited account", "accountID", accountID, "amount", amount, "activityID", record.ActivityID, "newBalance", newBalance)
	return newBalance, nil
}

// Debit removes amount points from the account. The conditional increment in
// the store rejects the whole operation when the balance is short, so a
// failed debit writes nothing.
func (s *LedgerService) Debit(ctx context.Context, accountID string, amount int64, descriptor domain.ActivityDescriptor) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount <= 0 {
		return 0, fmt.Errorf("%w: debit amount must be positive, got %d", apperrors.ErrInvalidAmount, amount)
	}
	if !descriptor.Type.IsValid() {
		return 0, fmt.Errorf("%w: unknown activity type %q", apperrors.ErrValidation, descriptor.Type)
	}

	record := buildRecord(accountID, -amount, descriptor)
	newBalance, err := s.ledgerRepo.ApplyDelta(ctx, record)
	if err != nil {
		logger.Warn("failed to debit account", "accountID", accountID, "amount", amount, "error", err)
		return 0, err
	}

	logger.Info("debited account", "accountID", accountID, "amount", amount, "activityID", record.ActivityID, "newBalance", newBalance)
	return newBalance, nil
}

// CurrentBalance re-reads the balance from the store.
func (s *LedgerService) CurrentBalance(ctx context.Context, accountID string) (int64, error) {
	return s.ledgerRepo.ReadBalance(ctx, accountID)
}

// Reconcile audits the stored balance against the activity-log sum. A
// mismatch is logged at error level; the report is returned either way so
// operators can inspect both numbers.
func (s *LedgerService) Reconcile(ctx context.Context, accountID string) (*dto.ReconciliationReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stored, err := s.ledgerRepo.ReadBalance(ctx, accountID)
	if err != nil {
		return nil, err
	}
	sum, err := s.ledgerRepo.SumActivityDeltas(ctx, accountID)
	if err != nil {
		return nil, err
	}

	report := &dto.ReconciliationReport{
		AccountID:     accountID,
		StoredBalance: stored,
		LedgerSum:     sum,
		Consistent:    stored == sum,
		CheckedAt:     time.Now(),
	}
	if !report.Consistent {
		logger.Error("balance reconciliation mismatch", "accountID", accountID, "storedBalance", stored, "ledgerSum", sum)
	}
	return report, nil
}
