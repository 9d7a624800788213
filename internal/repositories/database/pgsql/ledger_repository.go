package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saricycle/saricycle_backend/internal/apperrors"
	"github.com/saricycle/saricycle_backend/internal/core/domain"
	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
	"github.com/saricycle/saricycle_backend/internal/middleware"
	"github.com/saricycle/saricycle_backend/internal/utils/mapping"
)

// PgxLedgerRepository is the authoritative store for per-account balances.
// All balance mutation goes through conditional increments executed by the
// database, so concurrent operations serialize on the account row instead of
// racing through read-modify-write cycles in the application.
type PgxLedgerRepository struct {
	BaseRepository
	notifier portsrepo.Notifier
}

func newPgxLedgerRepository(pool *pgxpool.Pool, timeout time.Duration, notifier portsrepo.Notifier) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository{Pool: pool, Timeout: timeout}, notifier}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// ReadBalance fetches the stored balance for an account.
func (r *PgxLedgerRepository) ReadBalance(ctx context.Context, accountID string) (int64, error) {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	var balance int64
	query := `SELECT balance FROM accounts WHERE account_id = $1;`
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: account %s not found", apperrors.ErrNotFound, accountID)
		}
		return 0, mapStoreError(fmt.Sprintf("failed to read balance for account %s", accountID), err)
	}
	return balance, nil
}

// ApplyDelta adjusts the balance by record.PointsDelta and appends the record
// in one transaction. The balance update is a conditional increment: the WHERE
// clause rejects any delta that would drive the balance negative, so the
// check and the write are a single atomic statement and no interleaving of
// concurrent callers can overdraw the account.
func (r *PgxLedgerRepository) ApplyDelta(ctx context.Context, record domain.ActivityRecord) (int64, error) {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Rollback(context.WithoutCancel(ctx), tx) }()

	newBalance, err := applyDeltaTx(ctx, tx, record)
	if err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}

	// Change notification is best effort; the committed write stands either way.
	if r.notifier != nil {
		if perr := r.notifier.Publish(ctx, portsrepo.ActivityChannel(record.AccountID)); perr != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("failed to publish activity notification", "accountID", record.AccountID, "error", perr)
		}
	}

	return newBalance, nil
}

// applyDeltaTx runs the conditional balance increment plus the activity insert
// inside an existing transaction. Shared with the achievement repository for
// reward grants.
func applyDeltaTx(ctx context.Context, tx pgx.Tx, record domain.ActivityRecord) (int64, error) {
	m := mapping.ToModelActivity(record)

	var newBalance int64
	updateQuery := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3
		WHERE account_id = $1 AND balance + $2 >= 0
		RETURNING balance;
	`
	err := tx.QueryRow(ctx, updateQuery, m.AccountID, m.PointsDelta, m.CreatedAt).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Zero rows means either the account is missing or the delta
			// would overdraw it. Distinguish inside the same transaction.
			var exists bool
			checkErr := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_id = $1);`, m.AccountID).Scan(&exists)
			if checkErr != nil {
				return 0, mapStoreError(fmt.Sprintf("failed to check account %s", m.AccountID), checkErr)
			}
			if !exists {
				return 0, fmt.Errorf("%w: account %s not found", apperrors.ErrNotFound, m.AccountID)
			}
			return 0, fmt.Errorf("%w: delta %d would overdraw account %s", apperrors.ErrInsufficientBalance, m.PointsDelta, m.AccountID)
		}
		return 0, mapStoreError(fmt.Sprintf("failed to apply delta to account %s", m.AccountID), err)
	}

	insertQuery := `
		INSERT INTO activities (activity_id, account_id, activity_type, title, description, points_delta, category, metadata, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.ActivityID,
		m.AccountID,
		m.Type,
		m.Title,
		m.Description,
		m.PointsDelta,
		m.Category,
		m.Metadata,
		m.OccurredAt,
		m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: activity %s already exists", apperrors.ErrDuplicate, m.ActivityID)
		}
		return 0, mapStoreError(fmt.Sprintf("failed to append activity %s", m.ActivityID), err)
	}

	return newBalance, nil
}

// SumActivityDeltas recomputes the balance from the log. Used by the
// reconciliation audit path only.
func (r *PgxLedgerRepository) SumActivityDeltas(ctx context.Context, accountID string) (int64, error) {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	var sum int64
	query := `SELECT COALESCE(SUM(points_delta), 0) FROM activities WHERE account_id = $1;`
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&sum); err != nil {
		return 0, mapStoreError(fmt.Sprintf("failed to sum activity deltas for account %s", accountID), err)
	}
	return sum, nil
}
