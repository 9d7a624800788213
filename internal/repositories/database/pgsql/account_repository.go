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
	"github.com/saricycle/saricycle_backend/internal/models"
	"github.com/saricycle/saricycle_backend/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool, timeout time.Duration) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository{Pool: pool, Timeout: timeout}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, email, username, role, address, balance, password_hash, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Email,
		&m.Username,
		&m.Role,
		&m.Address,
		&m.Balance,
		&m.PasswordHash,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Email,
		m.Username,
		m.Role,
		m.Address,
		m.Balance,
		m.PasswordHash,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account with email %s already exists", apperrors.ErrDuplicate, m.Email)
		}
		return mapStoreError(fmt.Sprintf("failed to save account %s", m.AccountID), err)
	}
	return nil
}

// UpdateAccount updates profile details. The balance column is deliberately
// absent from the SET list; only ledger operations move it.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET username = $2, address = $3, role = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Username,
		m.Address,
		m.Role,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapStoreError(fmt.Sprintf("failed to update account %s", m.AccountID), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s not found", apperrors.ErrNotFound, m.AccountID)
	}
	return nil
}

// FindAccountByID retrieves a single account by ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrNotFound, accountID)
		}
		return nil, mapStoreError(fmt.Sprintf("failed to find account %s", accountID), err)
	}

	acct := mapping.ToDomainAccount(m)
	return &acct, nil
}

// FindAccountByEmail retrieves a single account by its unique email.
func (r *PgxAccountRepository) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account with email %s not found", apperrors.ErrNotFound, email)
		}
		return nil, mapStoreError("failed to find account by email", err)
	}

	acct := mapping.ToDomainAccount(m)
	return &acct, nil
}

// ListAccounts retrieves accounts ordered by registration time.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY created_at ASC, account_id ASC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapStoreError("failed to list accounts", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("error iterating account rows", err)
	}
	return accounts, nil
}

// CountAccountsRegisteredBefore counts accounts created strictly before t.
func (r *PgxAccountRepository) CountAccountsRegisteredBefore(ctx context.Context, t time.Time) (int64, error) {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	var count int64
	query := `SELECT COUNT(*) FROM accounts WHERE created_at < $1;`
	if err := r.Pool.QueryRow(ctx, query, t).Scan(&count); err != nil {
		return 0, mapStoreError("failed to count registered accounts", err)
	}
	return count, nil
}
