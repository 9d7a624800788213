package repositories

import (
	"context"
	"time"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByEmail retrieves an account by its unique email.
	FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// CountAccountsRegisteredBefore returns how many accounts were created
	// strictly before the given instant. Used for early-adopter ranking.
	CountAccountsRegisteredBefore(ctx context.Context, t time.Time) (int64, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's profile details. The balance
	// column is never touched here; only ledger operations move it.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
