package services

import (
	"context"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
	"github.com/saricycle/saricycle_backend/internal/dto"
)

// AccountSvcFacade manages participant accounts.
type AccountSvcFacade interface {
	// Register creates an account with a zero balance, appends the welcome
	// registration activity and initializes achievement progress.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.Account, error)

	// Authenticate verifies email/password credentials.
	Authenticate(ctx context.Context, email string, password string) (*domain.Account, error)

	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// UpdateAccount applies the non-nil profile fields to an existing
	// account. This is the admin path for edits and role changes, including
	// granting elevated roles.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updatedBy string) (*domain.Account, error)

	// IsEarlyAdopter reports whether the account was among the first
	// registrations, per the configured cutoff.
	IsEarlyAdopter(ctx context.Context, accountID string) (bool, error)
}
