package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/saricycle/saricycle_backend/internal/apperrors"
	"github.com/saricycle/saricycle_backend/internal/core/domain"
	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/dto"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

// AccountService manages participant accounts. Registration seeds everything
// an account needs downstream: zero balance, the welcome log entry and the
// full set of achievement progress records.
type AccountService struct {
	accountRepo       portsrepo.AccountRepositoryFacade
	activitySvc       portssvc.ActivitySvcFacade
	achievementSvc    portssvc.AchievementSvcFacade
	earlyAdopterLimit int64
}

func NewAccountService(
	accountRepo portsrepo.AccountRepositoryFacade,
	activitySvc portssvc.ActivitySvcFacade,
	achievementSvc portssvc.AchievementSvcFacade,
	earlyAdopterLimit int64,
) *AccountService {
	return &AccountService{
		accountRepo:       accountRepo,
		activitySvc:       activitySvc,
		achievementSvc:    achievementSvc,
		earlyAdopterLimit: earlyAdopterLimit,
	}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// Register creates an account with a zero balance. The welcome activity and
// achievement initialization are best effort after the account write: the
// achievement recompute path self-heals missing progress rows later.
func (s *AccountService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	// Self-registration never grants elevated roles; an admin assigns them
	// later through UpdateAccount.
	if role != domain.RoleUser {
		return nil, fmt.Errorf("%w: role %q requires admin assignment", apperrors.ErrForbidden, role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		Email:        req.Email,
		Username:     req.Username,
		Role:         role,
		Address:      req.Address,
		Balance:      0,
		PasswordHash: string(hashed),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "registration",
			LastUpdatedAt: now,
			LastUpdatedBy: "registration",
		},
	}
	account.CreatedBy = account.AccountID
	account.LastUpdatedBy = account.AccountID

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	if _, err := s.activitySvc.AppendInformational(ctx, account.AccountID, domain.ActivityDescriptor{
		Type:        domain.ActivityRegistration,
		Title:       "Welcome to SariCycle!",
		Description: "Account created. Start recycling to earn points.",
		Category:    "system",
	}); err != nil {
		logger.Warn("failed to append welcome activity", "accountID", account.AccountID, "error", err)
	}

	if err := s.achievementSvc.InitializeForAccount(ctx, account.AccountID); err != nil {
		logger.Warn("failed to initialize achievement progress", "accountID", account.AccountID, "error", err)
	}

	logger.Info("registered account", "accountID", account.AccountID, "role", role)
	return &account, nil
}

// Authenticate verifies email/password credentials. Both an unknown email and
// a wrong password surface as the same forbidden error.
func (s *AccountService) Authenticate(ctx context.Context, email string, password string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	return account, nil
}

// GetAccountByID retrieves a single account.
func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// UpdateAccount applies the non-nil profile fields and persists the result.
// Role changes go through here, which makes it the only path to the admin and
// barangay roles.
func (s *AccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updatedBy string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		account.Username = *req.Username
	}
	if req.Address != nil {
		account.Address = *req.Address
	}
	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, *req.Role)
		}
		account.Role = *req.Role
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = updatedBy

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, err
	}

	logger.Info("updated account", "accountID", accountID, "updatedBy", updatedBy)
	return account, nil
}

// ListAccounts retrieves a page of accounts ordered by registration time.
func (s *AccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

// IsEarlyAdopter reports whether the account's registration rank is within
// the configured early-adopter cutoff.
func (s *AccountService) IsEarlyAdopter(ctx context.Context, accountID string) (bool, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	rank, err := s.accountRepo.CountAccountsRegisteredBefore(ctx, account.CreatedAt)
	if err != nil {
		return false, err
	}
	return rank < s.earlyAdopterLimit, nil
}
