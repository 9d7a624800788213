package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/saricycle/saricycle_backend/internal/apperrors"
	"github.com/saricycle/saricycle_backend/internal/core/domain"
	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
	"github.com/saricycle/saricycle_backend/internal/core/services"
	"github.com/saricycle/saricycle_backend/internal/dto"
)

// --- Mock LedgerSvc ---
type MockLedgerSvc struct {
	mock.Mock
}

func (m *MockLedgerSvc) Credit(ctx context.Context, accountID string, amount int64, descriptor domain.ActivityDescriptor) (int64, error) {
	args := m.Called(ctx, accountID, amount, descriptor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerSvc) Debit(ctx context.Context, accountID string, amount int64, descriptor domain.ActivityDescriptor) (int64, error) {
	args := m.Called(ctx, accountID, amount, descriptor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerSvc) CurrentBalance(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerSvc) Reconcile(ctx context.Context, accountID string) (*dto.ReconciliationReport, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReconciliationReport), args.Error(1)
}

// --- Mock AchievementSvc ---
type MockAchievementSvc struct {
	mock.Mock
}

func (m *MockAchievementSvc) InitializeForAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAchievementSvc) RecomputeAll(ctx context.Context, accountID string, metrics domain.DerivedMetrics) ([]domain.AchievementType, error) {
	args := m.Called(ctx, accountID, metrics)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AchievementType), args.Error(1)
}

func (m *MockAchievementSvc) RecomputeFromLog(ctx context.Context, accountID string) ([]domain.AchievementType, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AchievementType), args.Error(1)
}

func (m *MockAchievementSvc) ListProgress(ctx context.Context, accountID string) ([]domain.AchievementProgress, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AchievementProgress), args.Error(1)
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepositoryFacade = (*MockProductRepository)(nil)

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	args := m.Called(ctx, productID, userID, now)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// --- RedemptionService Test Suite ---
type RedemptionServiceTestSuite struct {
	suite.Suite
	mockLedger      *MockLedgerSvc
	mockAchievement *MockAchievementSvc
	mockProducts    *MockProductRepository
	service         *services.RedemptionService
	ctx             context.Context
	product         *domain.Product
}

func (s *RedemptionServiceTestSuite) SetupTest() {
	s.mockLedger = new(MockLedgerSvc)
	s.mockAchievement = new(MockAchievementSvc)
	s.mockProducts = new(MockProductRepository)
	s.service = services.NewRedemptionService(s.mockLedger, s.mockAchievement, s.mockProducts)
	s.ctx = context.Background()
	s.product = &domain.Product{
		ProductID:      "prod-1",
		Name:           "Rice 1kg",
		PointsRequired: 80,
		Stock:          5,
		IsActive:       true,
	}
}

func TestRedemptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RedemptionServiceTestSuite))
}

func (s *RedemptionServiceTestSuite) TestRedeem_Success() {
	s.mockProducts.On("FindProductByID", s.ctx, "prod-1").Return(s.product, nil).Once()
	s.mockLedger.On("CurrentBalance", s.ctx, "acc-1").Return(int64(100), nil).Once()
	s.mockLedger.On("Debit", s.ctx, "acc-1", int64(80), mock.MatchedBy(func(d domain.ActivityDescriptor) bool {
		return d.Type == domain.ActivityRedemption &&
			d.ActivityID != "" &&
			d.Metadata["productID"] == "prod-1"
	})).Return(int64(20), nil).Once()
	s.mockProducts.On("DecrementStock", s.ctx, "prod-1").Return(nil).Once()
	s.mockAchievement.On("RecomputeFromLog", s.ctx, "acc-1").Return([]domain.AchievementType{}, nil).Once()

	result, err := s.service.Redeem(s.ctx, "acc-1", "prod-1")

	s.Require().NoError(err)
	s.Equal("prod-1", result.ProductID)
	s.Equal("Rice 1kg", result.ProductName)
	s.Equal(int64(80), result.PointsSpent)
	s.Equal(int64(20), result.NewBalance)
	s.NotEmpty(result.ActivityID)
	s.mockLedger.AssertExpectations(s.T())
	s.mockProducts.AssertExpectations(s.T())
}

func (s *RedemptionServiceTestSuite) TestRedeem_InsufficientBalanceShortCircuits() {
	s.mockProducts.On("FindProductByID", s.ctx, "prod-1").Return(s.product, nil).Once()
	s.mockLedger.On("CurrentBalance", s.ctx, "acc-1").Return(int64(79), nil).Once()

	_, err := s.service.Redeem(s.ctx, "acc-1", "prod-1")

	s.ErrorIs(err, apperrors.ErrInsufficientBalance)
	// No debit, no stock change: the account is untouched.
	s.mockLedger.AssertNotCalled(s.T(), "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockProducts.AssertNotCalled(s.T(), "DecrementStock", mock.Anything, mock.Anything)
}

func (s *RedemptionServiceTestSuite) TestRedeem_OutOfStock() {
	empty := *s.product
	empty.Stock = 0
	s.mockProducts.On("FindProductByID", s.ctx, "prod-1").Return(&empty, nil).Once()

	_, err := s.service.Redeem(s.ctx, "acc-1", "prod-1")

	s.ErrorIs(err, apperrors.ErrOutOfStock)
	s.mockLedger.AssertNotCalled(s.T(), "CurrentBalance", mock.Anything, mock.Anything)
}

func (s *RedemptionServiceTestSuite) TestRedeem_InactiveProduct() {
	inactive := *s.product
	inactive.IsActive = false
	s.mockProducts.On("FindProductByID", s.ctx, "prod-1").Return(&inactive, nil).Once()

	_, err := s.service.Redeem(s.ctx, "acc-1", "prod-1")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RedemptionServiceTestSuite) TestRedeem_UnknownProduct() {
	s.mockProducts.On("FindProductByID", s.ctx, "missing").
		Return(nil, fmt.Errorf("%w: product missing", apperrors.ErrNotFound)).Once()

	_, err := s.service.Redeem(s.ctx, "acc-1", "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RedemptionServiceTestSuite) TestRedeem_ConcurrentSpendCaughtByDebit() {
	// The explicit check passed but another spend landed first; the atomic
	// debit is the authoritative guard and fails the redemption cleanly.
	s.mockProducts.On("FindProductByID", s.ctx, "prod-1").Return(s.product, nil).Once()
	s.mockLedger.On("CurrentBalance", s.ctx, "acc-1").Return(int64(100), nil).Once()
	s.mockLedger.On("Debit", s.ctx, "acc-1", int64(80), mock.Anything).
		Return(int64(0), fmt.Errorf("%w: short", apperrors.ErrInsufficientBalance)).Once()

	_, err := s.service.Redeem(s.ctx, "acc-1", "prod-1")

	s.ErrorIs(err, apperrors.ErrInsufficientBalance)
	s.mockProducts.AssertNotCalled(s.T(), "DecrementStock", mock.Anything, mock.Anything)
}

func (s *RedemptionServiceTestSuite) TestRedeem_StockDecrementFailureDoesNotFailRedemption() {
	s.mockProducts.On("FindProductByID", s.ctx, "prod-1").Return(s.product, nil).Once()
	s.mockLedger.On("CurrentBalance", s.ctx, "acc-1").Return(int64(100), nil).Once()
	s.mockLedger.On("Debit", s.ctx, "acc-1", int64(80), mock.Anything).Return(int64(20), nil).Once()
	s.mockProducts.On("DecrementStock", s.ctx, "prod-1").
		Return(fmt.Errorf("%w: gone", apperrors.ErrOutOfStock)).Once()
	s.mockAchievement.On("RecomputeFromLog", s.ctx, "acc-1").Return([]domain.AchievementType{}, nil).Once()

	// The debit committed; the result stands and the inconsistency is logged.
	result, err := s.service.Redeem(s.ctx, "acc-1", "prod-1")

	s.Require().NoError(err)
	s.Equal(int64(20), result.NewBalance)
}
