package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/saricycle/saricycle_backend/internal/apperrors"
	"github.com/saricycle/saricycle_backend/internal/core/domain"
	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
	"github.com/saricycle/saricycle_backend/internal/core/services"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) ReadBalance(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) ApplyDelta(ctx context.Context, record domain.ActivityRecord) (int64, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) SumActivityDeltas(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

// --- LedgerService Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockLedgerRepository
	service  *services.LedgerService
	ctx      context.Context
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockLedgerRepository)
	s.service = services.NewLedgerService(s.mockRepo)
	s.ctx = context.Background()
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) TestCredit_Success() {
	descriptor := domain.ActivityDescriptor{Type: domain.ActivityRecycling, Title: "Recycled plastics"}

	s.mockRepo.On("ApplyDelta", s.ctx, mock.MatchedBy(func(rec domain.ActivityRecord) bool {
		return rec.AccountID == "acc-1" &&
			rec.PointsDelta == 50 &&
			rec.Type == domain.ActivityRecycling &&
			rec.ActivityID != "" &&
			!rec.CreatedAt.IsZero()
	})).Return(int64(150), nil).Once()

	newBalance, err := s.service.Credit(s.ctx, "acc-1", 50, descriptor)

	s.NoError(err)
	s.Equal(int64(150), newBalance)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestCredit_RejectsNonPositiveAmount() {
	descriptor := domain.ActivityDescriptor{Type: domain.ActivityRecycling, Title: "x"}

	for _, amount := range []int64{0, -10} {
		_, err := s.service.Credit(s.ctx, "acc-1", amount, descriptor)
		s.ErrorIs(err, apperrors.ErrInvalidAmount)
	}
	s.mockRepo.AssertNotCalled(s.T(), "ApplyDelta", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCredit_RejectsUnknownActivityType() {
	_, err := s.service.Credit(s.ctx, "acc-1", 10, domain.ActivityDescriptor{Type: "mystery", Title: "x"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestCredit_RejectsRedemptionType() {
	_, err := s.service.Credit(s.ctx, "acc-1", 10, domain.ActivityDescriptor{Type: domain.ActivityRedemption, Title: "x"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestDebit_Success() {
	descriptor := domain.ActivityDescriptor{Type: domain.ActivityRedemption, Title: "Redeemed: Rice 1kg"}

	s.mockRepo.On("ApplyDelta", s.ctx, mock.MatchedBy(func(rec domain.ActivityRecord) bool {
		return rec.PointsDelta == -80 && rec.Type == domain.ActivityRedemption
	})).Return(int64(20), nil).Once()

	newBalance, err := s.service.Debit(s.ctx, "acc-1", 80, descriptor)

	s.NoError(err)
	s.Equal(int64(20), newBalance)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestDebit_InsufficientBalancePropagates() {
	descriptor := domain.ActivityDescriptor{Type: domain.ActivityRedemption, Title: "x"}

	s.mockRepo.On("ApplyDelta", s.ctx, mock.Anything).
		Return(int64(0), fmt.Errorf("%w: short", apperrors.ErrInsufficientBalance)).Once()

	_, err := s.service.Debit(s.ctx, "acc-1", 500, descriptor)
	s.ErrorIs(err, apperrors.ErrInsufficientBalance)
}

func (s *LedgerServiceTestSuite) TestDebit_StoreUnavailablePropagates() {
	descriptor := domain.ActivityDescriptor{Type: domain.ActivityRedemption, Title: "x"}

	s.mockRepo.On("ApplyDelta", s.ctx, mock.Anything).
		Return(int64(0), fmt.Errorf("%w: timeout", apperrors.ErrStoreUnavailable)).Once()

	_, err := s.service.Debit(s.ctx, "acc-1", 5, descriptor)
	s.ErrorIs(err, apperrors.ErrStoreUnavailable)
}

func (s *LedgerServiceTestSuite) TestDebit_UsesDescriptorActivityID() {
	descriptor := domain.ActivityDescriptor{ActivityID: "fixed-id", Type: domain.ActivityRedemption, Title: "x"}

	s.mockRepo.On("ApplyDelta", s.ctx, mock.MatchedBy(func(rec domain.ActivityRecord) bool {
		return rec.ActivityID == "fixed-id"
	})).Return(int64(0), nil).Once()

	_, err := s.service.Debit(s.ctx, "acc-1", 10, descriptor)
	s.NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestReconcile_Consistent() {
	s.mockRepo.On("ReadBalance", s.ctx, "acc-1").Return(int64(70), nil).Once()
	s.mockRepo.On("SumActivityDeltas", s.ctx, "acc-1").Return(int64(70), nil).Once()

	report, err := s.service.Reconcile(s.ctx, "acc-1")

	s.NoError(err)
	s.True(report.Consistent)
	s.Equal(int64(70), report.StoredBalance)
	s.Equal(int64(70), report.LedgerSum)
}

func (s *LedgerServiceTestSuite) TestReconcile_Mismatch() {
	s.mockRepo.On("ReadBalance", s.ctx, "acc-1").Return(int64(70), nil).Once()
	s.mockRepo.On("SumActivityDeltas", s.ctx, "acc-1").Return(int64(65), nil).Once()

	report, err := s.service.Reconcile(s.ctx, "acc-1")

	s.NoError(err)
	s.False(report.Consistent)
}

// --- Concurrency: the conditional increment never loses an update and never
// lets the balance go negative. fakeLedgerStore reproduces the store's
// semantics: a single atomic check-and-apply per call.
type fakeLedgerStore struct {
	mu      sync.Mutex
	balance int64
	log     []domain.ActivityRecord
}

var _ portsrepo.LedgerRepositoryFacade = (*fakeLedgerStore)(nil)

func (f *fakeLedgerStore) ReadBalance(_ context.Context, _ string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balance, nil
}

func (f *fakeLedgerStore) ApplyDelta(_ context.Context, record domain.ActivityRecord) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.balance+record.PointsDelta < 0 {
		return 0, fmt.Errorf("%w: delta %d", apperrors.ErrInsufficientBalance, record.PointsDelta)
	}
	f.balance += record.PointsDelta
	f.log = append(f.log, record)
	return f.balance, nil
}

func (f *fakeLedgerStore) SumActivityDeltas(_ context.Context, _ string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum int64
	for _, rec := range f.log {
		sum += rec.PointsDelta
	}
	return sum, nil
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	store := &fakeLedgerStore{balance: 100}
	svc := services.NewLedgerService(store)
	ctx := context.Background()
	descriptor := domain.ActivityDescriptor{Type: domain.ActivityRedemption, Title: "Redeemed: item"}

	// Two concurrent 80-point debits against a 100-point balance: exactly
	// one must succeed.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Debit(ctx, "acc-1", 80, descriptor)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
		}
	}
	assert.Equal(t, 1, succeeded)

	balance, err := store.ReadBalance(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, int64(20), balance)
	assert.Len(t, store.log, 1)
}

func TestConcurrentCreditsAllLand(t *testing.T) {
	store := &fakeLedgerStore{}
	svc := services.NewLedgerService(store)
	ctx := context.Background()
	descriptor := domain.ActivityDescriptor{Type: domain.ActivityRecycling, Title: "Recycled"}

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Credit(ctx, "acc-1", 10, descriptor)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	balance, err := store.ReadBalance(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, int64(workers*10), balance)

	// The stored balance always equals the activity-log sum.
	sum, err := store.SumActivityDeltas(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, balance, sum)
}
