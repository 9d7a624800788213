package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/saricycle/saricycle_backend/internal/apperrors"
	"github.com/saricycle/saricycle_backend/internal/core/domain"
	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
	"github.com/saricycle/saricycle_backend/internal/core/services"
)

// fakeAchievementStore reproduces the store's unlock semantics in memory:
// row-locked saves, unlock fields written only on the locked-to-unlocked
// transition and grants applied at most once.
type fakeAchievementStore struct {
	mu     sync.Mutex
	rows   map[string]domain.AchievementProgress // accountID + "/" + type
	grants []domain.ActivityRecord
}

var _ portsrepo.AchievementRepositoryFacade = (*fakeAchievementStore)(nil)

func newFakeAchievementStore() *fakeAchievementStore {
	return &fakeAchievementStore{rows: make(map[string]domain.AchievementProgress)}
}

func progressKey(accountID string, t domain.AchievementType) string {
	return accountID + "/" + string(t)
}

func (f *fakeAchievementStore) InitializeProgress(_ context.Context, progress []domain.AchievementProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range progress {
		key := progressKey(p.AccountID, p.Type)
		if _, exists := f.rows[key]; !exists {
			f.rows[key] = p
		}
	}
	return nil
}

func (f *fakeAchievementStore) FindProgressByAccountID(_ context.Context, accountID string) ([]domain.AchievementProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.AchievementProgress, 0)
	for _, p := range f.rows {
		if p.AccountID == accountID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeAchievementStore) SaveProgress(_ context.Context, progress domain.AchievementProgress, grant *portsrepo.RewardGrant) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := progressKey(progress.AccountID, progress.Type)
	stored, ok := f.rows[key]
	if !ok {
		return false, fmt.Errorf("%w: no progress row", apperrors.ErrNotFound)
	}

	if stored.Unlocked {
		stored.Current = progress.Current
		stored.Percentage = progress.Percentage
		stored.LastUpdatedAt = progress.LastUpdatedAt
		f.rows[key] = stored
		return false, nil
	}

	f.rows[key] = progress
	if progress.Unlocked && grant != nil {
		f.grants = append(f.grants, grant.BonusActivity)
	}
	return progress.Unlocked, nil
}

// --- Mock ActivityReader ---
type MockActivityReader struct {
	mock.Mock
}

var _ portsrepo.ActivityReader = (*MockActivityReader)(nil)

func (m *MockActivityReader) ListActivitiesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.ActivityRecord, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.ActivityRecord), nil, args.Error(2)
}

func (m *MockActivityReader) FindAllActivitiesByAccountID(ctx context.Context, accountID string) ([]domain.ActivityRecord, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityRecord), args.Error(1)
}

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountReader)(nil)

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountReader) CountAccountsRegisteredBefore(ctx context.Context, t time.Time) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

// --- AchievementService Test Suite ---
type AchievementServiceTestSuite struct {
	suite.Suite
	store            *fakeAchievementStore
	mockActivityRepo *MockActivityReader
	mockAccountRepo  *MockAccountReader
	service          *services.AchievementService
	ctx              context.Context
}

func (s *AchievementServiceTestSuite) SetupTest() {
	s.store = newFakeAchievementStore()
	s.mockActivityRepo = new(MockActivityReader)
	s.mockAccountRepo = new(MockAccountReader)
	calculator := services.NewMetricsCalculator("0.1", 30)
	s.service = services.NewAchievementService(s.store, s.mockActivityRepo, s.mockAccountRepo, calculator, 100)
	s.ctx = context.Background()
}

func TestAchievementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AchievementServiceTestSuite))
}

func (s *AchievementServiceTestSuite) TestInitializeForAccount_Idempotent() {
	s.Require().NoError(s.service.InitializeForAccount(s.ctx, "acc-1"))

	progress, err := s.store.FindProgressByAccountID(s.ctx, "acc-1")
	s.Require().NoError(err)
	s.Len(progress, len(domain.AllAchievementTypes()))
	for _, p := range progress {
		s.Zero(p.Current)
		s.False(p.Unlocked)
		s.Nil(p.UnlockedAt)
	}

	// A second call changes nothing.
	s.Require().NoError(s.service.InitializeForAccount(s.ctx, "acc-1"))
	again, err := s.store.FindProgressByAccountID(s.ctx, "acc-1")
	s.Require().NoError(err)
	s.Len(again, len(domain.AllAchievementTypes()))
}

func (s *AchievementServiceTestSuite) TestRecomputeAll_UnlocksAtThreshold() {
	metrics := domain.DerivedMetrics{TotalPointsEarned: 1000}

	newlyUnlocked, err := s.service.RecomputeAll(s.ctx, "acc-1", metrics)
	s.Require().NoError(err)
	s.Equal([]domain.AchievementType{domain.EcoWarrior}, newlyUnlocked)

	// The reward grant carries the definition's bonus as a bonus-type record.
	s.Require().Len(s.store.grants, 1)
	grant := s.store.grants[0]
	s.Equal(domain.ActivityBonus, grant.Type)
	s.Equal(int64(100), grant.PointsDelta)
	s.Equal("acc-1", grant.AccountID)

	row := s.store.rows[progressKey("acc-1", domain.EcoWarrior)]
	s.True(row.Unlocked)
	s.NotNil(row.UnlockedAt)
	s.True(row.RewardGranted)
	s.Equal(100, row.Percentage)
}

func (s *AchievementServiceTestSuite) TestRecomputeAll_IdempotentAcrossCalls() {
	metrics := domain.DerivedMetrics{TotalPointsEarned: 1500}

	first, err := s.service.RecomputeAll(s.ctx, "acc-1", metrics)
	s.Require().NoError(err)
	s.Require().Equal([]domain.AchievementType{domain.EcoWarrior}, first)
	unlockedAt := s.store.rows[progressKey("acc-1", domain.EcoWarrior)].UnlockedAt
	s.Require().NotNil(unlockedAt)

	second, err := s.service.RecomputeAll(s.ctx, "acc-1", metrics)
	s.Require().NoError(err)
	s.Empty(second)

	// One grant total and the original unlock timestamp survives.
	s.Len(s.store.grants, 1)
	s.Equal(unlockedAt, s.store.rows[progressKey("acc-1", domain.EcoWarrior)].UnlockedAt)
}

func (s *AchievementServiceTestSuite) TestRecomputeAll_ProgressDipNeverRelocks() {
	unlock := domain.DerivedMetrics{RecyclingStreak: 7, ConsecutiveDays: 7}
	first, err := s.service.RecomputeAll(s.ctx, "acc-1", unlock)
	s.Require().NoError(err)
	s.Contains(first, domain.StreakChampion)

	// The streak collapses; the unlock is terminal.
	second, err := s.service.RecomputeAll(s.ctx, "acc-1", domain.DerivedMetrics{})
	s.Require().NoError(err)
	s.Empty(second)

	row := s.store.rows[progressKey("acc-1", domain.StreakChampion)]
	s.True(row.Unlocked)
	s.Zero(row.Current)
}

func (s *AchievementServiceTestSuite) TestRecomputeAll_PercentageClamped() {
	metrics := domain.DerivedMetrics{TotalPointsEarned: 500}
	_, err := s.service.RecomputeAll(s.ctx, "acc-1", metrics)
	s.Require().NoError(err)

	s.Equal(50, s.store.rows[progressKey("acc-1", domain.EcoWarrior)].Percentage)
	s.Equal(100, s.store.rows[progressKey("acc-1", domain.SmartSpender)].Percentage)
}

func (s *AchievementServiceTestSuite) TestRecomputeFromLog_BonusRecordsExcluded() {
	now := time.Now()
	// 600 earned from recycling plus a 500 bonus: the bonus must not push
	// total earned over the 1000 threshold.
	log := []domain.ActivityRecord{
		{ActivityID: "a1", AccountID: "acc-1", Type: domain.ActivityRecycling, PointsDelta: 600, OccurredAt: now, CreatedAt: now},
		{ActivityID: "a2", AccountID: "acc-1", Type: domain.ActivityBonus, PointsDelta: 500, OccurredAt: now, CreatedAt: now},
	}
	account := &domain.Account{AccountID: "acc-1", AuditFields: domain.AuditFields{CreatedAt: now}}

	s.mockActivityRepo.On("FindAllActivitiesByAccountID", s.ctx, "acc-1").Return(log, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", s.ctx, "acc-1").Return(account, nil).Once()
	s.mockAccountRepo.On("CountAccountsRegisteredBefore", s.ctx, now).Return(int64(500), nil).Once()

	newlyUnlocked, err := s.service.RecomputeFromLog(s.ctx, "acc-1")
	s.Require().NoError(err)
	s.NotContains(newlyUnlocked, domain.EcoWarrior)

	row := s.store.rows[progressKey("acc-1", domain.EcoWarrior)]
	s.Equal(int64(600), row.Current)
	s.False(row.Unlocked)
}

func (s *AchievementServiceTestSuite) TestRecomputeFromLog_EarlyAdopterUnlocksGreenPioneer() {
	now := time.Now()
	account := &domain.Account{AccountID: "acc-1", AuditFields: domain.AuditFields{CreatedAt: now}}

	s.mockActivityRepo.On("FindAllActivitiesByAccountID", s.ctx, "acc-1").Return([]domain.ActivityRecord{}, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", s.ctx, "acc-1").Return(account, nil).Once()
	s.mockAccountRepo.On("CountAccountsRegisteredBefore", s.ctx, now).Return(int64(42), nil).Once()

	newlyUnlocked, err := s.service.RecomputeFromLog(s.ctx, "acc-1")
	s.Require().NoError(err)
	s.Contains(newlyUnlocked, domain.GreenPioneer)
}

func (s *AchievementServiceTestSuite) TestListProgress_Ordering() {
	now := time.Now()
	earlier := now.Add(-time.Hour)

	s.Require().NoError(s.service.InitializeForAccount(s.ctx, "acc-1"))

	setRow := func(t domain.AchievementType, mutate func(*domain.AchievementProgress)) {
		row := s.store.rows[progressKey("acc-1", t)]
		mutate(&row)
		s.store.rows[progressKey("acc-1", t)] = row
	}
	setRow(domain.EcoWarrior, func(p *domain.AchievementProgress) {
		p.Unlocked = true
		p.UnlockedAt = &earlier
	})
	setRow(domain.SmartSpender, func(p *domain.AchievementProgress) {
		p.Unlocked = true
		p.UnlockedAt = &now
	})
	setRow(domain.RecyclingMaster, func(p *domain.AchievementProgress) { p.Percentage = 80 })
	setRow(domain.LearningEnthusiast, func(p *domain.AchievementProgress) { p.Percentage = 30 })

	progress, err := s.service.ListProgress(s.ctx, "acc-1")
	s.Require().NoError(err)
	s.Require().Len(progress, len(domain.AllAchievementTypes()))

	// Most recent unlock first, then locked rows by percentage descending.
	s.Equal(domain.SmartSpender, progress[0].Type)
	s.Equal(domain.EcoWarrior, progress[1].Type)
	s.Equal(domain.RecyclingMaster, progress[2].Type)
	s.Equal(domain.LearningEnthusiast, progress[3].Type)
}
