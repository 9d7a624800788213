package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/saricycle/saricycle_backend/internal/apperrors"
	"github.com/saricycle/saricycle_backend/internal/core/domain"
	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

// AchievementService derives progress from the activity log and unlocks
// achievements when thresholds are crossed. Unlocks are one-way and happen at
// most once per (account, achievement); the repository's locked write makes
// concurrent recomputes safe.
type AchievementService struct {
	achievementRepo portsrepo.AchievementRepositoryFacade
	activityRepo    portsrepo.ActivityReader
	accountRepo     portsrepo.AccountReader
	calculator      *MetricsCalculator

	// earlyAdopterLimit is how many of the earliest registrations qualify
	// for the Green Pioneer achievement.
	earlyAdopterLimit int64
}

func NewAchievementService(
	achievementRepo portsrepo.AchievementRepositoryFacade,
	activityRepo portsrepo.ActivityReader,
	accountRepo portsrepo.AccountReader,
	calculator *MetricsCalculator,
	earlyAdopterLimit int64,
) *AchievementService {
	return &AchievementService{
		achievementRepo:   achievementRepo,
		activityRepo:      activityRepo,
		accountRepo:       accountRepo,
		calculator:        calculator,
		earlyAdopterLimit: earlyAdopterLimit,
	}
}

var _ portssvc.AchievementSvcFacade = (*AchievementService)(nil)

// InitializeForAccount creates every progress record at zero. Existing rows
// are left alone, so re-running after a partial failure is safe.
func (s *AchievementService) InitializeForAccount(ctx context.Context, accountID string) error {
	now := time.Now()
	progress := make([]domain.AchievementProgress, 0, len(domain.AllAchievementTypes()))
	for _, t := range domain.AllAchievementTypes() {
		def, ok := domain.AchievementDefinitionFor(t)
		if !ok {
			return fmt.Errorf("%w: %s", apperrors.ErrUnknownAchievement, t)
		}
		progress = append(progress, domain.AchievementProgress{
			AccountID:     accountID,
			Type:          t,
			Current:       0,
			Target:        def.Criteria.Threshold,
			Percentage:    0,
			Unlocked:      false,
			LastUpdatedAt: now,
		})
	}
	return s.achievementRepo.InitializeProgress(ctx, progress)
}

// RecomputeAll evaluates every definition against the metrics snapshot and
// persists the result. Progress moves freely in both directions; the unlocked
// flag only ever moves forward, and the reward bonus is granted exactly on
// the locked-to-unlocked transition.
func (s *AchievementService) RecomputeAll(ctx context.Context, accountID string, metrics domain.DerivedMetrics) ([]domain.AchievementType, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	// Self-heals accounts created before a definition was added.
	if err := s.InitializeForAccount(ctx, accountID); err != nil {
		return nil, err
	}

	newlyUnlocked := make([]domain.AchievementType, 0)
	for _, t := range domain.AllAchievementTypes() {
		def, _ := domain.AchievementDefinitionFor(t)
		current := metrics.ValueFor(def.Criteria.Metric)
		unlocked := current >= def.Criteria.Threshold

		progress := domain.AchievementProgress{
			AccountID:     accountID,
			Type:          t,
			Current:       current,
			Target:        def.Criteria.Threshold,
			Percentage:    percentage(current, def.Criteria.Threshold),
			Unlocked:      unlocked,
			LastUpdatedAt: now,
		}

		var grant *portsrepo.RewardGrant
		if unlocked {
			unlockedAt := now
			progress.UnlockedAt = &unlockedAt
			progress.RewardGranted = true
			grant = &portsrepo.RewardGrant{BonusActivity: rewardActivity(accountID, def, now)}
		}

		transitioned, err := s.achievementRepo.SaveProgress(ctx, progress, grant)
		if err != nil {
			return nil, fmt.Errorf("failed to save progress for %s: %w", t, err)
		}
		if transitioned {
			logger.Info("achievement unlocked", "accountID", accountID, "achievement", t, "bonusPoints", def.Reward.BonusPoints)
			newlyUnlocked = append(newlyUnlocked, t)
		}
	}
	return newlyUnlocked, nil
}

// RecomputeFromLog loads the full activity log, derives the metrics snapshot
// and recomputes all progress from it.
func (s *AchievementService) RecomputeFromLog(ctx context.Context, accountID string) ([]domain.AchievementType, error) {
	records, err := s.activityRepo.FindAllActivitiesByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	metrics := s.calculator.Compute(records, time.Now())

	early, err := s.isEarlyAdopter(ctx, accountID)
	if err != nil {
		return nil, err
	}
	metrics.EarlyAdopter = early

	return s.RecomputeAll(ctx, accountID, metrics)
}

// ListProgress returns the account's progress rows ordered for display:
// unlocked first with the most recent unlock leading, then locked rows by
// percentage descending.
func (s *AchievementService) ListProgress(ctx context.Context, accountID string) ([]domain.AchievementProgress, error) {
	progress, err := s.achievementRepo.FindProgressByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(progress, func(i, j int) bool {
		a, b := progress[i], progress[j]
		if a.Unlocked != b.Unlocked {
			return a.Unlocked
		}
		if a.Unlocked {
			switch {
			case a.UnlockedAt == nil:
				return false
			case b.UnlockedAt == nil:
				return true
			default:
				return a.UnlockedAt.After(*b.UnlockedAt)
			}
		}
		return a.Percentage > b.Percentage
	})
	return progress, nil
}

// isEarlyAdopter checks the account's registration rank against the limit.
func (s *AchievementService) isEarlyAdopter(ctx context.Context, accountID string) (bool, error) {
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

// percentage clamps progress-toward-threshold into 0..100.
func percentage(current, threshold int64) int {
	if threshold <= 0 {
		return 100
	}
	if current >= threshold {
		return 100
	}
	if current <= 0 {
		return 0
	}
	return int(current * 100 / threshold)
}

// rewardActivity builds the bonus record credited when an achievement
// unlocks. Bonus-type records are excluded from derived metrics, so the
// grant cannot cascade into further unlocks.
func rewardActivity(accountID string, def domain.AchievementDefinition, now time.Time) domain.ActivityRecord {
	return domain.ActivityRecord{
		ActivityID:  uuid.NewString(),
		AccountID:   accountID,
		Type:        domain.ActivityBonus,
		Title:       "Achievement Unlocked: " + def.Title,
		Description: def.Description,
		PointsDelta: def.Reward.BonusPoints,
		Category:    "achievement",
		Metadata: map[string]string{
			"achievementType": string(def.Type),
			"badgeID":         def.Reward.BadgeID,
		},
		OccurredAt: now,
		CreatedAt:  now,
	}
}
