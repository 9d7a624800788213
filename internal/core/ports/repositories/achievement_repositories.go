package repositories

import (
	"context"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
)

// RewardGrant describes the one-time bonus applied when an achievement
// unlocks: a bonus-type activity record whose PointsDelta is credited to the
// balance in the same store transaction as the unlock write.
type RewardGrant struct {
	BonusActivity domain.ActivityRecord
}

// AchievementRepositoryFacade persists per-(account, achievement) progress.
type AchievementRepositoryFacade interface {
	// InitializeProgress creates the given progress rows if they do not exist
	// yet. Rows that already exist are left untouched, so calling this twice
	// is a no-op the second time.
	InitializeProgress(ctx context.Context, progress []domain.AchievementProgress) error

	// FindProgressByAccountID returns all progress rows for the account.
	FindProgressByAccountID(ctx context.Context, accountID string) ([]domain.AchievementProgress, error)

	// SaveProgress writes updated progress for one pair under a row lock.
	// If the stored row is already unlocked, only the progress fields are
	// updated; the unlocked flag, unlock timestamp and reward stay untouched
	// and newlyUnlocked is false. If progress.Unlocked is true and the stored
	// row was locked, the unlock fields are written, the grant (when non-nil)
	// is applied (balance increment plus bonus activity insert) in the same
	// transaction, and newlyUnlocked is true.
	SaveProgress(ctx context.Context, progress domain.AchievementProgress, grant *RewardGrant) (newlyUnlocked bool, err error)
}
