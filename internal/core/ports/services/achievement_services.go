package services

import (
	"context"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
)

// AchievementSvcFacade derives progress from the activity log and unlocks
// achievements exactly once when thresholds are crossed.
type AchievementSvcFacade interface {
	// InitializeForAccount creates all progress records at zero for a new
	// account. Idempotent: a second call changes nothing.
	InitializeForAccount(ctx context.Context, accountID string) error

	// RecomputeAll writes updated progress for every definition from the
	// given metrics snapshot and returns the types that transitioned to
	// unlocked during this call. Recomputing twice with the same metrics
	// re-grants nothing and changes no unlock timestamp.
	RecomputeAll(ctx context.Context, accountID string, metrics domain.DerivedMetrics) ([]domain.AchievementType, error)

	// RecomputeFromLog scans the account's full activity log, derives the
	// metrics snapshot and delegates to RecomputeAll.
	RecomputeFromLog(ctx context.Context, accountID string) ([]domain.AchievementType, error)

	// ListProgress returns all progress records ordered for display:
	// unlocked first (most recent unlock first), then locked by percentage
	// descending.
	ListProgress(ctx context.Context, accountID string) ([]domain.AchievementProgress, error)
}
