package services

import (
	"context"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
)

// CancelFunc tears down a subscription. Calling it more than once is safe;
// no callback runs after the first call returns.
type CancelFunc func()

// FeedSvcFacade provides live-updating views over an account's activity log
// and achievement progress. Every change delivers the full current value set
// to the callback, not a delta.
type FeedSvcFacade interface {
	SubscribeActivities(ctx context.Context, accountID string, fn func([]domain.ActivityRecord)) (CancelFunc, error)
	SubscribeAchievements(ctx context.Context, accountID string, fn func([]domain.AchievementProgress)) (CancelFunc, error)
}
