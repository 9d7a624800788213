package services

import (
	"context"
	"sync"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

// FeedService provides live-updating views over an account's activity log and
// achievement progress. Each subscription receives the current full value set
// right away and again after every change notification; consumers replace
// their state wholesale instead of patching deltas.
type FeedService struct {
	notifier       portsrepo.Notifier
	activityRepo   portsrepo.ActivityReader
	achievementSvc portssvc.AchievementSvcFacade
}

func NewFeedService(
	notifier portsrepo.Notifier,
	activityRepo portsrepo.ActivityReader,
	achievementSvc portssvc.AchievementSvcFacade,
) *FeedService {
	return &FeedService{
		notifier:       notifier,
		activityRepo:   activityRepo,
		achievementSvc: achievementSvc,
	}
}

var _ portssvc.FeedSvcFacade = (*FeedService)(nil)

// SubscribeActivities streams the account's full activity log on every change.
func (s *FeedService) SubscribeActivities(ctx context.Context, accountID string, fn func([]domain.ActivityRecord)) (portssvc.CancelFunc, error) {
	load := func(ctx context.Context) (func(), error) {
		records, err := s.activityRepo.FindAllActivitiesByAccountID(ctx, accountID)
		if err != nil {
			return nil, err
		}
		return func() { fn(records) }, nil
	}
	return s.subscribe(ctx, portsrepo.ActivityChannel(accountID), accountID, load)
}

// SubscribeAchievements streams the account's full progress set on every change.
func (s *FeedService) SubscribeAchievements(ctx context.Context, accountID string, fn func([]domain.AchievementProgress)) (portssvc.CancelFunc, error) {
	load := func(ctx context.Context) (func(), error) {
		progress, err := s.achievementSvc.ListProgress(ctx, accountID)
		if err != nil {
			return nil, err
		}
		return func() { fn(progress) }, nil
	}
	return s.subscribe(ctx, portsrepo.AchievementChannel(accountID), accountID, load)
}

// subscribe wires a notifier channel to a reload-and-deliver loop. The
// deliver mutex plus the closed flag guarantee no callback runs once cancel
// has returned, even if a signal was already in flight.
func (s *FeedService) subscribe(ctx context.Context, channel string, accountID string, load func(context.Context) (func(), error)) (portssvc.CancelFunc, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	signals, stop, err := s.notifier.Subscribe(ctx, channel)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	closed := false

	deliver := func() {
		emit, err := load(ctx)
		if err != nil {
			logger.Warn("feed reload failed", "accountID", accountID, "channel", channel, "error", err)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		emit()
	}

	// Initial snapshot before any change arrives.
	deliver()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
				deliver()
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			mu.Lock()
			closed = true
			mu.Unlock()
			stop()
		})
	}
	return cancel, nil
}
