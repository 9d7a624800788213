package repositories

import (
	"context"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
)

// ActivityAppender defines the append operation for the activity log.
// Records are immutable once written; there is no update or delete.
type ActivityAppender interface {
	// AppendActivity persists one record without touching the balance. Used
	// for zero-delta informational entries (e.g. registration welcome);
	// point-affecting records go through LedgerRepositoryFacade.ApplyDelta.
	AppendActivity(ctx context.Context, record domain.ActivityRecord) error
}

// ActivityReader defines read operations for the activity log.
type ActivityReader interface {
	// ListActivitiesByAccountID returns records newest first. When limit > 0
	// at most limit records are returned together with a token for the next
	// page. Re-querying returns the live current set, not a frozen snapshot.
	ListActivitiesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.ActivityRecord, *string, error)

	// FindAllActivitiesByAccountID returns the complete log for an account,
	// newest first. Feeds derived-metric computation.
	FindAllActivitiesByAccountID(ctx context.Context, accountID string) ([]domain.ActivityRecord, error)
}

// ActivityRepositoryFacade combines all activity-log repository interfaces.
type ActivityRepositoryFacade interface {
	ActivityAppender
	ActivityReader
}
