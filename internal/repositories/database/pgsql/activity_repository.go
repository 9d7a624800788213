package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saricycle/saricycle_backend/internal/apperrors"
	"github.com/saricycle/saricycle_backend/internal/core/domain"
	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
	"github.com/saricycle/saricycle_backend/internal/middleware"
	"github.com/saricycle/saricycle_backend/internal/models"
	"github.com/saricycle/saricycle_backend/internal/utils/mapping"
	"github.com/saricycle/saricycle_backend/internal/utils/pagination"
)

type PgxActivityRepository struct {
	BaseRepository
	notifier portsrepo.Notifier
}

func newPgxActivityRepository(pool *pgxpool.Pool, timeout time.Duration, notifier portsrepo.Notifier) portsrepo.ActivityRepositoryFacade {
	return &PgxActivityRepository{BaseRepository{Pool: pool, Timeout: timeout}, notifier}
}

var _ portsrepo.ActivityRepositoryFacade = (*PgxActivityRepository)(nil)

const activityColumns = `activity_id, account_id, activity_type, title, description, points_delta, category, metadata, occurred_at, created_at`

func scanActivity(row pgx.Row) (models.ActivityRecord, error) {
	var m models.ActivityRecord
	err := row.Scan(
		&m.ActivityID,
		&m.AccountID,
		&m.Type,
		&m.Title,
		&m.Description,
		&m.PointsDelta,
		&m.Category,
		&m.Metadata,
		&m.OccurredAt,
		&m.CreatedAt,
	)
	return m, err
}

// AppendActivity inserts one record without touching the balance. Only
// zero-delta informational entries come through here; point-affecting
// records go through the ledger repository.
func (r *PgxActivityRepository) AppendActivity(ctx context.Context, record domain.ActivityRecord) error {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	m := mapping.ToModelActivity(record)

	query := `
		INSERT INTO activities (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ActivityID,
		m.AccountID,
		m.Type,
		m.Title,
		m.Description,
		m.PointsDelta,
		m.Category,
		m.Metadata,
		m.OccurredAt,
		m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: activity %s already exists", apperrors.ErrDuplicate, m.ActivityID)
		}
		return mapStoreError(fmt.Sprintf("failed to append activity %s", m.ActivityID), err)
	}

	if r.notifier != nil {
		if perr := r.notifier.Publish(ctx, portsrepo.ActivityChannel(record.AccountID)); perr != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("failed to publish activity notification", "accountID", record.AccountID, "error", perr)
		}
	}
	return nil
}

// ListActivitiesByAccountID returns records newest first with keyset
// pagination on (created_at, activity_id).
func (r *PgxActivityRepository) ListActivitiesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.ActivityRecord, *string, error) {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}

	args := []interface{}{accountID}
	query := `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE account_id = $1
	`
	if nextToken != nil && *nextToken != "" {
		tokenTime, tokenID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, activity_id) < ($2, $3)`
		args = append(args, tokenTime, tokenID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, activity_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1) // Fetch one extra to detect a next page

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapStoreError(fmt.Sprintf("failed to list activities for account %s", accountID), err)
	}
	defer rows.Close()

	records := make([]models.ActivityRecord, 0, limit)
	for rows.Next() {
		m, err := scanActivity(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapStoreError("error iterating activity rows", err)
	}

	var token *string
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.ActivityID)
		token = &t
	}

	return mapping.ToDomainActivities(records), token, nil
}

// FindAllActivitiesByAccountID returns the complete log newest first.
func (r *PgxActivityRepository) FindAllActivitiesByAccountID(ctx context.Context, accountID string) ([]domain.ActivityRecord, error) {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	query := `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE account_id = $1
		ORDER BY created_at DESC, activity_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, mapStoreError(fmt.Sprintf("failed to load activity log for account %s", accountID), err)
	}
	defer rows.Close()

	records := make([]models.ActivityRecord, 0)
	for rows.Next() {
		m, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("error iterating activity rows", err)
	}
	return mapping.ToDomainActivities(records), nil
}
