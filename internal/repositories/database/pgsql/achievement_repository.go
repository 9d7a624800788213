package pgsql

import (
	"context"
	"errors"
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
)

// PgxAchievementRepository persists per-(account, achievement) progress.
// Unlock writes take a row lock so two concurrent recomputes cannot both see
// the row as locked and grant the reward twice.
type PgxAchievementRepository struct {
	BaseRepository
	notifier portsrepo.Notifier
}

func newPgxAchievementRepository(pool *pgxpool.Pool, timeout time.Duration, notifier portsrepo.Notifier) portsrepo.AchievementRepositoryFacade {
	return &PgxAchievementRepository{BaseRepository{Pool: pool, Timeout: timeout}, notifier}
}

var _ portsrepo.AchievementRepositoryFacade = (*PgxAchievementRepository)(nil)

const progressColumns = `account_id, achievement_type, current_progress, target_threshold, percentage, unlocked, unlocked_at, reward_granted, last_updated_at`

func scanProgress(row pgx.Row) (models.AchievementProgress, error) {
	var m models.AchievementProgress
	err := row.Scan(
		&m.AccountID,
		&m.AchievementType,
		&m.Current,
		&m.Target,
		&m.Percentage,
		&m.Unlocked,
		&m.UnlockedAt,
		&m.RewardGranted,
		&m.LastUpdatedAt,
	)
	return m, err
}

// InitializeProgress inserts missing progress rows and leaves existing ones
// untouched. ON CONFLICT DO NOTHING makes a second call a no-op.
func (r *PgxAchievementRepository) InitializeProgress(ctx context.Context, progress []domain.AchievementProgress) error {
	if len(progress) == 0 {
		return nil
	}

	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO achievement_progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (account_id, achievement_type) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, p := range progress {
		m := mapping.ToModelProgress(p)
		batch.Queue(query,
			m.AccountID,
			m.AchievementType,
			m.Current,
			m.Target,
			m.Percentage,
			m.Unlocked,
			m.UnlockedAt,
			m.RewardGranted,
			m.LastUpdatedAt,
		)
	}

	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range progress {
		if _, err := results.Exec(); err != nil {
			return mapStoreError("failed to initialize achievement progress", err)
		}
	}
	return nil
}

// FindProgressByAccountID returns all progress rows for the account.
func (r *PgxAchievementRepository) FindProgressByAccountID(ctx context.Context, accountID string) ([]domain.AchievementProgress, error) {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	query := `SELECT ` + progressColumns + ` FROM achievement_progress WHERE account_id = $1;`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, mapStoreError(fmt.Sprintf("failed to load achievement progress for account %s", accountID), err)
	}
	defer rows.Close()

	out := make([]domain.AchievementProgress, 0)
	for rows.Next() {
		m, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress row: %w", err)
		}
		out = append(out, mapping.ToDomainProgress(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("error iterating progress rows", err)
	}
	return out, nil
}

// SaveProgress writes updated progress for one pair under FOR UPDATE. The
// unlock fields are written only on the locked-to-unlocked transition; a row
// already unlocked keeps its flag, timestamp and reward regardless of the
// incoming value, and the grant is applied at most once, inside the same
// transaction as the unlock write.
func (r *PgxAchievementRepository) SaveProgress(ctx context.Context, progress domain.AchievementProgress, grant *portsrepo.RewardGrant) (bool, error) {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = r.Rollback(context.WithoutCancel(ctx), tx) }()

	lockQuery := `
		SELECT ` + progressColumns + `
		FROM achievement_progress
		WHERE account_id = $1 AND achievement_type = $2
		FOR UPDATE;
	`
	stored, err := scanProgress(tx.QueryRow(ctx, lockQuery, progress.AccountID, string(progress.Type)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("%w: no progress row for account %s achievement %s", apperrors.ErrNotFound, progress.AccountID, progress.Type)
		}
		return false, mapStoreError("failed to lock progress row", err)
	}

	m := mapping.ToModelProgress(progress)
	newlyUnlocked := false

	if stored.Unlocked {
		// Terminal state: progress fields may still move, unlock fields never do.
		updateQuery := `
			UPDATE achievement_progress
			SET current_progress = $3, percentage = $4, last_updated_at = $5
			WHERE account_id = $1 AND achievement_type = $2;
		`
		if _, err := tx.Exec(ctx, updateQuery, m.AccountID, m.AchievementType, m.Current, m.Percentage, m.LastUpdatedAt); err != nil {
			return false, mapStoreError("failed to update progress row", err)
		}
	} else {
		newlyUnlocked = m.Unlocked
		updateQuery := `
			UPDATE achievement_progress
			SET current_progress = $3, percentage = $4, unlocked = $5, unlocked_at = $6, reward_granted = $7, last_updated_at = $8
			WHERE account_id = $1 AND achievement_type = $2;
		`
		if _, err := tx.Exec(ctx, updateQuery, m.AccountID, m.AchievementType, m.Current, m.Percentage, m.Unlocked, m.UnlockedAt, m.RewardGranted, m.LastUpdatedAt); err != nil {
			return false, mapStoreError("failed to update progress row", err)
		}

		if newlyUnlocked && grant != nil {
			if _, err := applyDeltaTx(ctx, tx, grant.BonusActivity); err != nil {
				return false, fmt.Errorf("failed to apply reward grant: %w", err)
			}
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return false, err
	}

	if r.notifier != nil {
		logger := middleware.GetLoggerFromCtx(ctx)
		if perr := r.notifier.Publish(ctx, portsrepo.AchievementChannel(progress.AccountID)); perr != nil {
			logger.Warn("failed to publish achievement notification", "accountID", progress.AccountID, "error", perr)
		}
		if newlyUnlocked && grant != nil {
			if perr := r.notifier.Publish(ctx, portsrepo.ActivityChannel(progress.AccountID)); perr != nil {
				logger.Warn("failed to publish activity notification", "accountID", progress.AccountID, "error", perr)
			}
		}
	}

	return newlyUnlocked, nil
}
