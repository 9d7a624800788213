package pgsql

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx-backed repositories. The notifier is
// shared so every write path publishes on the same bus the feed subscriptions
// listen on.
func NewRepositoryProvider(dbPool *pgxpool.Pool, timeout time.Duration, notifier portsrepo.Notifier) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool, timeout),
		LedgerRepo:      newPgxLedgerRepository(dbPool, timeout, notifier),
		ActivityRepo:    newPgxActivityRepository(dbPool, timeout, notifier),
		AchievementRepo: newPgxAchievementRepository(dbPool, timeout, notifier),
		ProductRepo:     newPgxProductRepository(dbPool, timeout),
		Notifier:        notifier,
	}
}
