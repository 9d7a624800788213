package repositories

import "context"

// Notifier is the change-notification bus behind live subscriptions. The
// store adapter publishes a message on an account-scoped channel after every
// successful write; subscribers re-read the full current value set on each
// message rather than applying deltas.
type Notifier interface {
	// Publish emits a message on the channel. Fire-and-forget: a publish
	// failure must not fail the write that triggered it.
	Publish(ctx context.Context, channel string) error

	// Subscribe registers interest in a channel and returns a message stream
	// plus a cancel function. Cancel is idempotent and releases the stream;
	// no messages are delivered after it returns.
	Subscribe(ctx context.Context, channel string) (<-chan struct{}, func(), error)
}

// ActivityChannel names the per-account channel for activity-log changes.
func ActivityChannel(accountID string) string {
	return "accounts:" + accountID + ":activities"
}

// AchievementChannel names the per-account channel for achievement changes.
func AchievementChannel(accountID string) string {
	return "accounts:" + accountID + ":achievements"
}
