package models

import "time"

// ActivityRecord represents an activity-log row as persisted. Metadata is
// stored as JSONB; rows are insert-only.
type ActivityRecord struct {
	ActivityID  string            `db:"activity_id"`
	AccountID   string            `db:"account_id"`
	Type        string            `db:"activity_type"`
	Title       string            `db:"title"`
	Description string            `db:"description"`
	PointsDelta int64             `db:"points_delta"`
	Category    string            `db:"category"`
	Metadata    map[string]string `db:"metadata"`
	OccurredAt  time.Time         `db:"occurred_at"`
	CreatedAt   time.Time         `db:"created_at"`
}
