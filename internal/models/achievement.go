package models

import "time"

// AchievementProgress represents a progress row keyed (account_id, achievement_type).
type AchievementProgress struct {
	AccountID       string     `db:"account_id"`
	AchievementType string     `db:"achievement_type"`
	Current         int64      `db:"current_progress"`
	Target          int64      `db:"target_threshold"`
	Percentage      int        `db:"percentage"`
	Unlocked        bool       `db:"unlocked"`
	UnlockedAt      *time.Time `db:"unlocked_at"`
	RewardGranted   bool       `db:"reward_granted"`
	LastUpdatedAt   time.Time  `db:"last_updated_at"`
}
