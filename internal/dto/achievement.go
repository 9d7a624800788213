package dto

import (
	"time"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
)

// AchievementProgressResponse defines the data returned for one
// (account, achievement) progress pair, joined with its static definition.
type AchievementProgressResponse struct {
	Type        domain.AchievementType `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Icon        string                 `json:"icon"`
	Current     int64                  `json:"current"`
	Target      int64                  `json:"target"`
	Percentage  int                    `json:"percentage"`
	Unlocked    bool                   `json:"unlocked"`
	UnlockedAt  *time.Time             `json:"unlockedAt,omitempty"`
	BonusPoints int64                  `json:"bonusPoints"`
	BadgeID     string                 `json:"badgeID"`
}

// ListAchievementsResponse wraps an account's full progress set.
type ListAchievementsResponse struct {
	Achievements []AchievementProgressResponse `json:"achievements"`
}

// ToAchievementProgressResponse joins progress with its definition.
func ToAchievementProgressResponse(p domain.AchievementProgress) AchievementProgressResponse {
	resp := AchievementProgressResponse{
		Type:       p.Type,
		Current:    p.Current,
		Target:     p.Target,
		Percentage: p.Percentage,
		Unlocked:   p.Unlocked,
		UnlockedAt: p.UnlockedAt,
	}
	if def, ok := domain.AchievementDefinitionFor(p.Type); ok {
		resp.Title = def.Title
		resp.Description = def.Description
		resp.Icon = def.Icon
		resp.BonusPoints = def.Reward.BonusPoints
		resp.BadgeID = def.Reward.BadgeID
	}
	return resp
}

// ToListAchievementsResponse converts a progress slice preserving order.
func ToListAchievementsResponse(progress []domain.AchievementProgress) ListAchievementsResponse {
	out := ListAchievementsResponse{
		Achievements: make([]AchievementProgressResponse, len(progress)),
	}
	for i, p := range progress {
		out.Achievements[i] = ToAchievementProgressResponse(p)
	}
	return out
}
