package mapping

import (
	"github.com/saricycle/saricycle_backend/internal/core/domain"
	"github.com/saricycle/saricycle_backend/internal/models"
)

// ToModelProgress converts a domain AchievementProgress to a model row
func ToModelProgress(d domain.AchievementProgress) models.AchievementProgress {
	return models.AchievementProgress{
		AccountID:       d.AccountID,
		AchievementType: string(d.Type),
		Current:         d.Current,
		Target:          d.Target,
		Percentage:      d.Percentage,
		Unlocked:        d.Unlocked,
		UnlockedAt:      d.UnlockedAt,
		RewardGranted:   d.RewardGranted,
		LastUpdatedAt:   d.LastUpdatedAt,
	}
}

// ToDomainProgress converts a model row to a domain AchievementProgress
func ToDomainProgress(m models.AchievementProgress) domain.AchievementProgress {
	return domain.AchievementProgress{
		AccountID:     m.AccountID,
		Type:          domain.AchievementType(m.AchievementType),
		Current:       m.Current,
		Target:        m.Target,
		Percentage:    m.Percentage,
		Unlocked:      m.Unlocked,
		UnlockedAt:    m.UnlockedAt,
		RewardGranted: m.RewardGranted,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}
