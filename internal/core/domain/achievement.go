package domain

import "time"

// AchievementType identifies one of the eight defined achievements.
type AchievementType string

const (
	EcoWarrior         AchievementType = "eco_warrior"
	SmartSpender       AchievementType = "smart_spender"
	RecyclingMaster    AchievementType = "recycling_master"
	LearningEnthusiast AchievementType = "learning_enthusiast"
	StreakChampion     AchievementType = "streak_champion"
	CommunityHelper    AchievementType = "community_helper"
	GreenPioneer       AchievementType = "green_pioneer"
	ConsistencyKing    AchievementType = "consistency_king"
)

// MetricName identifies the derived metric an achievement criterion reads.
type MetricName string

const (
	MetricTotalPointsEarned   MetricName = "total_points_earned"
	MetricTotalPointsRedeemed MetricName = "total_points_redeemed"
	MetricRecyclingCount      MetricName = "recycling_activities_count"
	MetricLearningCount       MetricName = "learning_activities_count"
	MetricRecyclingStreak     MetricName = "recycling_streak"
	MetricWasteReduced        MetricName = "total_waste_reduced"
	MetricConsecutiveDays     MetricName = "consecutive_days"
	MetricEarlyAdopter        MetricName = "early_adopter"
)

// Criteria couples a derived metric with the threshold that unlocks the achievement.
type Criteria struct {
	Metric    MetricName `json:"metric"`
	Threshold int64      `json:"threshold"`
}

// Reward is the one-time grant applied when an achievement unlocks.
type Reward struct {
	BonusPoints int64  `json:"bonusPoints"`
	BadgeID     string `json:"badgeID"`
}

// AchievementDefinition is static, process-wide configuration for one achievement.
type AchievementDefinition struct {
	Type        AchievementType `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Criteria    Criteria        `json:"criteria"`
	Reward      Reward          `json:"reward"`
}

// AchievementProgress is the per-(account, definition) state pair. Unlocked is
// terminal: once set it is never cleared, the unlock timestamp is never
// rewritten, and the reward is never granted a second time.
type AchievementProgress struct {
	AccountID     string          `json:"accountID"`
	Type          AchievementType `json:"type"`
	Current       int64           `json:"current"`
	Target        int64           `json:"target"`
	Percentage    int             `json:"percentage"` // Clamped 0-100
	Unlocked      bool            `json:"unlocked"`
	UnlockedAt    *time.Time      `json:"unlockedAt,omitempty"`
	RewardGranted bool            `json:"rewardGranted"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// achievementCatalog holds the eight definitions, mirroring the rewards
// program configuration. Not mutable at runtime.
var achievementCatalog = map[AchievementType]AchievementDefinition{
	EcoWarrior: {
		Type:        EcoWarrior,
		Title:       "Eco Warrior",
		Description: "Earn 1000 total points",
		Icon:        "Star",
		Criteria:    Criteria{Metric: MetricTotalPointsEarned, Threshold: 1000},
		Reward:      Reward{BonusPoints: 100, BadgeID: "eco_warrior_badge"},
	},
	SmartSpender: {
		Type:        SmartSpender,
		Title:       "Smart Spender",
		Description: "Redeem 500 points wisely",
		Icon:        "Target",
		Criteria:    Criteria{Metric: MetricTotalPointsRedeemed, Threshold: 500},
		Reward:      Reward{BonusPoints: 50, BadgeID: "smart_spender_badge"},
	},
	RecyclingMaster: {
		Type:        RecyclingMaster,
		Title:       "Recycling Master",
		Description: "Complete 50 recycling activities",
		Icon:        "Recycle",
		Criteria:    Criteria{Metric: MetricRecyclingCount, Threshold: 50},
		Reward:      Reward{BonusPoints: 200, BadgeID: "recycling_master_badge"},
	},
	LearningEnthusiast: {
		Type:        LearningEnthusiast,
		Title:       "Learning Enthusiast",
		Description: "Complete 10 learning modules",
		Icon:        "BookOpen",
		Criteria:    Criteria{Metric: MetricLearningCount, Threshold: 10},
		Reward:      Reward{BonusPoints: 150, BadgeID: "learning_enthusiast_badge"},
	},
	StreakChampion: {
		Type:        StreakChampion,
		Title:       "Streak Champion",
		Description: "Maintain a 7-day recycling streak",
		Icon:        "Flame",
		Criteria:    Criteria{Metric: MetricRecyclingStreak, Threshold: 7},
		Reward:      Reward{BonusPoints: 300, BadgeID: "streak_champion_badge"},
	},
	CommunityHelper: {
		Type:        CommunityHelper,
		Title:       "Community Helper",
		Description: "Help reduce 100kg of waste",
		Icon:        "Users",
		Criteria:    Criteria{Metric: MetricWasteReduced, Threshold: 100},
		Reward:      Reward{BonusPoints: 250, BadgeID: "community_helper_badge"},
	},
	GreenPioneer: {
		Type:        GreenPioneer,
		Title:       "Green Pioneer",
		Description: "One of the first 100 users",
		Icon:        "Trophy",
		Criteria:    Criteria{Metric: MetricEarlyAdopter, Threshold: 1},
		Reward:      Reward{BonusPoints: 500, BadgeID: "green_pioneer_badge"},
	},
	ConsistencyKing: {
		Type:        ConsistencyKing,
		Title:       "Consistency King",
		Description: "Recycle for 30 consecutive days",
		Icon:        "Calendar",
		Criteria:    Criteria{Metric: MetricConsecutiveDays, Threshold: 30},
		Reward:      Reward{BonusPoints: 400, BadgeID: "consistency_king_badge"},
	},
}

// AchievementDefinitions returns the eight static definitions.
func AchievementDefinitions() map[AchievementType]AchievementDefinition {
	out := make(map[AchievementType]AchievementDefinition, len(achievementCatalog))
	for k, v := range achievementCatalog {
		out[k] = v
	}
	return out
}

// AchievementDefinitionFor looks up a single definition by type.
func AchievementDefinitionFor(t AchievementType) (AchievementDefinition, bool) {
	def, ok := achievementCatalog[t]
	return def, ok
}

// AllAchievementTypes lists the defined types in a stable order.
func AllAchievementTypes() []AchievementType {
	return []AchievementType{
		EcoWarrior,
		SmartSpender,
		RecyclingMaster,
		LearningEnthusiast,
		StreakChampion,
		CommunityHelper,
		GreenPioneer,
		ConsistencyKing,
	}
}
