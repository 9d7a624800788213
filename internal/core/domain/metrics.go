package domain

// DerivedMetrics is a snapshot of aggregate values computed from an account's
// full activity log. It feeds achievement recomputation; bonus-type records
// are excluded from every field so reward credits never feed back into
// progress.
type DerivedMetrics struct {
	TotalPointsEarned   int64 // Sum of positive deltas
	TotalPointsRedeemed int64 // Sum of absolute negative deltas on redemption records
	RecyclingCount      int64
	LearningCount       int64
	RecyclingStreak     int64 // Consecutive calendar days backward from today
	WasteReducedKg      int64
	ConsecutiveDays     int64 // Currently defined identically to RecyclingStreak
	EarlyAdopter        bool  // Computed outside the engine, from registration rank
}

// ValueFor returns the metric value the given criterion reads.
func (m DerivedMetrics) ValueFor(name MetricName) int64 {
	switch name {
	case MetricTotalPointsEarned:
		return m.TotalPointsEarned
	case MetricTotalPointsRedeemed:
		return m.TotalPointsRedeemed
	case MetricRecyclingCount:
		return m.RecyclingCount
	case MetricLearningCount:
		return m.LearningCount
	case MetricRecyclingStreak:
		return m.RecyclingStreak
	case MetricWasteReduced:
		return m.WasteReducedKg
	case MetricConsecutiveDays:
		return m.ConsecutiveDays
	case MetricEarlyAdopter:
		if m.EarlyAdopter {
			return 1
		}
		return 0
	}
	return 0
}
