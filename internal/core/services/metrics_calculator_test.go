package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
	"github.com/saricycle/saricycle_backend/internal/core/services"
)

func activityOn(day time.Time, typ domain.ActivityType, delta int64) domain.ActivityRecord {
	return domain.ActivityRecord{
		ActivityID:  "act-" + day.Format("20060102") + string(typ),
		AccountID:   "acc-1",
		Type:        typ,
		PointsDelta: delta,
		OccurredAt:  day,
		CreatedAt:   day,
	}
}

func TestComputeAggregates(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	calc := services.NewMetricsCalculator("0.1", 30)

	records := []domain.ActivityRecord{
		activityOn(now, domain.ActivityRecycling, 100),
		activityOn(now.AddDate(0, 0, -1), domain.ActivityRecycling, 50),
		activityOn(now.AddDate(0, 0, -2), domain.ActivityLearning, 30),
		activityOn(now.AddDate(0, 0, -3), domain.ActivityRedemption, -60),
		activityOn(now.AddDate(0, 0, -4), domain.ActivityRegistration, 0),
	}

	m := calc.Compute(records, now)

	assert.Equal(t, int64(180), m.TotalPointsEarned)
	assert.Equal(t, int64(60), m.TotalPointsRedeemed)
	assert.Equal(t, int64(2), m.RecyclingCount)
	assert.Equal(t, int64(1), m.LearningCount)
	// 150 recycling points at 0.1 kg/point
	assert.Equal(t, int64(15), m.WasteReducedKg)
	assert.Equal(t, int64(2), m.RecyclingStreak)
	assert.Equal(t, m.RecyclingStreak, m.ConsecutiveDays)
	assert.False(t, m.EarlyAdopter)
}

func TestComputeExcludesBonusRecords(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	calc := services.NewMetricsCalculator("0.1", 30)

	records := []domain.ActivityRecord{
		activityOn(now, domain.ActivityRecycling, 100),
		activityOn(now, domain.ActivityBonus, 500),
	}

	m := calc.Compute(records, now)

	// The bonus credit moves the balance but never the derived metrics.
	assert.Equal(t, int64(100), m.TotalPointsEarned)
	assert.Equal(t, int64(1), m.RecyclingCount)
	assert.Equal(t, int64(10), m.WasteReducedKg)
}

func TestStreak(t *testing.T) {
	now := time.Date(2026, 8, 31, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name         string
		recyclingOn  []int // Day offsets backward from now
		lookbackDays int
		want         int64
	}{
		{name: "no activity", recyclingOn: nil, lookbackDays: 30, want: 0},
		{name: "today only", recyclingOn: []int{0}, lookbackDays: 30, want: 1},
		{name: "gap today breaks streak", recyclingOn: []int{1, 2, 3}, lookbackDays: 30, want: 0},
		{name: "seven day run", recyclingOn: []int{0, 1, 2, 3, 4, 5, 6}, lookbackDays: 30, want: 7},
		{name: "gap in the middle", recyclingOn: []int{0, 1, 3, 4}, lookbackDays: 30, want: 2},
		{name: "capped by lookback", recyclingOn: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, lookbackDays: 5, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := services.NewMetricsCalculator("0.1", tt.lookbackDays)
			records := make([]domain.ActivityRecord, 0, len(tt.recyclingOn))
			for _, offset := range tt.recyclingOn {
				records = append(records, activityOn(now.AddDate(0, 0, -offset), domain.ActivityRecycling, 10))
			}
			m := calc.Compute(records, now)
			assert.Equal(t, tt.want, m.RecyclingStreak)
		})
	}
}

func TestMultipleRecordsSameDayCountOnceForStreak(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	calc := services.NewMetricsCalculator("0.1", 30)

	records := []domain.ActivityRecord{
		activityOn(now.Add(-1*time.Hour), domain.ActivityRecycling, 10),
		activityOn(now.Add(-2*time.Hour), domain.ActivityRecycling, 10),
		activityOn(now.Add(-3*time.Hour), domain.ActivityRecycling, 10),
	}

	m := calc.Compute(records, now)
	assert.Equal(t, int64(1), m.RecyclingStreak)
	assert.Equal(t, int64(3), m.RecyclingCount)
}

func TestWasteReducedFloorsFractionalKg(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	calc := services.NewMetricsCalculator("0.1", 30)

	records := []domain.ActivityRecord{
		activityOn(now, domain.ActivityRecycling, 15), // 1.5 kg
	}

	m := calc.Compute(records, now)
	assert.Equal(t, int64(1), m.WasteReducedKg)
}

func TestInvalidWasteFactorFallsBack(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	calc := services.NewMetricsCalculator("not-a-number", 30)

	records := []domain.ActivityRecord{
		activityOn(now, domain.ActivityRecycling, 100),
	}

	m := calc.Compute(records, now)
	assert.Equal(t, int64(10), m.WasteReducedKg)
}
