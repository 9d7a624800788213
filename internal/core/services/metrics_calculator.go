package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
)

const defaultWasteKgPerPoint = "0.1"

// MetricsCalculator derives the aggregate snapshot achievement criteria read
// from an account's full activity log. Bonus-type records are skipped in
// every aggregate so achievement rewards never count toward further
// achievements.
type MetricsCalculator struct {
	wasteFactor  decimal.Decimal
	lookbackDays int
}

// NewMetricsCalculator builds a calculator. wasteKgPerPoint is a decimal
// string (kg of waste estimated per recycling point); lookbackDays caps the
// streak scan.
func NewMetricsCalculator(wasteKgPerPoint string, lookbackDays int) *MetricsCalculator {
	factor, err := decimal.NewFromString(wasteKgPerPoint)
	if err != nil || factor.IsNegative() {
		factor, _ = decimal.NewFromString(defaultWasteKgPerPoint)
	}
	if lookbackDays <= 0 {
		lookbackDays = 30
	}
	return &MetricsCalculator{wasteFactor: factor, lookbackDays: lookbackDays}
}

// Compute derives the full metrics snapshot from the log as of now. The
// EarlyAdopter field is left false; it comes from registration rank, not from
// the log, and the caller fills it in.
func (c *MetricsCalculator) Compute(records []domain.ActivityRecord, now time.Time) domain.DerivedMetrics {
	var m domain.DerivedMetrics
	recyclingPoints := int64(0)
	recyclingDays := make(map[string]struct{})

	for _, rec := range records {
		if rec.Type == domain.ActivityBonus {
			continue
		}
		if rec.PointsDelta > 0 {
			m.TotalPointsEarned += rec.PointsDelta
		}
		switch rec.Type {
		case domain.ActivityRedemption:
			if rec.PointsDelta < 0 {
				m.TotalPointsRedeemed += -rec.PointsDelta
			}
		case domain.ActivityRecycling:
			m.RecyclingCount++
			if rec.PointsDelta > 0 {
				recyclingPoints += rec.PointsDelta
			}
			recyclingDays[dayKey(rec.OccurredAt)] = struct{}{}
		case domain.ActivityLearning:
			m.LearningCount++
		}
	}

	m.WasteReducedKg = c.wasteFactor.Mul(decimal.NewFromInt(recyclingPoints)).Floor().IntPart()
	m.RecyclingStreak = c.streak(recyclingDays, now)
	m.ConsecutiveDays = m.RecyclingStreak

	return m
}

// streak counts consecutive calendar days with at least one recycling record,
// walking backward from today. A day with no activity ends the run; the scan
// never looks further back than the configured cap.
func (c *MetricsCalculator) streak(days map[string]struct{}, now time.Time) int64 {
	var streak int64
	for i := 0; i < c.lookbackDays; i++ {
		day := now.AddDate(0, 0, -i)
		if _, ok := days[dayKey(day)]; !ok {
			break
		}
		streak++
	}
	return streak
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
