package services

import (
	"testing"
	"time"

	"venuepro-backend/models"

	"github.com/stretchr/testify/assert"
)

func shift(start time.Time, hours float64) models.Shift {
	return models.Shift{
		StartsAt: start,
		EndsAt:   start.Add(time.Duration(hours * float64(time.Hour))),
	}
}

func TestSplitHoursUnderThreshold(t *testing.T) {
	monday := time.Date(2026, 6, 8, 10, 0, 0, 0, time.UTC)

	breakdown := SplitHours([]models.Shift{
		shift(monday, 8),
		shift(monday.AddDate(0, 0, 1), 8),
		shift(monday.AddDate(0, 0, 2), 8),
	})

	assert.InDelta(t, 24.0, breakdown.Regular, 0.001)
	assert.Zero(t, breakdown.Overtime)
}

func TestSplitHoursOvertimeWithinWeek(t *testing.T) {
	monday := time.Date(2026, 6, 8, 9, 0, 0, 0, time.UTC)

	var shifts []models.Shift
	for day := 0; day < 5; day++ {
		shifts = append(shifts, shift(monday.AddDate(0, 0, day), 9))
	}

	breakdown := SplitHours(shifts)
	assert.InDelta(t, 40.0, breakdown.Regular, 0.001)
	assert.InDelta(t, 5.0, breakdown.Overtime, 0.001)
}

func TestSplitHoursWeeksAreIndependent(t *testing.T) {
	// 45 hours in week one, 20 in week two. Only week one has overtime.
	weekOne := time.Date(2026, 6, 8, 9, 0, 0, 0, time.UTC)
	weekTwo := weekOne.AddDate(0, 0, 7)

	shifts := []models.Shift{
		shift(weekOne, 15),
		shift(weekOne.AddDate(0, 0, 1), 15),
		shift(weekOne.AddDate(0, 0, 2), 15),
		shift(weekTwo, 10),
		shift(weekTwo.AddDate(0, 0, 1), 10),
	}

	breakdown := SplitHours(shifts)
	assert.InDelta(t, 60.0, breakdown.Regular, 0.001)
	assert.InDelta(t, 5.0, breakdown.Overtime, 0.001)
}

func TestSplitHoursIgnoresInvertedShift(t *testing.T) {
	start := time.Date(2026, 6, 8, 17, 0, 0, 0, time.UTC)
	breakdown := SplitHours([]models.Shift{
		{StartsAt: start, EndsAt: start.Add(-2 * time.Hour)},
	})
	assert.Zero(t, breakdown.Regular)
	assert.Zero(t, breakdown.Overtime)
}

func TestGrossPay(t *testing.T) {
	pay := GrossPay(HoursBreakdown{Regular: 40, Overtime: 5}, 12.50)
	// 40*12.50 + 5*12.50*1.5
	assert.Equal(t, 593.75, pay)

	assert.Equal(t, 0.0, GrossPay(HoursBreakdown{}, 12.50))
}

func TestShiftsOverlap(t *testing.T) {
	base := time.Date(2026, 6, 8, 12, 0, 0, 0, time.UTC)

	assert.True(t, ShiftsOverlap(base, base.Add(4*time.Hour), base.Add(2*time.Hour), base.Add(6*time.Hour)))
	// Back-to-back shifts do not overlap.
	assert.False(t, ShiftsOverlap(base, base.Add(4*time.Hour), base.Add(4*time.Hour), base.Add(8*time.Hour)))
	assert.False(t, ShiftsOverlap(base, base.Add(2*time.Hour), base.Add(3*time.Hour), base.Add(5*time.Hour)))
	// Containment counts as overlap.
	assert.True(t, ShiftsOverlap(base, base.Add(8*time.Hour), base.Add(2*time.Hour), base.Add(3*time.Hour)))
}
