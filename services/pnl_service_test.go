package services

import (
	"testing"
	"time"

	"venuepro-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestPeriodBounds(t *testing.T) {
	// A Wednesday in mid-June.
	now := time.Date(2026, 6, 10, 14, 0, 0, 0, time.UTC)

	start, end := PeriodBounds(models.TimeframeWeekly, now)
	assert.Equal(t, time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), end)

	start, end = PeriodBounds(models.TimeframeMonthly, now)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), end)

	start, end = PeriodBounds(models.TimeframeQuarterly, now)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestProrateTarget(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	// Halfway through a 30-day month.
	mid := time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 5000.0, ProrateTarget(10000, start, end, mid))

	// Before the period starts nothing is expected yet.
	assert.Equal(t, 0.0, ProrateTarget(10000, start, end, start.Add(-time.Hour)))

	// After the period ends the full target applies.
	assert.Equal(t, 10000.0, ProrateTarget(10000, start, end, end.Add(time.Hour)))
}

func TestVariance(t *testing.T) {
	variance, percent, status := Variance(1100, 1000)
	assert.Equal(t, 100.0, variance)
	assert.Equal(t, 10.0, percent)
	assert.Equal(t, StatusAhead, status)

	variance, percent, status = Variance(800, 1000)
	assert.Equal(t, -200.0, variance)
	assert.Equal(t, -20.0, percent)
	assert.Equal(t, StatusBehind, status)

	// Within the 5% band counts as on track, above or below.
	_, _, status = Variance(1030, 1000)
	assert.Equal(t, StatusOnTrack, status)
	_, _, status = Variance(970, 1000)
	assert.Equal(t, StatusOnTrack, status)

	// Edge of the band is still on track.
	_, _, status = Variance(1050, 1000)
	assert.Equal(t, StatusOnTrack, status)
	_, _, status = Variance(1051, 1000)
	assert.Equal(t, StatusAhead, status)
}

func TestVarianceZeroTarget(t *testing.T) {
	variance, percent, status := Variance(250, 0)
	assert.Equal(t, 250.0, variance)
	assert.Zero(t, percent)
	assert.Equal(t, StatusAhead, status)

	variance, percent, status = Variance(0, 0)
	assert.Zero(t, variance)
	assert.Zero(t, percent)
	assert.Equal(t, StatusOnTrack, status)
}
