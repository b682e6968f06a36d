package services

import (
	"testing"
	"time"

	"venuepro-backend/models"

	"github.com/stretchr/testify/assert"
)

func weeklyHours() models.JSONB {
	return models.JSONB{
		"monday":  map[string]interface{}{"open": "12:00", "close": "23:00"},
		"tuesday": map[string]interface{}{"closed": true},
		"friday":  map[string]interface{}{"open": "12:00", "close": "01:00"},
	}
}

func TestWeeklyHoursFor(t *testing.T) {
	hours := weeklyHours()

	monday := WeeklyHoursFor(hours, time.Monday)
	assert.False(t, monday.Closed)
	assert.Equal(t, "12:00", monday.Opens)
	assert.Equal(t, "23:00", monday.Closes)

	tuesday := WeeklyHoursFor(hours, time.Tuesday)
	assert.True(t, tuesday.Closed)

	// A weekday with no entry at all resolves to closed.
	sunday := WeeklyHoursFor(hours, time.Sunday)
	assert.True(t, sunday.Closed)
}

func TestResolveDayHoursOverrideWins(t *testing.T) {
	// A Monday.
	date := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)
	hours := weeklyHours()

	closed := &models.BusinessHoursOverride{Kind: models.OverrideClosed, Reason: "Private event"}
	day := ResolveDayHours(hours, closed, date)
	assert.True(t, day.Closed)
	assert.Equal(t, "Private event", day.Reason)

	modified := &models.BusinessHoursOverride{
		Kind:  models.OverrideModified,
		Opens: "17:00", Closes: "22:00",
		Reason: "Bank holiday",
	}
	day = ResolveDayHours(hours, modified, date)
	assert.False(t, day.Closed)
	assert.Equal(t, "17:00", day.Opens)
	assert.Equal(t, "22:00", day.Closes)

	kitchen := &models.BusinessHoursOverride{Kind: models.OverrideKitchenClosed, Reason: "Chef away"}
	day = ResolveDayHours(hours, kitchen, date)
	assert.False(t, day.Closed)
	assert.True(t, day.KitchenClosed)
	assert.Equal(t, "12:00", day.Opens)
}

func TestResolveDayHoursNoOverride(t *testing.T) {
	date := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC) // Monday
	day := ResolveDayHours(weeklyHours(), nil, date)
	assert.False(t, day.Closed)
	assert.Equal(t, "23:00", day.Closes)
}

func TestStatusAt(t *testing.T) {
	day := DayHours{Opens: "12:00", Closes: "23:00"}

	during := time.Date(2026, 6, 8, 15, 30, 0, 0, time.UTC)
	status := StatusAt(day, during)
	assert.True(t, status.Open)
	assert.True(t, status.KitchenOpen)
	assert.Equal(t, "23:00", status.ClosesAt)

	before := time.Date(2026, 6, 8, 9, 0, 0, 0, time.UTC)
	status = StatusAt(day, before)
	assert.False(t, status.Open)
	assert.Equal(t, "12:00", status.OpensAt)

	after := time.Date(2026, 6, 8, 23, 30, 0, 0, time.UTC)
	status = StatusAt(day, after)
	assert.False(t, status.Open)
	assert.Empty(t, status.OpensAt)
}

func TestStatusAtKitchenClosed(t *testing.T) {
	day := DayHours{Opens: "12:00", Closes: "23:00", KitchenClosed: true}
	now := time.Date(2026, 6, 8, 19, 0, 0, 0, time.UTC)

	status := StatusAt(day, now)
	assert.True(t, status.Open)
	assert.False(t, status.KitchenOpen)
}

func TestStatusAtClosedDay(t *testing.T) {
	day := DayHours{Closed: true, Reason: "Refurbishment"}
	status := StatusAt(day, time.Now())
	assert.False(t, status.Open)
	assert.Equal(t, "Refurbishment", status.Reason)
}

func TestStatusAtMidnightClose(t *testing.T) {
	day := DayHours{Opens: "12:00", Closes: "00:00"}

	evening := time.Date(2026, 6, 12, 21, 0, 0, 0, time.UTC)
	status := StatusAt(day, evening)
	assert.True(t, status.Open)
	assert.Equal(t, "00:00", status.ClosesAt)

	morning := time.Date(2026, 6, 12, 9, 0, 0, 0, time.UTC)
	status = StatusAt(day, morning)
	assert.False(t, status.Open)
	assert.Equal(t, "12:00", status.OpensAt)
}

func TestStatusAtPastMidnightClose(t *testing.T) {
	day := DayHours{Opens: "18:00", Closes: "01:00"}

	lateNight := time.Date(2026, 6, 13, 0, 30, 0, 0, time.UTC)
	status := StatusAt(day, lateNight)
	assert.True(t, status.Open)

	afternoon := time.Date(2026, 6, 13, 15, 0, 0, 0, time.UTC)
	status = StatusAt(day, afternoon)
	assert.False(t, status.Open)
	assert.Equal(t, "18:00", status.OpensAt)
}
