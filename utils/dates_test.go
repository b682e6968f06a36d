// utils/dates_test.go
package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfWeek(t *testing.T) {
	// Wednesday 10 June 2026.
	wednesday := time.Date(2026, 6, 10, 15, 30, 0, 0, time.UTC)
	monday := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, BeginningOfWeek(wednesday))

	// Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2026, 6, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, monday, BeginningOfWeek(sunday))

	// Monday maps to itself.
	assert.Equal(t, monday, BeginningOfWeek(monday.Add(5*time.Hour)))
}

func TestBeginningOfQuarter(t *testing.T) {
	assert.Equal(t,
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		BeginningOfQuarter(time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t,
		time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		BeginningOfQuarter(time.Date(2026, 12, 31, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		BeginningOfQuarter(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2026, 6, 8, 23, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 10, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysBetween(start, end))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.57, Round2(10.565))
	assert.Equal(t, 10.56, Round2(10.564))
	assert.Equal(t, -3.33, Round2(-3.325))
	assert.Equal(t, 0.0, Round2(0))
}
