package services

import (
	"testing"
	"time"

	"venuepro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDay() DayHours {
	return DayHours{Opens: "12:00", Closes: "23:00"}
}

func testBookingType() models.BookingType {
	return models.BookingType{DurationMinutes: 120, CutoffHours: 2}
}

func slotByTime(t *testing.T, slots []Slot, at string) Slot {
	t.Helper()
	for _, slot := range slots {
		if slot.Time == at {
			return slot
		}
	}
	t.Fatalf("no slot at %s", at)
	return Slot{}
}

func TestParseClock(t *testing.T) {
	minutes, err := parseClock("19:30")
	require.NoError(t, err)
	assert.Equal(t, 19*60+30, minutes)

	_, err = parseClock("25:00")
	assert.Error(t, err)

	_, err = parseClock("not a time")
	assert.Error(t, err)
}

func TestComputeSlotsRange(t *testing.T) {
	date := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 6, 11, 9, 0, 0, 0, time.UTC)

	slots := ComputeSlots(testDay(), nil, testBookingType(), 60, 4, date, now)
	require.NotEmpty(t, slots)

	assert.Equal(t, "12:00", slots[0].Time)
	// Last seating leaves room for a full 120 minute stay before close.
	assert.Equal(t, "21:00", slots[len(slots)-1].Time)

	for _, slot := range slots {
		assert.Equal(t, 60, slot.Remaining)
		assert.True(t, slot.Available)
	}
}

func TestComputeSlotsClosedDay(t *testing.T) {
	date := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	slots := ComputeSlots(DayHours{Closed: true}, nil, testBookingType(), 60, 4, date, now)
	assert.Nil(t, slots)
}

func TestComputeSlotsSubtractsOverlappingBookings(t *testing.T) {
	date := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 6, 11, 9, 0, 0, 0, time.UTC)
	bt := testBookingType()

	bookings := []models.Booking{
		{StartTime: "19:00", PartySize: 10, Status: models.BookingConfirmed, BookingType: bt},
		{StartTime: "19:30", PartySize: 6, Status: models.BookingConfirmed, BookingType: bt},
		{StartTime: "12:00", PartySize: 8, Status: models.BookingCancelled, BookingType: bt},
	}

	slots := ComputeSlots(testDay(), bookings, bt, 20, 4, date, now)

	// 19:30 overlaps both live bookings; cancelled one frees its seats.
	assert.Equal(t, 4, slotByTime(t, slots, "19:30").Remaining)
	assert.Equal(t, 20, slotByTime(t, slots, "12:00").Remaining)

	// A 19:30 slot with only 4 seats left cannot take a party of 5.
	slots = ComputeSlots(testDay(), bookings, bt, 20, 5, date, now)
	assert.False(t, slotByTime(t, slots, "19:30").Available)
	assert.True(t, slotByTime(t, slots, "16:00").Available)
}

func TestComputeSlotsRemainingNeverNegative(t *testing.T) {
	date := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 6, 11, 9, 0, 0, 0, time.UTC)
	bt := testBookingType()

	// Walk-ins pushed the room over capacity.
	bookings := []models.Booking{
		{StartTime: "19:00", PartySize: 30, Status: models.BookingConfirmed, BookingType: bt},
	}

	slots := ComputeSlots(testDay(), bookings, bt, 20, 2, date, now)
	slot := slotByTime(t, slots, "19:00")
	assert.Equal(t, 0, slot.Remaining)
	assert.False(t, slot.Available)
}

func TestComputeSlotsCutoffBlocksNearSlots(t *testing.T) {
	date := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)
	// Mid-afternoon on the day itself, with a 2 hour cutoff.
	now := time.Date(2026, 6, 12, 15, 0, 0, 0, time.UTC)

	slots := ComputeSlots(testDay(), nil, testBookingType(), 60, 2, date, now)

	assert.False(t, slotByTime(t, slots, "16:30").Available)
	assert.False(t, slotByTime(t, slots, "17:00").Available)
	assert.True(t, slotByTime(t, slots, "17:30").Available)
}

func TestComputeSlotsCapacityOverride(t *testing.T) {
	date := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 6, 11, 9, 0, 0, 0, time.UTC)

	bt := testBookingType()
	bt.CapacityOverride = 24

	slots := ComputeSlots(testDay(), nil, bt, 60, 2, date, now)
	assert.Equal(t, 24, slots[0].Remaining)
}

func TestSeatsInUse(t *testing.T) {
	bt := models.BookingType{DurationMinutes: 120}
	bookings := []models.Booking{
		{StartTime: "18:00", PartySize: 4, Status: models.BookingConfirmed, BookingType: bt},
		{StartTime: "20:00", PartySize: 2, Status: models.BookingConfirmed, BookingType: bt},
		{StartTime: "18:00", PartySize: 6, Status: models.BookingNoShow, BookingType: bt},
	}

	// 18:00-20:00 window catches only the first booking; the 20:00 booking
	// starts exactly when the window ends.
	assert.Equal(t, 4, seatsInUse(bookings, 18*60, 20*60))
	assert.Equal(t, 2, seatsInUse(bookings, 20*60, 22*60))
	assert.Equal(t, 6, seatsInUse(bookings, 19*60, 21*60))
}

func TestComputeSlotsMidnightClose(t *testing.T) {
	date := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC) // a Friday
	now := time.Date(2026, 6, 11, 9, 0, 0, 0, time.UTC)

	day := DayHours{Opens: "12:00", Closes: "00:00"}
	slots := ComputeSlots(day, nil, testBookingType(), 60, 4, date, now)
	require.NotEmpty(t, slots)

	assert.Equal(t, "12:00", slots[0].Time)
	// Last 120 minute stay that wraps up by midnight starts at 22:00.
	assert.Equal(t, "22:00", slots[len(slots)-1].Time)
}

func TestComputeSlotsPastMidnightClose(t *testing.T) {
	date := time.Date(2026, 6, 13, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 6, 12, 9, 0, 0, 0, time.UTC)

	day := DayHours{Opens: "18:00", Closes: "01:00"}
	slots := ComputeSlots(day, nil, testBookingType(), 60, 4, date, now)
	require.NotEmpty(t, slots)

	last := slots[len(slots)-1]
	assert.Equal(t, "23:00", last.Time)
	assert.True(t, last.Available)
}

func TestWithinHours(t *testing.T) {
	day := testDay()

	assert.True(t, WithinHours(day, "19:00", 120))
	assert.True(t, WithinHours(day, "21:00", 120)) // finishes exactly at close
	assert.False(t, WithinHours(day, "21:30", 120))
	assert.False(t, WithinHours(day, "11:30", 120))
	assert.False(t, WithinHours(day, "03:00", 120))

	assert.False(t, WithinHours(DayHours{Closed: true}, "19:00", 120))

	midnight := DayHours{Opens: "12:00", Closes: "00:00"}
	assert.True(t, WithinHours(midnight, "22:00", 120))
	assert.False(t, WithinHours(midnight, "22:30", 120))
}
