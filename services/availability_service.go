package services

import (
	"errors"
	"fmt"
	"time"

	"venuepro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const slotGranularityMinutes = 30

// Slot is one bookable time on a date. Remaining never goes below zero in
// responses even if walk-ins pushed a period over capacity.
type Slot struct {
	Time      string `json:"time"`
	Remaining int    `json:"remaining"`
	Available bool   `json:"available"`
}

// parseClock turns "19:30" into minutes since midnight.
func parseClock(value string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(value, "%d:%d", &h, &m); err != nil {
		return 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, errors.New("time of day out of range")
	}
	return h*60 + m, nil
}

// ComputeSlots derives availability for one date and booking type: seats
// remaining per slot after subtracting the party sizes of live bookings
// whose stay overlaps the slot's stay, with slots inside the cutoff window
// blocked. Closed days produce no slots.
func ComputeSlots(day DayHours, bookings []models.Booking, bt models.BookingType, capacity int, partySize int, date time.Time, now time.Time) []Slot {
	if day.Closed {
		return nil
	}
	if bt.CapacityOverride > 0 {
		capacity = bt.CapacityOverride
	}

	opens, err := parseClock(day.Opens)
	if err != nil {
		return nil
	}
	closes, err := parseClock(day.Closes)
	if err != nil {
		return nil
	}
	// "00:00" (and any close at or before opening) means the venue trades
	// past midnight; the close belongs to the next day.
	if closes <= opens {
		closes += 24 * 60
	}

	duration := bt.DurationMinutes
	if duration <= 0 {
		duration = 120
	}

	// Last seating leaves enough time to finish before close.
	lastStart := closes - duration
	cutoff := now.Add(time.Duration(bt.CutoffHours) * time.Hour)

	var slots []Slot
	for start := opens; start <= lastStart; start += slotGranularityMinutes {
		slotStart := time.Date(date.Year(), date.Month(), date.Day(), start/60, start%60, 0, 0, now.Location())

		remaining := capacity - seatsInUse(bookings, start, start+duration)
		if remaining < 0 {
			remaining = 0
		}

		available := remaining >= partySize && partySize > 0
		if !slotStart.After(cutoff) {
			available = false
		}

		slots = append(slots, Slot{
			Time:      fmt.Sprintf("%02d:%02d", (start/60)%24, start%60),
			Remaining: remaining,
			Available: available,
		})
	}
	return slots
}

// WithinHours reports whether a stay starting at startTime finishes inside
// the resolved window for the day. Used on the booking write path so a
// closed override or a 03:00 start is rejected, not just hidden from the
// availability listing.
func WithinHours(day DayHours, startTime string, durationMinutes int) bool {
	if day.Closed {
		return false
	}
	opens, err := parseClock(day.Opens)
	if err != nil {
		return false
	}
	closes, err := parseClock(day.Closes)
	if err != nil {
		return false
	}
	if closes <= opens {
		closes += 24 * 60
	}
	start, err := parseClock(startTime)
	if err != nil {
		return false
	}
	if durationMinutes <= 0 {
		durationMinutes = 120
	}
	return start >= opens && start+durationMinutes <= closes
}

// seatsInUse sums party sizes of live bookings overlapping [from, to) in
// minutes since midnight. Cancelled and no-show bookings free their seats.
func seatsInUse(bookings []models.Booking, from, to int) int {
	seats := 0
	for _, b := range bookings {
		if b.Status == models.BookingCancelled || b.Status == models.BookingNoShow {
			continue
		}
		start, err := parseClock(b.StartTime)
		if err != nil {
			continue
		}
		duration := b.BookingType.DurationMinutes
		if duration <= 0 {
			duration = 120
		}
		if start < to && start+duration > from {
			seats += b.PartySize
		}
	}
	return seats
}

// AvailabilityService answers "what can still be booked" and re-validates
// capacity inside booking transactions.
type AvailabilityService struct {
	db *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: db}
}

// SlotsFor loads everything availability depends on and computes the slots
// for one venue, date and booking type.
func (s *AvailabilityService) SlotsFor(venueID, bookingTypeID uuid.UUID, date time.Time, partySize int, now time.Time) ([]Slot, error) {
	var venue models.Venue
	if err := s.db.First(&venue, "id = ?", venueID).Error; err != nil {
		return nil, err
	}

	var bt models.BookingType
	if err := s.db.Where("venue_id = ? AND id = ?", venueID, bookingTypeID).First(&bt).Error; err != nil {
		return nil, err
	}

	day, err := s.resolvedHours(venue, date)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingsOn(venueID, date)
	if err != nil {
		return nil, err
	}

	return ComputeSlots(day, bookings, bt, venue.DefaultCapacity, partySize, date, now), nil
}

// DayFor resolves the trading hours for one date, overrides applied.
func (s *AvailabilityService) DayFor(venue models.Venue, date time.Time) (DayHours, error) {
	return s.resolvedHours(venue, date)
}

// HasCapacity re-checks one slot inside a transaction before a booking row
// is written. tx must already hold the insert's transaction.
func (s *AvailabilityService) HasCapacity(tx *gorm.DB, venue models.Venue, bt models.BookingType, date time.Time, startTime string, partySize int) (bool, error) {
	var bookings []models.Booking
	if err := tx.Preload("BookingType").
		Where("venue_id = ? AND booking_date = ?", venue.ID, utilsDate(date)).
		Find(&bookings).Error; err != nil {
		return false, err
	}

	start, err := parseClock(startTime)
	if err != nil {
		return false, err
	}
	duration := bt.DurationMinutes
	if duration <= 0 {
		duration = 120
	}

	capacity := venue.DefaultCapacity
	if bt.CapacityOverride > 0 {
		capacity = bt.CapacityOverride
	}

	return seatsInUse(bookings, start, start+duration)+partySize <= capacity, nil
}

func (s *AvailabilityService) resolvedHours(venue models.Venue, date time.Time) (DayHours, error) {
	var override models.BusinessHoursOverride
	err := s.db.Where("venue_id = ? AND date = ?", venue.ID, utilsDate(date)).First(&override).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return DayHours{}, err
		}
		return ResolveDayHours(venue.OpeningHours, nil, date), nil
	}
	return ResolveDayHours(venue.OpeningHours, &override, date), nil
}

func (s *AvailabilityService) bookingsOn(venueID uuid.UUID, date time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("BookingType").
		Where("venue_id = ? AND booking_date = ?", venueID, utilsDate(date)).
		Find(&bookings).Error
	return bookings, err
}

// utilsDate normalizes to a date-only value for the `date` columns.
func utilsDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
