// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"time"

	"venuepro-backend/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService runs the daily message jobs: booking reminders for
// tomorrow's bookings plus birthday messages.
type ReminderService struct {
	db  *gorm.DB
	sms *SMSService
}

func NewReminderService(db *gorm.DB, sms *SMSService) *ReminderService {
	return &ReminderService{db: db, sms: sms}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	if _, err := c.AddFunc("0 9 * * *", s.SendDailyReminders); err != nil {
		log.Printf("Failed to schedule daily reminders: %v", err)
		return
	}

	// Nightly maintenance
	if _, err := c.AddFunc("0 3 * * *", s.SweepExpiredLinks); err != nil {
		log.Printf("Failed to schedule link expiry sweep: %v", err)
	}

	c.Start()
	log.Println("Reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	var venues []models.Venue
	if err := s.db.Where("sms_notifications = true").Find(&venues).Error; err != nil {
		log.Printf("Failed to fetch venues: %v", err)
		return
	}

	for _, venue := range venues {
		s.ProcessVenueReminders(venue.ID)
		s.ProcessVenueBirthdays(venue.ID)
	}

	log.Println("Daily reminder processing completed")
}

// ProcessVenueReminders sends a reminder for each confirmed booking
// happening tomorrow that has not been reminded yet.
func (s *ReminderService) ProcessVenueReminders(venueID uuid.UUID) {
	tomorrow := time.Now().AddDate(0, 0, 1)
	date := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC)

	var bookings []models.Booking
	if err := s.db.Preload("Customer").
		Where("venue_id = ? AND booking_date = ? AND status = ? AND reminder_sent = false",
			venueID, date, models.BookingConfirmed).
		Find(&bookings).Error; err != nil {
		log.Printf("Venue %s: failed to fetch tomorrow's bookings: %v", venueID, err)
		return
	}

	for _, booking := range bookings {
		extra := map[string]string{
			"BookingTime": booking.StartTime,
			"PartySize":   fmt.Sprintf("%d", booking.PartySize),
			"Reference":   booking.Reference,
		}

		if _, err := s.sms.SendTemplated(venueID, booking.Customer, models.TemplateBookingReminder, extra); err != nil {
			log.Printf("Venue %s: reminder for booking %s failed: %v", venueID, booking.Reference, err)
			continue
		}

		if err := s.db.Model(&models.Booking{}).Where("id = ?", booking.ID).
			Update("reminder_sent", true).Error; err != nil {
			log.Printf("Venue %s: failed to mark booking %s reminded: %v", venueID, booking.Reference, err)
		}
	}
}

// SweepExpiredLinks retires short links whose expiry has passed. The
// redirect endpoint already answers 410 for them; the sweep keeps listings
// clean.
func (s *ReminderService) SweepExpiredLinks() {
	result := s.db.Where("expires_at IS NOT NULL AND expires_at < ?", time.Now()).
		Delete(&models.ShortLink{})
	if result.Error != nil {
		log.Printf("Expired link sweep failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Retired %d expired short links", result.RowsAffected)
	}
}

// ProcessVenueBirthdays messages customers whose birthday is today.
func (s *ReminderService) ProcessVenueBirthdays(venueID uuid.UUID) {
	now := time.Now()

	var customers []models.Customer
	err := s.db.Raw(`
		SELECT * FROM customers
		WHERE venue_id = ?
		AND is_active = true
		AND sms_opt_in = true
		AND birthday IS NOT NULL
		AND EXTRACT(MONTH FROM birthday) = ?
		AND EXTRACT(DAY FROM birthday) = ?
		AND deleted_at IS NULL
	`, venueID, int(now.Month()), now.Day()).Scan(&customers).Error
	if err != nil {
		log.Printf("Venue %s: failed to fetch birthday customers: %v", venueID, err)
		return
	}

	for _, customer := range customers {
		if _, err := s.sms.SendTemplated(venueID, customer, models.TemplateBirthday, nil); err != nil {
			log.Printf("Venue %s: birthday message to %s failed: %v", venueID, customer.ID, err)
		}
	}
}
