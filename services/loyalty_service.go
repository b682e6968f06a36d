package services

import (
	"errors"
	"log"
	"time"

	"venuepro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance thresholds for each tier. A customer's tier only ever moves
// up as attendance grows.
const (
	BronzeThreshold = 5
	SilverThreshold = 15
	GoldThreshold   = 30
)

const checkinPoints = 10

// TierForAttendance maps a cumulative attendance count to a loyalty tier.
func TierForAttendance(count int) string {
	switch {
	case count >= GoldThreshold:
		return models.TierGold
	case count >= SilverThreshold:
		return models.TierSilver
	case count >= BronzeThreshold:
		return models.TierBronze
	default:
		return models.TierMember
	}
}

type LoyaltyService struct {
	db *gorm.DB
}

func NewLoyaltyService(db *gorm.DB) *LoyaltyService {
	return &LoyaltyService{db: db}
}

var ErrAlreadyCheckedIn = errors.New("customer already checked in to this event")

// CheckIn records one customer's attendance at an event, bumps their
// counters and tier, and evaluates achievement rules. Everything runs in
// one transaction so a failed award never leaves a half-applied check-in.
func (s *LoyaltyService) CheckIn(venueID, eventID, customerID uuid.UUID) (*models.EventCheckin, error) {
	var checkin *models.EventCheckin

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.EventCheckin
		err := tx.Where("event_id = ? AND customer_id = ?", eventID, customerID).First(&existing).Error
		if err == nil {
			return ErrAlreadyCheckedIn
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		row := models.EventCheckin{
			VenueID:      venueID,
			EventID:      eventID,
			CustomerID:   customerID,
			CheckedInAt:  time.Now(),
			PointsEarned: checkinPoints,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		var customer models.Customer
		if err := tx.Where("venue_id = ? AND id = ?", venueID, customerID).First(&customer).Error; err != nil {
			return err
		}

		customer.AttendanceCount++
		customer.LoyaltyPoints += checkinPoints
		customer.LoyaltyTier = TierForAttendance(customer.AttendanceCount)
		now := time.Now()
		customer.LastVisit = &now

		if err := tx.Save(&customer).Error; err != nil {
			return err
		}

		if err := s.evaluateAchievements(tx, &customer); err != nil {
			return err
		}

		checkin = &row
		return nil
	})

	return checkin, err
}

// evaluateAchievements awards every active rule the customer now satisfies
// and has not been awarded before.
func (s *LoyaltyService) evaluateAchievements(tx *gorm.DB, customer *models.Customer) error {
	var rules []models.Achievement
	if err := tx.Where("venue_id = ? AND is_active = true", customer.VenueID).Find(&rules).Error; err != nil {
		return err
	}

	for _, rule := range rules {
		satisfied, err := s.ruleSatisfied(tx, rule, customer)
		if err != nil {
			return err
		}
		if !satisfied {
			continue
		}

		var existing models.AchievementAward
		err = tx.Where("achievement_id = ? AND customer_id = ?", rule.ID, customer.ID).First(&existing).Error
		if err == nil {
			continue // already awarded
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		award := models.AchievementAward{
			VenueID:       customer.VenueID,
			AchievementID: rule.ID,
			CustomerID:    customer.ID,
			AwardedAt:     time.Now(),
			Points:        rule.Points,
		}
		if err := tx.Create(&award).Error; err != nil {
			return err
		}

		customer.LoyaltyPoints += rule.Points
		if err := tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
			Update("loyalty_points", customer.LoyaltyPoints).Error; err != nil {
			return err
		}

		log.Printf("Awarded achievement %q to customer %s", rule.Name, customer.ID)
	}
	return nil
}

func (s *LoyaltyService) ruleSatisfied(tx *gorm.DB, rule models.Achievement, customer *models.Customer) (bool, error) {
	switch rule.Rule {
	case models.AchievementTotalAttendance:
		return customer.AttendanceCount >= rule.Threshold, nil
	case models.AchievementYearlyAttendance:
		yearStart := time.Date(time.Now().Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		var count int64
		err := tx.Model(&models.EventCheckin{}).
			Where("customer_id = ? AND checked_in_at >= ?", customer.ID, yearStart).
			Count(&count).Error
		return int(count) >= rule.Threshold, err
	case models.AchievementFirstBooking:
		return customer.TotalBookings >= rule.Threshold, nil
	default:
		return false, nil
	}
}
