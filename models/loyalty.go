package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AchievementTotalAttendance  = "total_attendance"
	AchievementYearlyAttendance = "yearly_attendance"
	AchievementFirstBooking     = "first_booking"
)

// Achievement is a venue-configured rule: reach Threshold on the rule's
// counter and the customer earns Points once.
type Achievement struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	VenueID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name      string `gorm:"not null"`
	Rule      string `gorm:"type:varchar(30);not null"` // total_attendance, yearly_attendance, first_booking
	Threshold int    `gorm:"default:1"`
	Points    int    `gorm:"default:10"`
	IsActive  bool   `gorm:"default:true"`

	gorm.Model
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// AchievementAward records a single grant; the unique index keeps awards
// one-per-customer-per-achievement.
type AchievementAward struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	VenueID       uuid.UUID `gorm:"type:uuid;index;not null"`
	AchievementID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_achievement_customer,priority:1"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_achievement_customer,priority:2"`

	AwardedAt time.Time
	Points    int

	Achievement Achievement `gorm:"foreignKey:AchievementID"`

	gorm.Model
}

func (a *AchievementAward) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
