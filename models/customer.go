package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TierMember = "member"
	TierBronze = "bronze"
	TierSilver = "silver"
	TierGold   = "gold"
)

type Customer struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	VenueID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_venue_phone,priority:1"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name     string `gorm:"not null"`
	Phone    string `gorm:"not null;uniqueIndex:idx_venue_phone,priority:2"`
	Email    string
	Birthday *time.Time
	Notes    string

	SMSOptIn bool `gorm:"default:true"`

	TotalBookings   int        `gorm:"default:0"`
	TotalSpent      float64    `gorm:"type:decimal(10,2);default:0.0"`
	AttendanceCount int        `gorm:"default:0"`
	LoyaltyTier     string     `gorm:"type:varchar(20);default:'member'"`
	LoyaltyPoints   int        `gorm:"default:0"`
	LastVisit       *time.Time

	IsActive bool `gorm:"default:true"`

	Bookings []Booking `gorm:"foreignKey:CustomerID"`
	Invoices []Invoice `gorm:"foreignKey:CustomerID"`

	gorm.Model
}
