package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
	BookingNoShow    = "no_show"
)

// BookingType parameterizes availability: how long a party holds its table,
// how close to the slot a booking may still be made, and an optional
// capacity override for the type (e.g. Sunday lunch runs a smaller room).
type BookingType struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	VenueID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_venue_type_slug,priority:1"`

	Name             string `gorm:"not null"` // e.g. "Regular", "Sunday Lunch", "Private Hire"
	Slug             string `gorm:"not null;uniqueIndex:idx_venue_type_slug,priority:2"`
	DurationMinutes  int    `gorm:"default:120"`
	CutoffHours      int    `gorm:"default:2"` // bookings close this many hours before the slot
	CapacityOverride int    `gorm:"default:0"` // 0 means use the venue default
	MaxPartySize     int    `gorm:"default:20"`
	RequiresDeposit  bool   `gorm:"default:false"`
	IsActive         bool   `gorm:"default:true"`

	gorm.Model
}

type Booking struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	VenueID         uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	CustomerID    uuid.UUID `gorm:"type:uuid;index;not null"`
	BookingTypeID uuid.UUID `gorm:"type:uuid;index;not null"`

	BookingDate time.Time `gorm:"type:date;index;not null"`
	StartTime   string    `gorm:"type:varchar(5);not null"` // "19:30"
	PartySize   int       `gorm:"not null"`

	Status       string `gorm:"type:varchar(20);default:'confirmed'"`
	Notes        string
	Reference    string `gorm:"uniqueIndex;not null"`
	ReminderSent bool   `gorm:"default:false"`

	Customer    Customer    `gorm:"foreignKey:CustomerID"`
	BookingType BookingType `gorm:"foreignKey:BookingTypeID"`

	gorm.Model
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
