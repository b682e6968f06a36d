package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

type Venue struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"not null"`
	Address string
	Phone   string

	// Weekly opening hours keyed by lowercase weekday name, e.g.
	// {"monday": {"open": "12:00", "close": "23:00", "closed": false}}
	OpeningHours JSONB `gorm:"type:jsonb;default:'{}'"`

	// Kitchen hours follow the same shape; empty means "same as opening".
	KitchenHours JSONB `gorm:"type:jsonb;default:'{}'"`

	DefaultCapacity  int  `gorm:"default:60"` // total covers per service period
	SMSNotifications bool `gorm:"default:true"`
	EmailInvoices    bool `gorm:"default:true"`

	Users         []User                  `gorm:"foreignKey:VenueID"`
	Customers     []Customer              `gorm:"foreignKey:VenueID"`
	BookingTypes  []BookingType           `gorm:"foreignKey:VenueID"`
	Bookings      []Booking               `gorm:"foreignKey:VenueID"`
	Events        []Event                 `gorm:"foreignKey:VenueID"`
	Invoices      []Invoice               `gorm:"foreignKey:VenueID"`
	Employees     []Employee              `gorm:"foreignKey:VenueID"`
	ShortLinks    []ShortLink             `gorm:"foreignKey:VenueID"`
	MetricTargets []MetricTarget          `gorm:"foreignKey:VenueID"`
	Overrides     []BusinessHoursOverride `gorm:"foreignKey:VenueID"`
}

// Custom JSONB type for opening hours and similar blobs
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
