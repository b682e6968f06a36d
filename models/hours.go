package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OverrideClosed        = "closed"
	OverrideModified      = "modified"
	OverrideKitchenClosed = "kitchen_closed"
)

// BusinessHoursOverride replaces the venue's weekly hours for a single date.
// An exact-date override always wins over the weekly default.
type BusinessHoursOverride struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	VenueID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_venue_override_date,priority:1"`

	Date   time.Time `gorm:"type:date;uniqueIndex:idx_venue_override_date,priority:2;not null"`
	Kind   string    `gorm:"type:varchar(20);not null"` // closed, modified or kitchen_closed
	Opens  string    `gorm:"type:varchar(5)"`           // only for modified
	Closes string    `gorm:"type:varchar(5)"`
	Reason string

	gorm.Model
}

func (o *BusinessHoursOverride) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}
