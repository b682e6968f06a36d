package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	VenueID         uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name        string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"default:'General'"` // quiz, live music, tasting...
	StartsAt    time.Time `gorm:"index;not null"`
	Capacity    int       `gorm:"default:0"` // 0 means unlimited
	TicketPrice float64   `gorm:"type:decimal(10,2);default:0.0"`
	IsCancelled bool      `gorm:"default:false"`

	Checkins []EventCheckin `gorm:"foreignKey:EventID"`

	gorm.Model
}

// EventCheckin is one customer's attendance at one event. The unique index
// makes repeat check-ins idempotent at the database as well.
type EventCheckin struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	VenueID    uuid.UUID `gorm:"type:uuid;index;not null"`
	EventID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_customer,priority:1"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_event_customer,priority:2"`

	CheckedInAt  time.Time
	PointsEarned int `gorm:"default:0"`

	gorm.Model
}

func (e *EventCheckin) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
