// models/message.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TemplateBookingConfirmation = "booking_confirmation"
	TemplateBookingReminder     = "booking_reminder"
	TemplateEventAnnouncement   = "event_announcement"
	TemplateBirthday            = "birthday"

	// MessageManual marks one-off messages sent outside any template.
	MessageManual = "manual"
)

type MessageTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	VenueID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Name     string    `gorm:"type:varchar(100)"`
	Type     string    `gorm:"type:varchar(30);not null"`
	Body     string    `gorm:"type:text;not null"`
	IsActive bool      `gorm:"default:true"`
	gorm.Model
}

func (t *MessageTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

type MessageLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	VenueID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null"`
	TemplateID *uuid.UUID `gorm:"type:uuid;index"`

	Type         string `gorm:"type:varchar(30)"` // booking_confirmation, booking_reminder...
	Body         string `gorm:"type:text"`
	Status       string `gorm:"type:varchar(20)"` // queued, sent, delivered, failed
	ErrorMessage string `gorm:"type:text"`
	TwilioSID    string `gorm:"index"`
	SentAt       time.Time
	gorm.Model
}

func (m *MessageLog) BeforeCreate(tx *gorm.DB) (err error) {
	m.ID = uuid.New()
	return
}
