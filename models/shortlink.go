package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShortLink struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	VenueID         uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Code        string `gorm:"uniqueIndex;not null"`
	Destination string `gorm:"not null"`
	Campaign    string
	ExpiresAt   *time.Time
	ClickCount  int64 `gorm:"default:0"`

	Clicks []LinkClick `gorm:"foreignKey:ShortLinkID"`

	gorm.Model
}

func (l *ShortLink) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

type LinkClick struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	ShortLinkID uuid.UUID `gorm:"type:uuid;index;not null"`

	UserAgent string
	Referrer  string
	ClickedAt time.Time `gorm:"index"`
}

func (c *LinkClick) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
