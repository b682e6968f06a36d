// models/webhook_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WebhookLog struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	Provider   string `gorm:"type:varchar(20);index"` // stripe, twilio
	EventType  string `gorm:"type:varchar(60)"`
	ExternalID string `gorm:"index"`
	Payload    string `gorm:"type:text"`
	Status     string `gorm:"type:varchar(20)"` // processed, ignored, failed
	Error      string `gorm:"type:text"`
	ReceivedAt time.Time

	gorm.Model
}

func (w *WebhookLog) BeforeCreate(tx *gorm.DB) (err error) {
	w.ID = uuid.New()
	return
}
