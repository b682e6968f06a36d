package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MetricRevenue  = "revenue"
	MetricCovers   = "covers"
	MetricCheckins = "checkins"
	MetricMessages = "messages"

	TimeframeWeekly    = "weekly"
	TimeframeMonthly   = "monthly"
	TimeframeQuarterly = "quarterly"
)

// MetricTarget is a venue goal for one metric over one timeframe; the P&L
// dashboard compares it against computed actuals.
type MetricTarget struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	VenueID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_venue_metric_tf,priority:1"`

	Metric    string  `gorm:"type:varchar(20);not null;uniqueIndex:idx_venue_metric_tf,priority:2"`
	Timeframe string  `gorm:"type:varchar(20);not null;uniqueIndex:idx_venue_metric_tf,priority:3"`
	Target    float64 `gorm:"type:decimal(12,2);not null"`

	gorm.Model
}

func (t *MetricTarget) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
