package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ShiftDraft     = "draft"
	ShiftPublished = "published"
	ShiftApproved  = "approved"
)

type Employee struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	VenueID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name       string `gorm:"not null"`
	Phone      string
	Email      string
	JobTitle   string  `gorm:"default:'Bar Staff'"`
	HourlyRate float64 `gorm:"type:decimal(10,2);not null"`
	StartedOn  *time.Time
	IsActive   bool `gorm:"default:true"`

	Shifts []Shift `gorm:"foreignKey:EmployeeID"`

	gorm.Model
}

func (e *Employee) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

type Shift struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	VenueID    uuid.UUID `gorm:"type:uuid;index;not null"`
	EmployeeID uuid.UUID `gorm:"type:uuid;index;not null"`

	StartsAt time.Time `gorm:"index;not null"`
	EndsAt   time.Time `gorm:"not null"`
	Role     string    `gorm:"default:'floor'"` // floor, bar, kitchen
	Status   string    `gorm:"type:varchar(20);default:'draft'"`
	Notes    string

	Employee Employee `gorm:"foreignKey:EmployeeID"`

	gorm.Model
}

func (s *Shift) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

type PayrollRun struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	VenueID         uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	PeriodStart time.Time `gorm:"type:date;not null"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`
	GrossTotal  float64   `gorm:"type:decimal(10,2);default:0.0"`

	Lines []PayrollLine `gorm:"foreignKey:PayrollRunID"`

	gorm.Model
}

func (p *PayrollRun) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

type PayrollLine struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	PayrollRunID uuid.UUID `gorm:"type:uuid;index;not null"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;index;not null"`

	RegularHours  float64 `gorm:"type:decimal(6,2)"`
	OvertimeHours float64 `gorm:"type:decimal(6,2)"`
	HourlyRate    float64 `gorm:"type:decimal(10,2)"`
	GrossPay      float64 `gorm:"type:decimal(10,2)"`

	Employee Employee `gorm:"foreignKey:EmployeeID"`

	gorm.Model
}

func (p *PayrollLine) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
