package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	InvoiceUnpaid   = "unpaid"
	InvoicePartPaid = "part_paid"
	InvoicePaid     = "paid"
	InvoiceVoid     = "void"
)

type Invoice struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	VenueID         uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	InvoiceNumber string    `gorm:"uniqueIndex;not null"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index;not null"`
	InvoiceDate   time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	DueDate       *time.Time

	Subtotal        float64 `gorm:"type:decimal(10,2);not null"`
	DiscountPercent float64 `gorm:"type:decimal(5,2);default:0.0"`
	VATAmount       float64 `gorm:"type:decimal(10,2);default:0.0"`
	Total           float64 `gorm:"type:decimal(10,2);not null"`

	PaymentStatus   string  `gorm:"type:varchar(20);default:'unpaid'"`
	PaidAmount      float64 `gorm:"type:decimal(10,2);default:0.0"`
	PaymentMethod   string
	StripeIntentID  string `gorm:"index"`
	Notes           string
	EmailedAt       *time.Time

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID"`
}

type InvoiceItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Description string    `gorm:"not null"`
	Quantity    int       `gorm:"default:1"`
	UnitPrice   float64   `gorm:"type:decimal(10,2);not null"`
	VATRate     float64   `gorm:"type:decimal(5,2);default:20.0"` // percent
	LineTotal   float64   `gorm:"type:decimal(10,2);not null"`    // pre-VAT, post line qty
}
