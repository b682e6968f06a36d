package services

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"venuepro-backend/config"
	"venuepro-backend/models"

	"gorm.io/gorm"
)

// EmailService sends invoice emails over plain SMTP using the configured
// relay. No message is sent when SMTP credentials are absent.
type EmailService struct {
	db *gorm.DB
}

func NewEmailService(db *gorm.DB) *EmailService {
	return &EmailService{db: db}
}

func (s *EmailService) SendInvoice(venue models.Venue, customer models.Customer, invoice models.Invoice) error {
	cfg := config.App.SMTP
	if cfg.Username == "" || customer.Email == "" {
		return fmt.Errorf("email not configured or customer %s has no email", customer.ID)
	}

	subject := fmt.Sprintf("Invoice %s from %s", invoice.InvoiceNumber, venue.Name)
	body := buildInvoiceBody(venue, customer, invoice)

	msg := strings.Join([]string{
		"From: " + cfg.From,
		"To: " + customer.Email,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	if err := smtp.SendMail(cfg.Host+":"+cfg.Port, auth, cfg.From, []string{customer.Email}, []byte(msg)); err != nil {
		return err
	}

	now := time.Now()
	return s.db.Model(&models.Invoice{}).Where("id = ?", invoice.ID).
		Update("emailed_at", &now).Error
}

func buildInvoiceBody(venue models.Venue, customer models.Customer, invoice models.Invoice) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\n", customer.Name)
	fmt.Fprintf(&b, "Please find your invoice %s from %s below.\n\n", invoice.InvoiceNumber, venue.Name)

	for _, item := range invoice.Items {
		fmt.Fprintf(&b, "  %dx %s @ %.2f = %.2f\n", item.Quantity, item.Description, item.UnitPrice, item.LineTotal)
	}

	fmt.Fprintf(&b, "\nSubtotal: %.2f\n", invoice.Subtotal)
	if invoice.DiscountPercent > 0 {
		fmt.Fprintf(&b, "Discount: %.1f%%\n", invoice.DiscountPercent)
	}
	fmt.Fprintf(&b, "VAT: %.2f\n", invoice.VATAmount)
	fmt.Fprintf(&b, "Total due: %.2f\n", invoice.Total-invoice.PaidAmount)
	if invoice.DueDate != nil {
		fmt.Fprintf(&b, "Due by: %s\n", invoice.DueDate.Format("2 January 2006"))
	}

	fmt.Fprintf(&b, "\nThank you,\n%s\n", venue.Name)
	return b.String()
}
