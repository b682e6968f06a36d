package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"venuepro-backend/config"
	"venuepro-backend/models"
	"venuepro-backend/utils"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/webhook"
	"gorm.io/gorm"
)

// InitStripe sets the API key for the stripe-go client.
func InitStripe() {
	stripe.Key = config.App.Stripe.SecretKey
}

type StripeService struct {
	db *gorm.DB
}

func NewStripeService(db *gorm.DB) *StripeService {
	return &StripeService{db: db}
}

var ErrNothingToPay = errors.New("invoice has no outstanding balance")

// CreatePaymentIntent opens a Stripe payment intent for an invoice's
// outstanding balance and remembers the intent on the invoice row.
func (s *StripeService) CreatePaymentIntent(invoice *models.Invoice) (*stripe.PaymentIntent, error) {
	outstanding := utils.Round2(invoice.Total - invoice.PaidAmount)
	if outstanding <= 0 || invoice.PaymentStatus == models.InvoicePaid || invoice.PaymentStatus == models.InvoiceVoid {
		return nil, ErrNothingToPay
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(outstanding * 100)), // pence
		Currency: stripe.String(string(stripe.CurrencyGBP)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("invoice_id", invoice.ID.String())
	params.AddMetadata("invoice_number", invoice.InvoiceNumber)

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Invoice{}).Where("id = ?", invoice.ID).
		Update("stripe_intent_id", intent.ID).Error; err != nil {
		log.Printf("Failed to store intent %s on invoice %s: %v", intent.ID, invoice.InvoiceNumber, err)
	}

	return intent, nil
}

// HandleWebhook verifies a Stripe webhook, logs it, and marks invoices
// paid on payment_intent.succeeded.
func (s *StripeService) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, config.App.Stripe.WebhookSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	entry := models.WebhookLog{
		Provider:   "stripe",
		EventType:  string(event.Type),
		ExternalID: event.ID,
		Payload:    string(payload),
		Status:     "ignored",
		ReceivedAt: time.Now(),
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			entry.Status = "failed"
			entry.Error = err.Error()
			break
		}
		if err := s.applyPayment(intent.ID, float64(intent.AmountReceived)/100); err != nil {
			entry.Status = "failed"
			entry.Error = err.Error()
		} else {
			entry.Status = "processed"
		}
	case "payment_intent.payment_failed":
		entry.Status = "processed"
	}

	if dbErr := s.db.Create(&entry).Error; dbErr != nil {
		log.Printf("Failed to log stripe webhook %s: %v", event.ID, dbErr)
	}

	if entry.Status == "failed" {
		return errors.New(entry.Error)
	}
	return nil
}

// applyPayment credits a succeeded intent against its invoice.
func (s *StripeService) applyPayment(intentID string, amount float64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.Where("stripe_intent_id = ?", intentID).First(&invoice).Error; err != nil {
			return err
		}

		invoice.PaidAmount = utils.Round2(invoice.PaidAmount + amount)
		invoice.PaymentMethod = "card"
		if invoice.PaidAmount >= invoice.Total {
			invoice.PaymentStatus = models.InvoicePaid
		} else {
			invoice.PaymentStatus = models.InvoicePartPaid
		}

		return tx.Save(&invoice).Error
	})
}
