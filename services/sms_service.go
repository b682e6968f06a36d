// services/sms_service.go
package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"venuepro-backend/config"
	"venuepro-backend/models"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type SMSService struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

func NewSMSService(db *gorm.DB) *SMSService {
	cfg := config.App.Twilio

	return &SMSService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		from: cfg.FromNumber,
	}
}

// RenderTemplate substitutes the placeholders templates may use.
func RenderTemplate(body string, customer models.Customer, extra map[string]string) string {
	rendered := strings.ReplaceAll(body, "[CustomerName]", customer.Name)
	for key, value := range extra {
		rendered = strings.ReplaceAll(rendered, "["+key+"]", value)
	}
	return rendered
}

var ErrSMSOptedOut = errors.New("customer has opted out of SMS")

// Send delivers one SMS and writes a MessageLog row whatever the outcome.
// Opt-outs are enforced here so no caller can bypass them.
func (s *SMSService) Send(venueID uuid.UUID, customer models.Customer, msgType, body string, templateID *uuid.UUID) (*models.MessageLog, error) {
	if !customer.SMSOptIn {
		return nil, ErrSMSOptedOut
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(customer.Phone)
	params.SetFrom(s.from)
	params.SetBody(body)

	entry := models.MessageLog{
		VenueID:    venueID,
		CustomerID: customer.ID,
		TemplateID: templateID,
		Type:       msgType,
		Body:       body,
		Status:     "sent",
		SentAt:     time.Now(),
	}

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send SMS to %s: %v", customer.Phone, err)
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
	} else if resp.Sid != nil {
		entry.TwilioSID = *resp.Sid
	}

	if dbErr := s.db.Create(&entry).Error; dbErr != nil {
		log.Printf("Failed to log SMS for customer %s: %v", customer.ID, dbErr)
	}

	if err != nil {
		return &entry, err
	}
	return &entry, nil
}

// SendTemplated looks up the venue's active template of the given type,
// renders it and sends it.
func (s *SMSService) SendTemplated(venueID uuid.UUID, customer models.Customer, msgType string, extra map[string]string) (*models.MessageLog, error) {
	var template models.MessageTemplate
	if err := s.db.Where("venue_id = ? AND type = ? AND is_active = true", venueID, msgType).
		First(&template).Error; err != nil {
		return nil, err
	}

	body := RenderTemplate(template.Body, customer, extra)
	return s.Send(venueID, customer, msgType, body, &template.ID)
}

// UpdateDeliveryStatus applies a Twilio status callback to the matching
// message log row.
func (s *SMSService) UpdateDeliveryStatus(twilioSID, status, errorMessage string) error {
	updates := map[string]interface{}{"status": normalizeTwilioStatus(status)}
	if errorMessage != "" {
		updates["error_message"] = errorMessage
	}

	result := s.db.Model(&models.MessageLog{}).Where("twilio_sid = ?", twilioSID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func normalizeTwilioStatus(status string) string {
	switch status {
	case "delivered":
		return "delivered"
	case "failed", "undelivered":
		return "failed"
	default:
		return "sent"
	}
}
