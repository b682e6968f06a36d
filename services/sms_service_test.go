// services/sms_service_test.go
package services

import (
	"testing"

	"venuepro-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	customer := models.Customer{Name: "Maya"}

	body := RenderTemplate("Hi [CustomerName], see you at [BookingTime]!", customer, map[string]string{
		"BookingTime": "19:30",
	})
	assert.Equal(t, "Hi Maya, see you at 19:30!", body)
}

func TestRenderTemplateLeavesUnknownPlaceholders(t *testing.T) {
	customer := models.Customer{Name: "Maya"}

	body := RenderTemplate("Hi [CustomerName], ref [Reference]", customer, nil)
	assert.Equal(t, "Hi Maya, ref [Reference]", body)
}

func TestNormalizeTwilioStatus(t *testing.T) {
	assert.Equal(t, "delivered", normalizeTwilioStatus("delivered"))
	assert.Equal(t, "failed", normalizeTwilioStatus("failed"))
	assert.Equal(t, "failed", normalizeTwilioStatus("undelivered"))
	assert.Equal(t, "sent", normalizeTwilioStatus("queued"))
	assert.Equal(t, "sent", normalizeTwilioStatus("sent"))
}
