// controllers/webhook.go
package controllers

import (
	"io"
	"log"
	"net/http"

	"venuepro-backend/config"
	"venuepro-backend/services"
	"venuepro-backend/utils"

	"github.com/gin-gonic/gin"
)

// StripeWebhook receives payment events from Stripe
func StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 65536))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Missing Stripe-Signature header")
		return
	}

	stripeService := services.NewStripeService(config.DB)
	if err := stripeService.HandleWebhook(payload, signature); err != nil {
		log.Printf("Stripe webhook error: %v", err)
		utils.RespondWithError(c, http.StatusBadRequest, "Webhook verification failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// TwilioStatusCallback receives SMS delivery status updates from Twilio
func TwilioStatusCallback(c *gin.Context) {
	messageSID := c.PostForm("MessageSid")
	messageStatus := c.PostForm("MessageStatus")
	errorCode := c.PostForm("ErrorCode")

	if messageSID == "" || messageStatus == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Missing MessageSid or MessageStatus")
		return
	}

	smsService := services.NewSMSService(config.DB)
	if err := smsService.UpdateDeliveryStatus(messageSID, messageStatus, errorCode); err != nil {
		log.Printf("Failed to update delivery status for %s: %v", messageSID, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update message status")
		return
	}

	c.Status(http.StatusNoContent)
}
