// controllers/message.go
package controllers

import (
	"errors"
	"net/http"

	"venuepro-backend/config"
	"venuepro-backend/models"
	"venuepro-backend/services"
	"venuepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTemplateInput defines the expected JSON structure for a message template
type CreateTemplateInput struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=booking_confirmation booking_reminder event_announcement birthday"`
	Body string `json:"body" binding:"required"`
}

// UpdateTemplateInput defines the expected JSON structure for updating a template
type UpdateTemplateInput struct {
	Name     *string `json:"name"`
	Body     *string `json:"body"`
	IsActive *bool   `json:"isActive"`
}

// SendMessageInput defines the expected JSON structure for a one-off SMS
type SendMessageInput struct {
	CustomerID string `json:"customerId" binding:"required"`
	Body       string `json:"body" binding:"required"`
}

// AnnounceEventInput defines the expected JSON structure for an event announcement
type AnnounceEventInput struct {
	EventID string `json:"eventId" binding:"required"`
}

// CreateTemplate creates a new message template
func CreateTemplate(c *gin.Context) {
	venueID, exists := c.Get("venueId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Venue ID not found in context")
		return
	}

	venueUUID, err := uuid.Parse(venueID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid venue ID format")
		return
	}

	var input CreateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	template := models.MessageTemplate{
		VenueID:  venueUUID,
		Name:     input.Name,
		Type:     input.Type,
		Body:     input.Body,
		IsActive: true,
	}

	if err := config.DB.Create(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create template")
		return
	}

	c.JSON(http.StatusCreated, template)
}

// GetTemplates lists the venue's message templates
func GetTemplates(c *gin.Context) {
	venueID, exists := c.Get("venueId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Venue ID not found in context")
		return
	}

	venueUUID, err := uuid.Parse(venueID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid venue ID format")
		return
	}

	query := config.DB.Where("venue_id = ?", venueUUID)
	if msgType := c.Query("type"); msgType != "" {
		query = query.Where("type = ?", msgType)
	}

	var templates []models.MessageTemplate
	if err := query.Order("created_at DESC").Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve templates")
		return
	}

	c.JSON(http.StatusOK, templates)
}

// UpdateTemplate updates a message template
func UpdateTemplate(c *gin.Context) {
	venueID, exists := c.Get("venueId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Venue ID not found in context")
		return
	}

	venueUUID, err := uuid.Parse(venueID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid venue ID format")
		return
	}

	templateID := c.Param("id")
	templateUUID, err := uuid.Parse(templateID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	var input UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var template models.MessageTemplate
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, templateUUID).
		First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		template.Name = *input.Name
	}
	if input.Body != nil {
		template.Body = *input.Body
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}

	c.JSON(http.StatusOK, template)
}

// DeleteTemplate removes a message template
func DeleteTemplate(c *gin.Context) {
	venueID, exists := c.Get("venueId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Venue ID not found in context")
		return
	}

	venueUUID, err := uuid.Parse(venueID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid venue ID format")
		return
	}

	templateID := c.Param("id")
	templateUUID, err := uuid.Parse(templateID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	result := config.DB.Where("venue_id = ? AND id = ?", venueUUID, templateUUID).
		Delete(&models.MessageTemplate{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete template")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}

// SendMessage sends a one-off SMS to a single customer
func SendMessage(c *gin.Context) {
	venueID, exists := c.Get("venueId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Venue ID not found in context")
		return
	}

	venueUUID, err := uuid.Parse(venueID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid venue ID format")
		return
	}

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customerUUID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	smsService := services.NewSMSService(config.DB)
	body := services.RenderTemplate(input.Body, customer, nil)
	msgLog, err := smsService.Send(venueUUID, customer, models.MessageManual, body, nil)
	if err != nil {
		if errors.Is(err, services.ErrSMSOptedOut) {
			utils.RespondWithError(c, http.StatusConflict, "Customer has opted out of SMS")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send message")
		return
	}

	c.JSON(http.StatusOK, msgLog)
}

// AnnounceEvent sends an event announcement to all opted-in customers
func AnnounceEvent(c *gin.Context) {
	venueID, exists := c.Get("venueId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Venue ID not found in context")
		return
	}

	venueUUID, err := uuid.Parse(venueID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid venue ID format")
		return
	}

	var input AnnounceEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	eventUUID, err := uuid.Parse(input.EventID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	var event models.Event
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, eventUUID).
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Event not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if event.IsCancelled {
		utils.RespondWithError(c, http.StatusConflict, "Cannot announce a cancelled event")
		return
	}

	var customers []models.Customer
	if err := config.DB.Where("venue_id = ? AND sms_opt_in = ?", venueUUID, true).
		Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	smsService := services.NewSMSService(config.DB)
	extra := map[string]string{
		"EventName": event.Name,
		"EventDate": event.StartsAt.Format("Mon 2 Jan 15:04"),
	}

	sent := 0
	failed := 0
	for _, customer := range customers {
		if _, err := smsService.SendTemplated(venueUUID, customer, models.TemplateEventAnnouncement, extra); err != nil {
			failed++
			continue
		}
		sent++
	}

	c.JSON(http.StatusOK, gin.H{
		"sent":   sent,
		"failed": failed,
		"total":  len(customers),
	})
}

// GetMessageLogs lists recent message logs for the venue
func GetMessageLogs(c *gin.Context) {
	venueID, exists := c.Get("venueId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Venue ID not found in context")
		return
	}

	venueUUID, err := uuid.Parse(venueID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid venue ID format")
		return
	}

	query := config.DB.Where("venue_id = ?", venueUUID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var logs []models.MessageLog
	if err := query.Order("created_at DESC").Limit(200).
		Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve message logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}
