// controllers/profile.go
package controllers

import (
	"net/http"

	"venuepro-backend/config"
	"venuepro-backend/models"
	"venuepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UpdateVenueProfileInput struct {
	Name            *string `json:"name"`
	Address         *string `json:"address"`
	Phone           *string `json:"phone"`
	DefaultCapacity *int    `json:"defaultCapacity"`
}

// GetVenueProfile returns the venue's profile and settings
func GetVenueProfile(c *gin.Context) {
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

	var venue models.Venue
	if err := config.DB.First(&venue, venueUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Venue not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":             venue.Name,
		"address":          venue.Address,
		"phone":            venue.Phone,
		"openingHours":     venue.OpeningHours,
		"kitchenHours":     venue.KitchenHours,
		"defaultCapacity":  venue.DefaultCapacity,
		"smsNotifications": venue.SMSNotifications,
		"emailInvoices":    venue.EmailInvoices,
	})
}

// UpdateVenueProfile updates the venue's basic details
func UpdateVenueProfile(c *gin.Context) {
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

	var input UpdateVenueProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var venue models.Venue
	if err := config.DB.First(&venue, venueUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Venue not found")
		return
	}

	if input.Name != nil {
		venue.Name = *input.Name
	}
	if input.Address != nil {
		venue.Address = *input.Address
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		venue.Phone = *input.Phone
	}
	if input.DefaultCapacity != nil {
		if *input.DefaultCapacity <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Default capacity must be positive")
			return
		}
		venue.DefaultCapacity = *input.DefaultCapacity
	}

	if err := config.DB.Save(&venue).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// UpdateNotificationSettings toggles SMS and email behaviour for the venue
func UpdateNotificationSettings(c *gin.Context) {
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

	var input struct {
		SMSNotifications bool `json:"smsNotifications"`
		EmailInvoices    bool `json:"emailInvoices"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := config.DB.Model(&models.Venue{}).Where("id = ?", venueUUID).
		Updates(map[string]interface{}{
			"sms_notifications": input.SMSNotifications,
			"email_invoices":    input.EmailInvoices,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}
