// controllers/booking_type.go
package controllers

import (
	"errors"
	"net/http"

	"venuepro-backend/config"
	"venuepro-backend/models"
	"venuepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateBookingTypeInput defines the expected JSON structure for creating a booking type
type CreateBookingTypeInput struct {
	Name             string `json:"name" binding:"required"`
	Slug             string `json:"slug" binding:"required"`
	DurationMinutes  int    `json:"durationMinutes" binding:"min=30"`
	CutoffHours      int    `json:"cutoffHours" binding:"min=0"`
	CapacityOverride int    `json:"capacityOverride" binding:"min=0"`
	MaxPartySize     int    `json:"maxPartySize" binding:"min=1"`
	RequiresDeposit  bool   `json:"requiresDeposit"`
}

// UpdateBookingTypeInput defines the expected JSON structure for updating a booking type
type UpdateBookingTypeInput struct {
	Name             *string `json:"name"`
	DurationMinutes  *int    `json:"durationMinutes"`
	CutoffHours      *int    `json:"cutoffHours"`
	CapacityOverride *int    `json:"capacityOverride"`
	MaxPartySize     *int    `json:"maxPartySize"`
	RequiresDeposit  *bool   `json:"requiresDeposit"`
	IsActive         *bool   `json:"isActive"`
}

// CreateBookingType creates a new booking type for the venue
func CreateBookingType(c *gin.Context) {
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

	var input CreateBookingTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Check the slug is unique for this venue
	var existing models.BookingType
	if err := config.DB.Where("venue_id = ? AND slug = ?", venueUUID, input.Slug).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Booking type with this slug already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	bookingType := models.BookingType{
		VenueID:          venueUUID,
		Name:             input.Name,
		Slug:             input.Slug,
		DurationMinutes:  input.DurationMinutes,
		CutoffHours:      input.CutoffHours,
		CapacityOverride: input.CapacityOverride,
		MaxPartySize:     input.MaxPartySize,
		RequiresDeposit:  input.RequiresDeposit,
		IsActive:         true,
	}

	if err := config.DB.Create(&bookingType).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking type")
		return
	}

	c.JSON(http.StatusCreated, bookingType)
}

// GetBookingTypes retrieves all booking types for the venue
func GetBookingTypes(c *gin.Context) {
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

	var bookingTypes []models.BookingType
	if err := config.DB.Where("venue_id = ?", venueUUID).Find(&bookingTypes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve booking types")
		return
	}

	c.JSON(http.StatusOK, bookingTypes)
}

// UpdateBookingType updates an existing booking type
func UpdateBookingType(c *gin.Context) {
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

	typeID := c.Param("id")
	typeUUID, err := uuid.Parse(typeID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking type ID format")
		return
	}

	var input UpdateBookingTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var bookingType models.BookingType
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, typeUUID).
		First(&bookingType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking type not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Name != nil {
		bookingType.Name = *input.Name
	}
	if input.DurationMinutes != nil {
		bookingType.DurationMinutes = *input.DurationMinutes
	}
	if input.CutoffHours != nil {
		bookingType.CutoffHours = *input.CutoffHours
	}
	if input.CapacityOverride != nil {
		bookingType.CapacityOverride = *input.CapacityOverride
	}
	if input.MaxPartySize != nil {
		bookingType.MaxPartySize = *input.MaxPartySize
	}
	if input.RequiresDeposit != nil {
		bookingType.RequiresDeposit = *input.RequiresDeposit
	}
	if input.IsActive != nil {
		bookingType.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&bookingType).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking type")
		return
	}

	c.JSON(http.StatusOK, bookingType)
}

// DeleteBookingType soft deletes a booking type
func DeleteBookingType(c *gin.Context) {
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

	typeID := c.Param("id")
	typeUUID, err := uuid.Parse(typeID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking type ID format")
		return
	}

	result := config.DB.Where("venue_id = ? AND id = ?", venueUUID, typeUUID).
		Delete(&models.BookingType{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete booking type")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Booking type not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking type deleted successfully"})
}
