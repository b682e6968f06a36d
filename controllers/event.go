// controllers/event.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"venuepro-backend/config"
	"venuepro-backend/models"
	"venuepro-backend/services"
	"venuepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateEventInput defines the expected JSON structure for creating an event
type CreateEventInput struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	Capacity    int       `json:"capacity" binding:"min=0"`
	TicketPrice float64   `json:"ticketPrice" binding:"min=0"`
}

// UpdateEventInput defines the expected JSON structure for updating an event
type UpdateEventInput struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	StartsAt    *time.Time `json:"startsAt"`
	Capacity    *int       `json:"capacity"`
	TicketPrice *float64   `json:"ticketPrice"`
	IsCancelled *bool      `json:"isCancelled"`
}

// CreateEvent creates a new event for the venue
func CreateEvent(c *gin.Context) {
	venueID, exists := c.Get("venueId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Venue ID not found in context")
		return
	}
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	venueUUID, err := uuid.Parse(venueID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid venue ID format")
		return
	}

	var input CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	event := models.Event{
		VenueID:         venueUUID,
		CreatedByUserID: uuid.Must(uuid.Parse(userID.(string))),
		Name:            input.Name,
		Description:     input.Description,
		Category:        input.Category,
		StartsAt:        input.StartsAt,
		Capacity:        input.Capacity,
		TicketPrice:     input.TicketPrice,
	}
	if event.Category == "" {
		event.Category = "General"
	}

	if err := config.DB.Create(&event).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create event")
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetEvents retrieves events for the venue, upcoming first
func GetEvents(c *gin.Context) {
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
	if c.Query("upcoming") == "true" {
		query = query.Where("starts_at >= ? AND is_cancelled = false", time.Now())
	}

	var events []models.Event
	if err := query.Order("starts_at").Find(&events).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve events")
		return
	}

	c.JSON(http.StatusOK, events)
}

// GetEvent retrieves a specific event with its check-in count
func GetEvent(c *gin.Context) {
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

	eventID := c.Param("id")
	eventUUID, err := uuid.Parse(eventID)
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

	var checkinCount int64
	config.DB.Model(&models.EventCheckin{}).Where("event_id = ?", eventUUID).Count(&checkinCount)

	c.JSON(http.StatusOK, gin.H{
		"event":        event,
		"checkinCount": checkinCount,
	})
}

// UpdateEvent updates an existing event
func UpdateEvent(c *gin.Context) {
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

	eventID := c.Param("id")
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	var input UpdateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
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

	if input.Name != nil {
		event.Name = *input.Name
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Category != nil {
		event.Category = *input.Category
	}
	if input.StartsAt != nil {
		event.StartsAt = *input.StartsAt
	}
	if input.Capacity != nil {
		event.Capacity = *input.Capacity
	}
	if input.TicketPrice != nil {
		event.TicketPrice = *input.TicketPrice
	}
	if input.IsCancelled != nil {
		event.IsCancelled = *input.IsCancelled
	}

	if err := config.DB.Save(&event).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update event")
		return
	}

	c.JSON(http.StatusOK, event)
}

// CheckInCustomer records attendance and runs the loyalty engine
func CheckInCustomer(c *gin.Context) {
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

	eventID := c.Param("id")
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	var input struct {
		CustomerID uuid.UUID `json:"customerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var event models.Event
	if err := config.DB.Where("venue_id = ? AND id = ? AND is_cancelled = false", venueUUID, eventUUID).
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Event not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if event.Capacity > 0 {
		var checkinCount int64
		config.DB.Model(&models.EventCheckin{}).Where("event_id = ?", eventUUID).Count(&checkinCount)
		if int(checkinCount) >= event.Capacity {
			utils.RespondWithError(c, http.StatusConflict, "Event is at capacity")
			return
		}
	}

	loyalty := services.NewLoyaltyService(config.DB)
	checkin, err := loyalty.CheckIn(venueUUID, eventUUID, input.CustomerID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyCheckedIn) {
			utils.RespondWithError(c, http.StatusConflict, "Customer already checked in to this event")
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to check in customer")
		}
		return
	}

	c.JSON(http.StatusCreated, checkin)
}

// GetEventAttendees lists the customers checked in to an event
func GetEventAttendees(c *gin.Context) {
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

	eventID := c.Param("id")
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	type attendeeRow struct {
		CustomerID  uuid.UUID `json:"customerId"`
		Name        string    `json:"name"`
		Phone       string    `json:"phone"`
		LoyaltyTier string    `json:"loyaltyTier"`
		CheckedInAt time.Time `json:"checkedInAt"`
	}

	var attendees []attendeeRow
	err = config.DB.Table("event_checkins").
		Select("customers.id as customer_id, customers.name, customers.phone, customers.loyalty_tier, event_checkins.checked_in_at").
		Joins("JOIN customers ON customers.id = event_checkins.customer_id").
		Where("event_checkins.event_id = ? AND event_checkins.venue_id = ? AND event_checkins.deleted_at IS NULL", eventUUID, venueUUID).
		Order("event_checkins.checked_in_at").
		Scan(&attendees).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve attendees")
		return
	}

	c.JSON(http.StatusOK, attendees)
}
