// controllers/booking.go
package controllers

import (
	"errors"
	"fmt"
	"log"
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

// CreateBookingInput defines the expected JSON structure for creating a booking
type CreateBookingInput struct {
	CustomerID    uuid.UUID `json:"customerId" binding:"required"`
	BookingTypeID uuid.UUID `json:"bookingTypeId" binding:"required"`
	Date          string    `json:"date" binding:"required"` // "2006-01-02"
	StartTime     string    `json:"startTime" binding:"required"`
	PartySize     int       `json:"partySize" binding:"required,min=1"`
	Notes         string    `json:"notes"`
}

// UpdateBookingInput defines the expected JSON structure for updating a booking
type UpdateBookingInput struct {
	PartySize *int    `json:"partySize" binding:"omitempty,min=1"`
	Notes     *string `json:"notes"`
	Status    *string `json:"status" binding:"omitempty,oneof=confirmed completed cancelled no_show"`
}

// GetAvailability computes the bookable slots for a date, party size and booking type
func GetAvailability(c *gin.Context) {
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

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid or missing date (expected YYYY-MM-DD)")
		return
	}

	typeUUID, err := uuid.Parse(c.Query("bookingTypeId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid or missing bookingTypeId")
		return
	}

	partySize := 2
	if _, err := fmt.Sscanf(c.DefaultQuery("partySize", "2"), "%d", &partySize); err != nil || partySize < 1 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid partySize")
		return
	}

	availability := services.NewAvailabilityService(config.DB)
	slots, err := availability.SlotsFor(venueUUID, typeUUID, date, partySize, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking type not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute availability")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":      date.Format("2006-01-02"),
		"partySize": partySize,
		"slots":     slots,
	})
}

// CreateBooking validates the slot and writes the booking, re-checking
// capacity inside the transaction so concurrent requests cannot overbook.
func CreateBooking(c *gin.Context) {
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

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateTimeOfDay(input.StartTime) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid startTime (expected HH:MM)")
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date (expected YYYY-MM-DD)")
		return
	}

	var venue models.Venue
	if err := config.DB.First(&venue, "id = ?", venueUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var customer models.Customer
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, input.CustomerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var bookingType models.BookingType
	if err := config.DB.Where("venue_id = ? AND id = ? AND is_active = true", venueUUID, input.BookingTypeID).
		First(&bookingType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Booking type not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if bookingType.MaxPartySize > 0 && input.PartySize > bookingType.MaxPartySize {
		utils.RespondWithError(c, http.StatusBadRequest,
			fmt.Sprintf("Party size exceeds the maximum of %d for this booking type", bookingType.MaxPartySize))
		return
	}

	// Cutoff: bookings close a configured number of hours before the slot
	slotStart, err := time.ParseInLocation("2006-01-02 15:04", input.Date+" "+input.StartTime, time.Local)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date or time")
		return
	}
	if !slotStart.After(time.Now().Add(time.Duration(bookingType.CutoffHours) * time.Hour)) {
		utils.RespondWithError(c, http.StatusConflict, "Bookings for this slot have closed")
		return
	}

	availability := services.NewAvailabilityService(config.DB)

	// The slot must sit inside the resolved hours for the date, overrides
	// included, matching what the availability listing shows.
	day, err := availability.DayFor(venue, date)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve business hours")
		return
	}
	if !services.WithinHours(day, input.StartTime, bookingType.DurationMinutes) {
		utils.RespondWithError(c, http.StatusConflict, "The venue is not open at that time")
		return
	}

	booking := models.Booking{
		VenueID:         venueUUID,
		CreatedByUserID: uuid.Must(uuid.Parse(userID.(string))),
		CustomerID:      customer.ID,
		BookingTypeID:   bookingType.ID,
		BookingDate:     time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:       input.StartTime,
		PartySize:       input.PartySize,
		Status:          models.BookingConfirmed,
		Notes:           input.Notes,
		Reference:       "BK-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(5),
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	ok, err := availability.HasCapacity(tx, venue, bookingType, date, input.StartTime, input.PartySize)
	if err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to check availability")
		return
	}
	if !ok {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Not enough seats left for this slot")
		return
	}

	if err := tx.Create(&booking).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	// Update customer stats
	if err := tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
		Update("total_bookings", gorm.Expr("total_bookings + ?", 1)).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
		return
	}

	tx.Commit()

	// Confirmation SMS is best effort; the booking stands either way
	if venue.SMSNotifications && customer.SMSOptIn {
		sms := services.NewSMSService(config.DB)
		extra := map[string]string{
			"BookingDate": date.Format("Monday 2 January"),
			"BookingTime": booking.StartTime,
			"PartySize":   fmt.Sprintf("%d", booking.PartySize),
			"Reference":   booking.Reference,
		}
		if _, err := sms.SendTemplated(venueUUID, customer, models.TemplateBookingConfirmation, extra); err != nil {
			log.Printf("Booking %s: confirmation SMS failed: %v", booking.Reference, err)
		}
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBookings retrieves bookings for the venue, optionally filtered by date
func GetBookings(c *gin.Context) {
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

	query := config.DB.Preload("Customer").Preload("BookingType").
		Where("venue_id = ?", venueUUID)

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date (expected YYYY-MM-DD)")
			return
		}
		query = query.Where("booking_date = ?", time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Order("booking_date, start_time").Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBooking retrieves a specific booking by ID
func GetBooking(c *gin.Context) {
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

	bookingID := c.Param("id")
	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("Customer").Preload("BookingType").
		Where("venue_id = ? AND id = ?", venueUUID, bookingUUID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateBooking updates a booking's party size, notes or status
func UpdateBooking(c *gin.Context) {
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

	bookingID := c.Param("id")
	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input UpdateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("BookingType").
		Where("venue_id = ? AND id = ?", venueUUID, bookingUUID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if booking.Status == models.BookingCancelled {
		utils.RespondWithError(c, http.StatusConflict, "Cancelled bookings cannot be changed")
		return
	}

	// Growing the party re-checks capacity for the original slot
	if input.PartySize != nil && *input.PartySize > booking.PartySize {
		var venue models.Venue
		if err := config.DB.First(&venue, "id = ?", venueUUID).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}

		extra := *input.PartySize - booking.PartySize
		availability := services.NewAvailabilityService(config.DB)
		ok, err := availability.HasCapacity(config.DB, venue, booking.BookingType, booking.BookingDate, booking.StartTime, extra)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to check availability")
			return
		}
		if !ok {
			utils.RespondWithError(c, http.StatusConflict, "Not enough seats left for the larger party")
			return
		}
	}

	if input.PartySize != nil {
		booking.PartySize = *input.PartySize
	}
	if input.Notes != nil {
		booking.Notes = *input.Notes
	}
	if input.Status != nil {
		booking.Status = *input.Status
	}

	if err := config.DB.Save(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CancelBooking marks a booking cancelled, freeing its seats
func CancelBooking(c *gin.Context) {
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

	bookingID := c.Param("id")
	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	result := config.DB.Model(&models.Booking{}).
		Where("venue_id = ? AND id = ? AND status = ?", venueUUID, bookingUUID, models.BookingConfirmed).
		Update("status", models.BookingCancelled)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel booking")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "No confirmed booking found to cancel")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}
