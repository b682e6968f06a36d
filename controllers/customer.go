package controllers

import (
	"errors"
	"net/http"
	"time"

	"venuepro-backend/config"
	"venuepro-backend/models"
	"venuepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name     string     `json:"name" binding:"required"`
	Phone    string     `json:"phone" binding:"required"`
	Email    *string    `json:"email"` // Pointer to allow null
	Birthday *time.Time `json:"birthday"`
	SMSOptIn *bool      `json:"smsOptIn"`
	Notes    string     `json:"notes"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name     *string    `json:"name"`
	Phone    *string    `json:"phone"`
	Email    *string    `json:"email"`
	Birthday *time.Time `json:"birthday"`
	SMSOptIn *bool      `json:"smsOptIn"`
	Notes    *string    `json:"notes"`
	IsActive *bool      `json:"isActive"`
}

// CreateCustomer creates a new customer for the venue
func CreateCustomer(c *gin.Context) {
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

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate phone format
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if phone already exists for this venue
	var existingCustomer models.Customer
	if err := config.DB.Where("venue_id = ? AND phone = ?", venueUUID, input.Phone).
		First(&existingCustomer).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer := models.Customer{
		ID:              uuid.New(),
		VenueID:         venueUUID,
		CreatedByUserID: uuid.Must(uuid.Parse(userID.(string))),
		Name:            input.Name,
		Phone:           input.Phone,
		Birthday:        input.Birthday,
		Notes:           input.Notes,
		SMSOptIn:        true,
		LoyaltyTier:     models.TierMember,
		IsActive:        true,
	}

	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.SMSOptIn != nil {
		customer.SMSOptIn = *input.SMSOptIn
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers for the venue
func GetCustomers(c *gin.Context) {
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
	if tier := c.Query("tier"); tier != "" {
		query = query.Where("loyalty_tier = ?", tier)
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func GetCustomer(c *gin.Context) {
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

	customerID := c.Param("id")
	customerUUID, err := uuid.Parse(customerID)
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

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
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

	customerID := c.Param("id")
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Retrieve existing customer
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

	// Update fields if provided
	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}

		// Check if phone is being changed to another existing customer
		if customer.Phone != *input.Phone {
			var existingCustomer models.Customer
			if err := config.DB.Where("venue_id = ? AND phone = ?", venueUUID, *input.Phone).
				First(&existingCustomer).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another customer with this phone number already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		customer.Phone = *input.Phone
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Birthday != nil {
		customer.Birthday = input.Birthday
	}
	if input.SMSOptIn != nil {
		customer.SMSOptIn = *input.SMSOptIn
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer soft deletes a customer
func DeleteCustomer(c *gin.Context) {
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

	customerID := c.Param("id")
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	result := config.DB.Where("venue_id = ? AND id = ?", venueUUID, customerUUID).
		Delete(&models.Customer{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// GetCustomerLoyalty returns a customer's loyalty summary including awards
func GetCustomerLoyalty(c *gin.Context) {
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

	customerID := c.Param("id")
	customerUUID, err := uuid.Parse(customerID)
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

	var awards []models.AchievementAward
	if err := config.DB.Preload("Achievement").
		Where("venue_id = ? AND customer_id = ?", venueUUID, customerUUID).
		Order("awarded_at DESC").
		Find(&awards).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve awards")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tier":            customer.LoyaltyTier,
		"points":          customer.LoyaltyPoints,
		"attendanceCount": customer.AttendanceCount,
		"awards":          awards,
	})
}
