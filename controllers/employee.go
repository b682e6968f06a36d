// controllers/employee.go
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

// CreateEmployeeInput defines the expected JSON structure for employee creation
type CreateEmployeeInput struct {
	Name       string  `json:"name" binding:"required"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email" binding:"omitempty,email"`
	JobTitle   string  `json:"jobTitle"`
	HourlyRate float64 `json:"hourlyRate" binding:"required,gt=0"`
	StartedOn  *string `json:"startedOn"`
}

// UpdateEmployeeInput defines the expected JSON structure for employee updates
type UpdateEmployeeInput struct {
	Name       *string  `json:"name"`
	Phone      *string  `json:"phone"`
	Email      *string  `json:"email"`
	JobTitle   *string  `json:"jobTitle"`
	HourlyRate *float64 `json:"hourlyRate"`
	IsActive   *bool    `json:"isActive"`
}

// CreateEmployee adds a new employee to the rota
func CreateEmployee(c *gin.Context) {
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

	var input CreateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	employee := models.Employee{
		VenueID:    venueUUID,
		Name:       input.Name,
		Phone:      input.Phone,
		Email:      input.Email,
		HourlyRate: input.HourlyRate,
		IsActive:   true,
	}

	if input.JobTitle != "" {
		employee.JobTitle = input.JobTitle
	}

	if input.StartedOn != nil {
		startedOn, err := time.Parse("2006-01-02", *input.StartedOn)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid start date format. Use YYYY-MM-DD")
			return
		}
		employee.StartedOn = &startedOn
	}

	if err := config.DB.Create(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// GetEmployees lists the venue's employees
func GetEmployees(c *gin.Context) {
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
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var employees []models.Employee
	if err := query.Order("name ASC").Find(&employees).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve employees")
		return
	}

	c.JSON(http.StatusOK, employees)
}

// UpdateEmployee updates an employee record
func UpdateEmployee(c *gin.Context) {
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

	employeeID := c.Param("id")
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var input UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var employee models.Employee
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, employeeUUID).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		employee.Phone = *input.Phone
	}
	if input.Email != nil {
		employee.Email = *input.Email
	}
	if input.JobTitle != nil {
		employee.JobTitle = *input.JobTitle
	}
	if input.HourlyRate != nil {
		if *input.HourlyRate <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Hourly rate must be positive")
			return
		}
		employee.HourlyRate = *input.HourlyRate
	}
	if input.IsActive != nil {
		employee.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee soft-deletes an employee
func DeleteEmployee(c *gin.Context) {
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

	employeeID := c.Param("id")
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	result := config.DB.Where("venue_id = ? AND id = ?", venueUUID, employeeUUID).
		Delete(&models.Employee{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete employee")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
