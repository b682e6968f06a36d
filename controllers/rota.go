// controllers/rota.go
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

// CreateShiftInput defines the expected JSON structure for shift creation
type CreateShiftInput struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	StartsAt   string `json:"startsAt" binding:"required"`
	EndsAt     string `json:"endsAt" binding:"required"`
	Role       string `json:"role" binding:"omitempty,oneof=floor bar kitchen"`
	Notes      string `json:"notes"`
}

// UpdateShiftInput defines the expected JSON structure for shift updates
type UpdateShiftInput struct {
	StartsAt *string `json:"startsAt"`
	EndsAt   *string `json:"endsAt"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
}

func shiftOverlapsExisting(venueUUID, employeeUUID, excludeShiftID uuid.UUID, startsAt, endsAt time.Time) (bool, error) {
	var existing []models.Shift
	query := config.DB.Where("venue_id = ? AND employee_id = ? AND starts_at < ? AND ends_at > ?",
		venueUUID, employeeUUID, endsAt, startsAt)
	if excludeShiftID != uuid.Nil {
		query = query.Where("id != ?", excludeShiftID)
	}
	if err := query.Find(&existing).Error; err != nil {
		return false, err
	}

	for _, shift := range existing {
		if services.ShiftsOverlap(startsAt, endsAt, shift.StartsAt, shift.EndsAt) {
			return true, nil
		}
	}
	return false, nil
}

// CreateShift adds a shift to the rota
func CreateShift(c *gin.Context) {
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

	var input CreateShiftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	employeeUUID, err := uuid.Parse(input.EmployeeID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	startsAt, err := time.Parse(time.RFC3339, input.StartsAt)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid start time format. Use RFC3339")
		return
	}
	endsAt, err := time.Parse(time.RFC3339, input.EndsAt)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid end time format. Use RFC3339")
		return
	}
	if !endsAt.After(startsAt) {
		utils.RespondWithError(c, http.StatusBadRequest, "Shift must end after it starts")
		return
	}

	var employee models.Employee
	if err := config.DB.Where("venue_id = ? AND id = ? AND is_active = ?", venueUUID, employeeUUID, true).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found or inactive")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	overlaps, err := shiftOverlapsExisting(venueUUID, employeeUUID, uuid.Nil, startsAt, endsAt)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if overlaps {
		utils.RespondWithError(c, http.StatusConflict, "Shift overlaps an existing shift for this employee")
		return
	}

	shift := models.Shift{
		VenueID:    venueUUID,
		EmployeeID: employeeUUID,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		Status:     models.ShiftDraft,
		Notes:      input.Notes,
	}
	if input.Role != "" {
		shift.Role = input.Role
	}

	if err := config.DB.Create(&shift).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create shift")
		return
	}

	config.DB.Preload("Employee").First(&shift, shift.ID)
	c.JSON(http.StatusCreated, shift)
}

// GetRota returns the shifts for the week containing the given date
func GetRota(c *gin.Context) {
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

	anchor := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
			return
		}
		anchor = parsed
	}

	weekStart := utils.BeginningOfWeek(anchor)
	weekEnd := weekStart.AddDate(0, 0, 7)

	var shifts []models.Shift
	if err := config.DB.Where("venue_id = ? AND starts_at >= ? AND starts_at < ?",
		venueUUID, weekStart, weekEnd).
		Preload("Employee").Order("starts_at ASC").Find(&shifts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve rota")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weekStart": weekStart.Format("2006-01-02"),
		"weekEnd":   weekEnd.AddDate(0, 0, -1).Format("2006-01-02"),
		"shifts":    shifts,
	})
}

// UpdateShift updates a shift's times, role, status or notes
func UpdateShift(c *gin.Context) {
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

	shiftID := c.Param("id")
	shiftUUID, err := uuid.Parse(shiftID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid shift ID format")
		return
	}

	var input UpdateShiftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var shift models.Shift
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, shiftUUID).
		First(&shift).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Shift not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if shift.Status == models.ShiftApproved {
		utils.RespondWithError(c, http.StatusConflict, "Approved shifts cannot be modified")
		return
	}

	startsAt := shift.StartsAt
	endsAt := shift.EndsAt
	if input.StartsAt != nil {
		parsed, err := time.Parse(time.RFC3339, *input.StartsAt)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid start time format. Use RFC3339")
			return
		}
		startsAt = parsed
	}
	if input.EndsAt != nil {
		parsed, err := time.Parse(time.RFC3339, *input.EndsAt)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid end time format. Use RFC3339")
			return
		}
		endsAt = parsed
	}
	if !endsAt.After(startsAt) {
		utils.RespondWithError(c, http.StatusBadRequest, "Shift must end after it starts")
		return
	}

	if input.StartsAt != nil || input.EndsAt != nil {
		overlaps, err := shiftOverlapsExisting(venueUUID, shift.EmployeeID, shift.ID, startsAt, endsAt)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		if overlaps {
			utils.RespondWithError(c, http.StatusConflict, "Shift overlaps an existing shift for this employee")
			return
		}
	}

	shift.StartsAt = startsAt
	shift.EndsAt = endsAt
	if input.Role != nil {
		shift.Role = *input.Role
	}
	if input.Status != nil {
		switch *input.Status {
		case models.ShiftDraft, models.ShiftPublished, models.ShiftApproved:
			shift.Status = *input.Status
		default:
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid shift status")
			return
		}
	}
	if input.Notes != nil {
		shift.Notes = *input.Notes
	}

	if err := config.DB.Save(&shift).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update shift")
		return
	}

	c.JSON(http.StatusOK, shift)
}

// DeleteShift removes a shift from the rota
func DeleteShift(c *gin.Context) {
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

	shiftID := c.Param("id")
	shiftUUID, err := uuid.Parse(shiftID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid shift ID format")
		return
	}

	var shift models.Shift
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, shiftUUID).
		First(&shift).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Shift not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if shift.Status == models.ShiftApproved {
		utils.RespondWithError(c, http.StatusConflict, "Approved shifts cannot be deleted")
		return
	}

	if err := config.DB.Delete(&shift).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete shift")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted successfully"})
}

// PublishRota marks all draft shifts in a week as published
func PublishRota(c *gin.Context) {
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

	anchor := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
			return
		}
		anchor = parsed
	}

	weekStart := utils.BeginningOfWeek(anchor)
	weekEnd := weekStart.AddDate(0, 0, 7)

	result := config.DB.Model(&models.Shift{}).
		Where("venue_id = ? AND status = ? AND starts_at >= ? AND starts_at < ?",
			venueUUID, models.ShiftDraft, weekStart, weekEnd).
		Update("status", models.ShiftPublished)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to publish rota")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"published": result.RowsAffected,
		"weekStart": weekStart.Format("2006-01-02"),
	})
}
