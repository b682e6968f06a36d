// controllers/payroll.go
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

// RunPayrollInput defines the expected JSON structure for starting a payroll run
type RunPayrollInput struct {
	PeriodStart string `json:"periodStart" binding:"required"`
	PeriodEnd   string `json:"periodEnd" binding:"required"`
}

// RunPayroll computes and persists a payroll run for the given period
func RunPayroll(c *gin.Context) {
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

	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input RunPayrollInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	periodStart, err := time.Parse("2006-01-02", input.PeriodStart)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid period start format. Use YYYY-MM-DD")
		return
	}
	periodEnd, err := time.Parse("2006-01-02", input.PeriodEnd)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid period end format. Use YYYY-MM-DD")
		return
	}
	if periodEnd.Before(periodStart) {
		utils.RespondWithError(c, http.StatusBadRequest, "Period end must not be before period start")
		return
	}

	payrollService := services.NewPayrollService(config.DB)
	run, err := payrollService.RunPayroll(venueUUID, userUUID, periodStart, periodEnd)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to run payroll")
		return
	}

	c.JSON(http.StatusCreated, run)
}

// GetPayrollRuns lists past payroll runs
func GetPayrollRuns(c *gin.Context) {
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

	var runs []models.PayrollRun
	if err := config.DB.Where("venue_id = ?", venueUUID).
		Order("period_start DESC").Find(&runs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payroll runs")
		return
	}

	c.JSON(http.StatusOK, runs)
}

// GetPayrollRun retrieves a payroll run with its lines
func GetPayrollRun(c *gin.Context) {
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

	runID := c.Param("id")
	runUUID, err := uuid.Parse(runID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payroll run ID format")
		return
	}

	var run models.PayrollRun
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, runUUID).
		Preload("Lines").Preload("Lines.Employee").First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payroll run not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, run)
}
