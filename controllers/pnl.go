// controllers/pnl.go
package controllers

import (
	"net/http"
	"time"

	"venuepro-backend/config"
	"venuepro-backend/models"
	"venuepro-backend/services"
	"venuepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// SetTargetInput defines the expected JSON structure for setting a metric target
type SetTargetInput struct {
	Metric    string  `json:"metric" binding:"required,oneof=revenue covers checkins messages"`
	Timeframe string  `json:"timeframe" binding:"required,oneof=weekly monthly quarterly"`
	Target    float64 `json:"target" binding:"required,gt=0"`
}

// SetTarget creates or updates a target for one metric and timeframe
func SetTarget(c *gin.Context) {
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

	var input SetTargetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	target := models.MetricTarget{
		VenueID:   venueUUID,
		Metric:    input.Metric,
		Timeframe: input.Timeframe,
		Target:    input.Target,
	}

	if err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "venue_id"}, {Name: "metric"}, {Name: "timeframe"}},
		DoUpdates: clause.AssignmentColumns([]string{"target", "updated_at"}),
	}).Create(&target).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save target")
		return
	}

	c.JSON(http.StatusOK, target)
}

// GetTargets lists the venue's metric targets
func GetTargets(c *gin.Context) {
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
	if timeframe := c.Query("timeframe"); timeframe != "" {
		query = query.Where("timeframe = ?", timeframe)
	}

	var targets []models.MetricTarget
	if err := query.Order("metric ASC").Find(&targets).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve targets")
		return
	}

	c.JSON(http.StatusOK, targets)
}

// DeleteTarget removes a metric target
func DeleteTarget(c *gin.Context) {
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

	targetID := c.Param("id")
	targetUUID, err := uuid.Parse(targetID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid target ID format")
		return
	}

	result := config.DB.Where("venue_id = ? AND id = ?", venueUUID, targetUUID).
		Delete(&models.MetricTarget{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete target")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Target not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Target deleted successfully"})
}

// GetPnLDashboard compares actuals against targets for the current period
func GetPnLDashboard(c *gin.Context) {
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

	timeframe := c.DefaultQuery("timeframe", models.TimeframeMonthly)
	switch timeframe {
	case models.TimeframeWeekly, models.TimeframeMonthly, models.TimeframeQuarterly:
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Timeframe must be weekly, monthly or quarterly")
		return
	}

	now := time.Now()
	pnlService := services.NewPnLService(config.DB)
	results, err := pnlService.Dashboard(venueUUID, timeframe, now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute dashboard")
		return
	}

	start, end := services.PeriodBounds(timeframe, now)
	c.JSON(http.StatusOK, gin.H{
		"timeframe":   timeframe,
		"periodStart": start.Format("2006-01-02"),
		"periodEnd":   end.AddDate(0, 0, -1).Format("2006-01-02"),
		"metrics":     results,
	})
}
