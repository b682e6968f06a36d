// controllers/hours.go
package controllers

import (
	"context"
	"encoding/json"
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

// CreateOverrideInput defines the expected JSON structure for a dated override
type CreateOverrideInput struct {
	Date   string `json:"date" binding:"required"` // "2006-01-02"
	Kind   string `json:"kind" binding:"required,oneof=closed modified kitchen_closed"`
	Opens  string `json:"opens"`
	Closes string `json:"closes"`
	Reason string `json:"reason"`
}

// UpdateOpeningHours replaces the venue's weekly hours
func UpdateOpeningHours(c *gin.Context) {
	venueID, exists := c.Get("venueId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Venue ID not found in context")
		return
	}

	var input struct {
		OpeningHours models.JSONB `json:"openingHours" binding:"required"`
		KitchenHours models.JSONB `json:"kitchenHours"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	updates := map[string]interface{}{"opening_hours": input.OpeningHours}
	if input.KitchenHours != nil {
		updates["kitchen_hours"] = input.KitchenHours
	}

	if err := config.DB.Model(&models.Venue{}).Where("id = ?", venueID).
		Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update opening hours")
		return
	}

	invalidateStatusCache(venueID.(string))

	c.JSON(http.StatusOK, gin.H{"message": "Opening hours updated"})
}

// CreateOverride adds a dated exception to the weekly hours
func CreateOverride(c *gin.Context) {
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

	var input CreateOverrideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date (expected YYYY-MM-DD)")
		return
	}

	if input.Kind == models.OverrideModified {
		if !utils.ValidateTimeOfDay(input.Opens) || !utils.ValidateTimeOfDay(input.Closes) {
			utils.RespondWithError(c, http.StatusBadRequest, "Modified override needs valid opens and closes times")
			return
		}
	}

	// One override per date
	var existing models.BusinessHoursOverride
	if err := config.DB.Where("venue_id = ? AND date = ?", venueUUID, date).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "An override for this date already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	override := models.BusinessHoursOverride{
		VenueID: venueUUID,
		Date:    time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Kind:    input.Kind,
		Opens:   input.Opens,
		Closes:  input.Closes,
		Reason:  input.Reason,
	}

	if err := config.DB.Create(&override).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create override")
		return
	}

	invalidateStatusCache(venueID.(string))

	c.JSON(http.StatusCreated, override)
}

// GetOverrides lists upcoming overrides for the venue
func GetOverrides(c *gin.Context) {
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

	var overrides []models.BusinessHoursOverride
	if err := config.DB.Where("venue_id = ? AND date >= ?", venueUUID, utils.BeginningOfDay(time.Now())).
		Order("date").Find(&overrides).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve overrides")
		return
	}

	c.JSON(http.StatusOK, overrides)
}

// DeleteOverride removes a dated override
func DeleteOverride(c *gin.Context) {
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

	overrideID := c.Param("id")
	overrideUUID, err := uuid.Parse(overrideID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid override ID format")
		return
	}

	result := config.DB.Where("venue_id = ? AND id = ?", venueUUID, overrideUUID).
		Delete(&models.BusinessHoursOverride{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete override")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Override not found")
		return
	}

	invalidateStatusCache(venueID.(string))

	c.JSON(http.StatusOK, gin.H{"message": "Override deleted successfully"})
}

const statusCacheTTL = time.Minute

// GetServiceStatus returns the live open/closed status for today, cached
// briefly in redis since the dashboard polls it.
func GetServiceStatus(c *gin.Context) {
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

	cacheKey := "service_status:" + venueUUID.String()
	if config.RDB != nil {
		if cached, err := config.RDB.Get(context.Background(), cacheKey).Result(); err == nil {
			var status services.ServiceStatus
			if json.Unmarshal([]byte(cached), &status) == nil {
				c.JSON(http.StatusOK, status)
				return
			}
		}
	}

	var venue models.Venue
	if err := config.DB.First(&venue, "id = ?", venueUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var override models.BusinessHoursOverride
	var overridePtr *models.BusinessHoursOverride
	if err := config.DB.Where("venue_id = ? AND date = ?", venueUUID, today).
		First(&override).Error; err == nil {
		overridePtr = &override
	}

	day := services.ResolveDayHours(venue.OpeningHours, overridePtr, now)
	status := services.StatusAt(day, now)

	if config.RDB != nil {
		if payload, err := json.Marshal(status); err == nil {
			config.RDB.Set(context.Background(), cacheKey, payload, statusCacheTTL)
		}
	}

	c.JSON(http.StatusOK, status)
}

func invalidateStatusCache(venueID string) {
	if config.RDB != nil {
		config.RDB.Del(context.Background(), "service_status:"+venueID)
	}
}
