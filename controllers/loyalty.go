// controllers/loyalty.go
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

// CreateAchievementInput defines the expected JSON structure for an achievement rule
type CreateAchievementInput struct {
	Name      string `json:"name" binding:"required"`
	Rule      string `json:"rule" binding:"required,oneof=total_attendance yearly_attendance first_booking"`
	Threshold int    `json:"threshold" binding:"min=1"`
	Points    int    `json:"points" binding:"min=0"`
}

// UpdateAchievementInput defines the expected JSON structure for updating a rule
type UpdateAchievementInput struct {
	Name      *string `json:"name"`
	Threshold *int    `json:"threshold"`
	Points    *int    `json:"points"`
	IsActive  *bool   `json:"isActive"`
}

// CreateAchievement creates a new achievement rule
func CreateAchievement(c *gin.Context) {
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

	var input CreateAchievementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	achievement := models.Achievement{
		VenueID:   venueUUID,
		Name:      input.Name,
		Rule:      input.Rule,
		Threshold: input.Threshold,
		Points:    input.Points,
		IsActive:  true,
	}

	if err := config.DB.Create(&achievement).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create achievement")
		return
	}

	c.JSON(http.StatusCreated, achievement)
}

// GetAchievements lists the venue's achievement rules
func GetAchievements(c *gin.Context) {
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

	var achievements []models.Achievement
	if err := config.DB.Where("venue_id = ?", venueUUID).Find(&achievements).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve achievements")
		return
	}

	c.JSON(http.StatusOK, achievements)
}

// UpdateAchievement updates an achievement rule
func UpdateAchievement(c *gin.Context) {
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

	achievementID := c.Param("id")
	achievementUUID, err := uuid.Parse(achievementID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid achievement ID format")
		return
	}

	var input UpdateAchievementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var achievement models.Achievement
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, achievementUUID).
		First(&achievement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Achievement not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		achievement.Name = *input.Name
	}
	if input.Threshold != nil {
		achievement.Threshold = *input.Threshold
	}
	if input.Points != nil {
		achievement.Points = *input.Points
	}
	if input.IsActive != nil {
		achievement.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&achievement).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update achievement")
		return
	}

	c.JSON(http.StatusOK, achievement)
}

// DeleteAchievement removes an achievement rule; past awards are kept
func DeleteAchievement(c *gin.Context) {
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

	achievementID := c.Param("id")
	achievementUUID, err := uuid.Parse(achievementID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid achievement ID format")
		return
	}

	result := config.DB.Where("venue_id = ? AND id = ?", venueUUID, achievementUUID).
		Delete(&models.Achievement{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete achievement")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Achievement not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Achievement deleted successfully"})
}
