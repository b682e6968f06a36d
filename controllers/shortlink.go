// controllers/shortlink.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"venuepro-backend/config"
	"venuepro-backend/models"
	"venuepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const shortCodeLength = 7
const shortCodeMaxAttempts = 5

// CreateShortLinkInput defines the expected JSON structure for short-link creation
type CreateShortLinkInput struct {
	Destination string  `json:"destination" binding:"required"`
	Code        *string `json:"code"`
	Campaign    string  `json:"campaign"`
	ExpiresAt   *string `json:"expiresAt"`
}

func clickCounterKey(linkID uuid.UUID) string {
	return fmt.Sprintf("link_clicks:%s", linkID)
}

// CreateShortLink creates a short link, with an optional vanity code
func CreateShortLink(c *gin.Context) {
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

	var input CreateShortLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	parsed, err := url.ParseRequestURI(input.Destination)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		utils.RespondWithError(c, http.StatusBadRequest, "Destination must be a valid http(s) URL")
		return
	}

	var expiresAt *time.Time
	if input.ExpiresAt != nil {
		parsed, err := time.Parse(time.RFC3339, *input.ExpiresAt)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid expiry format. Use RFC3339")
			return
		}
		expiresAt = &parsed
	}

	link := models.ShortLink{
		VenueID:         venueUUID,
		CreatedByUserID: userUUID,
		Destination:     input.Destination,
		Campaign:        input.Campaign,
		ExpiresAt:       expiresAt,
	}

	if input.Code != nil {
		code := strings.TrimSpace(*input.Code)
		if !utils.ValidateShortCode(code) {
			utils.RespondWithError(c, http.StatusBadRequest,
				"Code must be 3-32 characters of letters, digits, - or _")
			return
		}
		link.Code = code
		if err := config.DB.Create(&link).Error; err != nil {
			var existing models.ShortLink
			if lookupErr := config.DB.Unscoped().Where("code = ?", code).
				First(&existing).Error; lookupErr == nil {
				utils.RespondWithError(c, http.StatusConflict, "Code is already taken")
				return
			}
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create short link")
			return
		}
	} else {
		created := false
		for attempt := 0; attempt < shortCodeMaxAttempts; attempt++ {
			link.ID = uuid.Nil
			link.Code = utils.GenerateShortCode(shortCodeLength)
			if err := config.DB.Create(&link).Error; err == nil {
				created = true
				break
			}
		}
		if !created {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate a unique code")
			return
		}
	}

	c.JSON(http.StatusCreated, link)
}

// GetShortLinks lists the venue's short links
func GetShortLinks(c *gin.Context) {
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
	if campaign := c.Query("campaign"); campaign != "" {
		query = query.Where("campaign = ?", campaign)
	}

	var links []models.ShortLink
	if err := query.Order("created_at DESC").Find(&links).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve short links")
		return
	}

	c.JSON(http.StatusOK, links)
}

// GetShortLinkStats returns click totals and a daily histogram for a link
func GetShortLinkStats(c *gin.Context) {
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

	linkID := c.Param("id")
	linkUUID, err := uuid.Parse(linkID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid short link ID format")
		return
	}

	var link models.ShortLink
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, linkUUID).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Short link not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	since := utils.BeginningOfDay(time.Now()).AddDate(0, 0, -29)

	type dailyCount struct {
		Day    time.Time `json:"day"`
		Clicks int64     `json:"clicks"`
	}
	var histogram []dailyCount
	if err := config.DB.Model(&models.LinkClick{}).
		Select("DATE(clicked_at) as day, COUNT(*) as clicks").
		Where("short_link_id = ? AND clicked_at >= ?", link.ID, since).
		Group("DATE(clicked_at)").Order("day ASC").
		Scan(&histogram).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute click stats")
		return
	}

	totalClicks := link.ClickCount
	if config.RDB != nil {
		if cached, err := config.RDB.Get(c.Request.Context(), clickCounterKey(link.ID)).Int64(); err == nil && cached > totalClicks {
			totalClicks = cached
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"link":        link,
		"totalClicks": totalClicks,
		"last30Days":  histogram,
	})
}

// DeleteShortLink removes a short link
func DeleteShortLink(c *gin.Context) {
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

	linkID := c.Param("id")
	linkUUID, err := uuid.Parse(linkID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid short link ID format")
		return
	}

	result := config.DB.Where("venue_id = ? AND id = ?", venueUUID, linkUUID).
		Delete(&models.ShortLink{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete short link")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Short link not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Short link deleted successfully"})
}

// Redirect resolves a short code and sends the visitor to the destination.
// This endpoint is public.
func Redirect(c *gin.Context) {
	code := c.Param("code")
	if !utils.ValidateShortCode(code) {
		utils.RespondWithError(c, http.StatusNotFound, "Link not found")
		return
	}

	var link models.ShortLink
	if err := config.DB.Where("code = ?", code).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Link not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if link.ExpiresAt != nil && time.Now().After(*link.ExpiresAt) {
		utils.RespondWithError(c, http.StatusGone, "Link has expired")
		return
	}

	click := models.LinkClick{
		ShortLinkID: link.ID,
		UserAgent:   c.Request.UserAgent(),
		Referrer:    c.Request.Referer(),
		ClickedAt:   time.Now(),
	}
	if err := config.DB.Create(&click).Error; err == nil {
		config.DB.Model(&models.ShortLink{}).Where("id = ?", link.ID).
			UpdateColumn("click_count", gorm.Expr("click_count + 1"))
	}

	if config.RDB != nil {
		config.RDB.Incr(c.Request.Context(), clickCounterKey(link.ID))
	}

	c.Redirect(http.StatusFound, link.Destination)
}
