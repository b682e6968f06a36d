package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"venuepro-backend/config"
	"venuepro-backend/models"
	"venuepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email        string       `json:"email" binding:"required,email"`
	Phone        string       `json:"phone" binding:"required"`
	Name         string       `json:"name" binding:"required"`
	Password     string       `json:"password" binding:"required,min=8"`
	VenueName    string       `json:"venueName" binding:"required"`
	VenueAddress string       `json:"venueAddress"`
	OpeningHours models.JSONB `json:"openingHours"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // Can be email or phone
	Password   string `json:"password" binding:"required"`
}

// Register creates the venue and its owner account in one transaction.
func Register(c *gin.Context) {
	var input RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Check if email or phone already exists
	var existingUser models.User
	result := config.DB.Where("email = ? OR phone = ?", input.Email, input.Phone).First(&existingUser)

	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email or phone already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	venue := models.Venue{
		ID:           uuid.New(),
		Name:         input.VenueName,
		Address:      input.VenueAddress,
		OpeningHours: input.OpeningHours,
	}

	// Set default opening hours if not provided
	if venue.OpeningHours == nil {
		venue.OpeningHours = models.JSONB{
			"monday":    map[string]interface{}{"open": "12:00", "close": "23:00", "closed": false},
			"tuesday":   map[string]interface{}{"open": "12:00", "close": "23:00", "closed": false},
			"wednesday": map[string]interface{}{"open": "12:00", "close": "23:00", "closed": false},
			"thursday":  map[string]interface{}{"open": "12:00", "close": "23:00", "closed": false},
			"friday":    map[string]interface{}{"open": "12:00", "close": "00:00", "closed": false},
			"saturday":  map[string]interface{}{"open": "11:00", "close": "00:00", "closed": false},
			"sunday":    map[string]interface{}{"open": "12:00", "close": "22:30", "closed": false},
		}
	}

	newUser := models.User{
		Email:    input.Email,
		Phone:    input.Phone,
		Name:     input.Name,
		Password: input.Password, // Will be hashed in BeforeCreate hook
		Role:     models.RoleOwner,
		VenueID:  venue.ID,
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&venue).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create venue")
		return
	}

	if err := tx.Create(&newUser).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if err := createDefaultMessageTemplates(tx, venue.ID); err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create default templates")
		return
	}

	if err := createDefaultBookingTypes(tx, venue.ID); err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create default booking types")
		return
	}

	tx.Commit()

	token, err := utils.GenerateToken(newUser.ID.String(), venue.ID.String(), newUser.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":        newUser.ID,
			"email":     newUser.Email,
			"phone":     newUser.Phone,
			"role":      newUser.Role,
			"venueName": venue.Name,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	identifier := strings.TrimSpace(input.Identifier)

	var user models.User
	result := config.DB.Where("email = ? OR phone = ?", identifier, identifier).First(&user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !user.IsActive {
		utils.RespondWithError(c, http.StatusUnauthorized, "Account disabled")
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.VenueID.String(), user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	// Update last login
	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

func Me(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User ID not found in context"})
		return
	}

	var user models.User
	if err := config.DB.Preload("Venue").First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"name":      user.Name,
			"role":      user.Role,
			"venueId":   user.VenueID,
			"venueName": user.Venue.Name,
		},
	})
}

func createDefaultMessageTemplates(tx *gorm.DB, venueID uuid.UUID) error {
	defaultTemplates := []models.MessageTemplate{
		{
			VenueID: venueID,
			Name:    "Booking confirmation",
			Type:    models.TemplateBookingConfirmation,
			Body:    "Hi [CustomerName], your table for [PartySize] on [BookingDate] at [BookingTime] is confirmed. Ref [Reference]. See you soon!",
		},
		{
			VenueID: venueID,
			Name:    "Booking reminder",
			Type:    models.TemplateBookingReminder,
			Body:    "Hi [CustomerName], a reminder of your booking tomorrow at [BookingTime] for [PartySize]. Ref [Reference]. Reply to change it.",
		},
		{
			VenueID: venueID,
			Name:    "Event announcement",
			Type:    models.TemplateEventAnnouncement,
			Body:    "Hi [CustomerName], [EventName] is happening at our place on [EventDate]. Book your spot before it fills up!",
		},
		{
			VenueID: venueID,
			Name:    "Birthday",
			Type:    models.TemplateBirthday,
			Body:    "Happy birthday [CustomerName]! Come celebrate with us - your first drink is on the house this week.",
		},
	}

	for _, template := range defaultTemplates {
		template.IsActive = true
		if err := tx.Create(&template).Error; err != nil {
			return err
		}
	}
	return nil
}

func createDefaultBookingTypes(tx *gorm.DB, venueID uuid.UUID) error {
	defaults := []models.BookingType{
		{VenueID: venueID, Name: "Regular", Slug: "regular", DurationMinutes: 120, CutoffHours: 2, IsActive: true},
		{VenueID: venueID, Name: "Sunday Lunch", Slug: "sunday_lunch", DurationMinutes: 150, CutoffHours: 20, RequiresDeposit: true, IsActive: true},
		{VenueID: venueID, Name: "Private Hire", Slug: "private", DurationMinutes: 240, CutoffHours: 48, RequiresDeposit: true, IsActive: true},
	}

	for _, bt := range defaults {
		if err := tx.Create(&bt).Error; err != nil {
			return err
		}
	}
	return nil
}
