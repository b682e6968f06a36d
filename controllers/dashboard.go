// controllers/dashboard.go
package controllers

import (
	"fmt"
	"net/http"
	"time"

	"venuepro-backend/config"
	"venuepro-backend/models"
	"venuepro-backend/services"
	"venuepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UpcomingBirthday struct {
	Name string `json:"name"`
	Date string `json:"date"` // "MM-DD"
}

type RecentCustomer struct {
	Name      string `json:"name"`
	Tier      string `json:"tier"`
	LastVisit string `json:"lastVisit"` // e.g. "Today", "Yesterday"
}

// GetDashboardOverview composes the landing-page summary for a venue
func GetDashboardOverview(c *gin.Context) {
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

	var venue models.Venue
	if err := config.DB.First(&venue, venueUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load venue")
		return
	}

	now := time.Now()
	today := utils.BeginningOfDay(now)

	// Today's bookings and covers
	var todayBookings int64
	var todayCovers float64
	config.DB.Model(&models.Booking{}).
		Where("venue_id = ? AND booking_date = ? AND status IN ?",
			venueUUID, today, []string{models.BookingConfirmed, models.BookingCompleted}).
		Count(&todayBookings)
	config.DB.Model(&models.Booking{}).
		Where("venue_id = ? AND booking_date = ? AND status IN ?",
			venueUUID, today, []string{models.BookingConfirmed, models.BookingCompleted}).
		Select("COALESCE(SUM(party_size), 0)").Scan(&todayCovers)

	// Total customers
	var totalCustomers int64
	config.DB.Model(&models.Customer{}).
		Where("venue_id = ? AND deleted_at IS NULL", venueUUID).Count(&totalCustomers)

	// This month's invoiced revenue
	firstOfMonth := utils.BeginningOfMonth(now)
	var monthlyRevenue float64
	config.DB.Model(&models.Invoice{}).
		Where("venue_id = ? AND invoice_date >= ? AND payment_status <> ?",
			venueUUID, firstOfMonth, models.InvoiceVoid).
		Select("COALESCE(SUM(total), 0)").Scan(&monthlyRevenue)

	// Unpaid invoices
	var unpaidInvoices int64
	config.DB.Model(&models.Invoice{}).
		Where("venue_id = ? AND payment_status IN ?",
			venueUUID, []string{models.InvoiceUnpaid, models.InvoicePartPaid}).
		Count(&unpaidInvoices)

	// Upcoming events in the next 7 days
	var upcomingEvents []models.Event
	config.DB.Where("venue_id = ? AND is_cancelled = ? AND starts_at >= ? AND starts_at < ?",
		venueUUID, false, now, now.AddDate(0, 0, 7)).
		Order("starts_at ASC").Limit(5).Find(&upcomingEvents)

	// Upcoming birthdays until end of month, ignoring the year part
	var upcomingBirthdays []UpcomingBirthday
	config.DB.Raw(`
        SELECT name, TO_CHAR(birthday, 'MM-DD') as date FROM customers
        WHERE venue_id = ? AND deleted_at IS NULL AND birthday IS NOT NULL
        AND EXTRACT(MONTH FROM birthday) = ? AND EXTRACT(DAY FROM birthday) >= ?
        ORDER BY EXTRACT(DAY FROM birthday)
        LIMIT 7
    `, venueUUID, int(now.Month()), now.Day()).Scan(&upcomingBirthdays)

	// Recently seen customers
	var recent []models.Customer
	config.DB.Where("venue_id = ? AND last_visit IS NOT NULL", venueUUID).
		Order("last_visit DESC").Limit(3).Find(&recent)

	recentCustomers := make([]RecentCustomer, 0, len(recent))
	for _, customer := range recent {
		daysAgo := int(time.Since(*customer.LastVisit).Hours() / 24)
		var label string
		switch daysAgo {
		case 0:
			label = "Today"
		case 1:
			label = "Yesterday"
		default:
			label = fmt.Sprintf("%d days ago", daysAgo)
		}
		recentCustomers = append(recentCustomers, RecentCustomer{
			Name:      customer.Name,
			Tier:      customer.LoyaltyTier,
			LastVisit: label,
		})
	}

	// Live service status
	var override *models.BusinessHoursOverride
	var ovr models.BusinessHoursOverride
	if err := config.DB.Where("venue_id = ? AND date = ?", venueUUID, today).
		First(&ovr).Error; err == nil {
		override = &ovr
	}
	day := services.ResolveDayHours(venue.OpeningHours, override, now)
	status := services.StatusAt(day, now)

	c.JSON(http.StatusOK, gin.H{
		"todayBookings":     todayBookings,
		"todayCovers":       int(todayCovers),
		"totalCustomers":    totalCustomers,
		"monthlyRevenue":    monthlyRevenue,
		"unpaidInvoices":    unpaidInvoices,
		"upcomingEvents":    upcomingEvents,
		"upcomingBirthdays": upcomingBirthdays,
		"recentCustomers":   recentCustomers,
		"serviceStatus":     status,
	})
}
