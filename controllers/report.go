// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"venuepro-backend/config"
	"venuepro-backend/models"
	"venuepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the Analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   float64              `json:"currentMonthRevenue"`
	MonthGrowth           float64              `json:"monthGrowth"`
	CurrentQuarterRevenue float64              `json:"currentQuarterRevenue"`
	QuarterGrowth         float64              `json:"quarterGrowth"`
	CurrentYearRevenue    float64              `json:"currentYearRevenue"`
	YearGrowth            float64              `json:"yearGrowth"`
	TopBookingTypes       []BookingTypeSummary `json:"topBookingTypes"`
	TopCustomers          []CustomerSummary    `json:"topCustomers"`
	QuickStats            QuickStatistics      `json:"quickStats"`
}

type BookingTypeSummary struct {
	Name     string `json:"name"`
	Bookings int    `json:"bookings"`
	Covers   int    `json:"covers"`
}

type CustomerSummary struct {
	Name   string  `json:"name"`
	Visits int     `json:"visits"`
	Spent  float64 `json:"spent"`
}

type QuickStatistics struct {
	TotalCustomers  int     `json:"totalCustomers"`
	TotalBookings   int     `json:"totalBookings"`
	AvgPartySize    float64 `json:"avgPartySize"`
	AvgInvoiceValue float64 `json:"avgInvoiceValue"`
	NoShowRate      float64 `json:"noShowRate"`
}

// GetReportAnalytics returns the complete analytics summary
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
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

	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	currentMonthRevenue, err := rc.getRevenue(venueUUID, firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}

	lastMonthRevenue, err := rc.getRevenue(venueUUID,
		firstOfMonth.AddDate(0, -1, 0),
		lastOfMonth.AddDate(0, -1, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	currentQuarterRevenue, err := rc.getRevenue(venueUUID,
		utils.BeginningOfQuarter(now),
		utils.BeginningOfQuarter(now).AddDate(0, 3, -1))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly revenue")
		return
	}

	lastQuarterRevenue, err := rc.getRevenue(venueUUID,
		utils.BeginningOfQuarter(now).AddDate(0, -3, 0),
		utils.BeginningOfQuarter(now).AddDate(0, 0, -1))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter revenue")
		return
	}

	currentYearRevenue, err := rc.getRevenue(venueUUID,
		time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}

	lastYearRevenue, err := rc.getRevenue(venueUUID,
		time.Date(currentYear-1, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear-1, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	monthGrowth := rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue)
	quarterGrowth := rc.calculateGrowthPercentage(currentQuarterRevenue, lastQuarterRevenue)
	yearGrowth := rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue)

	topBookingTypes, err := rc.getTopBookingTypes(venueUUID, firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top booking types")
		return
	}

	topCustomers, err := rc.getTopCustomers(venueUUID, firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top customers")
		return
	}

	quickStats, err := rc.getQuickStatistics(venueUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quick statistics")
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           monthGrowth,
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         quarterGrowth,
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            yearGrowth,
		TopBookingTypes:       topBookingTypes,
		TopCustomers:          topCustomers,
		QuickStats:            quickStats,
	}

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

func (rc *ReportController) getRevenue(venueID uuid.UUID, start, end time.Time) (float64, error) {
	var total float64
	err := config.DB.Model(&models.Invoice{}).
		Where("venue_id = ? AND invoice_date BETWEEN ? AND ? AND payment_status <> ?",
			venueID, start, end, models.InvoiceVoid).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}

func (rc *ReportController) calculateGrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

func (rc *ReportController) getTopBookingTypes(venueID uuid.UUID, start, end time.Time, limit int) ([]BookingTypeSummary, error) {
	var types []BookingTypeSummary

	err := config.DB.Table("bookings").
		Select("booking_types.name, COUNT(bookings.id) as bookings, SUM(bookings.party_size) as covers").
		Joins("JOIN booking_types ON booking_types.id = bookings.booking_type_id").
		Where("bookings.venue_id = ? AND bookings.booking_date BETWEEN ? AND ? AND bookings.status IN ? AND bookings.deleted_at IS NULL",
			venueID, start, end, []string{models.BookingConfirmed, models.BookingCompleted}).
		Group("booking_types.name").
		Order("covers DESC").
		Limit(limit).
		Scan(&types).Error

	return types, err
}

func (rc *ReportController) getTopCustomers(venueID uuid.UUID, start, end time.Time, limit int) ([]CustomerSummary, error) {
	var customers []CustomerSummary

	err := config.DB.Table("invoices").
		Select("customers.name, COUNT(invoices.id) as visits, SUM(invoices.total) as spent").
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.venue_id = ? AND invoices.invoice_date BETWEEN ? AND ? AND invoices.payment_status <> ? AND customers.deleted_at IS NULL",
			venueID, start, end, models.InvoiceVoid).
		Group("customers.name").
		Order("spent DESC").
		Limit(limit).
		Scan(&customers).Error

	return customers, err
}

func (rc *ReportController) getQuickStatistics(venueID uuid.UUID) (QuickStatistics, error) {
	var stats QuickStatistics

	var totalCustomers int64
	if err := config.DB.Model(&models.Customer{}).
		Where("venue_id = ? AND deleted_at IS NULL", venueID).
		Count(&totalCustomers).Error; err != nil {
		return stats, err
	}
	stats.TotalCustomers = int(totalCustomers)

	var totalBookings int64
	if err := config.DB.Model(&models.Booking{}).
		Where("venue_id = ?", venueID).
		Count(&totalBookings).Error; err != nil {
		return stats, err
	}
	stats.TotalBookings = int(totalBookings)

	var avgPartySize float64
	if err := config.DB.Model(&models.Booking{}).
		Where("venue_id = ? AND status IN ?",
			venueID, []string{models.BookingConfirmed, models.BookingCompleted}).
		Select("COALESCE(AVG(party_size), 0)").
		Scan(&avgPartySize).Error; err != nil {
		return stats, err
	}
	stats.AvgPartySize = avgPartySize

	var noShows int64
	if err := config.DB.Model(&models.Booking{}).
		Where("venue_id = ? AND status = ?", venueID, models.BookingNoShow).
		Count(&noShows).Error; err != nil {
		return stats, err
	}
	if stats.TotalBookings > 0 {
		stats.NoShowRate = float64(noShows) / float64(stats.TotalBookings) * 100
	}

	var totalInvoices int64
	if err := config.DB.Model(&models.Invoice{}).
		Where("venue_id = ? AND payment_status <> ?", venueID, models.InvoiceVoid).
		Count(&totalInvoices).Error; err != nil {
		return stats, err
	}

	var totalRevenue float64
	if err := config.DB.Model(&models.Invoice{}).
		Where("venue_id = ? AND payment_status <> ?", venueID, models.InvoiceVoid).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return stats, err
	}

	if totalInvoices > 0 {
		stats.AvgInvoiceValue = totalRevenue / float64(totalInvoices)
	}

	return stats, nil
}
