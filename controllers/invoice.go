// controllers/invoice.go
package controllers

import (
	"errors"
	"fmt"
	"log"
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

// InvoiceItemInput is one free-form line on an invoice
type InvoiceItemInput struct {
	Description string   `json:"description" binding:"required"`
	Quantity    int      `json:"quantity" binding:"required,min=1"`
	UnitPrice   float64  `json:"unitPrice" binding:"min=0"`
	VATRate     *float64 `json:"vatRate"`
}

// CreateInvoiceInput defines the expected JSON structure for invoice creation
type CreateInvoiceInput struct {
	CustomerID      string             `json:"customerId" binding:"required"`
	DueDate         *string            `json:"dueDate"`
	DiscountPercent float64            `json:"discountPercent"`
	Notes           string             `json:"notes"`
	Items           []InvoiceItemInput `json:"items" binding:"required,min=1,dive"`
}

// RecordPaymentInput defines the expected JSON structure for a manual payment
type RecordPaymentInput struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method" binding:"omitempty,oneof=cash card bank_transfer"`
}

func buildInvoiceItems(inputs []InvoiceItemInput) []models.InvoiceItem {
	items := make([]models.InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		vatRate := 20.0
		if in.VATRate != nil {
			vatRate = *in.VATRate
		}
		items = append(items, models.InvoiceItem{
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			VATRate:     vatRate,
			LineTotal:   utils.Round2(float64(in.Quantity) * in.UnitPrice),
		})
	}
	return items
}

// CreateInvoice creates a new invoice with free-form line items
func CreateInvoice(c *gin.Context) {
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

	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customerUUID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		utils.RespondWithError(c, http.StatusBadRequest, "Discount percent must be between 0 and 100")
		return
	}

	var customer models.Customer
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	dueDate := time.Now().AddDate(0, 0, 14)
	if input.DueDate != nil {
		parsed, err := time.Parse("2006-01-02", *input.DueDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid due date format. Use YYYY-MM-DD")
			return
		}
		dueDate = parsed
	}

	items := buildInvoiceItems(input.Items)
	totals := services.ComputeInvoiceTotals(items, input.DiscountPercent)

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	invoice := models.Invoice{
		VenueID:         venueUUID,
		CreatedByUserID: userUUID,
		InvoiceNumber:   fmt.Sprintf("INV-%s-%s", time.Now().Format("20060102"), utils.GenerateRandomString(6)),
		CustomerID:      customerUUID,
		InvoiceDate:     time.Now(),
		DueDate:         &dueDate,
		Subtotal:        totals.Subtotal,
		DiscountPercent: totals.DiscountPercent,
		VATAmount:       totals.VATAmount,
		Total:           totals.Total,
		PaymentStatus:   models.InvoiceUnpaid,
		Notes:           input.Notes,
		Items:           items,
	}

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to commit transaction")
		return
	}

	config.DB.Preload("Items").First(&invoice, invoice.ID)
	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices lists invoices, optionally filtered by status or customer
func GetInvoices(c *gin.Context) {
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

	if status := c.Query("status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}
	if customerID := c.Query("customerId"); customerID != "" {
		customerUUID, err := uuid.Parse(customerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
			return
		}
		query = query.Where("customer_id = ?", customerUUID)
	}

	var invoices []models.Invoice
	if err := query.Preload("Items").
		Order("invoice_date DESC").Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a single invoice with its items
func GetInvoice(c *gin.Context) {
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

	invoiceID := c.Param("id")
	invoiceUUID, err := uuid.Parse(invoiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, invoiceUUID).
		Preload("Items").First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// RecordPayment records a manual payment against an invoice
func RecordPayment(c *gin.Context) {
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

	invoiceID := c.Param("id")
	invoiceUUID, err := uuid.Parse(invoiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var input RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var invoice models.Invoice
	if err := tx.Where("venue_id = ? AND id = ?", venueUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if invoice.PaymentStatus == models.InvoiceVoid {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Cannot record a payment on a void invoice")
		return
	}
	if invoice.PaymentStatus == models.InvoicePaid {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Invoice is already paid in full")
		return
	}

	outstanding := utils.Round2(invoice.Total - invoice.PaidAmount)
	if input.Amount > outstanding {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusBadRequest,
			fmt.Sprintf("Payment exceeds outstanding balance of %.2f", outstanding))
		return
	}

	invoice.PaidAmount = utils.Round2(invoice.PaidAmount + input.Amount)
	if invoice.PaidAmount >= invoice.Total {
		invoice.PaymentStatus = models.InvoicePaid
	} else {
		invoice.PaymentStatus = models.InvoicePartPaid
	}
	if input.Method != "" {
		invoice.PaymentMethod = input.Method
	}

	if err := tx.Save(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	if invoice.PaymentStatus == models.InvoicePaid {
		if err := tx.Model(&models.Customer{}).
			Where("venue_id = ? AND id = ?", venueUUID, invoice.CustomerID).
			UpdateColumn("total_spent", gorm.Expr("total_spent + ?", invoice.Total)).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to commit transaction")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// VoidInvoice marks an unpaid invoice as void
func VoidInvoice(c *gin.Context) {
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

	invoiceID := c.Param("id")
	invoiceUUID, err := uuid.Parse(invoiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if invoice.PaidAmount > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Cannot void an invoice with recorded payments")
		return
	}
	if invoice.PaymentStatus == models.InvoiceVoid {
		utils.RespondWithError(c, http.StatusConflict, "Invoice is already void")
		return
	}

	invoice.PaymentStatus = models.InvoiceVoid
	if err := config.DB.Save(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to void invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// SendInvoiceEmail emails the invoice to the customer
func SendInvoiceEmail(c *gin.Context) {
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

	invoiceID := c.Param("id")
	invoiceUUID, err := uuid.Parse(invoiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, invoiceUUID).
		Preload("Items").First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var customer models.Customer
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, invoice.CustomerID).
		First(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load customer")
		return
	}

	if customer.Email == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer has no email address on file")
		return
	}

	var venue models.Venue
	if err := config.DB.First(&venue, venueUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load venue")
		return
	}

	emailService := services.NewEmailService(config.DB)
	if err := emailService.SendInvoice(venue, customer, invoice); err != nil {
		log.Printf("Failed to email invoice %s: %v", invoice.InvoiceNumber, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send invoice email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice emailed successfully"})
}

// CreateInvoicePaymentIntent creates a Stripe payment intent for the outstanding balance
func CreateInvoicePaymentIntent(c *gin.Context) {
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

	invoiceID := c.Param("id")
	invoiceUUID, err := uuid.Parse(invoiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("venue_id = ? AND id = ?", venueUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	stripeService := services.NewStripeService(config.DB)
	intent, err := stripeService.CreatePaymentIntent(&invoice)
	if err != nil {
		if errors.Is(err, services.ErrNothingToPay) {
			utils.RespondWithError(c, http.StatusConflict, "Invoice has no outstanding balance")
			return
		}
		log.Printf("Failed to create payment intent for invoice %s: %v", invoice.InvoiceNumber, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create payment intent")
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret})
}
