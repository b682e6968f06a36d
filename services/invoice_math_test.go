package services

import (
	"testing"

	"venuepro-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeInvoiceTotalsNoDiscount(t *testing.T) {
	items := []models.InvoiceItem{
		{Quantity: 2, UnitPrice: 45.00, VATRate: 20},
		{Quantity: 1, UnitPrice: 12.50, VATRate: 20},
	}

	totals := ComputeInvoiceTotals(items, 0)
	assert.Equal(t, 102.50, totals.Subtotal)
	assert.Equal(t, 20.50, totals.VATAmount)
	assert.Equal(t, 123.00, totals.Total)
}

func TestComputeInvoiceTotalsDiscountBeforeVAT(t *testing.T) {
	items := []models.InvoiceItem{
		{Quantity: 1, UnitPrice: 100.00, VATRate: 20},
	}

	totals := ComputeInvoiceTotals(items, 10)
	assert.Equal(t, 100.00, totals.Subtotal)
	// VAT on the discounted 90, not the 100.
	assert.Equal(t, 18.00, totals.VATAmount)
	assert.Equal(t, 108.00, totals.Total)
	assert.Equal(t, 10.0, totals.DiscountPercent)
}

func TestComputeInvoiceTotalsMixedVATRates(t *testing.T) {
	items := []models.InvoiceItem{
		{Quantity: 1, UnitPrice: 50.00, VATRate: 20}, // food
		{Quantity: 2, UnitPrice: 10.00, VATRate: 0},  // zero-rated
	}

	totals := ComputeInvoiceTotals(items, 0)
	assert.Equal(t, 70.00, totals.Subtotal)
	assert.Equal(t, 10.00, totals.VATAmount)
	assert.Equal(t, 80.00, totals.Total)
}

func TestComputeInvoiceTotalsClampsDiscount(t *testing.T) {
	items := []models.InvoiceItem{
		{Quantity: 1, UnitPrice: 100.00, VATRate: 20},
	}

	totals := ComputeInvoiceTotals(items, 150)
	assert.Equal(t, 0.00, totals.Total)
	assert.Equal(t, 100.0, totals.DiscountPercent)

	totals = ComputeInvoiceTotals(items, -5)
	assert.Equal(t, 120.00, totals.Total)
	assert.Equal(t, 0.0, totals.DiscountPercent)
}

func TestComputeInvoiceTotalsEmpty(t *testing.T) {
	totals := ComputeInvoiceTotals(nil, 10)
	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.Total)
}
