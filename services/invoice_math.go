package services

import (
	"venuepro-backend/models"
	"venuepro-backend/utils"
)

// InvoiceTotals is the derived money on an invoice: subtotal before
// discount, VAT computed per line on the discounted amount, and the final
// total.
type InvoiceTotals struct {
	Subtotal        float64
	DiscountPercent float64
	VATAmount       float64
	Total           float64
}

// ComputeInvoiceTotals prices a set of line items. The invoice-level
// discount applies before VAT; each line carries its own VAT rate.
func ComputeInvoiceTotals(items []models.InvoiceItem, discountPercent float64) InvoiceTotals {
	if discountPercent < 0 {
		discountPercent = 0
	}
	if discountPercent > 100 {
		discountPercent = 100
	}

	totals := InvoiceTotals{DiscountPercent: discountPercent}
	discountFactor := 1 - discountPercent/100

	for _, item := range items {
		line := float64(item.Quantity) * item.UnitPrice
		totals.Subtotal += line
		totals.VATAmount += line * discountFactor * item.VATRate / 100
	}

	totals.Subtotal = utils.Round2(totals.Subtotal)
	totals.VATAmount = utils.Round2(totals.VATAmount)
	totals.Total = utils.Round2(totals.Subtotal*discountFactor + totals.VATAmount)
	return totals
}
