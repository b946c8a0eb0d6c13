// Package pricing is the single home for quotation and order money math.
// Every place that needs a line total goes through here; totals are kept
// at full float64 precision and rounded to currency precision only when
// rendered.
package pricing

import "math"

// LineItem is one priced row of a quotation or order.
type LineItem struct {
	ItemNo          int     `json:"item_no"`
	Description     string  `json:"description"`
	ProductCode     *string `json:"product_code,omitempty"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
	TaxPercent      float64 `json:"tax_percent"`
	LineTotal       float64 `json:"line_total"`
}

// Totals aggregates a document's line items.
//
// NetTotal equals Subtotal: tax and discount are applied per line and the
// document-level DiscountAmount / TaxAmount fields are informational
// breakdowns, never added or subtracted again.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	NetTotal       float64 `json:"net_total"`
}

// CalculateLineTotals computes discount, tax and total for a single line.
// discountAmount is the pre-tax value of the discount; tax applies to the
// post-discount amount.
func CalculateLineTotals(quantity, unitPrice, discountPercent, taxPercent float64) (discountAmount, taxAmount, lineTotal float64) {
	grossAmount := quantity * unitPrice
	discountAmount = grossAmount * (discountPercent / 100)
	netAmount := grossAmount - discountAmount
	taxAmount = netAmount * (taxPercent / 100)
	lineTotal = netAmount + taxAmount
	return
}

// Compute fills LineTotal on every item and returns the document totals.
func Compute(items []LineItem) ([]LineItem, Totals) {
	out := make([]LineItem, len(items))
	var totals Totals
	for i, item := range items {
		discount, tax, lineTotal := CalculateLineTotals(
			item.Quantity, item.UnitPrice, item.DiscountPercent, item.TaxPercent,
		)
		item.LineTotal = lineTotal
		if item.ItemNo == 0 {
			item.ItemNo = i + 1
		}
		out[i] = item

		totals.Subtotal += lineTotal
		totals.DiscountAmount += discount
		totals.TaxAmount += tax
	}
	totals.NetTotal = totals.Subtotal
	return out, totals
}

// RoundCurrency rounds to two decimal places for presentation.
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
