package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateLineTotals(t *testing.T) {
	discount, tax, total := CalculateLineTotals(2, 1000, 10, 18)
	assert.InDelta(t, 200.0, discount, 1e-9)
	assert.InDelta(t, 324.0, tax, 1e-9)
	assert.InDelta(t, 2124.0, total, 1e-9)
}

func TestCalculateLineTotalsNoDiscountNoTax(t *testing.T) {
	discount, tax, total := CalculateLineTotals(3, 250, 0, 0)
	assert.Zero(t, discount)
	assert.Zero(t, tax)
	assert.InDelta(t, 750.0, total, 1e-9)
}

func TestCalculateLineTotalsFullDiscount(t *testing.T) {
	_, tax, total := CalculateLineTotals(5, 100, 100, 18)
	assert.Zero(t, tax)
	assert.Zero(t, total)
}

func TestLineTotalMonotonicity(t *testing.T) {
	_, _, base := CalculateLineTotals(2, 1000, 10, 18)

	_, _, moreQty := CalculateLineTotals(3, 1000, 10, 18)
	assert.Greater(t, moreQty, base)

	_, _, higherPrice := CalculateLineTotals(2, 1100, 10, 18)
	assert.Greater(t, higherPrice, base)

	_, _, moreDiscount := CalculateLineTotals(2, 1000, 20, 18)
	assert.Less(t, moreDiscount, base)

	_, _, zero := CalculateLineTotals(0, 1000, 10, 18)
	assert.GreaterOrEqual(t, zero, 0.0)
}

func TestComputeWorkedExample(t *testing.T) {
	items, totals := Compute([]LineItem{
		{Description: "Teak dining table", Quantity: 2, Unit: "pcs", UnitPrice: 1000, DiscountPercent: 10, TaxPercent: 18},
		{Description: "Delivery", Quantity: 1, Unit: "job", UnitPrice: 500, DiscountPercent: 0, TaxPercent: 18},
	})

	require.Len(t, items, 2)
	assert.InDelta(t, 2124.0, items[0].LineTotal, 1e-9)
	assert.InDelta(t, 590.0, items[1].LineTotal, 1e-9)
	assert.Equal(t, 1, items[0].ItemNo)
	assert.Equal(t, 2, items[1].ItemNo)

	assert.InDelta(t, 2714.0, totals.Subtotal, 1e-9)
	assert.InDelta(t, 200.0, totals.DiscountAmount, 1e-9)
	assert.InDelta(t, 324.0+90.0, totals.TaxAmount, 1e-9)
	// net total is the subtotal; breakdown fields are informational
	assert.Equal(t, totals.Subtotal, totals.NetTotal)
}

func TestComputeSubtotalIsExactLineSum(t *testing.T) {
	items, totals := Compute([]LineItem{
		{Quantity: 1.5, UnitPrice: 333.33, DiscountPercent: 7.5, TaxPercent: 12},
		{Quantity: 4, UnitPrice: 89.99, DiscountPercent: 0, TaxPercent: 5},
		{Quantity: 10, UnitPrice: 12, DiscountPercent: 50, TaxPercent: 28},
	})

	var sum float64
	for _, item := range items {
		assert.GreaterOrEqual(t, item.LineTotal, 0.0)
		sum += item.LineTotal
	}
	assert.Equal(t, sum, totals.Subtotal)
}

func TestComputeEmpty(t *testing.T) {
	items, totals := Compute(nil)
	assert.Empty(t, items)
	assert.Zero(t, totals.NetTotal)
}

func TestRoundCurrency(t *testing.T) {
	assert.Equal(t, 2124.0, RoundCurrency(2123.9999999))
	assert.Equal(t, 10.55, RoundCurrency(10.554))
	assert.Equal(t, 10.56, RoundCurrency(10.556))
}
