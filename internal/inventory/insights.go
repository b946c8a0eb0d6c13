package inventory

import "fmt"

// daysOfStockCap stands in for "effectively unlimited" when an item has
// no recorded sales.
const daysOfStockCap = 999

// DaysOfStock estimates how long available stock lasts at the current
// monthly sales rate.
func DaysOfStock(available int, avgMonthlySales float64) int {
	if avgMonthlySales <= 0 {
		return daysOfStockCap
	}
	return int(float64(available) / avgMonthlySales * 30)
}

// Classify derives the advisory set for one item from its stock position
// and trailing-month sales. An item can carry several advisories at once,
// e.g. high demand and reorder needed.
func Classify(item Item, avgMonthlySales float64) []Insight {
	available := item.Available()
	days := DaysOfStock(available, avgMonthlySales)

	base := Insight{
		ItemID:          item.ID,
		ItemName:        item.ItemName,
		CurrentQuantity: item.Quantity,
		Reserved:        item.Reserved,
		AvgMonthlySales: avgMonthlySales,
		DaysOfStock:     days,
	}

	var out []Insight

	switch {
	case avgMonthlySales > 0 && days > 90 && item.Quantity > item.ReorderLevel*2:
		in := base
		in.InsightType = InsightOverstock
		in.Priority = PriorityMedium
		in.Recommendation = fmt.Sprintf("Consider promotional pricing. Stock will last %d days", days)
		out = append(out, in)
	case avgMonthlySales == 0 && item.Quantity > 0:
		in := base
		in.InsightType = InsightSlowMoving
		in.Priority = PriorityLow
		in.Recommendation = "No sales in the trailing month. Review pricing or placement"
		out = append(out, in)
	}

	if item.IsLowStock() {
		in := base
		in.InsightType = InsightReorderNeeded
		in.Priority = PriorityHigh
		if float64(available) < float64(item.ReorderLevel)*0.5 {
			in.Priority = PriorityUrgent
		}
		in.Recommendation = fmt.Sprintf("Reorder immediately. Only %d units available", available)
		out = append(out, in)
	}

	if avgMonthlySales > float64(item.ReorderLevel)*1.5 {
		in := base
		in.InsightType = InsightHighDemand
		in.Priority = PriorityMedium
		in.Recommendation = "High demand item. Consider increasing stock levels"
		out = append(out, in)
	}

	return out
}
