package inventory

import "time"

type Item struct {
	ID            int64      `json:"id"`
	Division      string     `json:"division"`
	StoreLocation string     `json:"store_location"`
	ItemName      string     `json:"item_name"`
	ItemCode      string     `json:"item_code"`
	Category      string     `json:"category"`
	Quantity      int        `json:"quantity"`
	Reserved      int        `json:"reserved"`
	Unit          string     `json:"unit"`
	ReorderLevel  int        `json:"reorder_level"`
	UnitPrice     float64    `json:"unit_price"`
	Supplier      *string    `json:"supplier,omitempty"`
	LastRestocked *time.Time `json:"last_restocked,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Available is on-hand stock minus units reserved against quotations.
func (i Item) Available() int {
	return i.Quantity - i.Reserved
}

// IsLowStock reports whether available stock has fallen to or below the
// reorder level. The boundary itself counts as low.
func (i Item) IsLowStock() bool {
	return i.Available() <= i.ReorderLevel
}

// InsightType labels a stock advisory.
type InsightType string

const (
	InsightReorderNeeded InsightType = "reorder_needed"
	InsightSlowMoving    InsightType = "slow_moving"
	InsightOverstock     InsightType = "overstock"
	InsightHighDemand    InsightType = "high_demand"
)

type InsightPriority string

const (
	PriorityLow    InsightPriority = "low"
	PriorityMedium InsightPriority = "medium"
	PriorityHigh   InsightPriority = "high"
	PriorityUrgent InsightPriority = "urgent"
)

// Insight is an advisory row produced by the stock scan job. Insights are
// recomputed wholesale on every scan; they carry no state of their own.
type Insight struct {
	ID              int64           `json:"id"`
	ItemID          int64           `json:"item_id"`
	ItemName        string          `json:"item_name"`
	InsightType     InsightType     `json:"insight_type"`
	CurrentQuantity int             `json:"current_quantity"`
	Reserved        int             `json:"reserved"`
	AvgMonthlySales float64         `json:"avg_monthly_sales"`
	DaysOfStock     int             `json:"days_of_stock"`
	Recommendation  string          `json:"recommendation"`
	Priority        InsightPriority `json:"priority"`
	GeneratedAt     time.Time       `json:"generated_at"`
}
