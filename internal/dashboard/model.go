package dashboard

// Stats is the landing-page summary card set.
type Stats struct {
	TotalLeads       int     `json:"total_leads"`
	ActiveProjects   int     `json:"active_projects"`
	PendingPayments  float64 `json:"pending_payments"`
	LowStockItems    int     `json:"low_stock_items"`
	PendingPettyCash int     `json:"pending_petty_cash"`
	TodayAttendance  int     `json:"today_attendance"`
}

// DivisionStat is one business line's order rollup.
type DivisionStat struct {
	Division     string  `json:"division"`
	TotalOrders  int     `json:"total_orders"`
	TotalRevenue float64 `json:"total_revenue"`
}

// Executive is the leadership rollup across sales and finance.
type Executive struct {
	Sales struct {
		TotalCustomers int     `json:"total_customers"`
		TotalEnquiries int     `json:"total_enquiries"`
		ConversionRate float64 `json:"conversion_rate"`
		TotalOrders    int     `json:"total_orders"`
		TotalRevenue   float64 `json:"total_revenue"`
		AvgOrderValue  float64 `json:"avg_order_value"`
	} `json:"sales"`
	Finance struct {
		TotalPendingAmount float64 `json:"total_pending_amount"`
		TotalCollected     float64 `json:"total_collected"`
	} `json:"finance"`
	Divisions []DivisionStat `json:"divisions"`
}
