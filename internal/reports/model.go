package reports

import "time"

// SalesRow is one period bucket of the sales report.
type SalesRow struct {
	Period           string  `json:"period"`
	Division         string  `json:"division"`
	Orders           int     `json:"orders"`
	Revenue          float64 `json:"revenue"`
	RevenueFormatted string  `json:"revenue_formatted"`
}

type SalesReport struct {
	From           time.Time  `json:"from"`
	To             time.Time  `json:"to"`
	Rows           []SalesRow `json:"rows"`
	TotalRevenue   float64    `json:"total_revenue"`
	TotalFormatted string     `json:"total_formatted"`
}

type ProfitLoss struct {
	From               time.Time `json:"from"`
	To                 time.Time `json:"to"`
	Revenue            float64   `json:"revenue"`
	Collected          float64   `json:"collected"`
	PendingReceivables float64   `json:"pending_receivables"`
	PettyCashOutflow   float64   `json:"petty_cash_outflow"`
	NetPosition        float64   `json:"net_position"`
	Formatted          struct {
		Revenue     string `json:"revenue"`
		Collected   string `json:"collected"`
		NetPosition string `json:"net_position"`
	} `json:"formatted"`
}

// StatusCount is one rung of the order ladder with its population.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type ProjectStatus struct {
	Statuses  []StatusCount `json:"statuses"`
	Total     int           `json:"total"`
	Completed int           `json:"completed"`
}
