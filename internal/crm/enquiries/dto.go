package enquiries

import "time"

type CreateEnquiryRequest struct {
	CustomerID      int64      `json:"customer_id" validate:"required,gt=0"`
	Division        string     `json:"division" validate:"required,max=100"`
	ProductCategory *string    `json:"product_category,omitempty" validate:"omitempty,max=100"`
	Requirement     string     `json:"requirement_summary" validate:"required,max=2000"`
	BudgetMin       *float64   `json:"budget_range_min,omitempty" validate:"omitempty,gte=0"`
	BudgetMax       *float64   `json:"budget_range_max,omitempty" validate:"omitempty,gte=0"`
	AssignedTo      *int64     `json:"assigned_to,omitempty"`
	Source          string     `json:"enquiry_source" validate:"required,max=100"`
	Priority        Priority   `json:"priority,omitempty"`
	FollowUpDate    *time.Time `json:"follow_up_date,omitempty"`
}

type UpdateEnquiryRequest struct {
	ProductCategory *string    `json:"product_category,omitempty"`
	Requirement     *string    `json:"requirement_summary,omitempty" validate:"omitempty,max=2000"`
	BudgetMin       *float64   `json:"budget_range_min,omitempty" validate:"omitempty,gte=0"`
	BudgetMax       *float64   `json:"budget_range_max,omitempty" validate:"omitempty,gte=0"`
	SiteVisitDate   *time.Time `json:"site_visit_date,omitempty"`
	SiteVisitNotes  *string    `json:"site_visit_notes,omitempty"`
	AssignedTo      *int64     `json:"assigned_to,omitempty"`
	Priority        *Priority  `json:"priority,omitempty"`
	FollowUpDate    *time.Time `json:"follow_up_date,omitempty"`
}

type MoveEnquiryRequest struct {
	Status     Stage   `json:"status" validate:"required"`
	LostReason *string `json:"lost_reason,omitempty"`
}

type ListEnquiriesRequest struct {
	CustomerID *int64    `json:"customer_id,omitempty"`
	Division   *string   `json:"division,omitempty"`
	Status     *Stage    `json:"status,omitempty"`
	Priority   *Priority `json:"priority,omitempty"`
	AssignedTo *int64    `json:"assigned_to,omitempty"`
	Limit      int       `json:"limit" validate:"gte=0,lte=1000"`
	Offset     int       `json:"offset" validate:"gte=0"`
}
