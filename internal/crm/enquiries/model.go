package enquiries

import "time"

// Stage is a named column on the enquiry pipeline board.
type Stage string

const (
	StageNew             Stage = "New Enquiry"
	StageContacted       Stage = "Contacted"
	StageSiteVisit       Stage = "Site Visit Scheduled"
	StageDesignOngoing   Stage = "Design/Estimation Ongoing"
	StageQuotationShared Stage = "Quotation Shared"
	StageLost            Stage = "Lost"
)

// PipelineStages is the board's column order. Lost sits last and is terminal.
var PipelineStages = []Stage{
	StageNew,
	StageContacted,
	StageSiteVisit,
	StageDesignOngoing,
	StageQuotationShared,
	StageLost,
}

func (s Stage) IsValid() bool {
	for _, stage := range PipelineStages {
		if s == stage {
			return true
		}
	}
	return false
}

func (s Stage) IsTerminal() bool { return s == StageLost }

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Enquiry struct {
	ID              int64      `json:"id"`
	EnquiryNumber   string     `json:"enquiry_number"`
	CustomerID      int64      `json:"customer_id"`
	Division        string     `json:"division"`
	ProductCategory *string    `json:"product_category,omitempty"`
	Requirement     string     `json:"requirement_summary"`
	BudgetMin       *float64   `json:"budget_range_min,omitempty"`
	BudgetMax       *float64   `json:"budget_range_max,omitempty"`
	SiteVisitDate   *time.Time `json:"site_visit_date,omitempty"`
	SiteVisitNotes  *string    `json:"site_visit_notes,omitempty"`
	AssignedTo      *int64     `json:"assigned_to,omitempty"`
	Source          string     `json:"enquiry_source"`
	Status          Stage      `json:"status"`
	LostReason      *string    `json:"lost_reason,omitempty"`
	Priority        Priority   `json:"priority"`
	FollowUpDate    *time.Time `json:"follow_up_date,omitempty"`
	CreatedBy       int64      `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// KanbanColumn groups a board column's cards under its stage name.
type KanbanColumn struct {
	Stage     Stage     `json:"stage"`
	Enquiries []Enquiry `json:"enquiries"`
}
