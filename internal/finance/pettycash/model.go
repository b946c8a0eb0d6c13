package pettycash

import "time"

// Status tracks a petty cash request through approval and disbursement.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusDisbursed Status = "disbursed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusDisbursed:
		return true
	}
	return false
}

// Category is what the cash is for.
type Category string

const (
	CategoryTravel    Category = "travel"
	CategorySupplies  Category = "supplies"
	CategoryMeals     Category = "meals"
	CategoryUtilities Category = "utilities"
	CategoryOther     Category = "other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryTravel, CategorySupplies, CategoryMeals, CategoryUtilities, CategoryOther:
		return true
	}
	return false
}

type Request struct {
	ID              int64      `json:"id"`
	RequestedBy     int64      `json:"requested_by"`
	Division        string     `json:"division"`
	Amount          float64    `json:"amount"`
	Purpose         string     `json:"purpose"`
	Category        Category   `json:"category"`
	Status          Status     `json:"status"`
	ReviewedBy      *int64     `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	DisbursedBy     *int64     `json:"disbursed_by,omitempty"`
	DisbursedAt     *time.Time `json:"disbursed_at,omitempty"`
	ReceiptUploadID *int64     `json:"receipt_upload_id,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
