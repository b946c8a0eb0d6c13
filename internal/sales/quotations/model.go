package quotations

import (
	"time"

	"github.com/meridian-crm/meridian-crm/internal/sales/pricing"
)

// Status is the lifecycle state of one quotation version.
type Status string

const (
	StatusDraft    Status = "Draft"
	StatusSent     Status = "Sent"
	StatusRevised  Status = "Revised"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
	StatusExpired  Status = "Expired"
)

// IsValid checks if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusRevised, StatusApproved, StatusRejected, StatusExpired:
		return true
	default:
		return false
	}
}

// CanSend reports whether the quotation can be sent to the customer.
func (s Status) CanSend() bool {
	return s == StatusDraft || s == StatusRevised
}

// CanReview reports whether approve/reject is legal from this status.
func (s Status) CanReview() bool {
	return s == StatusSent || s == StatusRevised
}

// CanRevise reports whether a new revision may be cut from this status.
func (s Status) CanRevise() bool {
	return s == StatusSent || s == StatusRevised
}

// IsTerminal reports whether the version's lifecycle has ended.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusExpired
}

// Quotation is one immutable version of a priced offer. A revision never
// mutates an existing record; it creates a new one with Version+1 that
// points back at its predecessor through RevisionOf.
type Quotation struct {
	ID              int64              `json:"id" db:"id"`
	QuoteNumber     string             `json:"quote_number" db:"quote_number"`
	CustomerID      int64              `json:"customer_id" db:"customer_id"`
	EnquiryID       *int64             `json:"enquiry_id,omitempty" db:"enquiry_id"`
	Division        string             `json:"division" db:"division"`
	Version         int                `json:"version" db:"version"`
	RevisionOf      *int64             `json:"revision_of,omitempty" db:"revision_of"`
	Status          Status             `json:"status" db:"status"`
	LineItems       []pricing.LineItem `json:"line_items" db:"-"`
	Subtotal        float64            `json:"subtotal" db:"subtotal"`
	DiscountAmount  float64            `json:"discount_amount" db:"discount_amount"`
	TaxAmount       float64            `json:"tax_amount" db:"tax_amount"`
	NetTotal        float64            `json:"net_total" db:"net_total"`
	ValidTill       time.Time          `json:"valid_till" db:"valid_till"`
	Terms           *string            `json:"terms,omitempty" db:"terms"`
	Notes           *string            `json:"notes,omitempty" db:"notes"`
	RejectionReason *string            `json:"rejection_reason,omitempty" db:"rejection_reason"`
	CreatedBy       int64              `json:"created_by" db:"created_by"`
	ReviewedBy      *int64             `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt      *time.Time         `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt       time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" db:"updated_at"`
}

// EffectiveStatus derives expiry at read time: a Draft or Sent quotation
// past its validity window reads as Expired whether or not the sweep job
// has persisted it yet.
func (q *Quotation) EffectiveStatus(now time.Time) Status {
	if (q.Status == StatusDraft || q.Status == StatusSent) && now.After(q.ValidTill) {
		return StatusExpired
	}
	return q.Status
}
