package quotations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meridian-crm/meridian-crm/internal/sales/pricing"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// CustomerPort is the slice of the customers module the quotation flow
// needs.
type CustomerPort interface {
	Exists(ctx context.Context, id int64) error
}

// EnquiryPort lets the quotation flow advance the source enquiry's
// pipeline stage when an offer goes out.
type EnquiryPort interface {
	MarkQuotationShared(ctx context.Context, enquiryID int64) error
}

// Service owns the quotation lifecycle: creation, versioned revision and
// the status machine.
type Service struct {
	repo             Repository
	customers        CustomerPort
	enquiries        EnquiryPort
	defaultValidDays int
}

// NewService constructs a Service. defaultValidDays applies when a create
// request does not carry an explicit validity window.
func NewService(repo Repository, customers CustomerPort, enquiries EnquiryPort, defaultValidDays int) *Service {
	return &Service{
		repo:             repo,
		customers:        customers,
		enquiries:        enquiries,
		defaultValidDays: defaultValidDays,
	}
}

func validateItems(items []LineItemRequest) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: at least one line item is required", shared.ErrValidation)
	}
	for i, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: line %d: quantity must be greater than zero", shared.ErrValidation, i+1)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("%w: line %d: unit price cannot be negative", shared.ErrValidation, i+1)
		}
		if item.DiscountPercent < 0 || item.DiscountPercent > 100 {
			return fmt.Errorf("%w: line %d: discount percent must be between 0 and 100", shared.ErrValidation, i+1)
		}
		if item.TaxPercent < 0 {
			return fmt.Errorf("%w: line %d: tax percent cannot be negative", shared.ErrValidation, i+1)
		}
	}
	return nil
}

func toPricingItems(items []LineItemRequest) []pricing.LineItem {
	out := make([]pricing.LineItem, len(items))
	for i, item := range items {
		out[i] = pricing.LineItem{
			Description:     item.Description,
			ProductCode:     item.ProductCode,
			Quantity:        item.Quantity,
			Unit:            item.Unit,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			TaxPercent:      item.TaxPercent,
		}
	}
	return out
}

// Create builds a new Draft quotation with computed totals.
func (s *Service) Create(ctx context.Context, req CreateQuotationRequest, createdBy int64) (*Quotation, error) {
	if err := validateItems(req.LineItems); err != nil {
		return nil, err
	}
	if err := s.customers.Exists(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("verify customer: %w", err)
	}

	validDays := req.ValidDays
	if validDays <= 0 {
		validDays = s.defaultValidDays
	}

	now := time.Now().UTC()
	quoteNumber, err := s.repo.GenerateNumber(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("generate quote number: %w", err)
	}

	items, totals := pricing.Compute(toPricingItems(req.LineItems))
	quotation := Quotation{
		QuoteNumber:    quoteNumber,
		CustomerID:     req.CustomerID,
		EnquiryID:      req.EnquiryID,
		Division:       req.Division,
		Version:        1,
		Status:         StatusDraft,
		LineItems:      items,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		NetTotal:       totals.NetTotal,
		ValidTill:      now.AddDate(0, 0, validDays),
		Terms:          req.Terms,
		Notes:          req.Notes,
		CreatedBy:      createdBy,
	}

	id, err := s.repo.Create(ctx, quotation)
	if err != nil {
		return nil, fmt.Errorf("create quotation: %w", err)
	}
	return s.Get(ctx, id)
}

// Send moves a Draft or Revised quotation to Sent and, when the quotation
// originated from an enquiry, advances that enquiry to Quotation Shared.
func (s *Service) Send(ctx context.Context, id int64, userID int64) (*Quotation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}

	status := existing.EffectiveStatus(time.Now().UTC())
	if !status.CanSend() {
		return nil, fmt.Errorf("%w: cannot send a %s quotation", shared.ErrInvalidTransition, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusSent, userID, nil); err != nil {
		return nil, fmt.Errorf("send quotation: %w", err)
	}

	if existing.EnquiryID != nil && s.enquiries != nil {
		if err := s.enquiries.MarkQuotationShared(ctx, *existing.EnquiryID); err != nil {
			return nil, fmt.Errorf("advance enquiry: %w", err)
		}
	}
	return s.Get(ctx, id)
}

// Revise cuts a new version from a Sent or Revised quotation. The prior
// record is left untouched; the new record references it for audit.
func (s *Service) Revise(ctx context.Context, existingID int64, req ReviseQuotationRequest, createdBy int64) (*Quotation, error) {
	if err := validateItems(req.LineItems); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, existingID)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}

	status := existing.EffectiveStatus(time.Now().UTC())
	if !status.CanRevise() {
		return nil, fmt.Errorf("%w: cannot revise a %s quotation", shared.ErrInvalidTransition, status)
	}

	validDays := req.ValidDays
	if validDays <= 0 {
		validDays = s.defaultValidDays
	}
	now := time.Now().UTC()

	items, totals := pricing.Compute(toPricingItems(req.LineItems))
	terms := req.Terms
	if terms == nil {
		terms = existing.Terms
	}
	revision := Quotation{
		QuoteNumber:    existing.QuoteNumber,
		CustomerID:     existing.CustomerID,
		EnquiryID:      existing.EnquiryID,
		Division:       existing.Division,
		Version:        existing.Version + 1,
		RevisionOf:     &existing.ID,
		Status:         StatusRevised,
		LineItems:      items,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		NetTotal:       totals.NetTotal,
		ValidTill:      now.AddDate(0, 0, validDays),
		Terms:          terms,
		Notes:          req.Notes,
		CreatedBy:      createdBy,
	}

	id, err := s.repo.Create(ctx, revision)
	if err != nil {
		return nil, fmt.Errorf("create revision: %w", err)
	}
	return s.Get(ctx, id)
}

// Approve marks a Sent or Revised quotation as Approved.
func (s *Service) Approve(ctx context.Context, id int64, reviewedBy int64) (*Quotation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}

	status := existing.EffectiveStatus(time.Now().UTC())
	if !status.CanReview() {
		return nil, fmt.Errorf("%w: cannot approve a %s quotation", shared.ErrInvalidTransition, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusApproved, reviewedBy, nil); err != nil {
		return nil, fmt.Errorf("approve quotation: %w", err)
	}
	return s.Get(ctx, id)
}

// Reject marks a Sent or Revised quotation as Rejected. A reason is
// mandatory and stored with the record.
func (s *Service) Reject(ctx context.Context, id int64, reviewedBy int64, reason string) (*Quotation, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", shared.ErrValidation)
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}

	status := existing.EffectiveStatus(time.Now().UTC())
	if !status.CanReview() {
		return nil, fmt.Errorf("%w: cannot reject a %s quotation", shared.ErrInvalidTransition, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusRejected, reviewedBy, &reason); err != nil {
		return nil, fmt.Errorf("reject quotation: %w", err)
	}
	return s.Get(ctx, id)
}

// Get fetches a quotation with its expiry-derived status.
func (s *Service) Get(ctx context.Context, id int64) (*Quotation, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Status = q.EffectiveStatus(time.Now().UTC())
	return q, nil
}

// List returns quotations matching the filter, with derived statuses.
func (s *Service) List(ctx context.Context, req ListQuotationsRequest) ([]Quotation, int, error) {
	items, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	now := time.Now().UTC()
	for i := range items {
		items[i].Status = items[i].EffectiveStatus(now)
	}
	return items, total, nil
}

// ExpireOverdue persists Expired on every Draft or Sent quotation past
// its validity window. Called from the background sweep.
func (s *Service) ExpireOverdue(ctx context.Context) (int64, error) {
	return s.repo.MarkExpired(ctx, time.Now().UTC())
}
