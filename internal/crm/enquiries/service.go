package enquiries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// CustomerPort resolves whether the linked customer exists.
type CustomerPort interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service owns the enquiry pipeline: creation, board movement and the
// quotation-shared hook fired when a quotation goes out.
type Service struct {
	repo      Repository
	customers CustomerPort
}

func NewService(repo Repository, customers CustomerPort) *Service {
	return &Service{repo: repo, customers: customers}
}

func (s *Service) Create(ctx context.Context, req CreateEnquiryRequest, createdBy int64) (*Enquiry, error) {
	exists, err := s.customers.Exists(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("check customer: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: customer %d", shared.ErrNotFound, req.CustomerID)
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown priority %q", shared.ErrValidation, priority)
	}
	if req.BudgetMin != nil && req.BudgetMax != nil && *req.BudgetMax < *req.BudgetMin {
		return nil, fmt.Errorf("%w: budget range max below min", shared.ErrValidation)
	}

	now := time.Now().UTC()
	number, err := s.repo.GenerateNumber(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("generate enquiry number: %w", err)
	}

	e := Enquiry{
		EnquiryNumber:   number,
		CustomerID:      req.CustomerID,
		Division:        req.Division,
		ProductCategory: req.ProductCategory,
		Requirement:     req.Requirement,
		BudgetMin:       req.BudgetMin,
		BudgetMax:       req.BudgetMax,
		AssignedTo:      req.AssignedTo,
		Source:          req.Source,
		Status:          StageNew,
		Priority:        priority,
		FollowUpDate:    req.FollowUpDate,
		CreatedBy:       createdBy,
	}

	id, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create enquiry: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateEnquiryRequest) (*Enquiry, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get enquiry: %w", err)
	}
	if e.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: enquiry is %s", shared.ErrInvalidTransition, e.Status)
	}

	if req.ProductCategory != nil {
		e.ProductCategory = req.ProductCategory
	}
	if req.Requirement != nil {
		e.Requirement = *req.Requirement
	}
	if req.BudgetMin != nil {
		e.BudgetMin = req.BudgetMin
	}
	if req.BudgetMax != nil {
		e.BudgetMax = req.BudgetMax
	}
	if req.SiteVisitDate != nil {
		e.SiteVisitDate = req.SiteVisitDate
	}
	if req.SiteVisitNotes != nil {
		e.SiteVisitNotes = req.SiteVisitNotes
	}
	if req.AssignedTo != nil {
		e.AssignedTo = req.AssignedTo
	}
	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return nil, fmt.Errorf("%w: unknown priority %q", shared.ErrValidation, *req.Priority)
		}
		e.Priority = *req.Priority
	}
	if req.FollowUpDate != nil {
		e.FollowUpDate = req.FollowUpDate
	}

	if err := s.repo.Update(ctx, *e); err != nil {
		return nil, fmt.Errorf("update enquiry: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Move drags a card to another column. Cards can move freely between live
// stages in either direction; Lost needs a reason and is final.
func (s *Service) Move(ctx context.Context, id int64, req MoveEnquiryRequest) (*Enquiry, error) {
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown stage %q", shared.ErrValidation, req.Status)
	}

	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get enquiry: %w", err)
	}
	if e.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: enquiry is %s", shared.ErrInvalidTransition, e.Status)
	}

	var lostReason *string
	if req.Status == StageLost {
		if req.LostReason == nil || strings.TrimSpace(*req.LostReason) == "" {
			return nil, fmt.Errorf("%w: marking lost requires a reason", shared.ErrValidation)
		}
		lostReason = req.LostReason
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status, lostReason); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// MarkQuotationShared advances the linked enquiry when a quotation is sent.
// Lost enquiries stay lost; the quotation flow is not blocked by them.
func (s *Service) MarkQuotationShared(ctx context.Context, id int64) error {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get enquiry: %w", err)
	}
	if e.Status.IsTerminal() || e.Status == StageQuotationShared {
		return nil
	}
	if err := s.repo.UpdateStatus(ctx, id, StageQuotationShared, nil); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

// Kanban groups open enquiries under the board's stage columns, preserving
// the canonical column order even when a column is empty.
func (s *Service) Kanban(ctx context.Context) ([]KanbanColumn, error) {
	all, err := s.repo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enquiries: %w", err)
	}

	byStage := make(map[Stage][]Enquiry, len(PipelineStages))
	for _, e := range all {
		byStage[e.Status] = append(byStage[e.Status], e)
	}

	columns := make([]KanbanColumn, 0, len(PipelineStages))
	for _, stage := range PipelineStages {
		cards := byStage[stage]
		if cards == nil {
			cards = []Enquiry{}
		}
		columns = append(columns, KanbanColumn{Stage: stage, Enquiries: cards})
	}
	return columns, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Enquiry, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListEnquiriesRequest) ([]Enquiry, int, error) {
	return s.repo.List(ctx, req)
}
