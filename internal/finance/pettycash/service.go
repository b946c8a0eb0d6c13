package pettycash

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meridian-crm/meridian-crm/internal/rbac"
	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Service owns the petty cash approval flow. Review actions are
// authorization-checked here as well as at the route: the rule is a
// domain invariant, not a UI convenience.
type Service struct {
	repo      Repository
	divisions DivisionPort
}

// DivisionPort answers whether a division name is registered and active.
type DivisionPort interface {
	Exists(ctx context.Context, name string) (bool, error)
}

func NewService(repo Repository, divisions DivisionPort) *Service {
	return &Service{repo: repo, divisions: divisions}
}

// Submit files a new request. Every request starts pending regardless of
// who files it. The division must name a registered business area.
func (s *Service) Submit(ctx context.Context, req SubmitRequest, requestedBy int64) (*Request, error) {
	if !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", shared.ErrValidation, req.Category)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", shared.ErrValidation)
	}
	ok, err := s.divisions.Exists(ctx, req.Division)
	if err != nil {
		return nil, fmt.Errorf("check division: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: unknown division %q", shared.ErrValidation, req.Division)
	}

	rec := Request{
		RequestedBy: requestedBy,
		Division:    req.Division,
		Amount:      req.Amount,
		Purpose:     req.Purpose,
		Category:    req.Category,
		Status:      StatusPending,
		Notes:       req.Notes,
	}
	id, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("create petty cash request: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Approve moves a pending request to approved. Only finance and admin may
// review.
func (s *Service) Approve(ctx context.Context, id int64, reviewer *shared.Session) (*Request, error) {
	if err := requireReviewer(reviewer); err != nil {
		return nil, err
	}

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if rec.Status != StatusPending {
		return nil, fmt.Errorf("%w: request is %s, only pending requests can be approved",
			shared.ErrInvalidTransition, rec.Status)
	}

	now := time.Now().UTC()
	rec.Status = StatusApproved
	rec.ReviewedBy = &reviewer.UserID
	rec.ReviewedAt = &now
	if err := s.repo.Update(ctx, *rec); err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Reject moves a pending request to rejected, which is terminal. A reason
// is required.
func (s *Service) Reject(ctx context.Context, id int64, req RejectRequest, reviewer *shared.Session) (*Request, error) {
	if err := requireReviewer(reviewer); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: rejection requires a reason", shared.ErrValidation)
	}

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if rec.Status != StatusPending {
		return nil, fmt.Errorf("%w: request is %s, only pending requests can be rejected",
			shared.ErrInvalidTransition, rec.Status)
	}

	now := time.Now().UTC()
	rec.Status = StatusRejected
	rec.ReviewedBy = &reviewer.UserID
	rec.ReviewedAt = &now
	rec.RejectionReason = &req.Reason
	if err := s.repo.Update(ctx, *rec); err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Disburse pays out an approved request.
func (s *Service) Disburse(ctx context.Context, id int64, reviewer *shared.Session) (*Request, error) {
	if err := requireReviewer(reviewer); err != nil {
		return nil, err
	}

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if rec.Status != StatusApproved {
		return nil, fmt.Errorf("%w: request is %s, only approved requests can be disbursed",
			shared.ErrInvalidTransition, rec.Status)
	}

	now := time.Now().UTC()
	rec.Status = StatusDisbursed
	rec.DisbursedBy = &reviewer.UserID
	rec.DisbursedAt = &now
	if err := s.repo.Update(ctx, *rec); err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Request, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListRequests) ([]Request, int, error) {
	return s.repo.List(ctx, req)
}

func requireReviewer(sess *shared.Session) error {
	if sess == nil || !rbac.Allowed(sess.Roles, rbac.ActionPettyCashReview) {
		return fmt.Errorf("%w: petty cash review requires finance or admin", shared.ErrForbidden)
	}
	return nil
}
