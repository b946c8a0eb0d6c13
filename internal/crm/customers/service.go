package customers

import (
	"context"
	"fmt"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Service owns the customer hub: creation, profile updates and the
// lifetime-value accumulator advanced by completed orders.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateCustomerRequest, createdBy int64) (*Customer, error) {
	if !req.CustomerType.IsValid() {
		return nil, fmt.Errorf("%w: unknown customer type %q", shared.ErrValidation, req.CustomerType)
	}

	c := Customer{
		CustomerType:   req.CustomerType,
		FullName:       req.FullName,
		CompanyName:    req.CompanyName,
		Phone:          req.Phone,
		WhatsApp:       req.WhatsApp,
		Email:          req.Email,
		Address:        req.Address,
		City:           req.City,
		Pincode:        req.Pincode,
		GSTIN:          req.GSTIN,
		Source:         req.Source,
		AssignedTo:     req.AssignedTo,
		Divisions:      req.Divisions,
		LifecycleStage: StageLead,
		Notes:          req.Notes,
		Tags:           req.Tags,
		CreatedBy:      createdBy,
	}
	if c.Divisions == nil {
		c.Divisions = []string{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (*Customer, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}

	if req.CustomerType != nil {
		if !req.CustomerType.IsValid() {
			return nil, fmt.Errorf("%w: unknown customer type %q", shared.ErrValidation, *req.CustomerType)
		}
		c.CustomerType = *req.CustomerType
	}
	if req.LifecycleStage != nil {
		if !req.LifecycleStage.IsValid() {
			return nil, fmt.Errorf("%w: unknown lifecycle stage %q", shared.ErrValidation, *req.LifecycleStage)
		}
		c.LifecycleStage = *req.LifecycleStage
	}
	if req.FullName != nil {
		c.FullName = *req.FullName
	}
	if req.CompanyName != nil {
		c.CompanyName = req.CompanyName
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.WhatsApp != nil {
		c.WhatsApp = req.WhatsApp
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if req.City != nil {
		c.City = req.City
	}
	if req.Pincode != nil {
		c.Pincode = req.Pincode
	}
	if req.GSTIN != nil {
		c.GSTIN = req.GSTIN
	}
	if req.Source != nil {
		c.Source = *req.Source
	}
	if req.AssignedTo != nil {
		c.AssignedTo = req.AssignedTo
	}
	if req.Divisions != nil {
		c.Divisions = req.Divisions
	}
	if req.Notes != nil {
		c.Notes = req.Notes
	}
	if req.Tags != nil {
		c.Tags = req.Tags
	}

	if err := s.repo.Update(ctx, *c); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	return s.repo.List(ctx, req)
}

// Exists reports whether a customer record exists. Satisfies the port the
// quotation and enquiry flows depend on.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// RecordOrderCompletion rolls a completed order's value into the customer's
// lifetime total. The accumulator only ever grows; Lead and Prospect records
// are promoted to Customer, while VIP and Inactive stages are left alone.
func (s *Service) RecordOrderCompletion(ctx context.Context, customerID int64, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("%w: completion amount cannot be negative", shared.ErrValidation)
	}
	if err := s.repo.AddLifetimeValue(ctx, customerID, amount, StageCustomer); err != nil {
		return fmt.Errorf("add lifetime value: %w", err)
	}
	return nil
}
