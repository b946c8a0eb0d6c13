package businessareas

import (
	"context"
	"fmt"
	"strings"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Service owns the division catalogue.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a new division. Names are trimmed and must be unique.
func (s *Service) Create(ctx context.Context, req CreateAreaRequest) (*Area, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: business area name is required", shared.ErrValidation)
	}

	area := Area{
		Name:        name,
		Description: req.Description,
		IsActive:    true,
	}
	id, err := s.repo.Create(ctx, area)
	if err != nil {
		return nil, fmt.Errorf("create business area: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// List returns every division, active or not, ordered by name.
func (s *Service) List(ctx context.Context) ([]Area, error) {
	return s.repo.List(ctx)
}

// Exists reports whether an active division with the given name is
// registered. Other modules validate their division fields through this.
func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, nil
	}
	return s.repo.ExistsActive(ctx, name)
}
