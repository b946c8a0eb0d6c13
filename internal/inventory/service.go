package inventory

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Service owns stock records and the advisory scan.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateItemRequest) (*Item, error) {
	if req.Reserved > req.Quantity {
		return nil, fmt.Errorf("%w: reserved cannot exceed quantity", shared.ErrValidation)
	}

	item := Item{
		Division:      req.Division,
		StoreLocation: req.StoreLocation,
		ItemName:      req.ItemName,
		ItemCode:      req.ItemCode,
		Category:      req.Category,
		Quantity:      req.Quantity,
		Reserved:      req.Reserved,
		Unit:          req.Unit,
		ReorderLevel:  req.ReorderLevel,
		UnitPrice:     req.UnitPrice,
		Supplier:      req.Supplier,
	}
	id, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateItemRequest) (*Item, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if req.StoreLocation != nil {
		item.StoreLocation = *req.StoreLocation
	}
	if req.ItemName != nil {
		item.ItemName = *req.ItemName
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Reserved != nil {
		item.Reserved = *req.Reserved
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.ReorderLevel != nil {
		item.ReorderLevel = *req.ReorderLevel
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.Supplier != nil {
		item.Supplier = req.Supplier
	}
	if req.LastRestocked != nil {
		item.LastRestocked = req.LastRestocked
	}
	if item.Reserved > item.Quantity {
		return nil, fmt.Errorf("%w: reserved cannot exceed quantity", shared.ErrValidation)
	}

	if err := s.repo.Update(ctx, *item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Item, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListItemsRequest) ([]Item, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Insights(ctx context.Context) ([]Insight, error) {
	return s.repo.ListInsights(ctx)
}

// ScanInsights recomputes the advisory set across the whole inventory from
// trailing-month sales and replaces the stored rows. Run by the worker on
// a schedule.
func (s *Service) ScanInsights(ctx context.Context) (int, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list items: %w", err)
	}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -30)

	// The sales aggregation walks order JSONB per item, so fan the queries
	// out with a bounded group rather than scanning serially.
	sales := make([]float64, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, item := range items {
		g.Go(func() error {
			avg, err := s.repo.MonthlySales(gctx, item.ItemCode, since)
			if err != nil {
				return fmt.Errorf("monthly sales for %s: %w", item.ItemCode, err)
			}
			sales[i] = avg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var all []Insight
	for i, item := range items {
		for _, in := range Classify(item, sales[i]) {
			in.GeneratedAt = now
			all = append(all, in)
		}
	}

	if err := s.repo.ReplaceInsights(ctx, all); err != nil {
		return 0, fmt.Errorf("replace insights: %w", err)
	}
	return len(all), nil
}
