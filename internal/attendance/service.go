package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Service owns daily check-in and check-out. One open record per user per
// day; a second check-in the same day is rejected.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Service) CheckIn(ctx context.Context, req CheckInRequest, userID int64) (*Record, error) {
	now := s.now()
	exists, err := s.repo.ExistsForDay(ctx, userID, dayStart(now))
	if err != nil {
		return nil, fmt.Errorf("check existing attendance: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: already checked in today", shared.ErrDuplicate)
	}

	rec := Record{
		UserID:          userID,
		CheckIn:         now,
		LocationLat:     req.LocationLat,
		LocationLng:     req.LocationLng,
		LocationAddress: req.LocationAddress,
		Status:          StatusPresent,
		Notes:           req.Notes,
	}
	id, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("create attendance: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) CheckOut(ctx context.Context, userID int64) (*Record, error) {
	now := s.now()
	open, err := s.repo.FindOpenForDay(ctx, userID, dayStart(now))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: no active check-in found", shared.ErrPrecondition)
		}
		return nil, fmt.Errorf("find open attendance: %w", err)
	}

	if err := s.repo.SetCheckOut(ctx, open.ID, now); err != nil {
		return nil, fmt.Errorf("set check-out: %w", err)
	}
	return s.repo.Get(ctx, open.ID)
}

func (s *Service) List(ctx context.Context, req ListRecordsRequest) ([]Record, error) {
	return s.repo.List(ctx, req)
}

// TodayCount reports how many people have checked in today, for the
// dashboard.
func (s *Service) TodayCount(ctx context.Context) (int, error) {
	return s.repo.CountForDay(ctx, dayStart(s.now()))
}
