package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/court-booking/internal/model"
	"github.com/Shivanand-hulikatti/court-booking/internal/repository"
)

// CourtService orchestrates court catalog operations.
type CourtService struct {
	courts   CourtStore
	slots    TimeSlotStore
	bookings BookingStore
}

// NewCourtService constructs a CourtService with its dependencies.
func NewCourtService(courts CourtStore, slots TimeSlotStore, bookings BookingStore) *CourtService {
	return &CourtService{courts: courts, slots: slots, bookings: bookings}
}

// ListCourts returns the active courts, each with its active time slots.
func (s *CourtService) ListCourts(ctx context.Context) ([]model.Court, error) {
	courts, err := s.courts.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(courts) == 0 {
		return courts, nil
	}

	ids := make([]string, len(courts))
	for i, c := range courts {
		ids[i] = c.ID
	}
	slots, err := s.slots.ListActiveByCourts(ctx, ids)
	if err != nil {
		return nil, err
	}
	byCourt := make(map[string][]model.TimeSlot, len(courts))
	for _, slot := range slots {
		byCourt[slot.CourtID] = append(byCourt[slot.CourtID], slot)
	}
	for i := range courts {
		courts[i].TimeSlots = byCourt[courts[i].ID]
	}
	return courts, nil
}

// GetCourt returns a court with its active time slots and its bookings.
func (s *CourtService) GetCourt(ctx context.Context, id string) (*model.Court, error) {
	if id == "" {
		return nil, invalid("court id is required")
	}
	court, err := s.courts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	slots, err := s.slots.ListActiveByCourts(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.List(ctx, repository.BookingFilter{CourtID: id})
	if err != nil {
		return nil, err
	}
	court.TimeSlots = slots
	court.Bookings = bookings
	return court, nil
}

// CreateCourt validates the request and stores a new active court.
func (s *CourtService) CreateCourt(ctx context.Context, req model.CreateCourtRequest) (*model.Court, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}
	court := &model.Court{
		ID:          strings.TrimSpace(req.ID),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.courts.Create(ctx, court); err != nil {
		return nil, err
	}
	return court, nil
}

// UpdateCourt applies the non-nil fields of req.
func (s *CourtService) UpdateCourt(ctx context.Context, id string, req model.UpdateCourtRequest) (*model.Court, error) {
	court, err := s.courts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("name must not be empty")
		}
		court.Name = name
	}
	if req.Description != nil {
		court.Description = *req.Description
	}
	if req.IsActive != nil {
		court.IsActive = *req.IsActive
	}
	if err := s.courts.Update(ctx, court); err != nil {
		return nil, fmt.Errorf("update court %s: %w", id, err)
	}
	return court, nil
}

// DeleteCourt deactivates a court. Its slots and bookings are kept.
func (s *CourtService) DeleteCourt(ctx context.Context, id string) error {
	return s.courts.Deactivate(ctx, id)
}
