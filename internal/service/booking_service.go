package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/court-booking/internal/model"
	"github.com/Shivanand-hulikatti/court-booking/internal/repository"
	"go.uber.org/zap"
)

// BookingService orchestrates booking admission and lifecycle.
type BookingService struct {
	bookings BookingStore
	users    UserStore
	events   Publisher
	log      *zap.Logger
	now      func() time.Time
}

// NewBookingService constructs a BookingService with its dependencies.
func NewBookingService(bookings BookingStore, users UserStore, events Publisher, log *zap.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		users:    users,
		events:   events,
		log:      log,
		now:      time.Now,
	}
}

// CreateBooking admits a booking for a slot on a date. Request validation,
// date parsing and the future-date check all happen before anything is
// written; the slot ownership, weekday and conflict checks run in the store
// under a lock on the slot.
func (s *BookingService) CreateBooking(ctx context.Context, clerkID string, req model.CreateBookingRequest) (*model.Booking, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	if err := validate(req); err != nil {
		return nil, err
	}

	date, err := model.ParseDate(req.BookingDate)
	if err != nil {
		return nil, invalid("%v", err)
	}
	if !date.After(s.now()) {
		return nil, invalid("booking date must be in the future")
	}

	b := &model.Booking{
		CourtID:       req.CourtID,
		TimeSlotID:    req.TimeSlotID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		BookingDate:   date,
		Status:        model.BookingStatusPending,
	}
	if clerkID != "" {
		u, err := s.users.GetByClerkID(ctx, clerkID)
		switch {
		case err == nil:
			b.UserID = &u.ID
		case !errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("resolve user: %w", err)
		}
	}

	created, err := s.bookings.Create(ctx, b)
	if err != nil {
		if errors.Is(err, repository.ErrSlotMismatch) {
			return nil, invalid("%v", err)
		}
		return nil, err
	}

	s.log.Info("booking created",
		zap.String("booking_id", created.ID),
		zap.String("time_slot_id", created.TimeSlotID),
		zap.String("date", model.FormatDate(created.BookingDate)),
	)
	if err := s.events.BookingCreated(ctx, created); err != nil {
		s.log.Warn("publish booking created", zap.String("booking_id", created.ID), zap.Error(err))
	}
	return created, nil
}

// ListBookings returns every booking, newest first.
func (s *BookingService) ListBookings(ctx context.Context) ([]model.Booking, error) {
	return s.bookings.List(ctx, repository.BookingFilter{})
}

// ListUserBookings returns the bookings of the user behind clerkID.
// A user that was never synced has no bookings.
func (s *BookingService) ListUserBookings(ctx context.Context, clerkID string) ([]model.Booking, error) {
	u, err := s.users.GetByClerkID(ctx, clerkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []model.Booking{}, nil
		}
		return nil, err
	}
	return s.bookings.List(ctx, repository.BookingFilter{UserID: u.ID})
}

// ListCourtBookings returns a court's bookings, latest date first.
func (s *BookingService) ListCourtBookings(ctx context.Context, courtID string) ([]model.Booking, error) {
	return s.bookings.List(ctx, repository.BookingFilter{CourtID: courtID})
}

// ListBookingsByDate returns all bookings on a date in slot order.
func (s *BookingService) ListBookingsByDate(ctx context.Context, date string) ([]model.Booking, error) {
	day, err := model.ParseDate(date)
	if err != nil {
		return nil, invalid("%v", err)
	}
	return s.bookings.List(ctx, repository.BookingFilter{Date: &day})
}

// GetBooking returns a single booking.
func (s *BookingService) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// UpdateBooking changes customer fields and, when present, the status.
func (s *BookingService) UpdateBooking(ctx context.Context, id string, req model.UpdateBookingRequest) (*model.Booking, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, invalid("unknown status %q", *req.Status)
	}
	if req.CustomerName != nil {
		name := strings.TrimSpace(*req.CustomerName)
		if name == "" {
			return nil, invalid("customerName must not be empty")
		}
		req.CustomerName = &name
	}
	return s.update(ctx, id, req)
}

// CancelBooking moves a booking to CANCELLED, freeing its slot.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (*model.Booking, error) {
	status := model.BookingStatusCancelled
	return s.update(ctx, id, model.UpdateBookingRequest{Status: &status})
}

func (s *BookingService) update(ctx context.Context, id string, req model.UpdateBookingRequest) (*model.Booking, error) {
	updated, err := s.bookings.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		s.log.Info("booking status changed",
			zap.String("booking_id", id),
			zap.String("status", string(updated.Status)),
		)
		if err := s.events.BookingStatusChanged(ctx, updated); err != nil {
			s.log.Warn("publish booking status changed", zap.String("booking_id", id), zap.Error(err))
		}
	}
	return updated, nil
}

// DeleteBooking removes a booking permanently.
func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("booking deleted", zap.String("booking_id", id))
	return nil
}
