// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/court-booking/internal/model"
	"github.com/Shivanand-hulikatti/court-booking/internal/repository"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput marks a request the caller must fix. Handlers map it to 400.
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// CourtStore is the persistence needed by CourtService.
type CourtStore interface {
	Create(ctx context.Context, c *model.Court) error
	ListActive(ctx context.Context) ([]model.Court, error)
	GetByID(ctx context.Context, id string) (*model.Court, error)
	Update(ctx context.Context, c *model.Court) error
	Deactivate(ctx context.Context, id string) error
}

// TimeSlotStore is the persistence needed for weekly slots.
type TimeSlotStore interface {
	Create(ctx context.Context, s *model.TimeSlot) error
	GetByID(ctx context.Context, id string) (*model.TimeSlot, error)
	ListActiveByCourts(ctx context.Context, courtIDs []string) ([]model.TimeSlot, error)
	ListActiveForDay(ctx context.Context, courtID string, day time.Weekday) ([]model.TimeSlot, error)
	Update(ctx context.Context, s *model.TimeSlot) error
	Deactivate(ctx context.Context, id string) error
}

// BookingStore is the persistence needed for bookings.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]model.Booking, error)
	Update(ctx context.Context, id string, req model.UpdateBookingRequest) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
}

// UserStore is the persistence needed for mirrored users.
type UserStore interface {
	Upsert(ctx context.Context, req model.SyncUserRequest) (*model.User, error)
	GetByClerkID(ctx context.Context, clerkID string) (*model.User, error)
	UpdateProfile(ctx context.Context, clerkID string, req model.UpdateProfileRequest) (*model.User, error)
}

// Publisher receives booking lifecycle events.
type Publisher interface {
	BookingCreated(ctx context.Context, b *model.Booking) error
	BookingStatusChanged(ctx context.Context, b *model.Booking) error
}

var structValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validate runs struct tag validation and folds failures into ErrInvalidInput.
func validate(req any) error {
	err := structValidator.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return invalid("%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" is not a valid email address")
		default:
			msgs = append(msgs, fe.Field()+" failed "+fe.Tag())
		}
	}
	return invalid("%s", strings.Join(msgs, "; "))
}

// bookingsBySlot groups active bookings by time slot ID.
func bookingsBySlot(bookings []model.Booking) map[string][]model.Booking {
	out := make(map[string][]model.Booking)
	for _, b := range bookings {
		out[b.TimeSlotID] = append(out[b.TimeSlotID], b)
	}
	return out
}
