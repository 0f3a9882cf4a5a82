package service

import (
	"context"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/court-booking/internal/model"
	"github.com/Shivanand-hulikatti/court-booking/internal/repository"
	"github.com/teambition/rrule-go"
)

const (
	defaultUpcomingWeeks = 4
	maxUpcomingWeeks     = 52
)

// rruleWeekdays is indexed by time.Weekday.
var rruleWeekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// TimeSlotService orchestrates weekly slot administration and availability.
type TimeSlotService struct {
	slots    TimeSlotStore
	bookings BookingStore
	now      func() time.Time
}

// NewTimeSlotService constructs a TimeSlotService with its dependencies.
func NewTimeSlotService(slots TimeSlotStore, bookings BookingStore) *TimeSlotService {
	return &TimeSlotService{slots: slots, bookings: bookings, now: time.Now}
}

func (s *TimeSlotService) today() time.Time {
	n := s.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// ListByCourt returns a court's active slots, each with its active bookings
// from today onward.
func (s *TimeSlotService) ListByCourt(ctx context.Context, courtID string) ([]model.TimeSlot, error) {
	slots, err := s.slots.ListActiveByCourts(ctx, []string{courtID})
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return slots, nil
	}
	from := s.today()
	bookings, err := s.bookings.List(ctx, repository.BookingFilter{CourtID: courtID, From: &from, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	bySlot := bookingsBySlot(bookings)
	for i := range slots {
		slots[i].Bookings = bySlot[slots[i].ID]
	}
	return slots, nil
}

// AvailableSlots lists the active slots courtID offers on date's weekday,
// each annotated with its active bookings on that date. A slot is available
// when it has none. Unknown courts yield an empty list.
func (s *TimeSlotService) AvailableSlots(ctx context.Context, courtID, date string) ([]model.SlotAvailability, error) {
	if strings.TrimSpace(date) == "" {
		return nil, invalid("date is required")
	}
	day, err := model.ParseDate(date)
	if err != nil {
		return nil, invalid("%v", err)
	}

	slots, err := s.slots.ListActiveForDay(ctx, courtID, day.Weekday())
	if err != nil {
		return nil, err
	}
	out := make([]model.SlotAvailability, 0, len(slots))
	if len(slots) == 0 {
		return out, nil
	}

	bookings, err := s.bookings.List(ctx, repository.BookingFilter{CourtID: courtID, Date: &day, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	bySlot := bookingsBySlot(bookings)
	for _, slot := range slots {
		slot.Bookings = bySlot[slot.ID]
		out = append(out, model.SlotAvailability{
			TimeSlot:  slot,
			Date:      model.FormatDate(day),
			Available: len(slot.Bookings) == 0,
		})
	}
	return out, nil
}

// GetTimeSlot returns a slot with its court and its active bookings from today onward.
func (s *TimeSlotService) GetTimeSlot(ctx context.Context, id string) (*model.TimeSlot, error) {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := s.today()
	bookings, err := s.bookings.List(ctx, repository.BookingFilter{TimeSlotID: id, From: &from, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	slot.Bookings = bookings
	return slot, nil
}

// Upcoming expands a weekly slot into its next occurrences, starting
// tomorrow, and marks each one available or taken.
func (s *TimeSlotService) Upcoming(ctx context.Context, id string, weeks int) ([]model.SlotOccurrence, error) {
	switch {
	case weeks == 0:
		weeks = defaultUpcomingWeeks
	case weeks < 0 || weeks > maxUpcomingWeeks:
		return nil, invalid("weeks must be between 1 and %d", maxUpcomingWeeks)
	}

	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
		return nil, invalid("time slot %s has day of week %d", id, slot.DayOfWeek)
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Count:     weeks,
		Byweekday: []rrule.Weekday{rruleWeekdays[slot.DayOfWeek]},
		Dtstart:   s.today().AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, err
	}
	dates := rule.All()
	if len(dates) == 0 {
		return []model.SlotOccurrence{}, nil
	}

	from, to := dates[0], dates[len(dates)-1]
	bookings, err := s.bookings.List(ctx, repository.BookingFilter{TimeSlotID: id, From: &from, To: &to, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		taken[model.FormatDate(b.BookingDate)] = true
	}

	out := make([]model.SlotOccurrence, 0, len(dates))
	for _, d := range dates {
		date := model.FormatDate(d)
		out = append(out, model.SlotOccurrence{
			Date:      date,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Available: slot.IsActive && !taken[date],
		})
	}
	return out, nil
}

// CreateTimeSlot validates and stores a new active weekly slot.
func (s *TimeSlotService) CreateTimeSlot(ctx context.Context, req model.CreateTimeSlotRequest) (*model.TimeSlot, error) {
	req.StartTime = strings.TrimSpace(req.StartTime)
	req.EndTime = strings.TrimSpace(req.EndTime)
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := checkSlot(req.StartTime, req.EndTime, *req.DayOfWeek); err != nil {
		return nil, err
	}
	slot := &model.TimeSlot{
		CourtID:   req.CourtID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		DayOfWeek: *req.DayOfWeek,
		IsActive:  true,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// UpdateTimeSlot applies the non-nil fields of req and revalidates the slot.
func (s *TimeSlotService) UpdateTimeSlot(ctx context.Context, id string, req model.UpdateTimeSlotRequest) (*model.TimeSlot, error) {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.StartTime != nil {
		slot.StartTime = strings.TrimSpace(*req.StartTime)
	}
	if req.EndTime != nil {
		slot.EndTime = strings.TrimSpace(*req.EndTime)
	}
	if req.DayOfWeek != nil {
		slot.DayOfWeek = *req.DayOfWeek
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}
	if err := checkSlot(slot.StartTime, slot.EndTime, slot.DayOfWeek); err != nil {
		return nil, err
	}
	if err := s.slots.Update(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// DeleteTimeSlot deactivates a slot. Existing bookings are kept.
func (s *TimeSlotService) DeleteTimeSlot(ctx context.Context, id string) error {
	return s.slots.Deactivate(ctx, id)
}

func checkSlot(start, end string, day int) error {
	if day < 0 || day > 6 {
		return invalid("dayOfWeek must be between 0 (Sunday) and 6 (Saturday)")
	}
	if err := model.ValidSlotWindow(start, end); err != nil {
		return invalid("%v", err)
	}
	return nil
}
