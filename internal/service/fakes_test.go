package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/court-booking/internal/model"
	"github.com/Shivanand-hulikatti/court-booking/internal/repository"
)

// memStore is an in-memory stand-in for PostgreSQL. A single mutex plays
// the part of the slot row lock and the partial unique index.
type memStore struct {
	mu       sync.Mutex
	seq      int
	courts   map[string]*model.Court
	slots    map[string]*model.TimeSlot
	bookings map[string]*model.Booking
	users    map[string]*model.User // by clerk ID
}

func newMemStore() *memStore {
	return &memStore{
		courts:   map[string]*model.Court{},
		slots:    map[string]*model.TimeSlot{},
		bookings: map[string]*model.Booking{},
		users:    map[string]*model.User{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) addCourt(id, name string) {
	m.courts[id] = &model.Court{ID: id, Name: name, IsActive: true}
}

func (m *memStore) addSlot(id, courtID, start, end string, day time.Weekday) {
	m.slots[id] = &model.TimeSlot{ID: id, CourtID: courtID, StartTime: start, EndTime: end, DayOfWeek: int(day), IsActive: true}
}

func (m *memStore) bookingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

type memCourts struct{ *memStore }

func (m memCourts) Create(_ context.Context, c *model.Court) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = m.nextID("court")
	}
	if _, ok := m.courts[c.ID]; ok {
		return repository.ErrDuplicate
	}
	cp := *c
	m.courts[c.ID] = &cp
	return nil
}

func (m memCourts) ListActive(context.Context) ([]model.Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Court
	for _, c := range m.courts {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m memCourts) GetByID(_ context.Context, id string) (*model.Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m memCourts) Update(_ context.Context, c *model.Court) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courts[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	m.courts[c.ID] = &cp
	return nil
}

func (m memCourts) Deactivate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courts[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.IsActive = false
	return nil
}

type memSlots struct{ *memStore }

func (m memSlots) Create(_ context.Context, s *model.TimeSlot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courts[s.CourtID]; !ok {
		return repository.ErrNotFound
	}
	for _, o := range m.slots {
		if o.CourtID == s.CourtID && o.StartTime == s.StartTime && o.EndTime == s.EndTime && o.DayOfWeek == s.DayOfWeek {
			return repository.ErrDuplicate
		}
	}
	s.ID = m.nextID("slot")
	cp := *s
	m.slots[s.ID] = &cp
	return nil
}

func (m memSlots) GetByID(_ context.Context, id string) (*model.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m memSlots) list(keep func(*model.TimeSlot) bool) []model.TimeSlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.TimeSlot
	for _, s := range m.slots {
		if s.IsActive && keep(s) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

func (m memSlots) ListActiveByCourts(_ context.Context, courtIDs []string) ([]model.TimeSlot, error) {
	want := map[string]bool{}
	for _, id := range courtIDs {
		want[id] = true
	}
	return m.list(func(s *model.TimeSlot) bool { return want[s.CourtID] }), nil
}

func (m memSlots) ListActiveForDay(_ context.Context, courtID string, day time.Weekday) ([]model.TimeSlot, error) {
	return m.list(func(s *model.TimeSlot) bool { return s.CourtID == courtID && s.DayOfWeek == int(day) }), nil
}

func (m memSlots) Update(_ context.Context, s *model.TimeSlot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.slots[s.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *s
	m.slots[s.ID] = &cp
	return nil
}

func (m memSlots) Deactivate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.IsActive = false
	return nil
}

type memBookings struct{ *memStore }

func (m memBookings) Create(_ context.Context, b *model.Booking) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot, ok := m.slots[b.TimeSlotID]
	if !ok || !slot.IsActive {
		return nil, repository.ErrNotFound
	}
	if slot.CourtID != b.CourtID || slot.DayOfWeek != int(b.BookingDate.Weekday()) {
		return nil, repository.ErrSlotMismatch
	}
	for _, o := range m.bookings {
		if o.TimeSlotID == b.TimeSlotID && o.BookingDate.Equal(b.BookingDate) && o.Status.IsActive() {
			return nil, repository.ErrAlreadyBooked
		}
	}
	cp := *b
	cp.ID = m.nextID("booking")
	m.bookings[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m memBookings) GetByID(_ context.Context, id string) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m memBookings) List(_ context.Context, f repository.BookingFilter) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Booking
	for _, b := range m.bookings {
		switch {
		case f.CourtID != "" && b.CourtID != f.CourtID,
			f.TimeSlotID != "" && b.TimeSlotID != f.TimeSlotID,
			f.UserID != "" && (b.UserID == nil || *b.UserID != f.UserID),
			f.Date != nil && !b.BookingDate.Equal(*f.Date),
			f.From != nil && b.BookingDate.Before(*f.From),
			f.To != nil && b.BookingDate.After(*f.To),
			f.ActiveOnly && !b.Status.IsActive():
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memBookings) Update(_ context.Context, id string, req model.UpdateBookingRequest) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.Status != nil {
		if !b.Status.CanTransition(*req.Status) {
			return nil, repository.ErrInvalidTransition
		}
		b.Status = *req.Status
	}
	if req.CustomerName != nil {
		b.CustomerName = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		b.CustomerEmail = *req.CustomerEmail
	}
	if req.CustomerPhone != nil {
		b.CustomerPhone = req.CustomerPhone
	}
	cp := *b
	return &cp, nil
}

func (m memBookings) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.bookings, id)
	return nil
}

type memUsers struct{ *memStore }

func (m memUsers) Upsert(_ context.Context, req model.SyncUserRequest) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[req.ClerkID]
	if !ok {
		u = &model.User{ID: m.nextID("user"), ClerkID: req.ClerkID}
		m.users[req.ClerkID] = u
	}
	u.Email = req.Email
	if req.FirstName != nil {
		u.FirstName = req.FirstName
	}
	if req.LastName != nil {
		u.LastName = req.LastName
	}
	cp := *u
	return &cp, nil
}

func (m memUsers) GetByClerkID(_ context.Context, clerkID string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[clerkID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m memUsers) UpdateProfile(_ context.Context, clerkID string, req model.UpdateProfileRequest) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[clerkID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.FirstName != nil {
		u.FirstName = req.FirstName
	}
	if req.LastName != nil {
		u.LastName = req.LastName
	}
	cp := *u
	return &cp, nil
}

// recordingPublisher remembers published booking IDs per subject.
type recordingPublisher struct {
	mu      sync.Mutex
	created []string
	changed []string
	fail    bool
}

func (p *recordingPublisher) BookingCreated(_ context.Context, b *model.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker down")
	}
	p.created = append(p.created, b.ID)
	return nil
}

func (p *recordingPublisher) BookingStatusChanged(_ context.Context, b *model.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker down")
	}
	p.changed = append(p.changed, b.ID)
	return nil
}
