package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/court-booking/internal/model"
	"github.com/Shivanand-hulikatti/court-booking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Wednesday 4 June 2025, mid-morning UTC.
var fixedNow = time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memStore
	events   *recordingPublisher
	bookings *BookingService
	slots    *TimeSlotService
	courts   *CourtService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	m := newMemStore()
	m.addCourt("court-1", "Football Court 1")
	m.addCourt("court-2", "Football Court 2")
	m.addSlot("mon-0600", "court-1", "06:00", "07:00", time.Monday)
	m.addSlot("mon-0700", "court-1", "07:00", "08:00", time.Monday)
	m.addSlot("tue-0600", "court-1", "06:00", "07:00", time.Tuesday)
	m.addSlot("c2-mon-0600", "court-2", "06:00", "07:00", time.Monday)

	pub := &recordingPublisher{}
	bs := NewBookingService(memBookings{m}, memUsers{m}, pub, zap.NewNop())
	bs.now = func() time.Time { return fixedNow }
	ts := NewTimeSlotService(memSlots{m}, memBookings{m})
	ts.now = func() time.Time { return fixedNow }

	return &fixture{
		store:    m,
		events:   pub,
		bookings: bs,
		slots:    ts,
		courts:   NewCourtService(memCourts{m}, memSlots{m}, memBookings{m}),
	}
}

func bookingReq(slotID, date string) model.CreateBookingRequest {
	return model.CreateBookingRequest{
		CourtID:       "court-1",
		TimeSlotID:    slotID,
		CustomerName:  "Asha",
		CustomerEmail: "asha@example.com",
		BookingDate:   date,
	}
}

func availability(t *testing.T, f *fixture, date string) map[string]bool {
	t.Helper()
	slots, err := f.slots.AvailableSlots(context.Background(), "court-1", date)
	require.NoError(t, err)
	out := map[string]bool{}
	for _, s := range slots {
		out[s.ID] = s.Available
	}
	return out
}

func TestCreateBooking_MondayExample(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	avail := availability(t, f, "2025-06-09")
	require.Contains(t, avail, "mon-0600")
	assert.True(t, avail["mon-0600"])

	b, err := f.bookings.CreateBooking(ctx, "", bookingReq("mon-0600", "2025-06-09"))
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, b.Status)
	assert.Equal(t, "2025-06-09", model.FormatDate(b.BookingDate))

	avail = availability(t, f, "2025-06-09")
	assert.False(t, avail["mon-0600"])
	assert.True(t, avail["mon-0700"])

	_, err = f.bookings.CreateBooking(ctx, "", bookingReq("mon-0600", "2025-06-16"))
	require.NoError(t, err)
	assert.Equal(t, 2, f.store.bookingCount())
}

func TestCreateBooking_ConflictAddsNoRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.bookings.CreateBooking(ctx, "", bookingReq("mon-0600", "2025-06-09"))
	require.NoError(t, err)

	_, err = f.bookings.CreateBooking(ctx, "", bookingReq("mon-0600", "2025-06-09"))
	assert.ErrorIs(t, err, repository.ErrAlreadyBooked)
	assert.Equal(t, 1, f.store.bookingCount())
	assert.Len(t, f.events.created, 1)
}

func TestCreateBooking_RejectedBeforeStore(t *testing.T) {
	cases := []struct {
		name string
		req  func() model.CreateBookingRequest
	}{
		{"past date", func() model.CreateBookingRequest { return bookingReq("mon-0600", "2025-06-02") }},
		{"today", func() model.CreateBookingRequest { return bookingReq("mon-0600", "2025-06-04") }},
		{"malformed date", func() model.CreateBookingRequest { return bookingReq("mon-0600", "09/06/2025") }},
		{"missing name", func() model.CreateBookingRequest {
			r := bookingReq("mon-0600", "2025-06-09")
			r.CustomerName = "  "
			return r
		}},
		{"bad email", func() model.CreateBookingRequest {
			r := bookingReq("mon-0600", "2025-06-09")
			r.CustomerEmail = "not-an-email"
			return r
		}},
		{"missing slot", func() model.CreateBookingRequest {
			r := bookingReq("", "2025-06-09")
			return r
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.bookings.CreateBooking(context.Background(), "", tc.req())
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, f.store.bookingCount())
		})
	}
}

func TestCreateBooking_SlotMismatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Monday slot on a Tuesday.
	_, err := f.bookings.CreateBooking(ctx, "", bookingReq("mon-0600", "2025-06-10"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Slot of another court.
	_, err = f.bookings.CreateBooking(ctx, "", bookingReq("c2-mon-0600", "2025-06-09"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.bookings.CreateBooking(ctx, "", bookingReq("missing", "2025-06-09"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Zero(t, f.store.bookingCount())
}

func TestCreateBooking_LinksSyncedUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, err := memUsers{f.store}.Upsert(ctx, model.SyncUserRequest{ClerkID: "user_1", Email: "asha@example.com"})
	require.NoError(t, err)

	b, err := f.bookings.CreateBooking(ctx, "user_1", bookingReq("mon-0600", "2025-06-09"))
	require.NoError(t, err)
	require.NotNil(t, b.UserID)
	assert.Equal(t, u.ID, *b.UserID)

	mine, err := f.bookings.ListUserBookings(ctx, "user_1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	// Unknown users may still book, unlinked.
	b, err = f.bookings.CreateBooking(ctx, "user_unknown", bookingReq("mon-0700", "2025-06-09"))
	require.NoError(t, err)
	assert.Nil(t, b.UserID)

	none, err := f.bookings.ListUserBookings(ctx, "user_unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCreateBooking_PublishFailureIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.events.fail = true

	_, err := f.bookings.CreateBooking(context.Background(), "", bookingReq("mon-0600", "2025-06-09"))
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.bookingCount())
}

func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	const n = 20

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.bookings.CreateBooking(context.Background(), "", bookingReq("mon-0600", "2025-06-09"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, repository.ErrAlreadyBooked):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, 1, f.store.bookingCount())
}

func TestCancelBooking_FreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.bookings.CreateBooking(ctx, "", bookingReq("mon-0600", "2025-06-09"))
	require.NoError(t, err)
	assert.False(t, availability(t, f, "2025-06-09")["mon-0600"])

	cancelled, err := f.bookings.CancelBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, cancelled.Status)
	assert.True(t, availability(t, f, "2025-06-09")["mon-0600"])
	assert.Equal(t, []string{b.ID}, f.events.changed)

	_, err = f.bookings.CreateBooking(ctx, "", bookingReq("mon-0600", "2025-06-09"))
	assert.NoError(t, err)
}

func TestUpdateBooking_Transitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	status := func(s model.BookingStatus) *model.BookingStatus { return &s }

	b, err := f.bookings.CreateBooking(ctx, "", bookingReq("mon-0600", "2025-06-09"))
	require.NoError(t, err)

	b, err = f.bookings.UpdateBooking(ctx, b.ID, model.UpdateBookingRequest{Status: status(model.BookingStatusConfirmed)})
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, b.Status)

	b, err = f.bookings.UpdateBooking(ctx, b.ID, model.UpdateBookingRequest{Status: status(model.BookingStatusCompleted)})
	require.NoError(t, err)

	_, err = f.bookings.UpdateBooking(ctx, b.ID, model.UpdateBookingRequest{Status: status(model.BookingStatusPending)})
	assert.ErrorIs(t, err, repository.ErrInvalidTransition)

	_, err = f.bookings.CancelBooking(ctx, b.ID)
	assert.ErrorIs(t, err, repository.ErrInvalidTransition)

	_, err = f.bookings.UpdateBooking(ctx, b.ID, model.UpdateBookingRequest{Status: status("ARCHIVED")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateBooking_CustomerFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.bookings.CreateBooking(ctx, "", bookingReq("mon-0600", "2025-06-09"))
	require.NoError(t, err)

	name := " Ravi "
	updated, err := f.bookings.UpdateBooking(ctx, b.ID, model.UpdateBookingRequest{CustomerName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", updated.CustomerName)
	assert.Equal(t, model.BookingStatusPending, updated.Status)
	assert.Empty(t, f.events.changed)

	bad := "nope"
	_, err = f.bookings.UpdateBooking(ctx, b.ID, model.UpdateBookingRequest{CustomerEmail: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListBookingsByDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.bookings.CreateBooking(ctx, "", bookingReq("mon-0600", "2025-06-09"))
	require.NoError(t, err)
	_, err = f.bookings.CreateBooking(ctx, "", bookingReq("mon-0600", "2025-06-16"))
	require.NoError(t, err)

	got, err := f.bookings.ListBookingsByDate(ctx, "2025-06-09")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = f.bookings.ListBookingsByDate(ctx, "June 9")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.bookings.CreateBooking(ctx, "", bookingReq("mon-0600", "2025-06-09"))
	require.NoError(t, err)

	require.NoError(t, f.bookings.DeleteBooking(ctx, b.ID))
	assert.ErrorIs(t, f.bookings.DeleteBooking(ctx, b.ID), repository.ErrNotFound)
	assert.True(t, availability(t, f, "2025-06-09")["mon-0600"])
}
