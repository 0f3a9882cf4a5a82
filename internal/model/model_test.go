package model_test

import (
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/court-booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from, to model.BookingStatus
		want     bool
	}{
		{model.BookingStatusPending, model.BookingStatusConfirmed, true},
		{model.BookingStatusPending, model.BookingStatusCancelled, true},
		{model.BookingStatusPending, model.BookingStatusCompleted, false},
		{model.BookingStatusConfirmed, model.BookingStatusCancelled, true},
		{model.BookingStatusConfirmed, model.BookingStatusCompleted, true},
		{model.BookingStatusConfirmed, model.BookingStatusPending, false},
		{model.BookingStatusCompleted, model.BookingStatusPending, false},
		{model.BookingStatusCancelled, model.BookingStatusConfirmed, false},
		{model.BookingStatusCancelled, model.BookingStatusCancelled, true},
		{model.BookingStatusPending, model.BookingStatus("BOGUS"), false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.from.CanTransition(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.True(t, model.BookingStatusCancelled.IsTerminal())
	assert.True(t, model.BookingStatusCompleted.IsTerminal())
	assert.False(t, model.BookingStatusPending.IsTerminal())
	assert.True(t, model.BookingStatusConfirmed.IsActive())
	assert.False(t, model.BookingStatusCancelled.IsActive())
}

func TestParseDate(t *testing.T) {
	d, err := model.ParseDate("2025-06-09")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())
	assert.Equal(t, "2025-06-09", model.FormatDate(d))

	d, err = model.ParseDate("2025-06-09T23:30:00-02:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", model.FormatDate(d))

	_, err = model.ParseDate("09/06/2025")
	assert.Error(t, err)
	_, err = model.ParseDate("2025-02-30")
	assert.Error(t, err)
}

func TestValidSlotWindow(t *testing.T) {
	assert.NoError(t, model.ValidSlotWindow("06:00", "07:00"))
	assert.Error(t, model.ValidSlotWindow("07:00", "06:00"))
	assert.Error(t, model.ValidSlotWindow("6am", "07:00"))
	assert.Error(t, model.ValidSlotWindow("06:00", "24:30"))
}
