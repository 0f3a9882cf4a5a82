// Package events publishes booking lifecycle events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/court-booking/internal/model"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	SubjectBookingCreated       = "booking.created"
	SubjectBookingStatusChanged = "booking.status_changed"
)

// BookingEvent is the payload of every booking subject.
type BookingEvent struct {
	EventType   string              `json:"event_type"`
	BookingID   string              `json:"booking_id"`
	CourtID     string              `json:"court_id"`
	TimeSlotID  string              `json:"time_slot_id"`
	BookingDate string              `json:"booking_date"`
	Status      model.BookingStatus `json:"status"`
	OccurredAt  time.Time           `json:"occurred_at"`
}

// NewBookingEvent builds the event for b on subject.
func NewBookingEvent(subject string, b *model.Booking) BookingEvent {
	return BookingEvent{
		EventType:   subject,
		BookingID:   b.ID,
		CourtID:     b.CourtID,
		TimeSlotID:  b.TimeSlotID,
		BookingDate: model.FormatDate(b.BookingDate),
		Status:      b.Status,
		OccurredAt:  time.Now().UTC(),
	}
}

type NatsPublisher struct {
	conn *nats.Conn
	log  *zap.Logger
}

// NewNatsPublisher connects to the NATS server at url.
func NewNatsPublisher(url string, log *zap.Logger) (*NatsPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("court-booking"))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &NatsPublisher{conn: nc, log: log}, nil
}

func (p *NatsPublisher) BookingCreated(_ context.Context, b *model.Booking) error {
	return p.publish(SubjectBookingCreated, b)
}

func (p *NatsPublisher) BookingStatusChanged(_ context.Context, b *model.Booking) error {
	return p.publish(SubjectBookingStatusChanged, b)
}

func (p *NatsPublisher) publish(subject string, b *model.Booking) error {
	payload, err := json.Marshal(NewBookingEvent(subject, b))
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", subject, err)
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	p.log.Debug("published event", zap.String("subject", subject), zap.String("booking_id", b.ID))
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NatsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.log.Warn("drain nats connection", zap.Error(err))
	}
}

// NopPublisher discards events. It is used when NATS_URL is not set.
type NopPublisher struct{}

func (NopPublisher) BookingCreated(context.Context, *model.Booking) error       { return nil }
func (NopPublisher) BookingStatusChanged(context.Context, *model.Booking) error { return nil }
