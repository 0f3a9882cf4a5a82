package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/court-booking/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository handles persistence for bookings.
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// BookingFilter narrows List. Zero fields do not filter.
type BookingFilter struct {
	CourtID    string
	TimeSlotID string
	UserID     string
	Date       *time.Time
	From, To   *time.Time // inclusive booking_date range
	ActiveOnly bool
}

const bookingSelect = `
	SELECT b.id, b.court_id, b.time_slot_id, b.user_id, b.customer_name, b.customer_email,
	       b.customer_phone, b.booking_date, b.status, b.created_at, b.updated_at,
	       c.id, c.name, c.description, c.is_active, c.created_at, c.updated_at,
	       t.id, t.court_id, t.start_time, t.end_time, t.day_of_week, t.is_active, t.created_at, t.updated_at,
	       u.id, u.clerk_id, u.email, u.first_name, u.last_name, u.created_at, u.updated_at
	FROM bookings b
	JOIN courts c ON c.id = b.court_id
	JOIN time_slots t ON t.id = b.time_slot_id
	LEFT JOIN users u ON u.id = b.user_id`

// scanBooking reads one row of bookingSelect.
func scanBooking(row pgx.Row) (*model.Booking, error) {
	var (
		b model.Booking
		c model.Court
		t model.TimeSlot

		// LEFT JOIN users: all NULL when the booking has no user.
		uID, uClerkID, uEmail *string
		uFirst, uLast         *string
		uCreated, uUpdated    *time.Time
	)
	err := row.Scan(
		&b.ID, &b.CourtID, &b.TimeSlotID, &b.UserID, &b.CustomerName, &b.CustomerEmail,
		&b.CustomerPhone, &b.BookingDate, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		&t.ID, &t.CourtID, &t.StartTime, &t.EndTime, &t.DayOfWeek, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
		&uID, &uClerkID, &uEmail, &uFirst, &uLast, &uCreated, &uUpdated,
	)
	if err != nil {
		return nil, err
	}
	b.Court = &c
	b.TimeSlot = &t
	if uID != nil {
		b.User = &model.User{
			ID:        *uID,
			ClerkID:   *uClerkID,
			Email:     *uEmail,
			FirstName: uFirst,
			LastName:  uLast,
			CreatedAt: *uCreated,
			UpdatedAt: *uUpdated,
		}
	}
	return &b, nil
}

// Create performs the booking admission check and insert inside one transaction.
//
// Checking for an active booking and inserting afterwards is racy on its own:
// two requests for the same slot and date can both see "no booking" and both
// insert. Two things close that gap:
//
//  1. SELECT … FOR UPDATE on the time slot row serialises every attempt to
//     book that slot, so the existence check and the insert of one request
//     cannot interleave with another's.
//  2. The partial unique index bookings_active_slot_date_key rejects a second
//     PENDING/CONFIRMED row for the same (time_slot_id, booking_date) even if
//     a writer bypasses this method.
func (r *BookingRepository) Create(ctx context.Context, b *model.Booking) (*model.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock the slot row.
	var (
		slotCourtID string
		slotDay     int
		slotActive  bool
	)
	err = tx.QueryRow(ctx,
		`SELECT court_id, day_of_week, is_active
		 FROM time_slots
		 WHERE id = $1
		 FOR UPDATE`,
		b.TimeSlotID,
	).Scan(&slotCourtID, &slotDay, &slotActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("time slot %s: %w", b.TimeSlotID, ErrNotFound)
		}
		return nil, fmt.Errorf("lock time slot row: %w", err)
	}
	if !slotActive {
		return nil, fmt.Errorf("time slot %s: %w", b.TimeSlotID, ErrNotFound)
	}
	if slotCourtID != b.CourtID || slotDay != int(b.BookingDate.Weekday()) {
		return nil, ErrSlotMismatch
	}

	// Reject when the slot is already claimed on that date.
	var taken bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM bookings
		     WHERE time_slot_id = $1 AND booking_date = $2
		       AND status IN ('PENDING', 'CONFIRMED')
		 )`,
		b.TimeSlotID, b.BookingDate,
	).Scan(&taken)
	if err != nil {
		return nil, fmt.Errorf("check existing booking: %w", err)
	}
	if taken {
		return nil, ErrAlreadyBooked
	}

	b.ID = uuid.New().String()
	if b.Status == "" {
		b.Status = model.BookingStatusPending
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO bookings (id, court_id, time_slot_id, user_id, customer_name,
		                       customer_email, customer_phone, booking_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.CourtID, b.TimeSlotID, b.UserID, b.CustomerName,
		b.CustomerEmail, b.CustomerPhone, b.BookingDate, b.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyBooked
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	created, err := scanBooking(tx.QueryRow(ctx, bookingSelect+` WHERE b.id = $1`, b.ID))
	if err != nil {
		return nil, fmt.Errorf("read created booking: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return created, nil
}

// GetByID returns a booking joined with its court, slot and user, or ErrNotFound.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, bookingSelect+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// List returns joined bookings matching f. Bookings for a single date come
// back in slot order; per-court and per-user lists are newest date first;
// everything else is newest first.
func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]model.Booking, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.CourtID != "" {
		add("b.court_id = $%d", f.CourtID)
	}
	if f.TimeSlotID != "" {
		add("b.time_slot_id = $%d", f.TimeSlotID)
	}
	if f.UserID != "" {
		add("b.user_id = $%d", f.UserID)
	}
	if f.Date != nil {
		add("b.booking_date = $%d", *f.Date)
	}
	if f.From != nil {
		add("b.booking_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("b.booking_date <= $%d", *f.To)
	}
	if f.ActiveOnly {
		where = append(where, "b.status IN ('PENDING', 'CONFIRMED')")
	}

	query := bookingSelect
	if len(where) > 0 {
		query += "\n\tWHERE " + strings.Join(where, " AND ")
	}
	switch {
	case f.Date != nil:
		query += "\n\tORDER BY t.start_time ASC"
	case f.CourtID != "" || f.UserID != "":
		query += "\n\tORDER BY b.booking_date DESC, t.start_time ASC"
	default:
		query += "\n\tORDER BY b.created_at DESC"
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// Update applies customer field changes and an optional status change under
// a row lock. The status change must be a legal transition.
func (r *BookingRepository) Update(ctx context.Context, id string, req model.UpdateBookingRequest) (*model.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current model.BookingStatus
	err = tx.QueryRow(ctx,
		`SELECT status FROM bookings WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock booking row: %w", err)
	}
	if req.Status != nil && !current.CanTransition(*req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, *req.Status)
	}

	_, err = tx.Exec(ctx,
		`UPDATE bookings
		 SET status         = COALESCE($2, status),
		     customer_name  = COALESCE($3, customer_name),
		     customer_email = COALESCE($4, customer_email),
		     customer_phone = COALESCE($5, customer_phone),
		     updated_at     = now()
		 WHERE id = $1`,
		id, req.Status, req.CustomerName, req.CustomerEmail, req.CustomerPhone,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyBooked
		}
		return nil, fmt.Errorf("update booking: %w", err)
	}

	updated, err := scanBooking(tx.QueryRow(ctx, bookingSelect+` WHERE b.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("read updated booking: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return updated, nil
}

// Delete removes a booking row.
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
