package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/court-booking/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TimeSlotRepository handles persistence for weekly time slots.
type TimeSlotRepository struct {
	db *pgxpool.Pool
}

// NewTimeSlotRepository constructs a TimeSlotRepository.
func NewTimeSlotRepository(db *pgxpool.Pool) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

const timeSlotColumns = `t.id, t.court_id, t.start_time, t.end_time, t.day_of_week, t.is_active, t.created_at, t.updated_at`

func scanTimeSlot(row pgx.Row) (*model.TimeSlot, error) {
	var s model.TimeSlot
	err := row.Scan(&s.ID, &s.CourtID, &s.StartTime, &s.EndTime, &s.DayOfWeek, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func collectTimeSlots(rows pgx.Rows) ([]model.TimeSlot, error) {
	defer rows.Close()

	var slots []model.TimeSlot
	for rows.Next() {
		s, err := scanTimeSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time slot: %w", err)
		}
		slots = append(slots, *s)
	}
	return slots, rows.Err()
}

// Create inserts a time slot with a generated UUID.
func (r *TimeSlotRepository) Create(ctx context.Context, s *model.TimeSlot) error {
	s.ID = uuid.New().String()
	err := r.db.QueryRow(ctx,
		`INSERT INTO time_slots (id, court_id, start_time, end_time, day_of_week, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		s.ID, s.CourtID, s.StartTime, s.EndTime, s.DayOfWeek, s.IsActive,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("time slot %s-%s on day %d: %w", s.StartTime, s.EndTime, s.DayOfWeek, ErrDuplicate)
		case isForeignKeyViolation(err):
			return fmt.Errorf("court %s: %w", s.CourtID, ErrNotFound)
		}
		return fmt.Errorf("insert time slot: %w", err)
	}
	return nil
}

// GetByID returns a time slot joined with its court, or ErrNotFound.
func (r *TimeSlotRepository) GetByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	var (
		s model.TimeSlot
		c model.Court
	)
	err := r.db.QueryRow(ctx,
		`SELECT `+timeSlotColumns+`,
		        c.id, c.name, c.description, c.is_active, c.created_at, c.updated_at
		 FROM time_slots t
		 JOIN courts c ON c.id = t.court_id
		 WHERE t.id = $1`,
		id,
	).Scan(
		&s.ID, &s.CourtID, &s.StartTime, &s.EndTime, &s.DayOfWeek, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get time slot: %w", err)
	}
	s.Court = &c
	return &s, nil
}

// ListActiveByCourts returns the active slots of the given courts ordered
// by court, weekday and start time.
func (r *TimeSlotRepository) ListActiveByCourts(ctx context.Context, courtIDs []string) ([]model.TimeSlot, error) {
	if len(courtIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+timeSlotColumns+`
		 FROM time_slots t
		 WHERE t.court_id = ANY($1) AND t.is_active
		 ORDER BY t.court_id, t.day_of_week, t.start_time`,
		courtIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	return collectTimeSlots(rows)
}

// ListActiveForDay returns the active slots a court offers on a weekday.
func (r *TimeSlotRepository) ListActiveForDay(ctx context.Context, courtID string, day time.Weekday) ([]model.TimeSlot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+timeSlotColumns+`
		 FROM time_slots t
		 WHERE t.court_id = $1 AND t.day_of_week = $2 AND t.is_active
		 ORDER BY t.start_time`,
		courtID, int(day),
	)
	if err != nil {
		return nil, fmt.Errorf("list time slots for day: %w", err)
	}
	return collectTimeSlots(rows)
}

// Update overwrites the mutable fields of a time slot.
func (r *TimeSlotRepository) Update(ctx context.Context, s *model.TimeSlot) error {
	err := r.db.QueryRow(ctx,
		`UPDATE time_slots
		 SET start_time = $2, end_time = $3, day_of_week = $4, is_active = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		s.ID, s.StartTime, s.EndTime, s.DayOfWeek, s.IsActive,
	).Scan(&s.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return ErrNotFound
		case isUniqueViolation(err):
			return fmt.Errorf("time slot %s-%s on day %d: %w", s.StartTime, s.EndTime, s.DayOfWeek, ErrDuplicate)
		}
		return fmt.Errorf("update time slot: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a time slot.
func (r *TimeSlotRepository) Deactivate(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE time_slots SET is_active = FALSE, updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deactivate time slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
