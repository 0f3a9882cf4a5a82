package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/court-booking/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CourtRepository handles persistence for courts.
type CourtRepository struct {
	db *pgxpool.Pool
}

// NewCourtRepository constructs a CourtRepository.
func NewCourtRepository(db *pgxpool.Pool) *CourtRepository {
	return &CourtRepository{db: db}
}

const courtColumns = `id, name, description, is_active, created_at, updated_at`

func scanCourt(row pgx.Row) (*model.Court, error) {
	var c model.Court
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a court. A missing ID is replaced with a generated UUID.
func (r *CourtRepository) Create(ctx context.Context, c *model.Court) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO courts (id, name, description, is_active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		c.ID, c.Name, c.Description, c.IsActive,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("court %s: %w", c.ID, ErrDuplicate)
		}
		return fmt.Errorf("insert court: %w", err)
	}
	return nil
}

// ListActive returns all active courts ordered by name.
func (r *CourtRepository) ListActive(ctx context.Context) ([]model.Court, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+courtColumns+`
		 FROM courts
		 WHERE is_active
		 ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	defer rows.Close()

	var courts []model.Court
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan court: %w", err)
		}
		courts = append(courts, *c)
	}
	return courts, rows.Err()
}

// GetByID returns a single court, active or not, or ErrNotFound.
func (r *CourtRepository) GetByID(ctx context.Context, id string) (*model.Court, error) {
	c, err := scanCourt(r.db.QueryRow(ctx,
		`SELECT `+courtColumns+` FROM courts WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get court: %w", err)
	}
	return c, nil
}

// Update overwrites the mutable fields of a court.
func (r *CourtRepository) Update(ctx context.Context, c *model.Court) error {
	err := r.db.QueryRow(ctx,
		`UPDATE courts
		 SET name = $2, description = $3, is_active = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		c.ID, c.Name, c.Description, c.IsActive,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update court: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a court.
func (r *CourtRepository) Deactivate(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE courts SET is_active = FALSE, updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deactivate court: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
