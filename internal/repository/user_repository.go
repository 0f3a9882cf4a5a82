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

// UserRepository handles persistence for users mirrored from the identity provider.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, clerk_id, email, first_name, last_name, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.ClerkID, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert creates the user for a clerk ID or refreshes its email and names.
// Absent names keep their stored value.
func (r *UserRepository) Upsert(ctx context.Context, req model.SyncUserRequest) (*model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`INSERT INTO users (id, clerk_id, email, first_name, last_name)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (clerk_id) DO UPDATE
		 SET email      = EXCLUDED.email,
		     first_name = COALESCE(EXCLUDED.first_name, users.first_name),
		     last_name  = COALESCE(EXCLUDED.last_name, users.last_name),
		     updated_at = now()
		 RETURNING `+userColumns,
		uuid.New().String(), req.ClerkID, req.Email, req.FirstName, req.LastName,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("email %s: %w", req.Email, ErrDuplicate)
		}
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return u, nil
}

// GetByClerkID returns a user or ErrNotFound.
func (r *UserRepository) GetByClerkID(ctx context.Context, clerkID string) (*model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE clerk_id = $1`,
		clerkID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpdateProfile changes the names of a user; nil fields are left as they are.
func (r *UserRepository) UpdateProfile(ctx context.Context, clerkID string, req model.UpdateProfileRequest) (*model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`UPDATE users
		 SET first_name = COALESCE($2, first_name),
		     last_name  = COALESCE($3, last_name),
		     updated_at = now()
		 WHERE clerk_id = $1
		 RETURNING `+userColumns,
		clerkID, req.FirstName, req.LastName,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}
