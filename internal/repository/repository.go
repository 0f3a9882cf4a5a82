// Package repository implements all database queries for the court booking system.
// It uses pgx directly (no ORM) for transparency and performance.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyBooked is returned when a slot already has an active booking on a date.
var ErrAlreadyBooked = errors.New("this time slot is already booked for the selected date")

// ErrDuplicate is returned when a unique key other than the booking key is violated.
var ErrDuplicate = errors.New("resource already exists")

// ErrSlotMismatch is returned when a time slot does not belong to the
// requested court or does not occur on the requested date's weekday.
var ErrSlotMismatch = errors.New("time slot is not offered by this court on that date")

// ErrInvalidTransition is returned when a booking status change is not allowed.
var ErrInvalidTransition = errors.New("invalid booking status transition")

// PostgreSQL SQLSTATE codes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool { return pgCode(err) == codeUniqueViolation }

func isForeignKeyViolation(err error) bool { return pgCode(err) == codeForeignKeyViolation }
