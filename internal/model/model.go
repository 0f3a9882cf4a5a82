// Package model defines the core domain types for the court booking system.
package model

import "time"

// Court is a bookable physical venue.
type Court struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	TimeSlots   []TimeSlot `json:"timeSlots,omitempty"`
	Bookings    []Booking  `json:"bookings,omitempty"`
}

// TimeSlot is a recurring weekly interval offered by a court.
// DayOfWeek follows time.Weekday: 0 is Sunday, 6 is Saturday.
type TimeSlot struct {
	ID        string    `json:"id"`
	CourtID   string    `json:"courtId"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	DayOfWeek int       `json:"dayOfWeek"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Court     *Court    `json:"court,omitempty"`
	Bookings  []Booking `json:"bookings,omitempty"`
}

// Booking reserves a time slot for one calendar date.
type Booking struct {
	ID            string        `json:"id"`
	CourtID       string        `json:"courtId"`
	TimeSlotID    string        `json:"timeSlotId"`
	UserID        *string       `json:"userId"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	CustomerPhone *string       `json:"customerPhone"`
	BookingDate   time.Time     `json:"bookingDate"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	// Joined records, populated on reads.
	Court    *Court    `json:"court,omitempty"`
	TimeSlot *TimeSlot `json:"timeSlot,omitempty"`
	User     *User     `json:"user,omitempty"`
}

// User is a locally mirrored identity-provider account.
type User struct {
	ID        string    `json:"id"`
	ClerkID   string    `json:"clerkId"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotAvailability is a time slot annotated with its occupancy on one date.
type SlotAvailability struct {
	TimeSlot
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

// SlotOccurrence is one dated occurrence of a weekly time slot.
type SlotOccurrence struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// CreateCourtRequest is the payload for creating a court.
type CreateCourtRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateCourtRequest carries optional court changes.
type UpdateCourtRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// CreateTimeSlotRequest is the payload for creating a time slot.
type CreateTimeSlotRequest struct {
	CourtID   string `json:"courtId" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	DayOfWeek *int   `json:"dayOfWeek" validate:"required"`
}

// UpdateTimeSlotRequest carries optional time slot changes.
type UpdateTimeSlotRequest struct {
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	DayOfWeek *int    `json:"dayOfWeek"`
	IsActive  *bool   `json:"isActive"`
}

// CreateBookingRequest is the payload for reserving a slot on a date.
type CreateBookingRequest struct {
	CourtID       string  `json:"courtId" validate:"required"`
	TimeSlotID    string  `json:"timeSlotId" validate:"required"`
	CustomerName  string  `json:"customerName" validate:"required"`
	CustomerEmail string  `json:"customerEmail" validate:"required,email"`
	CustomerPhone *string `json:"customerPhone"`
	BookingDate   string  `json:"bookingDate" validate:"required"`
}

// UpdateBookingRequest carries optional booking changes.
type UpdateBookingRequest struct {
	Status        *BookingStatus `json:"status"`
	CustomerName  *string        `json:"customerName"`
	CustomerEmail *string        `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone *string        `json:"customerPhone"`
}

// SyncUserRequest is the identity-provider payload exchanged for a token.
type SyncUserRequest struct {
	ClerkID   string  `json:"clerkId" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// UpdateProfileRequest carries optional profile changes.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// Response is the JSON envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}
