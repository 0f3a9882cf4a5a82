package handler

import (
	"context"
	"net/http"

	"github.com/Shivanand-hulikatti/court-booking/internal/model"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BookingService is the booking workflow used by BookingHandler.
type BookingService interface {
	CreateBooking(ctx context.Context, clerkID string, req model.CreateBookingRequest) (*model.Booking, error)
	ListBookings(ctx context.Context) ([]model.Booking, error)
	ListUserBookings(ctx context.Context, clerkID string) ([]model.Booking, error)
	ListCourtBookings(ctx context.Context, courtID string) ([]model.Booking, error)
	ListBookingsByDate(ctx context.Context, date string) ([]model.Booking, error)
	GetBooking(ctx context.Context, id string) (*model.Booking, error)
	UpdateBooking(ctx context.Context, id string, req model.UpdateBookingRequest) (*model.Booking, error)
	CancelBooking(ctx context.Context, id string) (*model.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

// BookingHandler serves /api/bookings. Every route expects Authenticate.
type BookingHandler struct {
	svc BookingService
	log *zap.Logger
}

func NewBookingHandler(svc BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, log: log}
}

// Routes mounts the booking endpoints.
func (h *BookingHandler) Routes(r chi.Router) {
	r.Get("/", h.ListBookings)
	r.Post("/", h.CreateBooking)
	r.Get("/my-bookings", h.MyBookings)
	r.Get("/court/{courtId}", h.ListCourtBookings)
	r.Get("/date/{date}", h.ListBookingsByDate)
	r.Get("/{id}", h.GetBooking)
	r.Put("/{id}", h.UpdateBooking)
	r.Put("/{id}/cancel", h.CancelBooking)
	r.Delete("/{id}", h.DeleteBooking)
}

func (h *BookingHandler) writeList(w http.ResponseWriter, bookings []model.Booking, err error) {
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, emptyIfNil(bookings))
}

// ListBookings handles GET /api/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListBookings(r.Context())
	h.writeList(w, bookings, err)
}

// MyBookings handles GET /api/bookings/my-bookings
func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListUserBookings(r.Context(), clerkID(r))
	h.writeList(w, bookings, err)
}

// ListCourtBookings handles GET /api/bookings/court/{courtId}
func (h *BookingHandler) ListCourtBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListCourtBookings(r.Context(), chi.URLParam(r, "courtId"))
	h.writeList(w, bookings, err)
}

// ListBookingsByDate handles GET /api/bookings/date/{date}
func (h *BookingHandler) ListBookingsByDate(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListBookingsByDate(r.Context(), chi.URLParam(r, "date"))
	h.writeList(w, bookings, err)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

// CreateBooking handles POST /api/bookings
// Admission and double-booking checks happen in the service and store.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	b, err := h.svc.CreateBooking(r.Context(), clerkID(r), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, b)
}

// UpdateBooking handles PUT /api/bookings/{id}
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	b, err := h.svc.UpdateBooking(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

// CancelBooking handles PUT /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.CancelBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

// DeleteBooking handles DELETE /api/bookings/{id}
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteBooking(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeMessage(w, http.StatusOK, "Booking deleted successfully")
}
