package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Shivanand-hulikatti/court-booking/internal/model"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TimeSlotService is the slot catalog used by TimeSlotHandler.
type TimeSlotService interface {
	ListByCourt(ctx context.Context, courtID string) ([]model.TimeSlot, error)
	AvailableSlots(ctx context.Context, courtID, date string) ([]model.SlotAvailability, error)
	GetTimeSlot(ctx context.Context, id string) (*model.TimeSlot, error)
	Upcoming(ctx context.Context, id string, weeks int) ([]model.SlotOccurrence, error)
	CreateTimeSlot(ctx context.Context, req model.CreateTimeSlotRequest) (*model.TimeSlot, error)
	UpdateTimeSlot(ctx context.Context, id string, req model.UpdateTimeSlotRequest) (*model.TimeSlot, error)
	DeleteTimeSlot(ctx context.Context, id string) error
}

// TimeSlotHandler serves /api/timeslots.
type TimeSlotHandler struct {
	svc TimeSlotService
	log *zap.Logger
}

func NewTimeSlotHandler(svc TimeSlotService, log *zap.Logger) *TimeSlotHandler {
	return &TimeSlotHandler{svc: svc, log: log}
}

// Routes mounts the time slot endpoints.
func (h *TimeSlotHandler) Routes(r chi.Router) {
	r.Get("/court/{courtId}", h.ListByCourt)
	r.Get("/available/{courtId}", h.AvailableSlots)
	r.Post("/", h.CreateTimeSlot)
	r.Get("/{id}", h.GetTimeSlot)
	r.Get("/{id}/upcoming", h.Upcoming)
	r.Put("/{id}", h.UpdateTimeSlot)
	r.Delete("/{id}", h.DeleteTimeSlot)
}

// ListByCourt handles GET /api/timeslots/court/{courtId}
func (h *TimeSlotHandler) ListByCourt(w http.ResponseWriter, r *http.Request) {
	slots, err := h.svc.ListByCourt(r.Context(), chi.URLParam(r, "courtId"))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, emptyIfNil(slots))
}

// AvailableSlots handles GET /api/timeslots/available/{courtId}?date=YYYY-MM-DD
func (h *TimeSlotHandler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.svc.AvailableSlots(r.Context(), chi.URLParam(r, "courtId"), r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, emptyIfNil(slots))
}

// GetTimeSlot handles GET /api/timeslots/{id}
func (h *TimeSlotHandler) GetTimeSlot(w http.ResponseWriter, r *http.Request) {
	slot, err := h.svc.GetTimeSlot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, slot)
}

// Upcoming handles GET /api/timeslots/{id}/upcoming?weeks=N
func (h *TimeSlotHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	weeks := 0
	if raw := r.URL.Query().Get("weeks"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "weeks must be an integer")
			return
		}
		weeks = n
	}
	occ, err := h.svc.Upcoming(r.Context(), chi.URLParam(r, "id"), weeks)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, emptyIfNil(occ))
}

// CreateTimeSlot handles POST /api/timeslots
func (h *TimeSlotHandler) CreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTimeSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	slot, err := h.svc.CreateTimeSlot(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, slot)
}

// UpdateTimeSlot handles PUT /api/timeslots/{id}
func (h *TimeSlotHandler) UpdateTimeSlot(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateTimeSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	slot, err := h.svc.UpdateTimeSlot(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, slot)
}

// DeleteTimeSlot handles DELETE /api/timeslots/{id}. The slot is deactivated.
func (h *TimeSlotHandler) DeleteTimeSlot(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTimeSlot(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeMessage(w, http.StatusOK, "Time slot deleted successfully")
}
