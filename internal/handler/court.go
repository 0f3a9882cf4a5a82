package handler

import (
	"context"
	"net/http"

	"github.com/Shivanand-hulikatti/court-booking/internal/model"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CourtService is the court catalog used by CourtHandler.
type CourtService interface {
	ListCourts(ctx context.Context) ([]model.Court, error)
	GetCourt(ctx context.Context, id string) (*model.Court, error)
	CreateCourt(ctx context.Context, req model.CreateCourtRequest) (*model.Court, error)
	UpdateCourt(ctx context.Context, id string, req model.UpdateCourtRequest) (*model.Court, error)
	DeleteCourt(ctx context.Context, id string) error
}

// CourtHandler serves /api/courts.
type CourtHandler struct {
	svc CourtService
	log *zap.Logger
}

func NewCourtHandler(svc CourtService, log *zap.Logger) *CourtHandler {
	return &CourtHandler{svc: svc, log: log}
}

// Routes mounts the court endpoints.
func (h *CourtHandler) Routes(r chi.Router) {
	r.Get("/", h.ListCourts)
	r.Post("/", h.CreateCourt)
	r.Get("/{id}", h.GetCourt)
	r.Put("/{id}", h.UpdateCourt)
	r.Delete("/{id}", h.DeleteCourt)
}

// ListCourts handles GET /api/courts
func (h *CourtHandler) ListCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := h.svc.ListCourts(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, emptyIfNil(courts))
}

// GetCourt handles GET /api/courts/{id}
func (h *CourtHandler) GetCourt(w http.ResponseWriter, r *http.Request) {
	court, err := h.svc.GetCourt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, court)
}

// CreateCourt handles POST /api/courts
func (h *CourtHandler) CreateCourt(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCourtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	court, err := h.svc.CreateCourt(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, court)
}

// UpdateCourt handles PUT /api/courts/{id}
func (h *CourtHandler) UpdateCourt(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateCourtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	court, err := h.svc.UpdateCourt(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, court)
}

// DeleteCourt handles DELETE /api/courts/{id}. The court is deactivated.
func (h *CourtHandler) DeleteCourt(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCourt(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeMessage(w, http.StatusOK, "Court deleted successfully")
}
