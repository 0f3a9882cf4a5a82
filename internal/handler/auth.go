package handler

import (
	"context"
	"net/http"

	"github.com/Shivanand-hulikatti/court-booking/internal/model"
	"github.com/Shivanand-hulikatti/court-booking/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthService is the identity bridge used by AuthHandler.
type AuthService interface {
	SyncUser(ctx context.Context, req model.SyncUserRequest) (*service.Session, error)
	Profile(ctx context.Context, clerkID string) (*model.User, error)
	UpdateProfile(ctx context.Context, clerkID string, req model.UpdateProfileRequest) (*model.User, error)
	Refresh(ctx context.Context, clerkID string) (*service.Session, error)
}

// AuthHandler serves /api/auth.
type AuthHandler struct {
	svc    AuthService
	tokens TokenParser
	log    *zap.Logger
}

func NewAuthHandler(svc AuthService, tokens TokenParser, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, tokens: tokens, log: log}
}

// Routes mounts the auth endpoints. Only sync-user is public.
func (h *AuthHandler) Routes(r chi.Router) {
	r.Post("/sync-user", h.SyncUser)
	r.Group(func(r chi.Router) {
		r.Use(Authenticate(h.tokens))
		r.Get("/profile", h.Profile)
		r.Put("/profile", h.UpdateProfile)
		r.Post("/refresh", h.Refresh)
	})
}

// SyncUser handles POST /api/auth/sync-user
func (h *AuthHandler) SyncUser(w http.ResponseWriter, r *http.Request) {
	var req model.SyncUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	sess, err := h.svc.SyncUser(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, sess)
}

// Profile handles GET /api/auth/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Profile(r.Context(), clerkID(r))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, u)
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	u, err := h.svc.UpdateProfile(r.Context(), clerkID(r), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, u)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Refresh(r.Context(), clerkID(r))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeData(w, http.StatusOK, sess)
}
