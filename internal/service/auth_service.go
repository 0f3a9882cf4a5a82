package service

import (
	"context"
	"strings"

	"github.com/Shivanand-hulikatti/court-booking/internal/model"
)

// TokenIssuer signs session tokens for synced users.
type TokenIssuer interface {
	Issue(u *model.User) (string, error)
}

// Session is a synced user together with a freshly issued token.
type Session struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// AuthService mirrors identity-provider users locally and issues tokens.
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
}

func NewAuthService(users UserStore, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// SyncUser upserts the user described by req and returns a token for it.
func (s *AuthService) SyncUser(ctx context.Context, req model.SyncUserRequest) (*Session, error) {
	req.ClerkID = strings.TrimSpace(req.ClerkID)
	req.Email = strings.TrimSpace(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}
	u, err := s.users.Upsert(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

// Profile returns the synced user for clerkID.
func (s *AuthService) Profile(ctx context.Context, clerkID string) (*model.User, error) {
	return s.users.GetByClerkID(ctx, clerkID)
}

// UpdateProfile changes the names of the user behind clerkID.
func (s *AuthService) UpdateProfile(ctx context.Context, clerkID string, req model.UpdateProfileRequest) (*model.User, error) {
	return s.users.UpdateProfile(ctx, clerkID, req)
}

// Refresh issues a new token for an already synced user.
func (s *AuthService) Refresh(ctx context.Context, clerkID string) (*Session, error) {
	u, err := s.users.GetByClerkID(ctx, clerkID)
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *AuthService) session(u *model.User) (*Session, error) {
	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: token}, nil
}
