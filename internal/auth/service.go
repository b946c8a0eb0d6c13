package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-crm/meridian-crm/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo     Repository
	sessions *shared.SessionManager
}

// NewService constructs a new Service.
func NewService(repo Repository, sessions *shared.SessionManager) *Service {
	return &Service{repo: repo, sessions: sessions}
}

// Login validates phone/PIN credentials and mints a bearer token session.
func (s *Service) Login(ctx context.Context, phone, pin string) (*shared.Session, error) {
	user, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(pin)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return s.sessions.Create(ctx, user.ID, user.Name, user.Roles)
}

// Logout revokes the bearer token behind the session.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// Me returns the current account for an authenticated session.
func (s *Service) Me(ctx context.Context, sess *shared.Session) (*User, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	return s.repo.FindByID(ctx, sess.UserID)
}
