package auth

import (
	"context"
	"time"

	"github.com/lexgate/lexgate/internal/directory"
	"github.com/lexgate/lexgate/internal/platform/httpx"
)

// Service wraps authentication business rules: credential checks, session
// lifecycle, and token issuance.
type Service struct {
	directory directory.Directory
	tokens    *TokenService
	sessions  SessionStore
}

// NewService constructs a new Service.
func NewService(dir directory.Directory, tokens *TokenService, sessions SessionStore) *Service {
	return &Service{directory: dir, tokens: tokens, sessions: sessions}
}

// Authenticate validates email/password credentials. Unknown accounts and
// wrong passwords collapse into the same error so callers cannot tell them
// apart.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*directory.User, error) {
	user, err := s.directory.FindByEmail(ctx, email)
	if err != nil {
		return nil, httpx.ErrInvalidCredentials
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, httpx.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates the credentials, opens a session, and issues a token.
func (s *Service) Login(ctx context.Context, email, password string, now time.Time) (string, *directory.User, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	if err := s.sessions.Open(ctx, user.ID, user.Email, now); err != nil {
		return "", nil, err
	}
	token, err := s.tokens.Issue(user, now)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout closes the user's session, invalidating every outstanding token
// for that user even though their signatures remain valid until expiry.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.sessions.Close(ctx, userID)
}
