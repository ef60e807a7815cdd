package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
	"github.com/kgl-groceries/produce-api/internal/core/ports"
)

// AuthService implements login.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	log    zerolog.Logger

	dummyMu     sync.Mutex
	dummyDigest string
}

const dummySecret = "kgl-dummy-credential"

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Login authenticates login (a username or an email) and issues a token.
// An unknown account and a wrong password both return
// domain.ErrInvalidCredentials, and both pay for one bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, *domain.User, error) {
	if login == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByLogin(ctx, login)
	if errors.Is(err, domain.ErrNotFound) {
		s.compareDummy(ctx, password)
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		var formatErr *domain.CredentialFormatError
		if errors.As(err, &formatErr) {
			s.log.Error().Err(err).Str("user_id", user.ID).Msg("stored password digest is unreadable")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if !ok {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role.String()).Msg("user logged in")
	return token, user, nil
}

func (s *AuthService) compareDummy(ctx context.Context, password string) {
	if digest := s.dummy(ctx); digest != "" {
		_, _ = s.hasher.Verify(ctx, password, digest)
	}
}

// dummy returns the digest compared against for unknown accounts, building it
// on first use. A failed build is retried by the next caller, and the build
// is detached from the caller's cancellation.
func (s *AuthService) dummy(ctx context.Context) string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyDigest == "" {
		digest, err := s.hasher.Hash(context.WithoutCancel(ctx), dummySecret)
		if err != nil {
			s.log.Warn().Err(err).Msg("could not prepare dummy digest")
			return ""
		}
		s.dummyDigest = digest
	}
	return s.dummyDigest
}
