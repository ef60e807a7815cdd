package service

import (
	"context"
	"errors"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

// EnsureUser creates in unless an account with the same username or email
// already exists. It reports whether an account was created.
//
// User creation is manager-only, so a fresh deployment needs one manager
// created this way before anyone can log in.
func (s *UserService) EnsureUser(ctx context.Context, in domain.NewUser) (bool, error) {
	_, err := s.Create(ctx, in)
	if errors.Is(err, domain.ErrDuplicateIdentity) {
		s.log.Debug().Str("username", in.Username).Msg("seed user already present")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
