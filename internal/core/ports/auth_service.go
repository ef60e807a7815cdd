package ports

import (
	"context"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

// PasswordHasher hashes and checks secrets with a slow, salted one-way hash.
type PasswordHasher interface {
	Hash(ctx context.Context, secret string) (string, error)
	// Verify reports whether secret matches digest. A mismatch is (false, nil);
	// a digest that cannot be parsed is a domain.CredentialFormatError.
	Verify(ctx context.Context, secret, digest string) (bool, error)
}

// TokenService issues and verifies signed identity tokens.
type TokenService interface {
	Issue(identity domain.Identity) (string, error)
	// Verify returns domain.ErrInvalidToken or domain.ErrExpiredToken on failure.
	Verify(token string) (domain.Identity, error)
}

type AuthService interface {
	Login(ctx context.Context, login, password string) (string, *domain.User, error)
}

type UserService interface {
	Create(ctx context.Context, in domain.NewUser) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}
