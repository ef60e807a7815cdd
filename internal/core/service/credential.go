package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

// DefaultBcryptCost matches the work factor accounts were historically hashed with.
const DefaultBcryptCost = 10

var errEmptySecret = errors.New("secret must not be empty")

// BcryptHasher implements ports.PasswordHasher with bcrypt. The salt is
// generated per call, so equal secrets never share a digest.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher for the given work factor. Values outside
// bcrypt's accepted range fall back to DefaultBcryptCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the configured work factor.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

func (h *BcryptHasher) Hash(_ context.Context, secret string) (string, error) {
	if secret == "" {
		return "", errEmptySecret
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(_ context.Context, secret, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, &domain.CredentialFormatError{Err: err}
	}
}
