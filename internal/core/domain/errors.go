package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingToken is returned when a request carries no bearer token.
	ErrMissingToken = errors.New("access token required")
	// ErrInvalidOrExpiredToken is the single error the transport reports for
	// any token that fails verification.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")

	// ErrInvalidCredentials covers both unknown accounts and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateIdentity is returned when a username or email is taken.
	ErrDuplicateIdentity = errors.New("user already exists")
	ErrNotFound          = errors.New("not found")
	ErrRateLimited       = errors.New("too many requests")
)

// RoleNotPermittedError is returned by the role gate. Allowed is the only
// policy detail it exposes.
type RoleNotPermittedError struct {
	Allowed []Role
}

func (e *RoleNotPermittedError) Error() string {
	return "Access denied. Required role: " + JoinRoles(e.Allowed)
}

// ValidationError reports the first rule an input violated.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError names the record kind that was looked up.
type NotFoundError struct {
	Kind string
}

func (e *NotFoundError) Error() string {
	return e.Kind + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound returns a NotFoundError for kind.
func NotFound(kind string) error {
	return &NotFoundError{Kind: kind}
}

// CredentialFormatError signals a stored digest that cannot be checked at all,
// as opposed to one that simply does not match.
type CredentialFormatError struct {
	Err error
}

func (e *CredentialFormatError) Error() string {
	return fmt.Sprintf("credential format: %v", e.Err)
}

func (e *CredentialFormatError) Unwrap() error {
	return e.Err
}
