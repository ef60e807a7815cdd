package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

const (
	// TokenTTL is the fixed lifetime of an issued token.
	TokenTTL = 24 * time.Hour

	// DefaultSigningSecret is used when no secret is configured. It is public
	// knowledge, so any deployment relying on it accepts forged tokens; it
	// exists so the service runs without configuration in development.
	DefaultSigningSecret = "default-secret"
)

var ErrSigningSecretRequired = errors.New("token: signing secret required")

// TokenConfig is the read-only configuration of a TokenService.
type TokenConfig struct {
	Secret string
	// AllowDefaultSecret permits falling back to DefaultSigningSecret when
	// Secret is empty. When false an empty Secret is a construction error.
	AllowDefaultSecret bool
	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// JWTService issues and verifies HS256 identity tokens.
type JWTService struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

type identityClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTService builds a token service from cfg. It logs a warning when the
// insecure default secret is in effect.
func NewJWTService(cfg TokenConfig, log zerolog.Logger) (*JWTService, error) {
	secret := cfg.Secret
	if secret == "" {
		if !cfg.AllowDefaultSecret {
			return nil, ErrSigningSecretRequired
		}
		log.Warn().Msg("JWT_SECRET not set, signing tokens with the insecure default secret")
		secret = DefaultSigningSecret
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &JWTService{
		secret: []byte(secret),
		now:    now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithStrictDecoding(),
			jwt.WithTimeFunc(now),
		),
	}, nil
}

// Issue signs a token for identity that expires TokenTTL from now.
func (s *JWTService) Issue(identity domain.Identity) (string, error) {
	if !identity.Role.Valid() {
		return "", fmt.Errorf("issue token: invalid role %v", identity.Role)
	}

	issuedAt := s.now()
	claims := identityClaims{
		ID:       identity.ID,
		Username: identity.Username,
		Role:     identity.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature first and only then the expiry; jwt/v5 never
// evaluates claims of a token whose signature failed.
func (s *JWTService) Verify(token string) (domain.Identity, error) {
	var claims identityClaims
	_, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrExpiredToken
		}
		return domain.Identity{}, domain.ErrInvalidToken
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil || claims.ID == "" {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{ID: claims.ID, Username: claims.Username, Role: role}, nil
}
