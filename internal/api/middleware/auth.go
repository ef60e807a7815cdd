package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kgl-groceries/produce-api/internal/api/metrics"
	"github.com/kgl-groceries/produce-api/internal/core/domain"
	"github.com/kgl-groceries/produce-api/internal/core/ports"
)

const (
	identityKey = "identity"
	recordKey   = "record"
)

// Auth verifies the bearer token and stores the caller's domain.Identity on
// the context. A request without a bearer token fails with
// domain.ErrMissingToken; any token that does not verify fails with
// domain.ErrInvalidOrExpiredToken.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrMissingToken
			}

			identity, err := tokens.Verify(raw)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, domain.ErrExpiredToken) {
					reason = "expired_token"
				}
				metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
				return domain.ErrInvalidOrExpiredToken
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// IdentityFrom returns the identity stored by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}
