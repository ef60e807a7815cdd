package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/kgl-groceries/produce-api/internal/api/metrics"
	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

// RequireRole admits only identities whose role is in allowed. It must run
// after Auth; a request with no identity is treated as unauthenticated.
func RequireRole(allowed ...domain.Role) echo.MiddlewareFunc {
	policy := append([]domain.Role(nil), allowed...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return domain.ErrMissingToken
			}
			for _, r := range policy {
				if identity.Role == r {
					return next(c)
				}
			}
			metrics.AuthRejectionsTotal.WithLabelValues("role").Inc()
			return &domain.RoleNotPermittedError{Allowed: policy}
		}
	}
}
