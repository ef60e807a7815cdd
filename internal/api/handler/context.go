package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/kgl-groceries/produce-api/internal/api/middleware"
	"github.com/kgl-groceries/produce-api/internal/core/domain"
	"github.com/kgl-groceries/produce-api/internal/core/validation"
)

// ctxIdentity returns the identity attached by the Auth middleware. Its
// absence means the route was wired without Auth.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, domain.ErrMissingToken
	}
	return id, nil
}

// ctxRecord returns the payload validated by the Validate middleware.
func ctxRecord(c echo.Context) (validation.Record, error) {
	rec, ok := middleware.RecordFrom(c)
	if !ok {
		return nil, fmt.Errorf("route %s %s has no validated payload", c.Request().Method, c.Path())
	}
	return rec, nil
}

// envelope is the success body of every resource route.
type envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
