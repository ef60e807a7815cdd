package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kgl-groceries/produce-api/internal/api/metrics"
	"github.com/kgl-groceries/produce-api/internal/core/ports"
)

// UserHandler serves account management. Write routes are restricted to
// managers by the router.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create registers a new account.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  envelope
// @Failure      400  {object}  errorBody
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	rec, err := ctxRecord(c)
	if err != nil {
		return err
	}

	user, err := h.service.Create(c.Request().Context(), newUserFromRecord(rec))
	if err != nil {
		return err
	}
	metrics.RecordsWrittenTotal.WithLabelValues("user", "create").Inc()

	return c.JSON(http.StatusCreated, envelope{Message: "User created successfully", Data: user})
}

// List returns every account.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  errorBody
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Message: "Users retrieved successfully", Data: users})
}

// Get returns one account.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorBody
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Message: "User retrieved successfully", Data: user})
}

// Update applies a partial update to an account.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      400  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	rec, err := ctxRecord(c)
	if err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), userUpdateFromRecord(rec))
	if err != nil {
		return err
	}
	metrics.RecordsWrittenTotal.WithLabelValues("user", "update").Inc()

	return c.JSON(http.StatusOK, envelope{Message: "User updated successfully", Data: user})
}

// Delete removes an account.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if _, err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.RecordsWrittenTotal.WithLabelValues("user", "delete").Inc()

	return c.JSON(http.StatusOK, envelope{Message: "User deleted successfully"})
}
