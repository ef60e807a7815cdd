package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kgl-groceries/produce-api/internal/api/metrics"
	"github.com/kgl-groceries/produce-api/internal/core/ports"
)

type ProcurementHandler struct {
	service ports.ProcurementService
}

func NewProcurementHandler(service ports.ProcurementService) *ProcurementHandler {
	return &ProcurementHandler{service: service}
}

// Create records a procurement on behalf of the calling manager.
//
// @Summary      Record a procurement
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  envelope
// @Failure      400  {object}  errorBody
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Router       /procurement [post]
func (h *ProcurementHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	rec, err := ctxRecord(c)
	if err != nil {
		return err
	}

	p, err := h.service.Record(c.Request().Context(), identity, procurementFromRecord(rec))
	if err != nil {
		return err
	}
	metrics.RecordsWrittenTotal.WithLabelValues("procurement", "create").Inc()

	return c.JSON(http.StatusCreated, envelope{Message: "Procurement recorded successfully", Data: p})
}

// List returns every procurement, newest first.
//
// @Summary      List procurements
// @Tags         procurement
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  errorBody
// @Router       /procurement [get]
func (h *ProcurementHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Message: "Procurements retrieved successfully", Data: items})
}

// @Summary      Get a procurement
// @Tags         procurement
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Procurement id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorBody
// @Router       /procurement/{id} [get]
func (h *ProcurementHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Message: "Procurement retrieved successfully", Data: p})
}

// @Summary      Update a procurement
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Procurement id"
// @Success      200  {object}  envelope
// @Failure      400  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /procurement/{id} [put]
func (h *ProcurementHandler) Update(c echo.Context) error {
	rec, err := ctxRecord(c)
	if err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), c.Param("id"), procurementFromRecord(rec))
	if err != nil {
		return err
	}
	metrics.RecordsWrittenTotal.WithLabelValues("procurement", "update").Inc()

	return c.JSON(http.StatusOK, envelope{Message: "Procurement updated successfully", Data: p})
}

// @Summary      Delete a procurement
// @Tags         procurement
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Procurement id"
// @Success      200  {object}  envelope
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /procurement/{id} [delete]
func (h *ProcurementHandler) Delete(c echo.Context) error {
	if _, err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.RecordsWrittenTotal.WithLabelValues("procurement", "delete").Inc()

	return c.JSON(http.StatusOK, envelope{Message: "Procurement deleted successfully"})
}
