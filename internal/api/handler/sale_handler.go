package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kgl-groceries/produce-api/internal/api/metrics"
	"github.com/kgl-groceries/produce-api/internal/api/middleware"
	"github.com/kgl-groceries/produce-api/internal/core/domain"
	"github.com/kgl-groceries/produce-api/internal/core/ports"
	"github.com/kgl-groceries/produce-api/internal/core/validation"
)

type SaleHandler struct {
	service   ports.SaleService
	validator middleware.RecordValidator
}

// NewSaleHandler needs the validator because an update is checked against
// the schema of the stored sale's type, which the route cannot know.
func NewSaleHandler(service ports.SaleService, validator middleware.RecordValidator) *SaleHandler {
	return &SaleHandler{service: service, validator: validator}
}

// CreateCash records a cash sale.
//
// @Summary      Record a cash sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  envelope
// @Failure      400  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Router       /sales/cash [post]
func (h *SaleHandler) CreateCash(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	rec, err := ctxRecord(c)
	if err != nil {
		return err
	}

	sale, err := h.service.RecordCash(c.Request().Context(), identity, cashSaleFromRecord(rec))
	if err != nil {
		return err
	}
	metrics.RecordsWrittenTotal.WithLabelValues("cash_sale", "create").Inc()

	return c.JSON(http.StatusCreated, envelope{Message: "Cash sale recorded successfully", Data: sale})
}

// CreateCredit records a credit (deferred payment) sale.
//
// @Summary      Record a credit sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  envelope
// @Failure      400  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Router       /sales/credit [post]
func (h *SaleHandler) CreateCredit(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	rec, err := ctxRecord(c)
	if err != nil {
		return err
	}

	sale, err := h.service.RecordCredit(c.Request().Context(), identity, creditSaleFromRecord(rec))
	if err != nil {
		return err
	}
	metrics.RecordsWrittenTotal.WithLabelValues("credit_sale", "create").Inc()

	return c.JSON(http.StatusCreated, envelope{Message: "Credit sale recorded successfully", Data: sale})
}

// @Summary      List sales
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Router       /sales [get]
func (h *SaleHandler) List(c echo.Context) error {
	sales, err := h.service.List(c.Request().Context(), domain.SaleFilter{})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Message: "Sales retrieved successfully", Data: sales})
}

// ListByType returns the sales of one type.
//
// @Summary      List sales by type
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        type  path      string  true  "Sale type"  Enums(Cash, Credit)
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorBody
// @Router       /sales/type/{type} [get]
func (h *SaleHandler) ListByType(c echo.Context) error {
	saleType, err := domain.ParseSaleType(c.Param("type"))
	if err != nil {
		return &domain.ValidationError{Field: "type", Rule: "oneof", Message: "Sale type must be either Cash or Credit"}
	}

	sales, err := h.service.List(c.Request().Context(), domain.SaleFilter{Type: saleType})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Message: string(saleType) + " sales retrieved successfully", Data: sales})
}

// @Summary      Get a sale
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sale id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorBody
// @Router       /sales/{id} [get]
func (h *SaleHandler) Get(c echo.Context) error {
	sale, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Message: "Sale retrieved successfully", Data: sale})
}

// Update replaces a sale's fields. Malformed bodies and keys neither sale
// schema declares are rejected before the lookup; the remaining rules come
// from the cash or credit schema of the stored sale.
//
// @Summary      Update a sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sale id"
// @Success      200  {object}  envelope
// @Failure      400  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /sales/{id} [put]
func (h *SaleHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	raw, err := middleware.BindBody(c)
	if err != nil {
		return err
	}
	if err := middleware.CheckFields(h.validator, "sale", raw, validation.CashSale, validation.CreditSale); err != nil {
		return err
	}

	existing, err := h.service.Get(ctx, id)
	if err != nil {
		return err
	}

	kind, toSale, label := validation.CashSale, cashSaleFromRecord, "cash_sale"
	if existing.SaleType == domain.SaleCredit {
		kind, toSale, label = validation.CreditSale, creditSaleFromRecord, "credit_sale"
	}

	rec, err := middleware.ValidateRaw(h.validator, kind, raw)
	if err != nil {
		return err
	}

	sale, err := h.service.Update(ctx, id, toSale(rec))
	if err != nil {
		return err
	}
	metrics.RecordsWrittenTotal.WithLabelValues(label, "update").Inc()

	return c.JSON(http.StatusOK, envelope{Message: "Sale updated successfully", Data: sale})
}

// @Summary      Delete a sale
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sale id"
// @Success      200  {object}  envelope
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /sales/{id} [delete]
func (h *SaleHandler) Delete(c echo.Context) error {
	sale, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.RecordsWrittenTotal.WithLabelValues(saleKind(sale.SaleType), "delete").Inc()

	return c.JSON(http.StatusOK, envelope{Message: "Sale deleted successfully"})
}

func saleKind(t domain.SaleType) string {
	if t == domain.SaleCredit {
		return "credit_sale"
	}
	return "cash_sale"
}
