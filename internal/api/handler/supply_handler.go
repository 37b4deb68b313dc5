package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/service"
)

// SupplyHandler handles fertilizer and pesticide stock keeping. One handler
// serves both route groups; the kind is fixed at construction.
type SupplyHandler struct {
	service *service.SupplyService
	kind    domain.SupplyKind
}

func NewSupplyHandler(service *service.SupplyService, kind domain.SupplyKind) *SupplyHandler {
	return &SupplyHandler{service: service, kind: kind}
}

type createSupplyRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Type     string  `json:"type"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit"`
}

type adjustQuantityRequest struct {
	Quantity float64 `json:"quantity" validate:"gte=0"`
}

// Create handles POST for the stocked input kind.
//
// @Summary      Add a stocked input
// @Tags         supplies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSupplyRequest  true  "Item details"
// @Success      201   {object}  domain.SupplyItem
// @Failure      400   {object}  map[string]string
// @Router       /v1/fertilizers [post]
func (h *SupplyHandler) Create(c echo.Context) error {
	var req createSupplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.CreateItem(c.Request().Context(), &domain.SupplyItem{
		Kind:     h.kind,
		Name:     req.Name,
		Type:     req.Type,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Get returns one stocked item by id.
//
// @Summary      Get a stocked input
// @Tags         supplies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Item id"
// @Success      200  {object}  domain.SupplyItem
// @Failure      404  {object}  map[string]string
// @Router       /v1/fertilizers/{id} [get]
func (h *SupplyHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.service.GetItem(c.Request().Context(), h.kind, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// List returns all stocked items of the kind.
//
// @Summary      List stocked inputs
// @Tags         supplies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.SupplyItem
// @Router       /v1/fertilizers [get]
func (h *SupplyHandler) List(c echo.Context) error {
	items, err := h.service.ListItems(c.Request().Context(), h.kind)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// AdjustQuantity sets the stocked quantity.
//
// @Summary      Adjust stock quantity
// @Tags         supplies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Item id"
// @Param        body  body      adjustQuantityRequest  true  "New quantity"
// @Success      200   {object}  domain.SupplyItem
// @Failure      404   {object}  map[string]string
// @Router       /v1/fertilizers/{id} [put]
func (h *SupplyHandler) AdjustQuantity(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req adjustQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.AdjustQuantity(c.Request().Context(), h.kind, id, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Delete removes a stocked item.
//
// @Summary      Delete a stocked input
// @Tags         supplies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Item id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/fertilizers/{id} [delete]
func (h *SupplyHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteItem(c.Request().Context(), h.kind, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "item deleted"})
}
