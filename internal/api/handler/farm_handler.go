package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
	"github.com/agrovia/farm-system/internal/core/service"
)

// CropHandler handles HTTP requests for crop tracking.
type CropHandler struct {
	service *service.CropService
}

func NewCropHandler(service *service.CropService) *CropHandler {
	return &CropHandler{service: service}
}

type createCropRequest struct {
	Name            string     `json:"c_name"  validate:"required"`
	Variety         string     `json:"variety"`
	FieldID         *int64     `json:"field_id"`
	PlantedDate     *time.Time `json:"planted_date"`
	ExpectedHarvest *time.Time `json:"exp_harvest"`
}

type updateCropRequest struct {
	Name            *string    `json:"c_name"`
	Variety         *string    `json:"variety"`
	FieldID         *int64     `json:"field_id"`
	PlantedDate     *time.Time `json:"planted_date"`
	ExpectedHarvest *time.Time `json:"exp_harvest"`
	IsHarvested     *bool      `json:"is_harvested"`
}

// Create handles POST /v1/crops.
//
// @Summary      Create a crop
// @Tags         crops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCropRequest  true  "Crop details"
// @Success      201   {object}  domain.Crop
// @Failure      400   {object}  map[string]string
// @Router       /v1/crops [post]
func (h *CropHandler) Create(c echo.Context) error {
	var req createCropRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	crop, err := h.service.CreateCrop(c.Request().Context(), &domain.Crop{
		Name:            req.Name,
		Variety:         req.Variety,
		FieldID:         req.FieldID,
		PlantedDate:     req.PlantedDate,
		ExpectedHarvest: req.ExpectedHarvest,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, crop)
}

// Get returns one crop by id.
//
// @Summary      Get a crop
// @Tags         crops
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Crop id"
// @Success      200  {object}  domain.Crop
// @Failure      404  {object}  map[string]string
// @Router       /v1/crops/{id} [get]
func (h *CropHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	crop, err := h.service.GetCrop(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, crop)
}

// List returns all crops, newest first.
//
// @Summary      List crops
// @Tags         crops
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Crop
// @Router       /v1/crops [get]
func (h *CropHandler) List(c echo.Context) error {
	crops, err := h.service.ListCrops(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, crops)
}

// Update applies a partial update to a crop.
//
// @Summary      Update a crop
// @Tags         crops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Crop id"
// @Param        body  body      updateCropRequest  true  "Fields to update"
// @Success      200   {object}  domain.Crop
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/crops/{id} [put]
func (h *CropHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateCropRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	crop, err := h.service.UpdateCrop(c.Request().Context(), id, ports.CropPatch{
		Name:            req.Name,
		Variety:         req.Variety,
		FieldID:         req.FieldID,
		PlantedDate:     req.PlantedDate,
		ExpectedHarvest: req.ExpectedHarvest,
		IsHarvested:     req.IsHarvested,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, crop)
}

// Delete removes a crop.
//
// @Summary      Delete a crop
// @Tags         crops
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Crop id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/crops/{id} [delete]
func (h *CropHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteCrop(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "crop deleted"})
}

// Stats summarises the crop table for the dashboard.
//
// @Summary      Crop statistics
// @Tags         crops
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.CropStats
// @Router       /v1/crops/stats [get]
func (h *CropHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// FieldHandler handles HTTP requests for field management.
type FieldHandler struct {
	service *service.FieldService
}

func NewFieldHandler(service *service.FieldService) *FieldHandler {
	return &FieldHandler{service: service}
}

type createFieldRequest struct {
	Name         string  `json:"f_name" validate:"required"`
	Location     string  `json:"location"`
	SizeHectares float64 `json:"size_hectares" validate:"omitempty,gt=0"`
}

type updateFieldRequest struct {
	Name         *string  `json:"f_name"`
	Location     *string  `json:"location"`
	SizeHectares *float64 `json:"size_hectares" validate:"omitempty,gt=0"`
}

// Create handles POST /v1/fields.
//
// @Summary      Create a field
// @Tags         fields
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createFieldRequest  true  "Field details"
// @Success      201   {object}  domain.Field
// @Failure      400   {object}  map[string]string
// @Router       /v1/fields [post]
func (h *FieldHandler) Create(c echo.Context) error {
	var req createFieldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	field, err := h.service.CreateField(c.Request().Context(), &domain.Field{
		Name:         req.Name,
		Location:     req.Location,
		SizeHectares: req.SizeHectares,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, field)
}

// Get returns one field by id.
//
// @Summary      Get a field
// @Tags         fields
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Field id"
// @Success      200  {object}  domain.Field
// @Failure      404  {object}  map[string]string
// @Router       /v1/fields/{id} [get]
func (h *FieldHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	field, err := h.service.GetField(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, field)
}

// List returns all fields.
//
// @Summary      List fields
// @Tags         fields
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Field
// @Router       /v1/fields [get]
func (h *FieldHandler) List(c echo.Context) error {
	fields, err := h.service.ListFields(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fields)
}

// Update applies a partial update to a field.
//
// @Summary      Update a field
// @Tags         fields
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Field id"
// @Param        body  body      updateFieldRequest  true  "Fields to update"
// @Success      200   {object}  domain.Field
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/fields/{id} [put]
func (h *FieldHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateFieldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	field, err := h.service.UpdateField(c.Request().Context(), id, ports.FieldPatch{
		Name:         req.Name,
		Location:     req.Location,
		SizeHectares: req.SizeHectares,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, field)
}

// Delete removes a field.
//
// @Summary      Delete a field
// @Tags         fields
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Field id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/fields/{id} [delete]
func (h *FieldHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteField(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "field deleted"})
}
