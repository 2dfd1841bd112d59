package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

type ShipmentHandler struct {
	shipments ports.ShipmentService
}

func NewShipmentHandler(shipments ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipments: shipments}
}

type addressRequest struct {
	Address      string `json:"address" validate:"required"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zipCode,omitempty"`
	Country      string `json:"country" validate:"required"`
	ContactName  string `json:"contactName,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
}

type packageRequest struct {
	Weight      float64  `json:"weight" validate:"gt=0"`
	Length      float64  `json:"length" validate:"gte=0"`
	Width       float64  `json:"width" validate:"gte=0"`
	Height      float64  `json:"height" validate:"gte=0"`
	Description string   `json:"description,omitempty"`
	Contents    []string `json:"contents,omitempty"`
}

type createShipmentRequest struct {
	Origin      addressRequest  `json:"origin" validate:"required"`
	Destination addressRequest  `json:"destination" validate:"required"`
	Package     packageRequest  `json:"package" validate:"required"`
	Service     string          `json:"service" validate:"required,oneof=standard express overnight"`
	Rate        decimal.Decimal `json:"rate"`
	Notes       string          `json:"notes,omitempty"`
}

type updateShipmentRequest struct {
	Notes   *string `json:"notes,omitempty"`
	Service *string `json:"service,omitempty"`
}

type shipmentResponse struct {
	envelope
	Shipment *domain.Shipment `json:"shipment"`
}

type shipmentListResponse struct {
	envelope
	Shipments  []*domain.Shipment `json:"shipments"`
	Pagination ports.PageResult   `json:"pagination"`
}

type trackingResponse struct {
	envelope
	Tracking *ports.TrackingView `json:"tracking"`
}

// Create books a new shipment for the authenticated customer.
//
// @Summary      Create shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        body  body      createShipmentRequest  true  "Shipment details"
// @Success      201   {object}  shipmentResponse
// @Failure      400   {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shipment, err := h.shipments.Create(c.Request().Context(), actor, ports.CreateShipmentInput{
		Origin:      toAddressInput(req.Origin),
		Destination: toAddressInput(req.Destination),
		Package: ports.PackageInput{
			Weight:      req.Package.Weight,
			Length:      req.Package.Length,
			Width:       req.Package.Width,
			Height:      req.Package.Height,
			Description: req.Package.Description,
			Contents:    req.Package.Contents,
		},
		Service: domain.ServiceLevel(req.Service),
		Rate:    req.Rate,
		Notes:   req.Notes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, shipmentResponse{envelope: okMsg("shipment created"), Shipment: shipment})
}

// List returns the authenticated company's shipments.
//
// @Summary      List shipments
// @Tags         shipments
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Param        limit   query     int     false  "Page size (default 50)"
// @Param        offset  query     int     false  "Page offset"
// @Success      200     {object}  shipmentListResponse
// @Security     BearerAuth
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	shipments, page, err := h.shipments.List(c.Request().Context(), actor, ports.ListShipmentsInput{
		Status: c.QueryParam("status"),
		Page:   queryPage(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shipmentListResponse{envelope: ok(), Shipments: shipments, Pagination: page})
}

// Get returns one shipment.
//
// @Summary      Get shipment
// @Tags         shipments
// @Produce      json
// @Param        id   path      string  true  "Shipment id"
// @Success      200  {object}  shipmentResponse
// @Failure      404  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	shipment, err := h.shipments.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shipmentResponse{envelope: ok(), Shipment: shipment})
}

// Update edits a pending shipment.
//
// @Summary      Update shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Shipment id"
// @Param        body  body      updateShipmentRequest  true  "Fields to update"
// @Success      200   {object}  shipmentResponse
// @Failure      422   {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/shipments/{id} [put]
func (h *ShipmentHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.UpdateShipmentInput{Notes: req.Notes}
	if req.Service != nil {
		service := domain.ServiceLevel(*req.Service)
		input.Service = &service
	}

	shipment, err := h.shipments.Update(c.Request().Context(), actor, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shipmentResponse{envelope: okMsg("shipment updated"), Shipment: shipment})
}

// Track serves the public tracking page.
//
// @Summary      Track shipment (public)
// @Tags         shipments
// @Produce      json
// @Param        trackingNumber  path      string  true  "Tracking number"
// @Success      200             {object}  trackingResponse
// @Failure      404             {object}  map[string]interface{}
// @Router       /api/shipments/track/{trackingNumber} [get]
func (h *ShipmentHandler) Track(c echo.Context) error {
	tracking, err := h.shipments.Track(c.Request().Context(), c.Param("trackingNumber"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trackingResponse{envelope: ok(), Tracking: tracking})
}

func toAddressInput(req addressRequest) ports.AddressInput {
	return ports.AddressInput{
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
	}
}
