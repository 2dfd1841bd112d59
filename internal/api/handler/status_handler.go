package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

type StatusHandler struct {
	status ports.StatusService
}

func NewStatusHandler(status ports.StatusService) *StatusHandler {
	return &StatusHandler{status: status}
}

type advanceRequest struct {
	Status   string `json:"status" validate:"required"`
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type advanceResponse struct {
	envelope
	Shipment *domain.Shipment     `json:"shipment"`
	Update   *domain.StatusUpdate `json:"update"`
}

type progressResponse struct {
	envelope
	Progress *ports.StatusView `json:"progress"`
}

type statusLogResponse struct {
	envelope
	Updates    []*domain.StatusUpdate `json:"updates"`
	Pagination ports.PageResult       `json:"pagination"`
}

// Advance applies one status transition to a shipment.
//
// @Summary      Advance shipment status
// @Tags         status
// @Accept       json
// @Produce      json
// @Param        shipmentId  path      string          true  "Shipment id"
// @Param        body        body      advanceRequest  true  "New status"
// @Success      200         {object}  advanceResponse
// @Failure      400         {object}  map[string]interface{}
// @Failure      422         {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/status/{shipmentId} [put]
func (h *StatusHandler) Advance(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req advanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shipment, update, err := h.status.Advance(c.Request().Context(), actor, c.Param("shipmentId"), ports.AdvanceInput{
		Status:   domain.ShipmentStatus(req.Status),
		Location: req.Location,
		Notes:    req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, advanceResponse{envelope: okMsg("status updated"), Shipment: shipment, Update: update})
}

// Progress returns the tracking-progress view of one shipment.
//
// @Summary      Get shipment progress
// @Tags         status
// @Produce      json
// @Param        shipmentId  path      string  true  "Shipment id"
// @Success      200         {object}  progressResponse
// @Failure      404         {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/status/{shipmentId}/progress [get]
func (h *StatusHandler) Progress(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	progress, err := h.status.Progress(c.Request().Context(), actor, c.Param("shipmentId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, progressResponse{envelope: ok(), Progress: progress})
}

// ByCustomer lists a customer's status updates, newest first.
//
// @Summary      List status updates for a customer
// @Tags         status
// @Produce      json
// @Param        customerId  path      string  true   "Customer id"
// @Param        limit       query     int     false  "Page size (default 50)"
// @Param        offset      query     int     false  "Page offset"
// @Success      200         {object}  statusLogResponse
// @Security     BearerAuth
// @Router       /api/status/customer/{customerId} [get]
func (h *StatusHandler) ByCustomer(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	updates, page, err := h.status.ListByCustomer(c.Request().Context(), actor, c.Param("customerId"), queryPage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusLogResponse{envelope: ok(), Updates: updates, Pagination: page})
}
