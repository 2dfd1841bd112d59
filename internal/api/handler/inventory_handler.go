package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

type InventoryHandler struct {
	inventory ports.InventoryService
}

func NewInventoryHandler(inventory ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

type addInventoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	SKU         string `json:"sku,omitempty"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
	Location    string `json:"location,omitempty"`
}

type updateInventoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	Location    *string `json:"location,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type inventoryResponse struct {
	envelope
	Item *domain.InventoryItem `json:"item"`
}

type inventoryListResponse struct {
	envelope
	Items      []*domain.InventoryItem `json:"items"`
	Pagination ports.PageResult        `json:"pagination"`
	Summary    ports.InventorySummary  `json:"summary"`
}

// Add creates a stock line for the authenticated company.
//
// @Summary      Add inventory item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body      addInventoryRequest  true  "Item details"
// @Success      201   {object}  inventoryResponse
// @Failure      409   {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/inventory [post]
func (h *InventoryHandler) Add(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req addInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.inventory.Add(c.Request().Context(), actor, ports.AddInventoryInput{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Quantity:    req.Quantity,
		Location:    req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, inventoryResponse{envelope: okMsg("item added"), Item: item})
}

// List returns one page of the company's items plus a whole-inventory summary.
//
// @Summary      List inventory
// @Tags         inventory
// @Produce      json
// @Param        location  query     string  false  "Filter by location"
// @Param        status    query     string  false  "Filter by status"
// @Param        limit     query     int     false  "Page size (default 50)"
// @Param        offset    query     int     false  "Page offset"
// @Success      200       {object}  inventoryListResponse
// @Security     BearerAuth
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	items, page, summary, err := h.inventory.List(c.Request().Context(), actor, ports.ListInventoryInput{
		Location: c.QueryParam("location"),
		Status:   c.QueryParam("status"),
		Page:     queryPage(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inventoryListResponse{envelope: ok(), Items: items, Pagination: page, Summary: summary})
}

// Get returns one item.
//
// @Summary      Get inventory item
// @Tags         inventory
// @Produce      json
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  inventoryResponse
// @Failure      404  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	item, err := h.inventory.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inventoryResponse{envelope: ok(), Item: item})
}

// Update edits an item.
//
// @Summary      Update inventory item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Item id"
// @Param        body  body      updateInventoryRequest  true  "Fields to update"
// @Success      200   {object}  inventoryResponse
// @Failure      404   {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.UpdateInventoryInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Location:    req.Location,
	}
	if req.Status != nil {
		status := domain.InventoryStatus(*req.Status)
		input.Status = &status
	}

	item, err := h.inventory.Update(c.Request().Context(), actor, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inventoryResponse{envelope: okMsg("item updated"), Item: item})
}

// Remove soft-deletes an item.
//
// @Summary      Remove inventory item
// @Tags         inventory
// @Produce      json
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Remove(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.inventory.Remove(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okMsg("item removed"))
}
