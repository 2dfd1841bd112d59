package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dnexpress/logistics-api/internal/core/ports"
)

type SethwanHandler struct {
	sethwan ports.SethwanService
}

func NewSethwanHandler(sethwan ports.SethwanService) *SethwanHandler {
	return &SethwanHandler{sethwan: sethwan}
}

type sethwanCredentialsRequest struct {
	APIKey    string `json:"apiKey" validate:"required"`
	AccountID string `json:"accountId" validate:"required"`
}

type sethwanWarehouseRequest struct {
	WarehouseID string `json:"warehouseId" validate:"required"`
}

type sethwanValidationResponse struct {
	envelope
	Validation *ports.SethwanValidation `json:"validation"`
}

type sethwanStatusResponse struct {
	envelope
	Status *ports.SethwanStatus `json:"status"`
}

type sethwanWarehousesResponse struct {
	envelope
	Warehouses []ports.SethwanWarehouse `json:"warehouses"`
}

// Test checks credentials against Sethwan without storing them.
//
// @Summary      Test Sethwan credentials
// @Tags         sethwan
// @Accept       json
// @Produce      json
// @Param        body  body      sethwanCredentialsRequest  true  "Credentials"
// @Success      200   {object}  sethwanValidationResponse
// @Security     BearerAuth
// @Router       /api/sethwan/test [post]
func (h *SethwanHandler) Test(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req sethwanCredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	validation, err := h.sethwan.TestConnection(c.Request().Context(), actor, ports.SethwanCredentials{
		APIKey:    req.APIKey,
		AccountID: req.AccountID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sethwanValidationResponse{envelope: ok(), Validation: validation})
}

// Connect validates credentials and stores the integration on the account.
//
// @Summary      Connect Sethwan integration
// @Tags         sethwan
// @Accept       json
// @Produce      json
// @Param        body  body      sethwanCredentialsRequest  true  "Credentials"
// @Success      200   {object}  sethwanValidationResponse
// @Security     BearerAuth
// @Router       /api/sethwan/connect [post]
func (h *SethwanHandler) Connect(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req sethwanCredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	validation, err := h.sethwan.Connect(c.Request().Context(), actor, ports.SethwanCredentials{
		APIKey:    req.APIKey,
		AccountID: req.AccountID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sethwanValidationResponse{envelope: ok(), Validation: validation})
}

// Status reports the account's integration state.
//
// @Summary      Sethwan integration status
// @Tags         sethwan
// @Produce      json
// @Success      200  {object}  sethwanStatusResponse
// @Security     BearerAuth
// @Router       /api/sethwan/status [get]
func (h *SethwanHandler) Status(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	status, err := h.sethwan.Status(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sethwanStatusResponse{envelope: ok(), Status: status})
}

// Warehouses lists warehouses available to the linked account.
//
// @Summary      List Sethwan warehouses
// @Tags         sethwan
// @Produce      json
// @Success      200  {object}  sethwanWarehousesResponse
// @Failure      422  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/sethwan/warehouses [get]
func (h *SethwanHandler) Warehouses(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	result, err := h.sethwan.Warehouses(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	if !result.Success {
		return c.JSON(http.StatusBadGateway, errorEnvelope(result.Error))
	}
	return c.JSON(http.StatusOK, sethwanWarehousesResponse{envelope: ok(), Warehouses: result.Warehouses})
}

// SetDefaultWarehouse stores the default warehouse for outbound submissions.
//
// @Summary      Set default Sethwan warehouse
// @Tags         sethwan
// @Accept       json
// @Produce      json
// @Param        body  body      sethwanWarehouseRequest  true  "Warehouse"
// @Success      200   {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/sethwan/warehouse [put]
func (h *SethwanHandler) SetDefaultWarehouse(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req sethwanWarehouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sethwan.SetDefaultWarehouse(c.Request().Context(), actor, req.WarehouseID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okMsg("default warehouse updated"))
}

// Disconnect drops the stored integration.
//
// @Summary      Disconnect Sethwan integration
// @Tags         sethwan
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/sethwan/disconnect [delete]
func (h *SethwanHandler) Disconnect(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.sethwan.Disconnect(c.Request().Context(), actor); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okMsg("integration disconnected"))
}

func errorEnvelope(message string) envelope {
	return envelope{Success: false, Message: message}
}
