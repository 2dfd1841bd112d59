package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

type CustomerHandler struct {
	customers ports.CustomerService
}

func NewCustomerHandler(customers ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

type updateCustomerRequest struct {
	FirstName   *string          `json:"firstName,omitempty"`
	LastName    *string          `json:"lastName,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	CompanyName *string          `json:"companyName,omitempty"`
	Profile     *domain.Profile  `json:"profile,omitempty"`
	Settings    *domain.Settings `json:"settings,omitempty"`
}

type customerResponse struct {
	envelope
	User *domain.User `json:"user"`
}

type customerInfoResponse struct {
	envelope
	*ports.CustomerInfo
}

// Get returns a customer profile.
//
// @Summary      Get customer profile
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  customerResponse
// @Failure      404  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	user, err := h.customers.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customerResponse{envelope: ok(), User: user})
}

// Update edits a customer profile.
//
// @Summary      Update customer profile
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Customer id"
// @Param        body  body      updateCustomerRequest  true  "Fields to update"
// @Success      200   {object}  customerResponse
// @Failure      404   {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	var req updateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.customers.Update(c.Request().Context(), c.Param("id"), ports.UpdateCustomerInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
		Profile:     req.Profile,
		Settings:    req.Settings,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customerResponse{envelope: okMsg("profile updated"), User: user})
}

// Info returns the profile plus account metrics and recent activity.
//
// @Summary      Get customer dashboard info
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  customerInfoResponse
// @Failure      404  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/customers/{id}/info [get]
func (h *CustomerHandler) Info(c echo.Context) error {
	info, err := h.customers.Info(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customerInfoResponse{envelope: ok(), CustomerInfo: info})
}

// Deactivate soft-deletes the account.
//
// @Summary      Deactivate customer account
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Deactivate(c echo.Context) error {
	if err := h.customers.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okMsg("account deactivated"))
}
