package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

type userStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

type dashboardResponse struct {
	envelope
	Dashboard *ports.AdminDashboard `json:"dashboard"`
}

type userListResponse struct {
	envelope
	Users      []*domain.User   `json:"users"`
	Pagination ports.PageResult `json:"pagination"`
}

type userDetailResponse struct {
	envelope
	*ports.AdminUserDetail
}

type systemReportResponse struct {
	envelope
	Report *ports.SystemReport `json:"report"`
}

// Dashboard returns the system-wide operations view.
//
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Security     BearerAuth
// @Router       /api/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	dashboard, err := h.admin.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{envelope: ok(), Dashboard: dashboard})
}

// Users lists accounts across all tenants.
//
// @Summary      List accounts
// @Tags         admin
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Param        role    query     string  false  "Filter by role"
// @Param        limit   query     int     false  "Page size (default 50)"
// @Param        offset  query     int     false  "Page offset"
// @Success      200     {object}  userListResponse
// @Security     BearerAuth
// @Router       /api/admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	users, page, err := h.admin.Users(c.Request().Context(), ports.UserFilter{
		Status: c.QueryParam("status"),
		Role:   c.QueryParam("role"),
		Page:   queryPage(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{envelope: ok(), Users: users, Pagination: page})
}

// UserDetail returns one account with its activity rollup.
//
// @Summary      Account detail
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userDetailResponse
// @Failure      404  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/admin/users/{id} [get]
func (h *AdminHandler) UserDetail(c echo.Context) error {
	detail, err := h.admin.UserDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userDetailResponse{envelope: ok(), AdminUserDetail: detail})
}

// SetUserStatus activates or deactivates an account.
//
// @Summary      Set account status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      userStatusRequest  true  "New status"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/admin/users/{id}/status [put]
func (h *AdminHandler) SetUserStatus(c echo.Context) error {
	var req userStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.admin.SetUserStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customerResponse{envelope: okMsg("status updated"), User: user})
}

// Report assembles cross-tenant sections.
//
// @Summary      System report
// @Tags         admin
// @Produce      json
// @Param        type       query     string  false  "all, shipments, revenue, users or inventory"
// @Param        startDate  query     string  false  "RFC 3339 start"
// @Param        endDate    query     string  false  "RFC 3339 end"
// @Success      200        {object}  systemReportResponse
// @Security     BearerAuth
// @Router       /api/admin/reports [get]
func (h *AdminHandler) Report(c echo.Context) error {
	in := ports.SystemReportInput{Type: c.QueryParam("type")}
	if v := c.QueryParam("startDate"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			in.Start = t
		}
	}
	if v := c.QueryParam("endDate"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			in.End = t
		}
	}

	report, err := h.admin.Report(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, systemReportResponse{envelope: ok(), Report: report})
}
