package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dnexpress/logistics-api/internal/core/ports"
)

type ReportHandler struct {
	reports ports.ReportService
}

func NewReportHandler(reports ports.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type revenueReportResponse struct {
	envelope
	Report *ports.RevenueReport `json:"report"`
}

type deliveryReportResponse struct {
	envelope
	Report *ports.DeliveryPerformanceReport `json:"report"`
}

type inventoryReportResponse struct {
	envelope
	Report *ports.InventoryHealthReport `json:"report"`
}

type carrierReportResponse struct {
	envelope
	Report *ports.CarrierCostReport `json:"report"`
}

type customReportRequest struct {
	Metrics []string `json:"metrics" validate:"required,min=1,dive,oneof=revenue delivery inventory"`
	Period  string   `json:"period,omitempty" validate:"omitempty,oneof=day week month year"`
	Format  string   `json:"format,omitempty" validate:"omitempty,oneof=json csv"`
}

type customReportResponse struct {
	envelope
	Report *ports.CustomReport `json:"report"`
}

// Revenue summarizes billing over a window.
//
// @Summary      Revenue report
// @Tags         reports
// @Produce      json
// @Param        period     query     string  false  "day, week, month or year"
// @Param        startDate  query     string  false  "RFC 3339 start (wins over period)"
// @Param        endDate    query     string  false  "RFC 3339 end (wins over period)"
// @Success      200        {object}  revenueReportResponse
// @Security     BearerAuth
// @Router       /api/reports/revenue [get]
func (h *ReportHandler) Revenue(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	rng := ports.ReportRange{Period: c.QueryParam("period")}
	if v := c.QueryParam("startDate"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			rng.Start = t
		}
	}
	if v := c.QueryParam("endDate"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			rng.End = t
		}
	}

	report, err := h.reports.Revenue(c.Request().Context(), actor, rng)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, revenueReportResponse{envelope: ok(), Report: report})
}

// Delivery measures delivery performance.
//
// @Summary      Delivery performance report
// @Tags         reports
// @Produce      json
// @Success      200  {object}  deliveryReportResponse
// @Security     BearerAuth
// @Router       /api/reports/shipments/delivery [get]
func (h *ReportHandler) Delivery(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	report, err := h.reports.DeliveryPerformance(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deliveryReportResponse{envelope: ok(), Report: report})
}

// Inventory flags stock problems.
//
// @Summary      Inventory health report
// @Tags         reports
// @Produce      json
// @Success      200  {object}  inventoryReportResponse
// @Security     BearerAuth
// @Router       /api/reports/inventory/health [get]
func (h *ReportHandler) Inventory(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	report, err := h.reports.InventoryHealth(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inventoryReportResponse{envelope: ok(), Report: report})
}

// CarrierCosts breaks spend down by service type.
//
// @Summary      Carrier cost report
// @Tags         reports
// @Produce      json
// @Success      200  {object}  carrierReportResponse
// @Security     BearerAuth
// @Router       /api/reports/costs/carriers [get]
func (h *ReportHandler) CarrierCosts(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	report, err := h.reports.CarrierCosts(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, carrierReportResponse{envelope: ok(), Report: report})
}

// Custom assembles an on-demand report from the requested metric blocks,
// rendered as JSON or CSV.
//
// @Summary      Custom report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        body  body      customReportRequest  true  "Report selection"
// @Success      200   {object}  customReportResponse
// @Failure      400   {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /api/reports/custom [post]
func (h *ReportHandler) Custom(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req customReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, err := h.reports.Custom(c.Request().Context(), actor, ports.CustomReportInput{
		Metrics: req.Metrics,
		Period:  req.Period,
		Format:  req.Format,
	})
	if err != nil {
		return err
	}

	if strings.EqualFold(req.Format, "csv") {
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="report.csv"`)
		return c.Blob(http.StatusOK, "text/csv", h.reports.CustomCSV(report))
	}
	return c.JSON(http.StatusOK, customReportResponse{envelope: ok(), Report: report})
}
