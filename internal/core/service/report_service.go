package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

// lowStockRecentWindow is how far back "recent additions" reach in the
// inventory health report.
const lowStockRecentWindow = 7 * 24 * time.Hour

// ReportService computes read-side aggregations over a company's records.
// Everything is recomputed per request; nothing is cached.
type ReportService struct {
	shipments ports.ShipmentRepository
	inventory ports.InventoryRepository
	logger    zerolog.Logger
}

func NewReportService(shipments ports.ShipmentRepository, inventory ports.InventoryRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{shipments: shipments, inventory: inventory, logger: logger}
}

// resolveRange turns a period keyword into a concrete window. Explicit
// Start/End win; the default period is one month.
func resolveRange(rng ports.ReportRange) (time.Time, time.Time, string) {
	now := time.Now().UTC()
	if !rng.Start.IsZero() && !rng.End.IsZero() {
		return rng.Start, rng.End, "custom"
	}
	period := rng.Period
	var start time.Time
	switch period {
	case "day":
		start = now.AddDate(0, 0, -1)
	case "week":
		start = now.AddDate(0, 0, -7)
	case "year":
		start = now.AddDate(-1, 0, 0)
	default:
		period = "month"
		start = now.AddDate(0, -1, 0)
	}
	return start, now, period
}

func (s *ReportService) companyShipments(ctx context.Context, companyID string) ([]*domain.Shipment, error) {
	all, _, err := s.shipments.ListByCompany(ctx, companyID, ports.ShipmentFilter{Page: ports.Page{Limit: -1}})
	return all, err
}

func (s *ReportService) Revenue(ctx context.Context, actor ports.Actor, rng ports.ReportRange) (*ports.RevenueReport, error) {
	start, end, period := resolveRange(rng)
	all, err := s.companyShipments(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	report := &ports.RevenueReport{
		Period:   period,
		Start:    start,
		End:      end,
		Total:    decimal.Zero,
		Average:  decimal.Zero,
		Currency: "USD",
	}
	weekly := map[string]*ports.RevenueTrendPoint{}
	for _, sh := range all {
		if sh.CreatedAt.Before(start) || sh.CreatedAt.After(end) {
			continue
		}
		report.Count++
		switch sh.Status {
		case domain.StatusDelivered:
			report.Delivered++
		case domain.StatusCancelled:
			report.Cancelled++
		case domain.StatusPending:
			report.Pending++
		}
		if sh.Status == domain.StatusCancelled {
			continue
		}
		report.Total = report.Total.Add(sh.Rate)

		year, week := sh.CreatedAt.ISOWeek()
		key := fmt.Sprintf("%d-W%02d", year, week)
		point, ok := weekly[key]
		if !ok {
			point = &ports.RevenueTrendPoint{Week: key, Revenue: decimal.Zero}
			weekly[key] = point
		}
		point.Revenue = point.Revenue.Add(sh.Rate)
		point.Shipments++
	}
	if report.Count > 0 {
		report.Average = report.Total.Div(decimal.NewFromInt(int64(report.Count))).Round(2)
	}

	// YYYY-WNN keys sort chronologically as strings.
	weeks := make([]string, 0, len(weekly))
	for key := range weekly {
		weeks = append(weeks, key)
	}
	sort.Strings(weeks)
	for _, key := range weeks {
		report.Trend = append(report.Trend, *weekly[key])
	}
	return report, nil
}

func (s *ReportService) DeliveryPerformance(ctx context.Context, actor ports.Actor) (*ports.DeliveryPerformanceReport, error) {
	all, err := s.companyShipments(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	report := &ports.DeliveryPerformanceReport{
		StatusBreakdown: map[domain.ShipmentStatus]int{},
	}
	var totalDeliveryDays float64
	for _, sh := range all {
		report.TotalShipments++
		report.StatusBreakdown[sh.Status]++
		if sh.Status != domain.StatusDelivered || sh.ActualDelivery == nil {
			continue
		}
		report.Delivered++
		days := sh.ActualDelivery.Sub(sh.CreatedAt).Hours() / 24
		totalDeliveryDays += days
		if sh.EstimatedDelivery == nil || !sh.ActualDelivery.After(*sh.EstimatedDelivery) {
			report.OnTimeDeliveries++
		} else {
			report.LateDeliveries++
		}
	}
	if report.TotalShipments > 0 {
		report.DeliveryRatePct = round2(float64(report.Delivered) / float64(report.TotalShipments) * 100)
	}
	if report.Delivered > 0 {
		report.OnTimeRatePct = round2(float64(report.OnTimeDeliveries) / float64(report.Delivered) * 100)
		report.AverageDeliveryDays = round2(totalDeliveryDays / float64(report.Delivered))
	}
	return report, nil
}

func (s *ReportService) InventoryHealth(ctx context.Context, actor ports.Actor) (*ports.InventoryHealthReport, error) {
	all, _, err := s.inventory.ListByCompany(ctx, actor.ID, ports.InventoryFilter{Page: ports.Page{Limit: -1}})
	if err != nil {
		return nil, err
	}

	report := &ports.InventoryHealthReport{
		StatusBreakdown: map[domain.InventoryStatus]int{},
	}
	recentCutoff := time.Now().UTC().Add(-lowStockRecentWindow)
	for _, item := range all {
		report.TotalItems++
		report.TotalQuantity += item.Quantity
		report.StatusBreakdown[item.Status]++
		if item.Status == domain.InventoryActive {
			report.ActiveItems++
		}
		if item.CreatedAt.After(recentCutoff) {
			report.RecentAdditions++
		}

		alert := ports.InventoryAlert{ID: item.ID, Name: item.Name, SKU: item.SKU, Quantity: item.Quantity}
		switch {
		case item.Quantity == 0:
			report.OutOfStock = append(report.OutOfStock, alert)
		case item.Quantity < domain.LowStockThreshold:
			report.LowStock = append(report.LowStock, alert)
		}
	}
	if report.TotalItems > 0 {
		report.AverageQuantity = round2(float64(report.TotalQuantity) / float64(report.TotalItems))
	}
	return report, nil
}

func (s *ReportService) CarrierCosts(ctx context.Context, actor ports.Actor) (*ports.CarrierCostReport, error) {
	all, err := s.companyShipments(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	report := &ports.CarrierCostReport{
		TotalSpent:  decimal.Zero,
		AverageCost: decimal.Zero,
		Currency:    "USD",
		ByService:   map[domain.ServiceLevel]ports.ServiceCost{},
	}
	for _, sh := range all {
		if sh.Status == domain.StatusCancelled {
			continue
		}
		report.TotalShipments++
		report.TotalSpent = report.TotalSpent.Add(sh.Rate)

		cost := report.ByService[sh.Service]
		cost.Count++
		cost.Total = cost.Total.Add(sh.Rate)
		report.ByService[sh.Service] = cost
	}
	if report.TotalShipments > 0 {
		report.AverageCost = report.TotalSpent.Div(decimal.NewFromInt(int64(report.TotalShipments))).Round(2)
	}
	for level, cost := range report.ByService {
		cost.Average = cost.Total.Div(decimal.NewFromInt(int64(cost.Count))).Round(2)
		report.ByService[level] = cost
	}
	return report, nil
}

func (s *ReportService) Custom(ctx context.Context, actor ports.Actor, in ports.CustomReportInput) (*ports.CustomReport, error) {
	if len(in.Metrics) == 0 {
		return nil, domain.ErrValidation
	}

	report := &ports.CustomReport{
		Generated: time.Now().UTC(),
		Period:    in.Period,
		Company:   actor.CompanyName,
	}
	if report.Period == "" {
		report.Period = "month"
	}

	for _, metric := range in.Metrics {
		switch metric {
		case "revenue":
			revenue, err := s.Revenue(ctx, actor, ports.ReportRange{Period: in.Period})
			if err != nil {
				return nil, err
			}
			report.Metrics.Revenue = revenue
		case "delivery":
			delivery, err := s.DeliveryPerformance(ctx, actor)
			if err != nil {
				return nil, err
			}
			report.Metrics.Delivery = delivery
		case "inventory":
			inventory, err := s.InventoryHealth(ctx, actor)
			if err != nil {
				return nil, err
			}
			report.Metrics.Inventory = inventory
		default:
			return nil, domain.ErrValidation
		}
	}
	return report, nil
}

// CustomCSV flattens a custom report into metric,field,value rows.
func (s *ReportService) CustomCSV(report *ports.CustomReport) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"metric", "field", "value"})

	if r := report.Metrics.Revenue; r != nil {
		_ = w.Write([]string{"revenue", "total", r.Total.StringFixed(2)})
		_ = w.Write([]string{"revenue", "average", r.Average.StringFixed(2)})
		_ = w.Write([]string{"revenue", "count", strconv.Itoa(r.Count)})
		_ = w.Write([]string{"revenue", "delivered", strconv.Itoa(r.Delivered)})
		_ = w.Write([]string{"revenue", "cancelled", strconv.Itoa(r.Cancelled)})
	}
	if d := report.Metrics.Delivery; d != nil {
		_ = w.Write([]string{"delivery", "totalShipments", strconv.Itoa(d.TotalShipments)})
		_ = w.Write([]string{"delivery", "delivered", strconv.Itoa(d.Delivered)})
		_ = w.Write([]string{"delivery", "deliveryRatePct", formatFloat(d.DeliveryRatePct)})
		_ = w.Write([]string{"delivery", "onTimeRatePct", formatFloat(d.OnTimeRatePct)})
		_ = w.Write([]string{"delivery", "averageDeliveryDays", formatFloat(d.AverageDeliveryDays)})
	}
	if inv := report.Metrics.Inventory; inv != nil {
		_ = w.Write([]string{"inventory", "totalItems", strconv.Itoa(inv.TotalItems)})
		_ = w.Write([]string{"inventory", "totalQuantity", strconv.Itoa(inv.TotalQuantity)})
		_ = w.Write([]string{"inventory", "lowStock", strconv.Itoa(len(inv.LowStock))})
		_ = w.Write([]string{"inventory", "outOfStock", strconv.Itoa(len(inv.OutOfStock))})
	}
	w.Flush()
	return buf.Bytes()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
