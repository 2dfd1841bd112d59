package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dnexpress/logistics-api/internal/api/metrics"
	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

// notifyTimeout bounds the fire-and-forget notification delivery.
const notifyTimeout = 5 * time.Second

// StatusService is the shipment state machine: it validates and applies
// transitions, mirrors them into the cross-shipment log, and emits
// best-effort notifications.
type StatusService struct {
	shipments ports.ShipmentRepository
	updates   ports.StatusUpdateRepository
	notifier  ports.Notifier
	logger    zerolog.Logger
}

func NewStatusService(shipments ports.ShipmentRepository, updates ports.StatusUpdateRepository, notifier ports.Notifier, logger zerolog.Logger) *StatusService {
	return &StatusService{shipments: shipments, updates: updates, notifier: notifier, logger: logger}
}

// Advance applies one status transition.
func (s *StatusService) Advance(ctx context.Context, actor ports.Actor, shipmentID string, in ports.AdvanceInput) (*domain.Shipment, *domain.StatusUpdate, error) {
	if !in.Status.Valid() {
		metrics.StatusRejectionsTotal.WithLabelValues("invalid_status").Inc()
		return nil, nil, domain.ErrInvalidStatus
	}

	shipment, err := s.shipments.ByID(ctx, shipmentID)
	if err != nil {
		return nil, nil, err
	}
	if !actor.Owns(shipment.CompanyID) {
		return nil, nil, domain.ErrForbidden
	}
	if !shipment.Status.CanTransitionTo(in.Status) {
		metrics.StatusRejectionsTotal.WithLabelValues("invalid_transition").Inc()
		return nil, nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, shipment.Status, in.Status)
	}

	now := time.Now().UTC()
	location := in.Location
	if location == "" {
		location = shipment.Destination.City
	}
	entry := domain.StatusHistoryEntry{
		Status:    in.Status,
		Timestamp: now,
		Location:  location,
		Notes:     in.Notes,
	}

	var delivered *time.Time
	if in.Status == domain.StatusDelivered {
		delivered = &now
	}

	shipment, err = s.shipments.AppendStatus(ctx, shipmentID, entry, delivered)
	if err != nil {
		return nil, nil, err
	}

	update := &domain.StatusUpdate{
		ShipmentID: shipment.ID,
		CompanyID:  shipment.CompanyID,
		Status:     in.Status,
		Location:   location,
		Notes:      in.Notes,
		UpdatedBy:  actor.ID,
		Timestamp:  now,
	}
	if err := s.updates.Create(ctx, update); err != nil {
		return nil, nil, err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(in.Status)).Inc()
	s.logger.Info().
		Str("shipment_id", shipment.ID).
		Str("tracking_number", shipment.TrackingNumber).
		Str("status", string(in.Status)).
		Str("updated_by", actor.ID).
		Msg("status transition applied")

	s.notify(shipment, in.Status, now)
	return shipment, update, nil
}

// notify delivers the status-change notification in the background. Failures
// are logged and counted, never surfaced to the caller.
func (s *StatusService) notify(shipment *domain.Shipment, status domain.ShipmentStatus, at time.Time) {
	if s.notifier == nil {
		return
	}
	n := ports.StatusNotification{
		CustomerID:     shipment.CustomerID,
		TrackingNumber: shipment.TrackingNumber,
		Status:         status,
		Message:        fmt.Sprintf("Shipment %s is now %s", shipment.TrackingNumber, status),
		Timestamp:      at,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(ctx, n); err != nil {
			metrics.NotificationsTotal.WithLabelValues("failed").Inc()
			s.logger.Warn().Err(err).Str("tracking_number", n.TrackingNumber).Msg("status notification failed")
			return
		}
		metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	}()
}

func (s *StatusService) Progress(ctx context.Context, actor ports.Actor, shipmentID string) (*ports.StatusView, error) {
	shipment, err := s.shipments.ByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(shipment.CompanyID) {
		return nil, domain.ErrForbidden
	}
	updates, err := s.updates.ListByShipment(ctx, shipment.ID)
	if err != nil {
		return nil, err
	}
	return &ports.StatusView{
		ShipmentID:        shipment.ID,
		TrackingNumber:    shipment.TrackingNumber,
		CurrentStatus:     shipment.Status,
		StatusHistory:     shipment.StatusHistory,
		EstimatedDelivery: shipment.EstimatedDelivery,
		ActualDelivery:    shipment.ActualDelivery,
		LastUpdated:       shipment.UpdatedAt,
		Updates:           updates,
	}, nil
}

func (s *StatusService) ListByCustomer(ctx context.Context, actor ports.Actor, customerID string, page ports.Page) ([]*domain.StatusUpdate, ports.PageResult, error) {
	if !actor.Owns(customerID) {
		return nil, ports.PageResult{}, domain.ErrForbidden
	}
	items, total, err := s.updates.ListByCompany(ctx, customerID, page)
	if err != nil {
		return nil, ports.PageResult{}, err
	}
	return items, pageResult(total, page, len(items)), nil
}
