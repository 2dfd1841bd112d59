package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dnexpress/logistics-api/internal/api/metrics"
	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

// transitDays estimates delivery for each service level.
var transitDays = map[domain.ServiceLevel]int{
	domain.ServiceStandard:  7,
	domain.ServiceExpress:   3,
	domain.ServiceOvernight: 1,
}

// ShipmentService implements shipment creation, listing, pending-only edits
// and public tracking.
type ShipmentService struct {
	shipments ports.ShipmentRepository
	logger    zerolog.Logger
}

func NewShipmentService(shipments ports.ShipmentRepository, logger zerolog.Logger) *ShipmentService {
	return &ShipmentService{shipments: shipments, logger: logger}
}

func (s *ShipmentService) Create(ctx context.Context, actor ports.Actor, in ports.CreateShipmentInput) (*domain.Shipment, error) {
	if !in.Service.Valid() {
		return nil, domain.ErrValidation
	}

	eta := time.Now().UTC().AddDate(0, 0, transitDays[in.Service])
	shipment := &domain.Shipment{
		CustomerID:  actor.ID,
		CompanyID:   actor.ID,
		Origin:      toAddress(in.Origin),
		Destination: toAddress(in.Destination),
		Package: domain.Package{
			Weight: in.Package.Weight,
			Dimensions: domain.Dimensions{
				Length: in.Package.Length,
				Width:  in.Package.Width,
				Height: in.Package.Height,
			},
			Description: in.Package.Description,
			Contents:    in.Package.Contents,
		},
		Service:           in.Service,
		Rate:              in.Rate,
		Notes:             in.Notes,
		EstimatedDelivery: &eta,
	}

	if err := s.shipments.Create(ctx, shipment); err != nil {
		return nil, err
	}

	metrics.ShipmentsCreatedTotal.WithLabelValues(string(shipment.Service)).Inc()
	s.logger.Info().
		Str("shipment_id", shipment.ID).
		Str("tracking_number", shipment.TrackingNumber).
		Str("company_id", shipment.CompanyID).
		Str("service", string(shipment.Service)).
		Msg("shipment created")
	return shipment, nil
}

func (s *ShipmentService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Shipment, error) {
	shipment, err := s.shipments.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(shipment.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return shipment, nil
}

func (s *ShipmentService) List(ctx context.Context, actor ports.Actor, in ports.ListShipmentsInput) ([]*domain.Shipment, ports.PageResult, error) {
	filter := ports.ShipmentFilter{Status: in.Status, Page: in.Page}
	items, total, err := s.shipments.ListByCompany(ctx, actor.ID, filter)
	if err != nil {
		return nil, ports.PageResult{}, err
	}
	return items, pageResult(total, in.Page, len(items)), nil
}

// Update edits notes or service level while the shipment is still pending.
// Once picked up the record is locked.
func (s *ShipmentService) Update(ctx context.Context, actor ports.Actor, id string, in ports.UpdateShipmentInput) (*domain.Shipment, error) {
	shipment, err := s.shipments.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(shipment.CompanyID) {
		return nil, domain.ErrForbidden
	}
	if shipment.Status != domain.StatusPending {
		return nil, domain.ErrShipmentLocked
	}

	patch := ports.ShipmentPatch{Notes: in.Notes}
	if in.Service != nil {
		if !in.Service.Valid() {
			return nil, domain.ErrValidation
		}
		patch.Service = in.Service
		eta := shipment.CreatedAt.AddDate(0, 0, transitDays[*in.Service])
		patch.EstimatedDelivery = &eta
	}
	return s.shipments.Update(ctx, id, patch)
}

// Track serves the public tracking projection; street addresses and customer
// identity are withheld.
func (s *ShipmentService) Track(ctx context.Context, trackingNumber string) (*ports.TrackingView, error) {
	shipment, err := s.shipments.ByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	return &ports.TrackingView{
		TrackingNumber:    shipment.TrackingNumber,
		Status:            shipment.Status,
		OriginCity:        shipment.Origin.City,
		OriginState:       shipment.Origin.State,
		OriginCountry:     shipment.Origin.Country,
		DestCity:          shipment.Destination.City,
		DestState:         shipment.Destination.State,
		DestCountry:       shipment.Destination.Country,
		StatusHistory:     shipment.StatusHistory,
		EstimatedDelivery: shipment.EstimatedDelivery,
		ActualDelivery:    shipment.ActualDelivery,
		CreatedAt:         shipment.CreatedAt,
	}, nil
}

func toAddress(in ports.AddressInput) domain.PostalAddress {
	return domain.PostalAddress{
		Address:      in.Address,
		City:         in.City,
		State:        in.State,
		ZipCode:      in.ZipCode,
		Country:      in.Country,
		ContactName:  in.ContactName,
		ContactPhone: in.ContactPhone,
	}
}

// pageResult echoes the effective pagination window back to the caller.
func pageResult(total int, page ports.Page, returned int) ports.PageResult {
	limit := page.Limit
	if limit == 0 {
		limit = 50
	}
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}
	return ports.PageResult{Total: total, Limit: limit, Offset: offset, Returned: returned}
}
