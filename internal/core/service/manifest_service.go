package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dnexpress/logistics-api/internal/api/metrics"
	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

// ManifestService manages shipment batches for customs/carrier hand-off.
type ManifestService struct {
	manifests ports.ManifestRepository
	shipments ports.ShipmentRepository
	users     ports.UserRepository
	sethwan   ports.SethwanClient
	logger    zerolog.Logger
}

func NewManifestService(manifests ports.ManifestRepository, shipments ports.ShipmentRepository, users ports.UserRepository, sethwan ports.SethwanClient, logger zerolog.Logger) *ManifestService {
	return &ManifestService{manifests: manifests, shipments: shipments, users: users, sethwan: sethwan, logger: logger}
}

// Create groups shipments into a manifest. Every referenced shipment must
// exist and belong to the acting company.
func (s *ManifestService) Create(ctx context.Context, actor ports.Actor, in ports.CreateManifestInput) (*domain.Manifest, error) {
	if len(in.ShipmentIDs) == 0 {
		return nil, domain.ErrValidation
	}
	if in.ManifestType != "" && in.ManifestType != domain.ManifestTypeStandard && in.ManifestType != domain.ManifestTypeAsycuda {
		return nil, domain.ErrValidation
	}

	for _, id := range in.ShipmentIDs {
		shipment, err := s.shipments.ByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if shipment.CompanyID != actor.ID {
			return nil, domain.ErrForbidden
		}
	}

	manifest := &domain.Manifest{
		CompanyID:    actor.ID,
		ShipmentIDs:  in.ShipmentIDs,
		ManifestType: in.ManifestType,
		Destination:  in.Destination,
	}
	if err := s.manifests.Create(ctx, manifest); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("manifest_id", manifest.ID).
		Str("manifest_number", manifest.ManifestNumber).
		Int("shipments", len(manifest.ShipmentIDs)).
		Msg("manifest created")
	return manifest, nil
}

func (s *ManifestService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Manifest, error) {
	manifest, err := s.manifests.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(manifest.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return manifest, nil
}

func (s *ManifestService) List(ctx context.Context, actor ports.Actor, in ports.ListManifestsInput) ([]*domain.Manifest, ports.PageResult, error) {
	filter := ports.ManifestFilter{Status: in.Status, Type: in.Type, Page: in.Page}
	items, total, err := s.manifests.ListByCompany(ctx, actor.ID, filter)
	if err != nil {
		return nil, ports.PageResult{}, err
	}
	return items, pageResult(total, in.Page, len(items)), nil
}

func (s *ManifestService) UpdateStatus(ctx context.Context, actor ports.Actor, id string, status domain.ManifestStatus) (*domain.Manifest, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	manifest, err := s.manifests.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(manifest.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return s.manifests.UpdateStatus(ctx, id, status)
}

// Document renders the hand-off document for printing. Plain text keeps the
// output dependency-free; the filename still hints at the manifest number.
func (s *ManifestService) Document(ctx context.Context, actor ports.Actor, id string) (*ports.ManifestDocument, error) {
	manifest, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "D.N EXPRESS LOGISTICS - SHIPPING MANIFEST\n")
	fmt.Fprintf(&b, "Manifest:    %s\n", manifest.ManifestNumber)
	fmt.Fprintf(&b, "Type:        %s\n", manifest.ManifestType)
	fmt.Fprintf(&b, "Status:      %s\n", manifest.Status)
	if manifest.Destination != "" {
		fmt.Fprintf(&b, "Destination: %s\n", manifest.Destination)
	}
	fmt.Fprintf(&b, "Created:     %s\n", manifest.CreatedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "\nSHIPMENTS (%d)\n", len(manifest.ShipmentIDs))

	totalWeight := 0.0
	totalValue := decimal.Zero
	for i, shipmentID := range manifest.ShipmentIDs {
		shipment, err := s.shipments.ByID(ctx, shipmentID)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "%3d. %s  %-16s  %6.1f lbs  %s -> %s\n",
			i+1,
			shipment.TrackingNumber,
			shipment.Status,
			shipment.Package.Weight,
			shipment.Origin.City,
			shipment.Destination.City,
		)
		totalWeight += shipment.Package.Weight
		totalValue = totalValue.Add(shipment.Rate)
	}
	fmt.Fprintf(&b, "\nTotal weight: %.1f lbs\n", totalWeight)
	fmt.Fprintf(&b, "Total value:  %s\n", totalValue.StringFixed(2))

	return &ports.ManifestDocument{
		Filename:    fmt.Sprintf("%s.txt", manifest.ManifestNumber),
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(b.String()),
	}, nil
}

// SubmitToSethwan hands the manifest to the partner platform and marks it
// submitted.
func (s *ManifestService) SubmitToSethwan(ctx context.Context, actor ports.Actor, id string) (*domain.Manifest, error) {
	manifest, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.ByID(ctx, manifest.CompanyID)
	if err != nil {
		return nil, err
	}
	if !owner.Sethwan.Integrated {
		return nil, domain.ErrNotIntegrated
	}

	creds := ports.SethwanCredentials{APIKey: owner.Sethwan.APIKey, AccountID: owner.Sethwan.AccountID}
	result := s.sethwan.SubmitManifest(ctx, creds, manifest, owner.Sethwan.DefaultWarehouse)
	if !result.Success {
		metrics.ManifestsSubmittedTotal.WithLabelValues("rejected").Inc()
		s.logger.Warn().
			Str("manifest_id", manifest.ID).
			Str("reason", result.Error).
			Msg("sethwan rejected manifest")
		return nil, fmt.Errorf("sethwan submission failed: %s", result.Error)
	}

	metrics.ManifestsSubmittedTotal.WithLabelValues("accepted").Inc()
	s.logger.Info().
		Str("manifest_id", manifest.ID).
		Str("reference", result.Reference).
		Msg("manifest submitted to sethwan")
	return s.manifests.UpdateStatus(ctx, id, domain.ManifestSubmitted)
}
