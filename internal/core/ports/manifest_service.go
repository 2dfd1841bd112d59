package ports

import (
	"context"

	"github.com/dnexpress/logistics-api/internal/core/domain"
)

// CreateManifestInput groups shipments into a manifest. Every shipment id
// must exist and belong to the acting company.
type CreateManifestInput struct {
	ShipmentIDs  []string
	ManifestType string
	Destination  string
}

// ListManifestsInput carries the list endpoint's query parameters.
type ListManifestsInput struct {
	Status string
	Type   string
	Page   Page
}

// ManifestDocument is the rendered manifest hand-off document.
type ManifestDocument struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ManifestService manages shipment batches for customs/carrier hand-off.
type ManifestService interface {
	Create(ctx context.Context, actor Actor, in CreateManifestInput) (*domain.Manifest, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Manifest, error)
	List(ctx context.Context, actor Actor, in ListManifestsInput) ([]*domain.Manifest, PageResult, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, status domain.ManifestStatus) (*domain.Manifest, error)
	Document(ctx context.Context, actor Actor, id string) (*ManifestDocument, error)
	// SubmitToSethwan hands the manifest to the partner platform and marks
	// it submitted. Requires an active integration on the account.
	SubmitToSethwan(ctx context.Context, actor Actor, id string) (*domain.Manifest, error)
}
