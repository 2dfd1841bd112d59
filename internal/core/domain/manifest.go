package domain

import "time"

// ManifestStatus is the review state of a manifest.
type ManifestStatus string

const (
	ManifestPending   ManifestStatus = "pending"
	ManifestSubmitted ManifestStatus = "submitted"
	ManifestApproved  ManifestStatus = "approved"
	ManifestRejected  ManifestStatus = "rejected"
)

func (s ManifestStatus) Valid() bool {
	switch s {
	case ManifestPending, ManifestSubmitted, ManifestApproved, ManifestRejected:
		return true
	}
	return false
}

const (
	ManifestTypeStandard = "standard"
	ManifestTypeAsycuda  = "asycuda"
)

// Manifest is a batch grouping of shipments submitted together, for customs
// or carrier hand-off. Every referenced shipment belongs to the same company.
type Manifest struct {
	ID             string         `json:"id"`
	ManifestNumber string         `json:"manifestNumber"`
	CompanyID      string         `json:"companyId"`
	ShipmentIDs    []string       `json:"shipmentIds"`
	ManifestType   string         `json:"manifestType"`
	Destination    string         `json:"destination,omitempty"`
	Status         ManifestStatus `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}
