package domain

import "time"

// StatusUpdate is a denormalized record of a single status change, stored
// separately from the shipment's own history so it can be queried across
// shipments per company.
type StatusUpdate struct {
	ID         string         `json:"id"`
	ShipmentID string         `json:"shipmentId"`
	CompanyID  string         `json:"companyId"`
	Status     ShipmentStatus `json:"status"`
	Location   string         `json:"location,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	UpdatedBy  string         `json:"updatedBy"`
	Timestamp  time.Time      `json:"timestamp"`
}
