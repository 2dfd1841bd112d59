package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentStatus represents the lifecycle state of a shipment.
type ShipmentStatus string

const (
	StatusPending        ShipmentStatus = "pending"
	StatusPickup         ShipmentStatus = "pickup"
	StatusInTransit      ShipmentStatus = "in-transit"
	StatusOutForDelivery ShipmentStatus = "out-for-delivery"
	StatusDelivered      ShipmentStatus = "delivered"
	StatusCancelled      ShipmentStatus = "cancelled"
)

// statusRank orders the forward progression. Cancelled has no rank; it is
// reachable from any non-terminal state instead.
var statusRank = map[ShipmentStatus]int{
	StatusPending:        0,
	StatusPickup:         1,
	StatusInTransit:      2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

// Valid reports whether s is one of the recognized status values.
func (s ShipmentStatus) Valid() bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// Terminal reports whether no further transitions are allowed out of s.
func (s ShipmentStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether a transition from s to next is legal.
// Forward progression may skip intermediate scans but never rewinds;
// cancellation is allowed from any non-terminal state.
func (s ShipmentStatus) CanTransitionTo(next ShipmentStatus) bool {
	if s.Terminal() || !next.Valid() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return statusRank[next] > statusRank[s]
}

// ServiceLevel is the shipping service purchased for a shipment.
type ServiceLevel string

const (
	ServiceStandard  ServiceLevel = "standard"
	ServiceExpress   ServiceLevel = "express"
	ServiceOvernight ServiceLevel = "overnight"
)

func (s ServiceLevel) Valid() bool {
	switch s {
	case ServiceStandard, ServiceExpress, ServiceOvernight:
		return true
	}
	return false
}

// PostalAddress is an origin or destination for a shipment.
type PostalAddress struct {
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
	ContactName  string `json:"contactName,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
}

// Dimensions is the physical size of a package in inches.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Package describes what is being shipped. Weight is in lbs.
type Package struct {
	Weight      float64    `json:"weight"`
	Dimensions  Dimensions `json:"dimensions"`
	Description string     `json:"description,omitempty"`
	Contents    []string   `json:"contents,omitempty"`
}

// StatusHistoryEntry records a single status transition on a shipment.
// The history is append-only and never empty after creation.
type StatusHistoryEntry struct {
	Status    ShipmentStatus `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Location  string         `json:"location,omitempty"`
	Notes     string         `json:"notes,omitempty"`
}

// Shipment is a single package movement owned by one customer.
type Shipment struct {
	ID                string               `json:"id"`
	TrackingNumber    string               `json:"trackingNumber"`
	CustomerID        string               `json:"customerId"`
	CompanyID         string               `json:"companyId"`
	Origin            PostalAddress        `json:"origin"`
	Destination       PostalAddress        `json:"destination"`
	Package           Package              `json:"package"`
	Service           ServiceLevel         `json:"service"`
	Rate              decimal.Decimal      `json:"rate"`
	Status            ShipmentStatus       `json:"status"`
	StatusHistory     []StatusHistoryEntry `json:"statusHistory"`
	Notes             string               `json:"notes,omitempty"`
	EstimatedDelivery *time.Time           `json:"estimatedDelivery"`
	ActualDelivery    *time.Time           `json:"actualDelivery"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// Active reports whether the shipment is still moving through the network.
func (s *Shipment) Active() bool {
	return !s.Status.Terminal()
}
