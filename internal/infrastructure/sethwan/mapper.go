package sethwan

import (
	"fmt"

	"github.com/dnexpress/logistics-api/internal/core/domain"
)

// serviceTypes maps internal service levels to Sethwan service types.
var serviceTypes = map[domain.ServiceLevel]string{
	domain.ServiceStandard:  "standard_shipping",
	domain.ServiceExpress:   "express_shipping",
	domain.ServiceOvernight: "overnight_shipping",
}

// statuses maps internal shipment statuses to Sethwan statuses.
var statuses = map[domain.ShipmentStatus]string{
	domain.StatusPending:        "pending",
	domain.StatusPickup:         "picked_up",
	domain.StatusInTransit:      "in_transit",
	domain.StatusOutForDelivery: "out_for_delivery",
	domain.StatusDelivered:      "delivered",
	domain.StatusCancelled:      "cancelled",
}

// reverseStatuses is the inverse of statuses, built at init.
var reverseStatuses = func() map[string]domain.ShipmentStatus {
	m := make(map[string]domain.ShipmentStatus, len(statuses))
	for internal, external := range statuses {
		m[external] = internal
	}
	return m
}()

// MapServiceType translates an internal service level, defaulting to
// standard shipping for unknown values.
func MapServiceType(service domain.ServiceLevel) string {
	if external, ok := serviceTypes[service]; ok {
		return external
	}
	return "standard_shipping"
}

// MapStatus translates an internal status, defaulting to pending.
func MapStatus(status domain.ShipmentStatus) string {
	if external, ok := statuses[status]; ok {
		return external
	}
	return "pending"
}

// ReverseMapStatus translates a Sethwan status back, defaulting to pending.
func ReverseMapStatus(status string) domain.ShipmentStatus {
	if internal, ok := reverseStatuses[status]; ok {
		return internal
	}
	return domain.StatusPending
}

// wireShipment is the Sethwan shipment payload.
type wireShipment struct {
	TrackingNumber string      `json:"tracking_number"`
	Shipper        wireParty   `json:"shipper"`
	Receiver       wireParty   `json:"receiver"`
	Package        wirePackage `json:"package"`
	ServiceType    string      `json:"service_type"`
	Status         string      `json:"status"`
}

type wireParty struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Country string `json:"country"`
}

type wirePackage struct {
	Weight      float64  `json:"weight"`
	Length      float64  `json:"length"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	Description string   `json:"description,omitempty"`
	Contents    []string `json:"contents,omitempty"`
}

func toWireShipment(s *domain.Shipment) wireShipment {
	return wireShipment{
		TrackingNumber: s.TrackingNumber,
		Shipper: wireParty{
			Name:    s.Origin.ContactName,
			Address: flattenAddress(s.Origin),
			Country: defaultCountry(s.Origin.Country),
		},
		Receiver: wireParty{
			Name:    s.Destination.ContactName,
			Address: flattenAddress(s.Destination),
			Country: defaultCountry(s.Destination.Country),
		},
		Package: wirePackage{
			Weight:      s.Package.Weight,
			Length:      s.Package.Dimensions.Length,
			Width:       s.Package.Dimensions.Width,
			Height:      s.Package.Dimensions.Height,
			Description: s.Package.Description,
			Contents:    s.Package.Contents,
		},
		ServiceType: MapServiceType(s.Service),
		Status:      MapStatus(s.Status),
	}
}

// wireWarehouse is the customer-warehouse registration payload.
type wireWarehouse struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

func toWireWarehouse(u *domain.User) wireWarehouse {
	return wireWarehouse{
		CustomerID: u.CustomerNumber,
		Name:       u.CompanyName,
		Address:    u.WarehouseAddress.Street1,
		City:       u.WarehouseAddress.City,
		State:      u.WarehouseAddress.State,
		ZipCode:    u.WarehouseAddress.ZipCode,
		Country:    u.WarehouseAddress.Country,
		Phone:      u.Phone,
		Email:      u.Email,
	}
}

// wireManifest is the manifest submission payload.
type wireManifest struct {
	ManifestNumber string   `json:"manifest_number"`
	ManifestType   string   `json:"manifest_type"`
	Destination    string   `json:"destination,omitempty"`
	WarehouseID    string   `json:"warehouse_id,omitempty"`
	ShipmentIDs    []string `json:"shipment_ids"`
}

func toWireManifest(m *domain.Manifest, warehouseID string) wireManifest {
	return wireManifest{
		ManifestNumber: m.ManifestNumber,
		ManifestType:   m.ManifestType,
		Destination:    m.Destination,
		WarehouseID:    warehouseID,
		ShipmentIDs:    m.ShipmentIDs,
	}
}

func flattenAddress(a domain.PostalAddress) string {
	return fmt.Sprintf("%s, %s, %s %s", a.Address, a.City, a.State, a.ZipCode)
}

func defaultCountry(country string) string {
	if country == "" {
		return "USA"
	}
	return country
}
