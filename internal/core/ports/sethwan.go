package ports

import (
	"context"

	"github.com/dnexpress/logistics-api/internal/core/domain"
)

// SethwanCredentials authenticate one account against the partner platform.
type SethwanCredentials struct {
	APIKey    string
	AccountID string
}

// SethwanAccount describes the partner-side account.
type SethwanAccount struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// SethwanWarehouse is one warehouse available to the account.
type SethwanWarehouse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// SethwanResult is the structured outcome of any partner call. Partner
// failures are reported here, never as Go errors crossing the adapter.
type SethwanResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SethwanValidation is the result of a credential check.
type SethwanValidation struct {
	SethwanResult
	Valid    bool            `json:"valid"`
	Account  *SethwanAccount `json:"account,omitempty"`
	Features []string        `json:"features,omitempty"`
}

// SethwanWarehouses is the result of a warehouse listing.
type SethwanWarehouses struct {
	SethwanResult
	Warehouses []SethwanWarehouse `json:"warehouses"`
}

// SethwanShipmentPush is the result of pushing a shipment to the partner.
type SethwanShipmentPush struct {
	SethwanResult
	SethwanID             string `json:"sethwanId,omitempty"`
	SethwanTrackingNumber string `json:"sethwanTrackingNumber,omitempty"`
}

// SethwanWarehouseSync is the result of registering a customer warehouse.
type SethwanWarehouseSync struct {
	SethwanResult
	WarehouseID string `json:"warehouseId,omitempty"`
}

// SethwanManifestSubmit is the result of submitting a manifest.
type SethwanManifestSubmit struct {
	SethwanResult
	Reference string `json:"reference,omitempty"`
}

// SethwanClient is the outbound adapter to the partner platform.
type SethwanClient interface {
	Validate(ctx context.Context, creds SethwanCredentials) *SethwanValidation
	Warehouses(ctx context.Context, creds SethwanCredentials) *SethwanWarehouses
	PushShipment(ctx context.Context, creds SethwanCredentials, s *domain.Shipment) *SethwanShipmentPush
	SyncCustomerWarehouse(ctx context.Context, creds SethwanCredentials, u *domain.User) *SethwanWarehouseSync
	SubmitManifest(ctx context.Context, creds SethwanCredentials, m *domain.Manifest, warehouseID string) *SethwanManifestSubmit
}

// SethwanStatus is the integration state reported to the dashboard.
type SethwanStatus struct {
	Integrated       bool   `json:"integrated"`
	CustomerID       string `json:"customerId,omitempty"`
	AccountID        string `json:"accountId,omitempty"`
	DefaultWarehouse string `json:"defaultWarehouse,omitempty"`
	Message          string `json:"message"`
}

// SethwanService manages a customer's integration with the partner platform.
type SethwanService interface {
	TestConnection(ctx context.Context, actor Actor, creds SethwanCredentials) (*SethwanValidation, error)
	Connect(ctx context.Context, actor Actor, creds SethwanCredentials) (*SethwanValidation, error)
	Status(ctx context.Context, actor Actor) (*SethwanStatus, error)
	Warehouses(ctx context.Context, actor Actor) (*SethwanWarehouses, error)
	SetDefaultWarehouse(ctx context.Context, actor Actor, warehouseID string) error
	Disconnect(ctx context.Context, actor Actor) error
}
