package domain

import "errors"

// Sentinel errors shared across services; the API error handler maps each to
// its HTTP status code.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrShipmentNotFound  = errors.New("shipment not found")
	ErrInventoryNotFound = errors.New("inventory item not found")
	ErrManifestNotFound  = errors.New("manifest not found")

	ErrEmailTaken = errors.New("email already registered")
	ErrSKUTaken   = errors.New("sku already exists")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is not active")
	ErrForbidden          = errors.New("access forbidden")

	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrShipmentLocked    = errors.New("shipment can no longer be modified")

	ErrNotIntegrated = errors.New("sethwan integration not active")

	ErrValidation = errors.New("validation failed")
)
