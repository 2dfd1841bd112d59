package domain

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// Profile holds the customer's own business address details.
type Profile struct {
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zipCode,omitempty"`
	Country      string `json:"country,omitempty"`
	BusinessType string `json:"businessType,omitempty"`
}

// Settings are per-account preferences.
type Settings struct {
	Currency      string `json:"currency"`
	Language      string `json:"language"`
	Timezone      string `json:"timezone"`
	Notifications bool   `json:"notifications"`
}

// DefaultSettings returns the settings assigned to a new account.
func DefaultSettings() Settings {
	return Settings{Currency: "USD", Language: "en", Timezone: "UTC", Notifications: true}
}

// WarehouseAddress is the fixed US forwarding address assigned to a customer
// for consolidating inbound packages. The customer number on the suite line is
// how inbound parcels are matched to an account.
type WarehouseAddress struct {
	CustomerNumber string `json:"customerNumber"`
	RecipientName  string `json:"recipientName"`
	CompanyName    string `json:"companyName"`
	Street1        string `json:"street1"`
	Street2        string `json:"street2"`
	City           string `json:"city"`
	State          string `json:"state"`
	ZipCode        string `json:"zipCode"`
	Country        string `json:"country"`
}

// SethwanLink holds a customer's integration with the Sethwan warehouse
// platform. Zero value means not linked.
type SethwanLink struct {
	CustomerID       string `json:"customerId,omitempty"`
	AccountID        string `json:"accountId,omitempty"`
	APIKey           string `json:"-"`
	DefaultWarehouse string `json:"defaultWarehouse,omitempty"`
	Integrated       bool   `json:"integrated"`
}

// User is a customer (company) account or an admin operator. Accounts are
// never hard-deleted; deactivation flips Status to inactive.
type User struct {
	ID               string           `json:"id"`
	CustomerNumber   string           `json:"customerNumber"`
	CompanyName      string           `json:"companyName"`
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	PasswordHash     string           `json:"-"`
	Role             string           `json:"role"`
	Status           string           `json:"status"`
	Profile          Profile          `json:"profile"`
	Settings         Settings         `json:"settings"`
	WarehouseAddress WarehouseAddress `json:"warehouseAddress"`
	Sethwan          SethwanLink      `json:"sethwan"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// FullName returns the account holder's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// NewWarehouseAddress builds the forwarding address for a customer account.
func NewWarehouseAddress(customerNumber, recipientName string) WarehouseAddress {
	return WarehouseAddress{
		CustomerNumber: customerNumber,
		RecipientName:  recipientName,
		CompanyName:    "D.N Express Logistics",
		Street1:        "4651 NW 72nd Avenue",
		Street2:        "Suite 101 - " + customerNumber,
		City:           "Miami",
		State:          "FL",
		ZipCode:        "33166",
		Country:        "USA",
	}
}
