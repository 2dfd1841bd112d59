package ports

import (
	"context"

	"github.com/dnexpress/logistics-api/internal/core/domain"
)

// Actor identifies the authenticated caller, extracted from the access token.
type Actor struct {
	ID          string
	Email       string
	Role        string
	CompanyName string
}

// Admin reports whether the actor holds the admin role.
func (a Actor) Admin() bool { return a.Role == domain.RoleAdmin }

// Owns reports whether the actor may act on a resource owned by ownerID.
func (a Actor) Owns(ownerID string) bool { return a.ID == ownerID || a.Admin() }

// TokenPair is a short-lived access token plus a longer-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterInput carries everything needed to open a customer account.
type RegisterInput struct {
	CompanyName  string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Password     string
	Address      string
	City         string
	State        string
	ZipCode      string
	Country      string
	BusinessType string
}

// AuthService implements registration, login and token refresh.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, TokenPair, error)
	// Refresh exchanges a valid refresh token for a new access token; the
	// presented refresh token stays valid and is returned unchanged.
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	// Verify resolves the active user behind an authenticated request.
	Verify(ctx context.Context, userID string) (*domain.User, error)
}
