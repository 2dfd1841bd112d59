package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
	"github.com/dnexpress/logistics-api/internal/infrastructure/db/memory"
)

func newAuthService() (*AuthService, *memory.UserRepository) {
	users := memory.NewUserRepository(memory.NewStore())
	svc := NewAuthService(users, AuthOptions{
		JWTSecret:        "test-secret",
		JWTRefreshSecret: "test-refresh-secret",
		BcryptCost:       4,
	}, zerolog.Nop())
	return svc, users
}

func registerInput(email string) ports.RegisterInput {
	return ports.RegisterInput{
		CompanyName: "Acme Imports",
		FirstName:   "Ana",
		LastName:    "Diaz",
		Email:       email,
		Phone:       "3055550100",
		Password:    "Sup3rSecret",
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := newAuthService()

	user, pair, err := svc.Register(context.Background(), registerInput("ana@acme.test"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("registration must produce customer accounts, got %q", user.Role)
	}
	if user.PasswordHash == "Sup3rSecret" {
		t.Fatal("password stored in plaintext")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("token pair not issued")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatal("access and refresh tokens must differ")
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()

	if _, _, err := svc.Register(context.Background(), registerInput("ana@acme.test")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := svc.Register(context.Background(), registerInput("ana@acme.test"))
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_RegisterPasswordPolicy(t *testing.T) {
	svc, _ := newAuthService()

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1"},
		{"no uppercase", "supersecret1"},
		{"no lowercase", "SUPERSECRET1"},
		{"no digit", "SuperSecret"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := registerInput("weak@acme.test")
			in.Password = tc.password
			_, _, err := svc.Register(context.Background(), in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestAuthService_RegisterInvalidPhone(t *testing.T) {
	svc, _ := newAuthService()

	in := registerInput("ana@acme.test")
	in.Phone = "555"
	if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthService()
	if _, _, err := svc.Register(context.Background(), registerInput("ana@acme.test")); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, pair, err := svc.Login(context.Background(), "ana@acme.test", "Sup3rSecret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Email != "ana@acme.test" || pair.AccessToken == "" {
		t.Fatal("login did not return user and tokens")
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService()
	if _, _, err := svc.Register(context.Background(), registerInput("ana@acme.test")); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "ana@acme.test", "WrongPass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@acme.test", "Sup3rSecret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email must map to ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginInactiveAccount(t *testing.T) {
	svc, users := newAuthService()
	user, _, err := svc.Register(context.Background(), registerInput("ana@acme.test"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	inactive := domain.UserInactive
	if _, err := users.Update(context.Background(), user.ID, ports.UserPatch{Status: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "ana@acme.test", "Sup3rSecret"); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, _ := newAuthService()
	_, pair, err := svc.Register(context.Background(), registerInput("ana@acme.test"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatal("no access token issued")
	}
	if refreshed.RefreshToken != pair.RefreshToken {
		t.Fatal("refresh token must be returned unchanged")
	}
}

func TestAuthService_RefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newAuthService()
	_, pair, err := svc.Register(context.Background(), registerInput("ana@acme.test"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("access token must not pass refresh, got %v", err)
	}
}

func TestAuthService_Verify(t *testing.T) {
	svc, users := newAuthService()
	user, _, err := svc.Register(context.Background(), registerInput("ana@acme.test"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := svc.Verify(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Email != user.Email {
		t.Fatalf("verify returned %q, want %q", got.Email, user.Email)
	}

	inactive := domain.UserInactive
	if _, err := users.Update(context.Background(), user.ID, ports.UserPatch{Status: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.Verify(context.Background(), user.ID); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("inactive account must not verify, got %v", err)
	}
}
