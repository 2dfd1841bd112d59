package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func defaultClaims() jwt.MapClaims {
	now := time.Now().UTC()
	return jwt.MapClaims{
		"sub":     "user_1",
		"email":   "ana@acme.test",
		"role":    domain.RoleCustomer,
		"company": "Acme Imports",
		"iat":     now.Unix(),
		"exp":     now.Add(time.Hour).Unix(),
	}
}

func runAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, ports.Actor, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got ports.Actor
	handler := Auth(testSecret)(func(c echo.Context) error {
		got, _ = c.Get(ActorKey).(ports.Actor)
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return rec, got, err
}

func TestAuth_ValidToken(t *testing.T) {
	token := signTestToken(t, testSecret, defaultClaims())

	rec, actor, err := runAuth(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if actor.ID != "user_1" || actor.Role != domain.RoleCustomer || actor.Email != "ana@acme.test" {
		t.Fatalf("actor not populated from claims: %+v", actor)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, _, err := runAuth(t, "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Basic abc123", "BearerTokenWithoutSpace"} {
		_, _, err := runAuth(t, header)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	token := signTestToken(t, "someone-elses-secret", defaultClaims())

	_, _, err := runAuth(t, "Bearer "+token)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	claims := defaultClaims()
	claims["exp"] = time.Now().UTC().Add(-time.Hour).Unix()
	token := signTestToken(t, testSecret, claims)

	_, _, err := runAuth(t, "Bearer "+token)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_MissingIdentityClaims(t *testing.T) {
	claims := defaultClaims()
	delete(claims, "sub")
	token := signTestToken(t, testSecret, claims)

	_, _, err := runAuth(t, "Bearer "+token)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
