package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
	"github.com/dnexpress/logistics-api/internal/core/service"
	"github.com/dnexpress/logistics-api/internal/infrastructure/db/memory"
	"github.com/dnexpress/logistics-api/internal/infrastructure/notify"
)

const testJWTSecret = "router-test-secret"

type acceptAllSethwan struct{}

func (acceptAllSethwan) Validate(context.Context, ports.SethwanCredentials) *ports.SethwanValidation {
	return &ports.SethwanValidation{SethwanResult: ports.SethwanResult{Success: true}, Valid: true}
}

func (acceptAllSethwan) Warehouses(context.Context, ports.SethwanCredentials) *ports.SethwanWarehouses {
	return &ports.SethwanWarehouses{SethwanResult: ports.SethwanResult{Success: true}}
}

func (acceptAllSethwan) PushShipment(context.Context, ports.SethwanCredentials, *domain.Shipment) *ports.SethwanShipmentPush {
	return &ports.SethwanShipmentPush{SethwanResult: ports.SethwanResult{Success: true}}
}

func (acceptAllSethwan) SyncCustomerWarehouse(context.Context, ports.SethwanCredentials, *domain.User) *ports.SethwanWarehouseSync {
	return &ports.SethwanWarehouseSync{SethwanResult: ports.SethwanResult{Success: true}, WarehouseID: "wh_1"}
}

func (acceptAllSethwan) SubmitManifest(context.Context, ports.SethwanCredentials, *domain.Manifest, string) *ports.SethwanManifestSubmit {
	return &ports.SethwanManifestSubmit{SethwanResult: ports.SethwanResult{Success: true}, Reference: "STW-REF-1"}
}

// The prometheus middleware registers collectors on the default registry, so
// the router is built once and shared across tests.
var (
	serverOnce sync.Once
	server     http.Handler
	testUsers  *memory.UserRepository
)

func testServer() http.Handler {
	serverOnce.Do(func() {
		log := zerolog.Nop()
		store := memory.NewStore()
		users := memory.NewUserRepository(store)
		testUsers = users
		shipments := memory.NewShipmentRepository(store)
		inventory := memory.NewInventoryRepository(store)
		manifests := memory.NewManifestRepository(store)
		updates := memory.NewStatusUpdateRepository(store)
		client := acceptAllSethwan{}

		svc := Services{
			Auth: service.NewAuthService(users, service.AuthOptions{
				JWTSecret:        testJWTSecret,
				JWTRefreshSecret: testJWTSecret + "-refresh",
				BcryptCost:       4,
			}, log),
			Customers: service.NewCustomerService(users, shipments, inventory, log),
			Shipments: service.NewShipmentService(shipments, log),
			Status:    service.NewStatusService(shipments, updates, notify.NewLogNotifier(log), log),
			Inventory: service.NewInventoryService(inventory, log),
			Manifests: service.NewManifestService(manifests, shipments, users, client, log),
			Reports:   service.NewReportService(shipments, inventory, log),
			Admin:     service.NewAdminService(users, shipments, inventory, log),
			Sethwan:   service.NewSethwanService(users, client, log),
		}
		server = NewRouter(svc, Options{JWTSecret: testJWTSecret, Logger: log})
	})
	return server
}

func doJSON(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echoHeaderContentType, "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, req)

	var payload map[string]interface{}
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get(echoHeaderContentType), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, payload
}

const echoHeaderContentType = "Content-Type"

func registerBody(email string) string {
	return `{
		"companyName": "Acme Imports",
		"firstName": "Ana",
		"lastName": "Diaz",
		"email": "` + email + `",
		"phone": "3055550100",
		"password": "Sup3rSecret"
	}`
}

func registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	rec, payload := doJSON(t, http.MethodPost, "/api/auth/register", "", registerBody(email))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d body %s", rec.Code, rec.Body.String())
	}
	tokens, ok := payload["tokens"].(map[string]interface{})
	if !ok {
		t.Fatalf("tokens missing from register response: %v", payload)
	}
	token, _ := tokens["accessToken"].(string)
	if token == "" {
		t.Fatal("empty access token")
	}
	return token
}

func TestAPI_RegisterAndLogin(t *testing.T) {
	rec, payload := doJSON(t, http.MethodPost, "/api/auth/register", "", registerBody("flow@acme.test"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d body %s", rec.Code, rec.Body.String())
	}
	if success, _ := payload["success"].(bool); !success {
		t.Fatalf("envelope not set: %v", payload)
	}
	user, _ := payload["user"].(map[string]interface{})
	if number, _ := user["customerNumber"].(string); !strings.HasPrefix(number, "DNX-") {
		t.Fatalf("customer number missing: %v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatal("password hash leaked in response")
	}

	rec, _ = doJSON(t, http.MethodPost, "/api/auth/register", "", registerBody("flow@acme.test"))
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: status %d, want 409", rec.Code)
	}

	rec, _ = doJSON(t, http.MethodPost, "/api/auth/login", "", `{"email":"flow@acme.test","password":"WrongPass1"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: status %d, want 401", rec.Code)
	}

	rec, payload = doJSON(t, http.MethodPost, "/api/auth/login", "", `{"email":"flow@acme.test","password":"Sup3rSecret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d body %s", rec.Code, rec.Body.String())
	}
	tokens, _ := payload["tokens"].(map[string]interface{})
	refresh, _ := tokens["refreshToken"].(string)

	rec, _ = doJSON(t, http.MethodPost, "/api/auth/refresh", "", `{"refreshToken":"`+refresh+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestAPI_ValidationErrors(t *testing.T) {
	rec, payload := doJSON(t, http.MethodPost, "/api/auth/register", "", `{"email":"not-an-email"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	if success, _ := payload["success"].(bool); success {
		t.Fatalf("error envelope must carry success=false: %v", payload)
	}
}

func TestAPI_AuthRequired(t *testing.T) {
	for _, path := range []string{"/api/shipments", "/api/inventory", "/api/admin/dashboard"} {
		rec, _ := doJSON(t, http.MethodGet, path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status %d, want 401", path, rec.Code)
		}
	}
}

func TestAPI_LoginDeactivatedAccount(t *testing.T) {
	registerAndLogin(t, "dormant@acme.test")

	user, err := testUsers.ByEmail(context.Background(), "dormant@acme.test")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	inactive := domain.UserInactive
	if _, err := testUsers.Update(context.Background(), user.ID, ports.UserPatch{Status: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	rec, payload := doJSON(t, http.MethodPost, "/api/auth/login", "",
		`{"email":"dormant@acme.test","password":"Sup3rSecret"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403 (body %s)", rec.Code, rec.Body.String())
	}
	if msg, _ := payload["message"].(string); !strings.Contains(msg, "not active") {
		t.Fatalf("message %q should say account is not active", msg)
	}
}

func TestAPI_AdminRoutesRejectCustomers(t *testing.T) {
	token := registerAndLogin(t, "rbac@acme.test")

	rec, _ := doJSON(t, http.MethodGet, "/api/admin/dashboard", token, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", rec.Code)
	}
}

func TestAPI_ShipmentLifecycle(t *testing.T) {
	token := registerAndLogin(t, "ship@acme.test")

	body := `{
		"origin": {"address": "1 Main St", "city": "Miami", "state": "FL", "country": "USA"},
		"destination": {"address": "7 High St", "city": "Kingston", "country": "Jamaica"},
		"package": {"weight": 4.5},
		"service": "express",
		"rate": "42.50"
	}`
	rec, payload := doJSON(t, http.MethodPost, "/api/shipments", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", rec.Code, rec.Body.String())
	}
	shipment, _ := payload["shipment"].(map[string]interface{})
	tracking, _ := shipment["trackingNumber"].(string)
	if !strings.HasPrefix(tracking, "DNE") {
		t.Fatalf("tracking number missing: %v", shipment)
	}
	id, _ := shipment["id"].(string)

	// Public tracking needs no token and hides street addresses.
	rec, payload = doJSON(t, http.MethodGet, "/api/shipments/track/"+tracking, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("track: status %d body %s", rec.Code, rec.Body.String())
	}
	view, _ := payload["tracking"].(map[string]interface{})
	if city, _ := view["originCity"].(string); city != "Miami" {
		t.Fatalf("unexpected tracking view: %v", view)
	}
	if _, leaked := view["origin"]; leaked {
		t.Fatal("full address leaked in public view")
	}

	rec, _ = doJSON(t, http.MethodGet, "/api/shipments/track/DNE000000000", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown tracking: status %d, want 404", rec.Code)
	}

	// Advance to pickup, then a rewind must map to 422.
	rec, _ = doJSON(t, http.MethodPut, "/api/status/"+id, token, `{"status":"in-transit"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("advance: status %d body %s", rec.Code, rec.Body.String())
	}
	rec, _ = doJSON(t, http.MethodPut, "/api/status/"+id, token, `{"status":"pickup"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("rewind: status %d, want 422", rec.Code)
	}

	// Locked after leaving pending.
	rec, _ = doJSON(t, http.MethodPut, "/api/shipments/"+id, token, `{"notes":"too late"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("locked update: status %d, want 422", rec.Code)
	}
}

func TestAPI_OwnershipAcrossAccounts(t *testing.T) {
	ownerToken := registerAndLogin(t, "owner@acme.test")
	strangerToken := registerAndLogin(t, "stranger@acme.test")

	body := `{
		"origin": {"address": "1 Main St", "city": "Miami", "country": "USA"},
		"destination": {"address": "7 High St", "city": "Kingston", "country": "Jamaica"},
		"package": {"weight": 2},
		"service": "standard",
		"rate": "15.00"
	}`
	rec, payload := doJSON(t, http.MethodPost, "/api/shipments", ownerToken, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", rec.Code, rec.Body.String())
	}
	shipment, _ := payload["shipment"].(map[string]interface{})
	id, _ := shipment["id"].(string)

	rec, _ = doJSON(t, http.MethodGet, "/api/shipments/"+id, strangerToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign get: status %d, want 403", rec.Code)
	}
}

func TestAPI_HealthAndRoot(t *testing.T) {
	rec, _ := doJSON(t, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health: status %d", rec.Code)
	}
	rec, payload := doJSON(t, http.MethodGet, "/", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("root: status %d", rec.Code)
	}
	if name, _ := payload["service"].(string); name == "" {
		t.Fatalf("service banner missing: %v", payload)
	}
}
