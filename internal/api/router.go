// Package api assembles the HTTP surface: routes, middleware, and the
// central error handler.
package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dnexpress/logistics-api/internal/api/handler"
	"github.com/dnexpress/logistics-api/internal/api/middleware"
	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"

	_ "github.com/dnexpress/logistics-api/docs"
)

// Services bundles the use-case layer the router exposes.
type Services struct {
	Auth      ports.AuthService
	Customers ports.CustomerService
	Shipments ports.ShipmentService
	Status    ports.StatusService
	Inventory ports.InventoryService
	Manifests ports.ManifestService
	Reports   ports.ReportService
	Admin     ports.AdminService
	Sethwan   ports.SethwanService
}

// Options carries the non-service wiring the router needs.
type Options struct {
	JWTSecret string
	Logger    zerolog.Logger

	// Optional external dependencies, for the readiness probe only.
	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("dnexpress"))

	authMW := middleware.Auth(opts.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	authHandler := handler.NewAuthHandler(svc.Auth)
	customerHandler := handler.NewCustomerHandler(svc.Customers)
	shipmentHandler := handler.NewShipmentHandler(svc.Shipments)
	statusHandler := handler.NewStatusHandler(svc.Status)
	inventoryHandler := handler.NewInventoryHandler(svc.Inventory)
	manifestHandler := handler.NewManifestHandler(svc.Manifests)
	reportHandler := handler.NewReportHandler(svc.Reports)
	adminHandler := handler.NewAdminHandler(svc.Admin)
	sethwanHandler := handler.NewSethwanHandler(svc.Sethwan)

	// Root and probes.
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "D.N Express Logistics API",
			"status":  "running",
		})
	})
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.Mongo, opts.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Auth.
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/verify", authHandler.Verify, authMW)
	auth.POST("/logout", authHandler.Logout, authMW)

	// Customers: owner-or-admin on the target account.
	customers := e.Group("/api/customers", authMW)
	customers.GET("/:id", customerHandler.Get, middleware.OwnerOrAdmin("id"))
	customers.PUT("/:id", customerHandler.Update, middleware.OwnerOrAdmin("id"))
	customers.GET("/:id/info", customerHandler.Info, middleware.OwnerOrAdmin("id"))
	customers.DELETE("/:id", customerHandler.Deactivate, middleware.OwnerOrAdmin("id"))

	// Shipments. Tracking is public.
	e.GET("/api/shipments/track/:trackingNumber", shipmentHandler.Track)
	shipments := e.Group("/api/shipments", authMW)
	shipments.POST("", shipmentHandler.Create)
	shipments.GET("", shipmentHandler.List)
	shipments.GET("/:id", shipmentHandler.Get)
	shipments.PUT("/:id", shipmentHandler.Update)

	// Status updates.
	status := e.Group("/api/status", authMW)
	status.PUT("/:shipmentId", statusHandler.Advance)
	status.GET("/:shipmentId/progress", statusHandler.Progress)
	status.GET("/customer/:customerId", statusHandler.ByCustomer)

	// Inventory.
	inventory := e.Group("/api/inventory", authMW)
	inventory.POST("", inventoryHandler.Add)
	inventory.GET("", inventoryHandler.List)
	inventory.GET("/:id", inventoryHandler.Get)
	inventory.PUT("/:id", inventoryHandler.Update)
	inventory.DELETE("/:id", inventoryHandler.Remove)

	// Manifests.
	manifests := e.Group("/api/manifests", authMW)
	manifests.POST("", manifestHandler.Create)
	manifests.GET("", manifestHandler.List)
	manifests.GET("/:id", manifestHandler.Get)
	manifests.PUT("/:id/status", manifestHandler.UpdateStatus)
	manifests.GET("/:id/document", manifestHandler.Document)
	manifests.POST("/:id/submit", manifestHandler.Submit)

	// Reports.
	reports := e.Group("/api/reports", authMW)
	reports.GET("/revenue", reportHandler.Revenue)
	reports.GET("/shipments/delivery", reportHandler.Delivery)
	reports.GET("/inventory/health", reportHandler.Inventory)
	reports.GET("/costs/carriers", reportHandler.CarrierCosts)
	reports.POST("/custom", reportHandler.Custom)

	// Admin.
	admin := e.Group("/api/admin", authMW, adminOnly)
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.Users)
	admin.GET("/users/:id", adminHandler.UserDetail)
	admin.PUT("/users/:id/status", adminHandler.SetUserStatus)
	admin.GET("/reports", adminHandler.Report)

	// Sethwan integration.
	sethwan := e.Group("/api/sethwan", authMW)
	sethwan.POST("/test", sethwanHandler.Test)
	sethwan.POST("/connect", sethwanHandler.Connect)
	sethwan.GET("/status", sethwanHandler.Status)
	sethwan.GET("/warehouses", sethwanHandler.Warehouses)
	sethwan.PUT("/warehouse", sethwanHandler.SetDefaultWarehouse)
	sethwan.DELETE("/disconnect", sethwanHandler.Disconnect)

	return e
}
