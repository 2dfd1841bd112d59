// Command server runs the D.N Express logistics API.
//
// @title        D.N Express Logistics API
// @version      1.0
// @description  Courier and logistics back-office: accounts, shipments, inventory, manifests and partner integration.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dnexpress/logistics-api/internal/api"
	"github.com/dnexpress/logistics-api/internal/core/ports"
	"github.com/dnexpress/logistics-api/internal/core/service"
	"github.com/dnexpress/logistics-api/internal/infrastructure/db/memory"
	"github.com/dnexpress/logistics-api/internal/infrastructure/notify"
	"github.com/dnexpress/logistics-api/internal/infrastructure/persistence"
	"github.com/dnexpress/logistics-api/internal/infrastructure/sethwan"
	"github.com/dnexpress/logistics-api/internal/pkg/config"
	"github.com/dnexpress/logistics-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting logistics api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := memory.NewStore()

	// Optional snapshot persistence.
	var snapshots ports.SnapshotStore = persistence.NoopSnapshotStore{}
	apiOpts := api.Options{JWTSecret: cfg.Auth.JWTSecret, Logger: log}
	if cfg.Mongo.URI != "" {
		client, db, err := persistence.Connect(ctx, persistence.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()
		snapshots = persistence.NewMongoSnapshotStore(db)
		apiOpts.Mongo = db

		snap, err := snapshots.Load(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("snapshot load failed")
		}
		if snap != nil {
			store.Restore(snap)
			log.Info().Time("saved_at", snap.SavedAt).Msg("state restored from snapshot")
		}
	}

	// Optional notification broker.
	var notifier ports.Notifier = notify.NewLogNotifier(log)
	if cfg.Redis.Addr != "" {
		rdb, err := notify.ConnectBroker(ctx, notify.BrokerConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		notifier = notify.NewRedisNotifier(rdb, log)
		apiOpts.Redis = rdb
	}

	users := memory.NewUserRepository(store)
	shipments := memory.NewShipmentRepository(store)
	inventory := memory.NewInventoryRepository(store)
	manifests := memory.NewManifestRepository(store)
	statusUpdates := memory.NewStatusUpdateRepository(store)

	sethwanClient := sethwan.NewClient(cfg.Sethwan.APIURL, log)

	svc := api.Services{
		Auth: service.NewAuthService(users, service.AuthOptions{
			JWTSecret:        cfg.Auth.JWTSecret,
			JWTRefreshSecret: cfg.Auth.JWTRefreshSecret,
			AccessTokenTTL:   cfg.Auth.AccessTokenTTL,
			RefreshTokenTTL:  cfg.Auth.RefreshTokenTTL,
			BcryptCost:       cfg.Auth.BcryptCost,
		}, log),
		Customers: service.NewCustomerService(users, shipments, inventory, log),
		Shipments: service.NewShipmentService(shipments, log),
		Status:    service.NewStatusService(shipments, statusUpdates, notifier, log),
		Inventory: service.NewInventoryService(inventory, log),
		Manifests: service.NewManifestService(manifests, shipments, users, sethwanClient, log),
		Reports:   service.NewReportService(shipments, inventory, log),
		Admin:     service.NewAdminService(users, shipments, inventory, log),
		Sethwan:   service.NewSethwanService(users, sethwanClient, log),
	}

	e := api.NewRouter(svc, apiOpts)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	if err := snapshots.Save(shutdownCtx, store.Snapshot()); err != nil {
		log.Error().Err(err).Msg("snapshot save failed")
	}
}
