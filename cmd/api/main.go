package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/planmytrip/backend/internal/adapters/http"
	natsadapter "github.com/planmytrip/backend/internal/adapters/nats"
	"github.com/planmytrip/backend/internal/adapters/osm"
	"github.com/planmytrip/backend/internal/adapters/postgres"
	"github.com/planmytrip/backend/internal/adapters/valkey"
	"github.com/planmytrip/backend/internal/core/ports"
	"github.com/planmytrip/backend/internal/core/usecases"
	"github.com/planmytrip/backend/internal/pkg/config"
	"github.com/planmytrip/backend/internal/pkg/logging"
	"github.com/planmytrip/backend/internal/pkg/metrics"
	"github.com/planmytrip/backend/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("planmytrip-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Pool gauges for Prometheus
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			case <-ctx.Done():
				return
			}
		}
	}()

	// Cache. Drafts live here, so a missing cache is fatal.
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		log.Fatalf("valkey: %v", err)
	}
	defer cache.Close()

	// NATS. Event publishing is best-effort, so the server starts
	// without it.
	var events ports.EventPublisher
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer publisher.Close()
		events = publisher
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Repos
	tripRepo := postgres.NewTripRepo(db)
	userRepo := postgres.NewUserRepo(db)

	// OSM clients
	geocoder := osm.NewNominatimClient(cfg.Geo.NominatimURL)
	discovery := osm.NewOverpassClient(cfg.Geo.OverpassURL)
	roadRouter := osm.NewOSRMClient(cfg.Geo.OSRMURL)

	// Use cases
	authSvc := usecases.NewAuthService(userRepo, []byte(cfg.Auth.JWTSecret))
	plannerSvc := usecases.NewPlannerService(geocoder)
	tripSvc := usecases.NewTripService(tripRepo, events)
	nearbySvc := usecases.NewNearbyService(geocoder, discovery, cache)
	draftSvc := usecases.NewDraftService(cache)

	deps := &http.Dependencies{
		Auth:    authSvc,
		Planner: plannerSvc,
		Trips:   tripSvc,
		Nearby:  nearbySvc,
		Drafts:  draftSvc,
		Router:  roadRouter,
		NATS:    natsConn,
		DB:      db,
		Cache:   cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "PlanMyTrip API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
