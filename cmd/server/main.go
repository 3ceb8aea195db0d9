package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightboard-service/internal/infrastructure/config"
	natshub "flightboard-service/internal/infrastructure/hub"
	"flightboard-service/internal/infrastructure/persistence"
	localhub "flightboard-service/internal/interface/hub"
	"flightboard-service/internal/interface/httpapi"
	flightRepo "flightboard-service/internal/interface/repository"
	userRepo "flightboard-service/internal/interface/repository"
	"flightboard-service/internal/usecase"
	"flightboard-service/pkg/logger"
	"flightboard-service/pkg/metrics"

	domainrepo "flightboard-service/internal/domain/repository"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("Starting Flightboard Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection for user accounts
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up PostgreSQL connection for flights
	log.Info("Connecting to PostgreSQL")
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI, &flightRepo.Flights{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	flightRepository := flightRepo.NewGormFlightRepository(gormDB)
	userRepository := userRepo.NewMongoUserRepository(db)

	// Set up metrics
	appMetrics := metrics.NewMetrics("flightboard")

	// Set up the hub: registry, connections and, when NATS is configured,
	// the cross-instance relay
	registry := localhub.NewSubscriptionRegistry()
	boardHub := localhub.NewHub(registry, log, cfg.HubBuffer)

	var broadcaster domainrepo.Broadcaster
	var natsBroadcaster *natshub.NatsBroadcaster
	var relay *natshub.Relay
	if cfg.NatsURL != "" {
		log.Info("Connecting to NATS", "url", cfg.NatsURL)
		natsBroadcaster, err = natshub.NewNatsBroadcaster(cfg.NatsURL, log)
		if err != nil {
			log.Fatal("Failed to connect to NATS", "error", err)
		}
		relay = natshub.NewRelay(natsBroadcaster, boardHub, log)
		if err := relay.Start(); err != nil {
			log.Fatal("Failed to start broadcast relay", "error", err)
		}
		broadcaster = natsBroadcaster
	} else {
		log.Info("No NATS url configured, using in-process fan-out")
		broadcaster = localhub.NewLocalBroadcaster(boardHub)
	}

	// Set up usecases
	notifier := usecase.NewChangeNotifier(broadcaster, log, appMetrics, cfg.BroadcastTimeout)
	flightService := usecase.NewFlightService(flightRepository, notifier, log, appMetrics)
	userService := usecase.NewUserService(userRepository, log)

	// Set up HTTP server
	handler := httpapi.NewHandler(flightService, userService, boardHub, log, appMetrics)
	router := httpapi.NewRouter(handler)

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		ReadTimeout: cfg.ReadTimeout,
		// SSE connections stay open indefinitely, so no write timeout
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	boardHub.Close()
	if relay != nil {
		relay.Stop()
	}
	if natsBroadcaster != nil {
		natsBroadcaster.Close()
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Flightboard Service stopped")
}
