package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fixpoint-hq/workshop-api/internal/config"
	"github.com/fixpoint-hq/workshop-api/internal/database"
	"github.com/fixpoint-hq/workshop-api/internal/http/handler"
	"github.com/fixpoint-hq/workshop-api/internal/http/router"
	"github.com/fixpoint-hq/workshop-api/internal/logger"
	"github.com/fixpoint-hq/workshop-api/internal/repository"
	"github.com/fixpoint-hq/workshop-api/internal/service"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate schema in development. Production runs versioned
	// migrations through cmd/migrate instead.
	if cfg.App.Environment == "development" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to auto-migrate: %w", err)
		}
		log.Info("Auto-migration completed")
	}

	// Initialize repositories
	clientRepo := repository.NewClientRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	partRepo := repository.NewPartUsageRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	historyRepo := repository.NewStatusHistoryRepository(db)
	sequenceRepo := repository.NewOrderSequenceRepository(db)

	// Initialize services
	numberService := service.NewOrderNumberService(sequenceRepo, log)
	orderService := service.NewOrderService(orderRepo, clientRepo, branchRepo, historyRepo, numberService, log)
	partService := service.NewPartService(partRepo, orderRepo, log)
	transferService := service.NewTransferService(transferRepo, orderRepo, branchRepo, log)
	clientService := service.NewClientService(clientRepo, log)
	branchService := service.NewBranchService(branchRepo, log)
	dashboardService := service.NewDashboardService(orderRepo, log)

	// Initialize handlers
	orderHandler := handler.NewOrderHandler(orderService, log)
	partHandler := handler.NewPartHandler(partService, log)
	transferHandler := handler.NewTransferHandler(transferService, log)
	clientHandler := handler.NewClientHandler(clientService, log)
	branchHandler := handler.NewBranchHandler(branchService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		orderHandler,
		partHandler,
		transferHandler,
		clientHandler,
		branchHandler,
		dashboardHandler,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
