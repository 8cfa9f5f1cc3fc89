// Package main is the entry point for the bakestock API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bakestock/internal/config"
	"bakestock/internal/domain/catalogs/product"
	"bakestock/internal/domain/dispatch"
	"bakestock/internal/domain/lots"
	"bakestock/internal/domain/reports"
	v1 "bakestock/internal/infrastructure/http/v1"
	"bakestock/internal/infrastructure/storage/postgres"
	"bakestock/internal/infrastructure/storage/postgres/catalog_repo"
	"bakestock/internal/infrastructure/storage/postgres/register_repo"
	"bakestock/internal/scheduler"
	"bakestock/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting bakestock server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.DSN)
	if cfg.Database.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Database.MaxConns
	}
	if cfg.Database.MinConns > 0 {
		poolCfg.MinConns = cfg.Database.MinConns
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txm := postgres.NewTxManager(pool)

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(txm)
	lotRepo := catalog_repo.NewLotRepo(txm)
	dispatchRepo := register_repo.NewDispatchRepo(txm)

	// --- Services ---
	productService := product.NewService(productRepo)
	lotService := lots.NewService(lotRepo)
	dispatchService := dispatch.NewService(lotRepo, dispatchRepo, txm, dispatch.Config{
		AllowUncheckedAmend: cfg.Dispatch.AllowUncheckedAmend,
	})
	reportsService := reports.NewService(lotRepo, dispatchRepo)

	// --- Scheduler ---
	if cfg.Scheduler.Enabled {
		sched := scheduler.NewScheduler(cfg.Scheduler, lotService, dispatchService, reportsService)
		if err := sched.Start(); err != nil {
			log.Fatalw("failed to start scheduler", "error", err)
		}
		defer sched.Stop()
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:            pool,
		Logger:          log,
		ProductService:  productService,
		LotService:      lotService,
		DispatchService: dispatchService,
		ReportsService:  reportsService,
		CORSOrigins:     cfg.Server.CORSOrigins,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
