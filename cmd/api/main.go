package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/anmawex/dashboard-challenge/api/routes"
	"github.com/anmawex/dashboard-challenge/internal/inventory"
	"github.com/anmawex/dashboard-challenge/pkg/catalog"
	"github.com/anmawex/dashboard-challenge/pkg/config"
	"github.com/anmawex/dashboard-challenge/pkg/logger"
	pkgredis "github.com/anmawex/dashboard-challenge/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "dashboard-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "dashboard-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	catalogClient, err := catalog.NewClient(cfg.Catalog, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build catalog client", err)
		os.Exit(1)
	}

	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = pkgredis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	manager, err := inventory.NewManager(catalogClient, logg, cfg.Dashboard.DefaultPageSize)
	if err != nil {
		logg.Error(context.Background(), "failed to build collection manager", err)
		os.Exit(1)
	}

	if cfg.Dashboard.LoadOnStart {
		manager.Load(context.Background())
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting dashboard api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:      cfg,
			Logger:      logg,
			Manager:     manager,
			Catalog:     catalogClient,
			CatalogPing: catalogClient,
			Redis:       redisClient,
			Registry:    registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "dashboard api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
