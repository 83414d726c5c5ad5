package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/bonappetit-bakery/bakery-backend/api/routes"
	"github.com/bonappetit-bakery/bakery-backend/internal/breads"
	"github.com/bonappetit-bakery/bakery-backend/internal/commoncode"
	"github.com/bonappetit-bakery/bakery-backend/internal/delivery"
	"github.com/bonappetit-bakery/bakery-backend/internal/images"
	"github.com/bonappetit-bakery/bakery-backend/internal/orders"
	"github.com/bonappetit-bakery/bakery-backend/internal/pricing"
	"github.com/bonappetit-bakery/bakery-backend/pkg/config"
	"github.com/bonappetit-bakery/bakery-backend/pkg/db"
	"github.com/bonappetit-bakery/bakery-backend/pkg/logger"
	"github.com/bonappetit-bakery/bakery-backend/pkg/migrate"
	"github.com/bonappetit-bakery/bakery-backend/pkg/redis"
	"github.com/bonappetit-bakery/bakery-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap object storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := gcsClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing object storage", err)
		}
	}()

	codeCache, err := commoncode.NewCache(context.Background(), commoncode.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to load common codes", err)
		os.Exit(1)
	}

	imageManager, err := images.NewManager(dbClient, images.NewRepository(dbClient.DB()), gcsClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create image manager", err)
		os.Exit(1)
	}

	breadService, err := breads.NewService(
		dbClient,
		breads.NewRepository(dbClient.DB()),
		images.NewRepository(dbClient.DB()),
		imageManager,
		codeCache,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create bread service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(
		dbClient,
		orders.NewRepository(dbClient.DB()),
		pricing.NewRepository(dbClient.DB()),
		delivery.NewRepository(dbClient.DB()),
		logg,
		cfg.Password,
		cfg.Orders,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Storage:     gcsClient,
			Breads:      breadService,
			Orders:      orderService,
			CommonCodes: codeCache,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
