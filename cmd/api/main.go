package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/chocovilla/chocovilla-backend/api/routes"
	"github.com/chocovilla/chocovilla-backend/internal/cart"
	"github.com/chocovilla/chocovilla-backend/internal/catalog"
	"github.com/chocovilla/chocovilla-backend/internal/content"
	"github.com/chocovilla/chocovilla-backend/internal/promo"
	"github.com/chocovilla/chocovilla-backend/internal/stats"
	"github.com/chocovilla/chocovilla-backend/internal/testimonials"
	"github.com/chocovilla/chocovilla-backend/pkg/config"
	"github.com/chocovilla/chocovilla-backend/pkg/logger"
	"github.com/chocovilla/chocovilla-backend/pkg/metrics"
	"github.com/chocovilla/chocovilla-backend/pkg/redis"
	"github.com/chocovilla/chocovilla-backend/pkg/sheets"
	"github.com/chocovilla/chocovilla-backend/pkg/whatsapp"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	sheetMetrics := metrics.NewSheetFetchMetrics(registry)

	sheetsClient, err := sheets.NewClient(cfg.Google.APIKey, cfg.Google.SheetID,
		sheets.WithCache(sheets.NewRedisCache(redisClient, cfg.Cache.SheetTTL)),
		sheets.WithMetrics(sheetMetrics),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to configure sheets client", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(sheetsClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	promoService, err := promo.NewService(sheetsClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create promo service", err)
		os.Exit(1)
	}
	testimonialService, err := testimonials.NewService(sheetsClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create testimonials service", err)
		os.Exit(1)
	}
	statsService, err := stats.NewService(sheetsClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create stats service", err)
		os.Exit(1)
	}

	composer := whatsapp.NewComposer(cfg.WhatsApp.Phone)
	cartStore := cart.NewRedisStore(redisClient, cfg.Cart.SnapshotTTL, logg)
	cartService, err := cart.NewService(cartStore, promoService, composer)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	refresher, err := content.NewRefresher(catalogService, promoService, testimonialService, statsService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create content refresher", err)
		os.Exit(1)
	}
	// Pre-warm the cache; a cold or misconfigured sheet is worth knowing at
	// boot but should not block serving.
	if err := refresher.Refresh(context.Background()); err != nil {
		logg.Warn(context.Background(), "initial content refresh incomplete")
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
		Handler: routes.NewRouter(cfg, logg, redisClient, registry,
			catalogService, promoService, testimonialService, statsService,
			cartService, composer),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
