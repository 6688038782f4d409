package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopstack/storefront-api/internal/api"
	mongodb "github.com/shopstack/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/shopstack/storefront-api/internal/infrastructure/db/redis"
	"github.com/shopstack/storefront-api/internal/infrastructure/payment"
	"github.com/shopstack/storefront-api/internal/infrastructure/storage"
	"github.com/shopstack/storefront-api/internal/pkg/config"
	"github.com/shopstack/storefront-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Storefront API
// @version      1.0
// @description  E-commerce storefront backend: auth, cart, coupons, checkout and analytics.
// @BasePath     /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"users":    mongodb.NewUserRepository(db),
		"products": mongodb.NewProductRepository(db),
		"coupons":  mongodb.NewCouponRepository(db),
		"orders":   mongodb.NewOrderRepository(db),
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	gateway := payment.NewStripeGateway(cfg.Stripe.SecretKey)

	images, err := storage.NewCloudinaryStore(cfg.Cloudinary.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("cloudinary initialisation failed")
	}

	e := api.NewRouter(cfg, db, rdb, gateway, images, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
