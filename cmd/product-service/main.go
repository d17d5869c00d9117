package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/commercelab/microshop/configs"
	"github.com/commercelab/microshop/internal/application/services"
	"github.com/commercelab/microshop/internal/core/domain/product"
	"github.com/commercelab/microshop/internal/core/ports"
	"github.com/commercelab/microshop/internal/infrastructure/health"
	"github.com/commercelab/microshop/internal/infrastructure/httpserver"
	"github.com/commercelab/microshop/internal/infrastructure/memstore"
	"github.com/commercelab/microshop/internal/infrastructure/redis"
	"github.com/commercelab/microshop/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}

	logger := telemetry.NewLogger(cfg.Log)
	logger.Info("starting product service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cache is optional at runtime: the store keeps serving if it is down.
	redisClient := redis.NewClient(&cfg.Redis)
	defer redisClient.Close()
	go redis.Monitor(ctx, redisClient, logger)

	cache := redis.NewCache(redisClient, cfg.Cache.KeyPrefix)
	store := memstore.NewProductStore(product.Seed())
	productService := services.NewProductService(store, cache, cfg.Cache.TTL, logger)

	server := httpserver.NewServer(&httpserver.ServerConfig{
		Name:         "product-service",
		Host:         "0.0.0.0",
		Port:         cfg.Product.Port,
		ReadTimeout:  cfg.Timeouts.ServerRead,
		WriteTimeout: cfg.Timeouts.ServerWrite,
		IdleTimeout:  cfg.Timeouts.ServerIdle,
	}, logger, httpserver.Deps{
		ProductService: productService,
		HealthCheckers: []ports.HealthChecker{health.NewRedisHealthChecker(redisClient)},
	})

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down product service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown: ", err)
	}

	logger.Info("product service exited")
}
