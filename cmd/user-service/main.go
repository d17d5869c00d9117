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
	"github.com/commercelab/microshop/internal/core/domain/user"
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
	logger.Info("starting user service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := redis.NewClient(&cfg.Redis)
	defer redisClient.Close()
	go redis.Monitor(ctx, redisClient, logger)

	cache := redis.NewCache(redisClient, cfg.Cache.KeyPrefix)
	store := memstore.NewUserStore(user.Seed())
	userService := services.NewUserService(store, cache, cfg.Cache.TTL, logger)

	server := httpserver.NewServer(&httpserver.ServerConfig{
		Name:         "user-service",
		Host:         "0.0.0.0",
		Port:         cfg.User.Port,
		ReadTimeout:  cfg.Timeouts.ServerRead,
		WriteTimeout: cfg.Timeouts.ServerWrite,
		IdleTimeout:  cfg.Timeouts.ServerIdle,
	}, logger, httpserver.Deps{
		UserService:    userService,
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

	logger.Info("shutting down user service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown: ", err)
	}

	logger.Info("user service exited")
}
