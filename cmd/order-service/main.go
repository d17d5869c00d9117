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
	"github.com/commercelab/microshop/internal/core/domain/order"
	"github.com/commercelab/microshop/internal/core/ports"
	"github.com/commercelab/microshop/internal/infrastructure/health"
	"github.com/commercelab/microshop/internal/infrastructure/httpserver"
	"github.com/commercelab/microshop/internal/infrastructure/memstore"
	"github.com/commercelab/microshop/internal/infrastructure/rabbitmq"
	"github.com/commercelab/microshop/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}

	logger := telemetry.NewLogger(cfg.Log)
	logger.Info("starting order service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The publisher connects in the background; order creation answers 503
	// until the connection is ready instead of failing startup.
	publisher := rabbitmq.NewPublisher(cfg.Broker.URL, []string{order.QueueCreated, order.QueueProcessed}, logger)
	go publisher.Run(ctx)
	defer publisher.Close()

	store := memstore.NewOrderStore(order.Seed())
	orderService := services.NewOrderService(store, publisher, cfg.Broker.PublishTimeout, logger)

	server := httpserver.NewServer(&httpserver.ServerConfig{
		Name:         "order-service",
		Host:         "0.0.0.0",
		Port:         cfg.Order.Port,
		ReadTimeout:  cfg.Timeouts.ServerRead,
		WriteTimeout: cfg.Timeouts.ServerWrite,
		IdleTimeout:  cfg.Timeouts.ServerIdle,
	}, logger, httpserver.Deps{
		OrderService:   orderService,
		HealthCheckers: []ports.HealthChecker{health.NewBrokerHealthChecker(publisher)},
	})

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down order service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown: ", err)
	}

	logger.Info("order service exited")
}
