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
	"github.com/commercelab/microshop/internal/infrastructure/gateway"
	"github.com/commercelab/microshop/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}

	logger := telemetry.NewLogger(cfg.Log)
	logger.Info("starting gateway")

	server, err := gateway.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build gateway: ", err)
	}

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start gateway: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down gateway...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("gateway forced to shutdown: ", err)
	}

	logger.Info("gateway exited")
}
