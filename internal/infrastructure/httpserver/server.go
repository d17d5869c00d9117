package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/commercelab/microshop/internal/core/ports"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	// Name identifies the service in logs and health payloads.
	Name         string
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Deps carries the services a server exposes. Each binary wires only its own
// service; routes are registered for the non-nil ones.
type Deps struct {
	ProductService ports.ProductService
	OrderService   ports.OrderService
	UserService    ports.UserService
	HealthCheckers []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	productSvc     ports.ProductService
	orderSvc       ports.OrderService
	userSvc        ports.UserService
	healthCheckers []ports.HealthChecker
}

func NewServer(config *ServerConfig, logger *logrus.Logger, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true

	server := &Server{
		echo:           e,
		config:         config,
		logger:         logger,
		productSvc:     deps.ProductService,
		orderSvc:       deps.OrderService,
		userSvc:        deps.UserService,
		healthCheckers: deps.HealthCheckers,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Logger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(s.collectHTTPMetrics())
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)

	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	s.logger.Infof("starting %s on %s", s.config.Name, addr)
	return s.echo.StartServer(server)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}
