// Package gateway implements the edge router: a static path-prefix
// dispatcher that rewrites /api/<segment> to the owning service and forwards
// the request otherwise untouched. /health is answered locally and never
// forwarded.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	config "github.com/commercelab/microshop/configs"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Server struct {
	echo   *echo.Echo
	config *config.GatewayConfig
	logger *logrus.Logger
}

// routes maps each path prefix to the upstream that owns it.
type route struct {
	prefix   string
	rewrite  string
	upstream string
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	s := &Server{echo: e, config: &cfg.Gateway, logger: logger}

	routes := []route{
		{prefix: "/api/products", rewrite: "/products", upstream: cfg.Product.URL()},
		{prefix: "/api/orders", rewrite: "/orders", upstream: cfg.Order.URL()},
		{prefix: "/api/users", rewrite: "/users", upstream: cfg.User.URL()},
	}
	for _, r := range routes {
		target, err := url.Parse(r.upstream)
		if err != nil {
			return nil, fmt.Errorf("invalid upstream %q for %s: %w", r.upstream, r.prefix, err)
		}
		balancer := middleware.NewRoundRobinBalancer([]*middleware.ProxyTarget{{URL: target}})
		g := e.Group(r.prefix)
		g.Use(middleware.ProxyWithConfig(middleware.ProxyConfig{
			Balancer: balancer,
			Rewrite: map[string]string{
				r.prefix:        r.rewrite,
				r.prefix + "/*": r.rewrite + "/$1",
			},
		}))
		logger.WithFields(logrus.Fields{"prefix": r.prefix, "upstream": r.upstream}).Info("registered upstream")
	}

	e.GET("/health", s.healthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return s, nil
}

// healthCheck reports the gateway's own liveness only; upstream health is
// each service's own concern.
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) Start() error {
	addr := s.config.Addr()
	s.logger.Infof("gateway listening on %s", addr)
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}
