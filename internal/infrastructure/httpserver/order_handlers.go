package httpserver

import (
	"net/http"

	"github.com/commercelab/microshop/internal/core/domain/apperror"
	"github.com/commercelab/microshop/internal/core/domain/order"
	"github.com/labstack/echo/v4"
)

// Order handlers
func (s *Server) createOrder(c echo.Context) error {
	var req order.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return s.respondError(c, bindError(err))
	}
	id, err := s.orderSvc.CreateOrder(c.Request().Context(), &req)
	if err != nil {
		return s.respondError(c, err)
	}
	return respond(c, http.StatusCreated, id)
}

func (s *Server) getOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return s.respondError(c, err)
	}
	o, err := s.orderSvc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return respond(c, http.StatusOK, o)
}

func bindError(err error) error {
	return apperror.Validation("invalid request body: %v", err)
}
