package httpserver

import (
	"net/http"

	"github.com/commercelab/microshop/internal/core/domain/product"
	"github.com/labstack/echo/v4"
)

// Product handlers
func (s *Server) listProducts(c echo.Context) error {
	products, err := s.productSvc.ListProducts(c.Request().Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return respond(c, http.StatusOK, products)
}

func (s *Server) getProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return s.respondError(c, err)
	}
	p, err := s.productSvc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return respond(c, http.StatusOK, p)
}

func (s *Server) createProduct(c echo.Context) error {
	var req product.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return s.respondError(c, bindError(err))
	}
	id, err := s.productSvc.CreateProduct(c.Request().Context(), &req)
	if err != nil {
		return s.respondError(c, err)
	}
	return respond(c, http.StatusCreated, id)
}
