package httpserver

import (
	"net/http"

	"github.com/commercelab/microshop/internal/core/domain/user"
	"github.com/labstack/echo/v4"
)

// User handlers
func (s *Server) getUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return s.respondError(c, err)
	}
	u, err := s.userSvc.GetUser(c.Request().Context(), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return respond(c, http.StatusOK, u)
}

func (s *Server) createUser(c echo.Context) error {
	var req user.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return s.respondError(c, bindError(err))
	}
	id, err := s.userSvc.CreateUser(c.Request().Context(), &req)
	if err != nil {
		return s.respondError(c, err)
	}
	return respond(c, http.StatusCreated, id)
}
