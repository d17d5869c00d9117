package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/commercelab/microshop/internal/core/domain/apperror"
	"github.com/labstack/echo/v4"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, Response{Success: true, Data: data})
}

// respondError maps the error taxonomy to a status code once, here. Internal
// errors are logged with context and answered with a generic message so no
// backend detail leaks to the client.
func (s *Server) respondError(c echo.Context, err error) error {
	var msg string
	var code int

	var ae *apperror.Error
	errors.As(err, &ae)

	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		code, msg = http.StatusNotFound, ae.Message()
	case apperror.KindValidation:
		code, msg = http.StatusBadRequest, ae.Message()
	case apperror.KindDependencyUnavailable:
		code, msg = http.StatusServiceUnavailable, ae.Message()
	default:
		code, msg = http.StatusInternalServerError, "internal server error"
		s.logger.WithError(err).WithField("path", c.Path()).Error("unexpected error handling request")
	}

	return c.JSON(code, Response{Success: false, Error: msg})
}

// parseID parses a numeric path parameter, rejecting anything non-numeric as
// a validation error.
func parseID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, apperror.Validation("invalid id: %s", raw)
	}
	return id, nil
}
