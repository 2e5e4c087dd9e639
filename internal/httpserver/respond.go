package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vaishnavicode/rentagora/internal/logging"
	"github.com/vaishnavicode/rentagora/internal/service"
)

// Envelope is the fixed response shape of every endpoint.
type Envelope struct {
	IsSuccess bool        `json:"isSuccess"`
	Data      interface{} `json:"data"`
	Error     interface{} `json:"error"`
}

func respond(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, Envelope{IsSuccess: true, Data: data})
}

func respondErrorMessage(c echo.Context, code int, msg string) error {
	return c.JSON(code, Envelope{IsSuccess: false, Error: msg})
}

// respondError maps the service error taxonomy onto status codes. Anything
// outside the taxonomy is logged and reported as a plain internal error so
// raw error text never reaches a client.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return respondErrorMessage(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return respondErrorMessage(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return respondErrorMessage(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return respondErrorMessage(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		return respondErrorMessage(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPrecondition):
		return respondErrorMessage(c, http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, service.ErrMisconfigured):
		return respondErrorMessage(c, http.StatusInternalServerError, err.Error())
	default:
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "error", err)
		return respondErrorMessage(c, http.StatusInternalServerError, "internal error")
	}
}
