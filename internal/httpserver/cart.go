package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vaishnavicode/rentagora/internal/service"
	"github.com/vaishnavicode/rentagora/internal/transport"
)

type CartHTTP struct {
	Svc    *service.CartService
	Orders *service.OrderService
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func (h *CartHTTP) Get(c echo.Context) error {
	lines, err := h.Svc.List(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, lines)
}

func (h *CartHTTP) Add(c echo.Context) error {
	var req transport.CartAddRequest
	if err := c.Bind(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.Add(
		c.Request().Context(),
		currentUser(c).ID,
		req.ProductID,
		req.Quantity,
		timeOrZero(req.TimestampFrom),
		timeOrZero(req.TimestampTo),
	)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, item)
}

func (h *CartHTTP) Remove(c echo.Context) error {
	productID, ok := parseID(c, "productID")
	if !ok {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid product id")
	}

	if err := h.Svc.Remove(c.Request().Context(), currentUser(c).ID, productID); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, map[string]interface{}{"removed": productID})
}

func (h *CartHTTP) Clear(c echo.Context) error {
	if err := h.Svc.Clear(c.Request().Context(), currentUser(c).ID); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, map[string]string{"message": "cart cleared"})
}

func (h *CartHTTP) Checkout(c echo.Context) error {
	orders, err := h.Orders.Checkout(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, map[string]interface{}{"orders": orders})
}
