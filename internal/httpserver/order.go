package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vaishnavicode/rentagora/internal/models"
	"github.com/vaishnavicode/rentagora/internal/service"
	"github.com/vaishnavicode/rentagora/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) List(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), 0)

	orders, meta, err := h.Svc.List(c.Request().Context(), currentUser(c).ID, page, size)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, map[string]interface{}{"results": orders, "meta": meta})
}

func (h *OrderHTTP) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.Get(c.Request().Context(), currentUser(c).ID, id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, order)
}

func (h *OrderHTTP) Create(c echo.Context) error {
	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid body")
	}

	order, payment, err := h.Svc.Create(
		c.Request().Context(),
		currentUser(c).ID,
		req.ProductID,
		timeOrZero(req.TimestampFrom),
		timeOrZero(req.TimestampTo),
	)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, map[string]interface{}{"order": order, "payment": payment})
}

func (h *OrderHTTP) Confirm(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid order id")
	}

	order, delivery, err := h.Svc.Confirm(c.Request().Context(), currentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, map[string]interface{}{"order": order, "delivery": delivery})
}

func (h *OrderHTTP) Cancel(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid order id")
	}

	order, deliveriesUpdated, err := h.Svc.Cancel(c.Request().Context(), currentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, map[string]interface{}{
		"order_id":           order.ID,
		"status_id":          order.StatusID,
		"deliveries_updated": deliveriesUpdated,
	})
}

func (h *OrderHTTP) Reschedule(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid order id")
	}

	var req transport.RescheduleRequest
	if err := c.Bind(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.Reschedule(
		c.Request().Context(),
		currentUser(c),
		id,
		timeOrZero(req.TimestampFrom),
		timeOrZero(req.TimestampTo),
	)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, order)
}

func (h *OrderHTTP) Return(c echo.Context) error {
	return h.singleTransition(c, h.Svc.Return)
}

func (h *OrderHTTP) PickUp(c echo.Context) error {
	return h.singleTransition(c, h.Svc.PickUp)
}

func (h *OrderHTTP) Complete(c echo.Context) error {
	return h.singleTransition(c, h.Svc.Complete)
}

type transitionFunc func(ctx context.Context, caller *models.User, orderID uint) (*models.Order, error)

func (h *OrderHTTP) singleTransition(c echo.Context, fn transitionFunc) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid order id")
	}

	order, err := fn(c.Request().Context(), currentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, order)
}
