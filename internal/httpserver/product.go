package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vaishnavicode/rentagora/internal/service"
	"github.com/vaishnavicode/rentagora/internal/transport"
)

type ProductHTTP struct {
	Svc *service.CatalogService
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseID(c echo.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

func (h *ProductHTTP) List(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), 0)

	items, meta, err := h.Svc.ListProducts(c.Request().Context(), page, size)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, map[string]interface{}{"results": items, "meta": meta})
}

func (h *ProductHTTP) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid product id")
	}

	product, err := h.Svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, product)
}

func (h *ProductHTTP) Create(c echo.Context) error {
	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(c.Request().Context(), currentUser(c), service.ProductParams{
		Name:         req.Name,
		Description:  req.Description,
		Qty:          req.Qty,
		CategoryName: req.CategoryName,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, product)
}

func (h *ProductHTTP) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid product id")
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.UpdateProduct(c.Request().Context(), currentUser(c), id, service.ProductParams{
		Name:         req.Name,
		Description:  req.Description,
		Qty:          req.Qty,
		CategoryName: req.CategoryName,
		Active:       req.Active,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, product)
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid product id")
	}

	if err := h.Svc.DeleteProduct(c.Request().Context(), currentUser(c), id); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, map[string]interface{}{"deleted": id})
}

func (h *ProductHTTP) Like(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid product id")
	}

	liked, likes, err := h.Svc.ToggleLike(c.Request().Context(), currentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}

	action := "unliked"
	if liked {
		action = "liked"
	}
	return respond(c, http.StatusOK, map[string]interface{}{
		"product_id": id,
		"likes":      likes,
		"action":     action,
	})
}

func (h *ProductHTTP) ToggleWishlist(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid product id")
	}

	added, err := h.Svc.ToggleWishlist(c.Request().Context(), currentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}

	action := "removed"
	if added {
		action = "added"
	}
	return respond(c, http.StatusOK, map[string]interface{}{
		"product_id": id,
		"action":     action,
	})
}

func (h *ProductHTTP) ListPrices(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid product id")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), 0)

	prices, meta, err := h.Svc.ListPrices(c.Request().Context(), id, page, size)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, map[string]interface{}{"results": prices, "meta": meta})
}

func (h *ProductHTTP) GetPrice(c echo.Context) error {
	id, ok := parseID(c, "id")
	priceID, ok2 := parseID(c, "priceID")
	if !ok || !ok2 {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid id")
	}

	price, err := h.Svc.GetPrice(c.Request().Context(), id, priceID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, price)
}

func (h *ProductHTTP) CreatePrice(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid product id")
	}

	var req transport.PriceRequest
	if err := c.Bind(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid body")
	}

	price, err := h.Svc.CreatePrice(c.Request().Context(), currentUser(c), id, service.PriceParams{
		Price:        req.Price,
		TimeDuration: req.TimeDuration,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, price)
}

func (h *ProductHTTP) UpdatePrice(c echo.Context) error {
	id, ok := parseID(c, "id")
	priceID, ok2 := parseID(c, "priceID")
	if !ok || !ok2 {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid id")
	}

	var req transport.PriceRequest
	if err := c.Bind(&req); err != nil {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid body")
	}

	price, err := h.Svc.UpdatePrice(c.Request().Context(), currentUser(c), id, priceID, service.PriceParams{
		Price:        req.Price,
		TimeDuration: req.TimeDuration,
		Active:       req.Active,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, price)
}

func (h *ProductHTTP) DeletePrice(c echo.Context) error {
	id, ok := parseID(c, "id")
	priceID, ok2 := parseID(c, "priceID")
	if !ok || !ok2 {
		return respondErrorMessage(c, http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeletePrice(c.Request().Context(), currentUser(c), id, priceID); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, map[string]interface{}{"deleted": priceID})
}
