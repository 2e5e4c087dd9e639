package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/vaishnavicode/rentagora/internal/service/search"
	"github.com/vaishnavicode/rentagora/internal/util"
)

type SearchHTTP struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHTTP) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return respondErrorMessage(c, http.StatusBadRequest, "missing query parameter q")
	}
	if h.ES == nil {
		return respondErrorMessage(c, http.StatusServiceUnavailable, "search is not configured")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), 0)
	from, size := util.Calculate(page, size)

	total, products, err := search.Search(c.Request().Context(), h.ES, h.Index, q, from, size)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, map[string]interface{}{"total": total, "products": products})
}
