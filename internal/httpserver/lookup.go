package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vaishnavicode/rentagora/internal/repo"
)

type LookupHTTP struct {
	Repo *repo.GormRepo
}

func (h *LookupHTTP) Statuses(c echo.Context) error {
	statuses, err := h.Repo.AllStatuses(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, statuses)
}

func (h *LookupHTTP) Categories(c echo.Context) error {
	categories, err := h.Repo.AllCategories(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, categories)
}
