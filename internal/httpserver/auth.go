package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vaishnavicode/rentagora/internal/logging"
	"github.com/vaishnavicode/rentagora/internal/service"
	"github.com/vaishnavicode/rentagora/internal/transport"
)

type AuthHTTP struct {
	Svc     *service.AuthService
	Catalog *service.CatalogService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return respondErrorMessage(c, http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, service.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Contact:  req.Contact,
		Address:  req.Address,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusCreated, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return respondErrorMessage(c, http.StatusBadRequest, "invalid body")
	}

	result, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, transport.LoginResponse{
		UserID:      result.User.ID,
		Email:       result.User.Email,
		Name:        result.User.Name,
		AccessToken: result.Token,
		TokenExpiry: result.ExpiresAt,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.Svc.Logout(ctx, currentToken(c)); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, map[string]string{"message": "logged out"})
}

// Profile returns the caller plus a page of their wishlist.
func (h *AuthHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), 0)

	wishlist, meta, err := h.Catalog.Wishlist(ctx, user.ID, page, size)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, map[string]interface{}{
		"user": user,
		"wishlist": map[string]interface{}{
			"results": wishlist,
			"meta":    meta,
		},
	})
}
