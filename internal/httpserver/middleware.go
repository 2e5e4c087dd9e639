package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vaishnavicode/rentagora/internal/models"
	"github.com/vaishnavicode/rentagora/internal/service"
)

const (
	userContextKey  = "user"
	tokenContextKey = "token"
)

type AuthMiddleware struct {
	Auth *service.AuthService
}

// RequireUser authenticates the Bearer token: signature AND an active DB
// record must both check out before the request reaches a handler.
func (m *AuthMiddleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return respondErrorMessage(c, http.StatusUnauthorized, "no token provided")
		}
		if !strings.HasPrefix(header, "Bearer ") {
			return respondErrorMessage(c, http.StatusUnauthorized, "invalid token format, expected 'Bearer <token>'")
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		user, err := m.Auth.Authenticate(c.Request().Context(), raw)
		if err != nil {
			return respondErrorMessage(c, http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(userContextKey, user)
		c.Set(tokenContextKey, raw)
		return next(c)
	}
}

// RequireRole gates an endpoint on the caller's role. Runs after
// RequireUser.
func (m *AuthMiddleware) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := currentUser(c)
			if user == nil {
				return respondErrorMessage(c, http.StatusUnauthorized, "no token provided")
			}
			if !strings.EqualFold(user.Role.Name, role) {
				return respondErrorMessage(c, http.StatusForbidden, "permission denied")
			}
			return next(c)
		}
	}
}

func currentUser(c echo.Context) *models.User {
	if user, ok := c.Get(userContextKey).(*models.User); ok {
		return user
	}
	return nil
}

func currentToken(c echo.Context) string {
	if token, ok := c.Get(tokenContextKey).(string); ok {
		return token
	}
	return ""
}
