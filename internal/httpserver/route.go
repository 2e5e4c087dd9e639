package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vaishnavicode/rentagora/internal/logging"
)

const (
	RoleVendor   = "vendor"
	RoleCustomer = "customer"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	SearchHandler  *SearchHTTP
	LookupHandler  *LookupHTTP
	AuthMW         *AuthMiddleware
	Logger         *slog.Logger
}

func Register(e *echo.Echo, d *Deps) {
	if d.Logger != nil {
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				req := c.Request()
				ctx := logging.IntoContext(req.Context(), d.Logger)
				c.SetRequest(req.WithContext(ctx))
				return next(c)
			}
		})
	}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.POST("/logout", d.AuthHandler.Logout, d.AuthMW.RequireUser)
	e.GET("/profile", d.AuthHandler.Profile, d.AuthMW.RequireUser)

	e.GET("/statuses", d.LookupHandler.Statuses)
	e.GET("/categories", d.LookupHandler.Categories)
	e.GET("/search", d.SearchHandler.Search)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.List)
	products.GET("/:id", d.ProductHandler.Get)
	products.GET("/:id/prices", d.ProductHandler.ListPrices)
	products.GET("/:id/prices/:priceID", d.ProductHandler.GetPrice)
	products.POST("/:id/like", d.ProductHandler.Like, d.AuthMW.RequireUser)
	products.POST("/:id/wishlist", d.ProductHandler.ToggleWishlist, d.AuthMW.RequireUser)

	vendor := products.Group("", d.AuthMW.RequireUser, d.AuthMW.RequireRole(RoleVendor))
	vendor.POST("", d.ProductHandler.Create)
	vendor.PUT("/:id", d.ProductHandler.Update)
	vendor.DELETE("/:id", d.ProductHandler.Delete)
	vendor.POST("/:id/prices", d.ProductHandler.CreatePrice)
	vendor.PUT("/:id/prices/:priceID", d.ProductHandler.UpdatePrice)
	vendor.DELETE("/:id/prices/:priceID", d.ProductHandler.DeletePrice)

	customer := e.Group("", d.AuthMW.RequireUser, d.AuthMW.RequireRole(RoleCustomer))
	customer.GET("/cart", d.CartHandler.Get)
	customer.POST("/cart/add", d.CartHandler.Add)
	customer.DELETE("/cart/remove/:productID", d.CartHandler.Remove)
	customer.DELETE("/cart/clear", d.CartHandler.Clear)
	customer.POST("/checkout", d.CartHandler.Checkout)

	customer.GET("/orders", d.OrderHandler.List)
	customer.GET("/orders/:id", d.OrderHandler.Get)
	customer.POST("/orders/create", d.OrderHandler.Create)
	customer.POST("/orders/:id/confirm", d.OrderHandler.Confirm)
	customer.POST("/orders/:id/cancel", d.OrderHandler.Cancel)
	customer.POST("/orders/:id/reschedule", d.OrderHandler.Reschedule)
	customer.POST("/orders/:id/return", d.OrderHandler.Return)
	customer.POST("/orders/:id/pickup", d.OrderHandler.PickUp)
	customer.POST("/orders/:id/complete", d.OrderHandler.Complete)
}
