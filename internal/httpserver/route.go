package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	OrderHandler   *OrderHTTP
	AuthHandler    *AuthHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	products := e.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/info", d.CatalogHandler.ProductInfo)
	products.GET("/:product_id", d.CatalogHandler.GetProduct)

	e.GET("/orders", d.OrderHandler.GetOrders)
	e.GET("/user-orders", d.OrderHandler.GetUserOrders, RequireAuth(d.JWTSecret))

	api := e.Group("/api")
	api.POST("/register", d.AuthHandler.Register)
	api.POST("/token", d.AuthHandler.Token)
	api.POST("/token/refresh", d.AuthHandler.Refresh)
}
