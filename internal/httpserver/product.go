package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/avelinov/shop_api/internal/logging"
	"github.com/avelinov/shop_api/internal/service"
	"github.com/avelinov/shop_api/internal/transport"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	items, err := h.Svc.GetProducts(ctx)
	if err != nil {
		l.Error("get_products_error", "status", 500, "reason", "cannot get products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get products")
	}

	l.Info("get_products_success", "count", len(items))
	return c.JSON(http.StatusOK, transport.NewProductListResponse(items))
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	idParam := c.Param("product_id")
	id, err := strconv.Atoi(idParam)
	if err != nil || id < 0 {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	product, err := h.Svc.GetProduct(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product with this id dont exist", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product with this id dont exist")
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, transport.NewProductResponse(*product))
}

func (h *CatalogHTTP) ProductInfo(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.product_info")

	products, count, maxPrice, err := h.Svc.ProductInfo(ctx)
	if err != nil {
		l.Error("product_info_error", "status", 500, "reason", "cannot aggregate products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot aggregate products")
	}

	l.Info("product_info_success", "count", count)
	return c.JSON(http.StatusOK, transport.NewProductInfoResponse(products, count, maxPrice))
}
