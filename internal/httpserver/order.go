package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avelinov/shop_api/internal/logging"
	"github.com/avelinov/shop_api/internal/service"
	"github.com/avelinov/shop_api/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) getUserID(c echo.Context) (uint, error) {
	v := c.Get("user_id")
	userID, ok := v.(uint)
	if !ok {
		return 0, errors.New("unauthorized")
	}
	return userID, nil
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_orders")

	orders, err := h.Svc.ListOrders(ctx)
	if err != nil {
		l.Error("get_orders_error", "status", 500, "reason", "cannot get orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get orders")
	}

	l.Info("get_orders_success", "count", len(orders))
	return c.JSON(http.StatusOK, transport.NewOrderListResponse(orders))
}

func (h *OrderHTTP) GetUserOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_user_orders")

	userID, err := h.getUserID(c)
	if err != nil {
		l.Warn("get_user_orders_error", "status", 401, "reason", "missing identity", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.Svc.ListUserOrders(ctx, userID)
	if err != nil {
		l.Error("get_user_orders_error", "status", 500, "reason", "cannot get orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get orders")
	}

	l.Info("get_user_orders_success", "count", len(orders))
	return c.JSON(http.StatusOK, transport.NewOrderListResponse(orders))
}
