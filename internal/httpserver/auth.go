package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avelinov/shop_api/internal/logging"
	"github.com/avelinov/shop_api/internal/service"
	"github.com/avelinov/shop_api/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			l.Warn("register_error", "status", 409, "reason", "user already exists", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "user already exists")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("register_error", "status", 500, "reason", "cannot create user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create user")
	}

	l.Info("register_success")
	return c.JSON(http.StatusCreated, echo.Map{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Token trades credentials for an access/refresh pair.
func (h *AuthHTTP) Token(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.token")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("token_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pair, err := h.Svc.IssueTokens(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("token_error", "status", 401, "reason", "invalid credentials")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		l.Error("token_error", "status", 500, "reason", "cannot issue tokens", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot issue tokens")
	}

	l.Info("token_success")
	return c.JSON(http.StatusOK, transport.TokenPairResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
	})
}

// Refresh trades a valid refresh token for a new access token only.
func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	var req transport.RefreshRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("refresh_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	access, err := h.Svc.RefreshAccess(ctx, req.Refresh)
	if err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			l.Warn("refresh_error", "status", 401, "reason", "invalid refresh token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
		}
		l.Error("refresh_error", "status", 500, "reason", "cannot refresh token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot refresh token")
	}

	l.Info("refresh_success")
	return c.JSON(http.StatusOK, transport.AccessTokenResponse{Access: access})
}
