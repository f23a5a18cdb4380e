package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arfandy/journal-backend/internal/apperr"
	"github.com/arfandy/journal-backend/internal/events"
	"github.com/arfandy/journal-backend/internal/logging"
	mw "github.com/arfandy/journal-backend/internal/middleware"
	"github.com/arfandy/journal-backend/internal/service"
	"github.com/arfandy/journal-backend/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *events.Producer
}

func (h *AuthHTTP) publish(c echo.Context, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.Publish(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event_publish_failed", "topic", topic, "error", err)
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return apperr.Validation("Validation failed", nil)
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		return err
	}

	h.publish(c, events.TopicUserEvents, user.ID.String(), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})
	return success(c, http.StatusCreated, "User registered successfully", user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return apperr.Validation("Validation failed", nil)
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return err
	}

	h.publish(c, events.TopicUserEvents, res.ID.String(), map[string]any{
		"type":     "user_logged_in",
		"user_id":  res.ID,
		"username": res.Username,
	})
	return success(c, http.StatusOK, "Login successful", res)
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	var req transport.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("refresh_error", "status", 400, "reason", "invalid body", "error", err)
		return apperr.Validation("Refresh token is required!", nil)
	}

	res, err := h.Svc.Refresh(ctx, req)
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, "Token refreshed successfully", res)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	var req transport.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("logout_error", "status", 400, "reason", "invalid body", "error", err)
		return apperr.Validation("Refresh token is required!", nil)
	}

	if err := h.Svc.Logout(ctx, userID, req.RefreshToken); err != nil {
		return err
	}

	return success(c, http.StatusOK, "Logout successful", nil)
}
