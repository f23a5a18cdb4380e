package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arfandy/journal-backend/internal/apperr"
	"github.com/arfandy/journal-backend/internal/logging"
	mw "github.com/arfandy/journal-backend/internal/middleware"
	"github.com/arfandy/journal-backend/internal/service"
	"github.com/arfandy/journal-backend/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.Get(ctx, userID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Successfully get user", user)
}

func (h *UserHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update")

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "reason", "invalid body", "error", err)
		return apperr.Validation("Validation failed", nil)
	}

	user, err := h.Svc.Update(ctx, userID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Successfully update user", user)
}

func (h *UserHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, userID); err != nil {
		return err
	}
	return success(c, http.StatusOK, "User deleted successfully", nil)
}

func (h *UserHTTP) StoreFcmToken(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.store_fcm_token")

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	var req transport.FcmTokenRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("store_fcm_token_error", "status", 400, "reason", "invalid body", "error", err)
		return apperr.Validation("Validation failed", nil)
	}

	if err := h.Svc.StoreFcmToken(ctx, userID, req); err != nil {
		return err
	}
	return success(c, http.StatusOK, "FCM token stored successfully", nil)
}
