package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arfandy/journal-backend/internal/apperr"
	"github.com/arfandy/journal-backend/internal/logging"
	"github.com/arfandy/journal-backend/internal/service"
	"github.com/arfandy/journal-backend/internal/transport"
)

type NotificationHTTP struct {
	Svc *service.NotificationService
}

func (h *NotificationHTTP) Send(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notification.send")

	var req transport.SendNotificationRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("send_error", "status", 400, "reason", "invalid body", "error", err)
		return apperr.Validation("Validation failed", nil)
	}

	if _, err := h.Svc.Send(ctx, req); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Notification sent!", nil)
}
