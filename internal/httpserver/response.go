package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arfandy/journal-backend/internal/apperr"
	"github.com/arfandy/journal-backend/internal/transport"
)

func success(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, transport.Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func successPage(c echo.Context, message string, data any, paging *transport.Paging) error {
	return c.JSON(http.StatusOK, transport.Response{
		Status:  "success",
		Message: message,
		Data:    data,
		Paging:  paging,
	})
}

// ErrorHandler translates typed business errors into the response envelope.
// This is the single place failures become status codes.
func ErrorHandler(base *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		resp := transport.Response{Status: "error", Message: "internal server error"}

		var appErr *apperr.Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = appErr.Status
			resp.Message = appErr.Message
			resp.Errors = appErr.Fields
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				resp.Message = msg
			}
		default:
			resp.Message = err.Error()
		}

		if status >= 500 {
			base.Error("request error", "status", status, "error", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, resp)
	}
}
