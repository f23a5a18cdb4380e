package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/arfandy/journal-backend/internal/apperr"
	"github.com/arfandy/journal-backend/internal/logging"
	mw "github.com/arfandy/journal-backend/internal/middleware"
	"github.com/arfandy/journal-backend/internal/service"
	"github.com/arfandy/journal-backend/internal/transport"
)

type TagHTTP struct {
	Svc *service.TagService
}

func (h *TagHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	tags, err := h.Svc.List(ctx, userID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Successfully get tags", tags)
}

func (h *TagHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.create")

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	var req transport.TagRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_error", "status", 400, "reason", "invalid body", "error", err)
		return apperr.Validation("Validation failed", nil)
	}

	tag, err := h.Svc.Create(ctx, userID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Tag created successfully", tag)
}

func (h *TagHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.update")

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NotFound("Tag not found")
	}

	var req transport.TagRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "reason", "invalid body", "error", err)
		return apperr.Validation("Validation failed", nil)
	}

	tag, err := h.Svc.Update(ctx, userID, tagID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Tag updated successfully", tag)
}

func (h *TagHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NotFound("Tag not found")
	}

	if err := h.Svc.Delete(ctx, userID, tagID); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Tag deleted successfully", nil)
}
