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

type CategoryHTTP struct {
	Svc *service.CategoryService
}

func (h *CategoryHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	categories, err := h.Svc.List(ctx, userID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Successfully get categories", categories)
}

func (h *CategoryHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_error", "status", 400, "reason", "invalid body", "error", err)
		return apperr.Validation("Validation failed", nil)
	}

	category, err := h.Svc.Create(ctx, userID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Category created successfully", category)
}

func (h *CategoryHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update")

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NotFound("Category not found")
	}

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "reason", "invalid body", "error", err)
		return apperr.Validation("Validation failed", nil)
	}

	category, err := h.Svc.Update(ctx, userID, categoryID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Category updated successfully", category)
}

func (h *CategoryHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NotFound("Category not found")
	}

	if err := h.Svc.Delete(ctx, userID, categoryID); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Category deleted successfully", nil)
}
