package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/arfandy/journal-backend/internal/apperr"
	"github.com/arfandy/journal-backend/internal/events"
	"github.com/arfandy/journal-backend/internal/logging"
	mw "github.com/arfandy/journal-backend/internal/middleware"
	"github.com/arfandy/journal-backend/internal/service"
	"github.com/arfandy/journal-backend/internal/transport"
	"github.com/arfandy/journal-backend/internal/util"
)

type JournalHTTP struct {
	Svc      *service.JournalService
	Producer *events.Producer
}

func (h *JournalHTTP) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	key, _ := event["journal_id"].(string)
	if err := h.Producer.Publish(ctx, events.TopicJournalEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event_publish_failed", "topic", events.TopicJournalEvents, "error", err)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *JournalHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "journal.create")

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	var req transport.JournalRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_error", "status", 400, "reason", "invalid body", "error", err)
		return apperr.Validation("Validation failed", nil)
	}

	journal, err := h.Svc.Create(ctx, userID, req)
	if err != nil {
		return err
	}

	h.publish(c, map[string]any{
		"type":       "journal_created",
		"journal_id": journal.ID.String(),
		"user_id":    userID.String(),
	})
	return success(c, http.StatusCreated, "Journal created successfully", journal)
}

func (h *JournalHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	query := c.QueryParam("title")

	journals, paging, err := h.Svc.List(ctx, userID, query, page, size)
	if err != nil {
		return err
	}
	return successPage(c, "Successfully get journals", journals, paging)
}

func (h *JournalHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "journal.update")

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	journalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NotFound("Journal not found")
	}

	var req transport.JournalRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "reason", "invalid body", "error", err)
		return apperr.Validation("Validation failed", nil)
	}

	journal, err := h.Svc.Update(ctx, userID, journalID, req)
	if err != nil {
		return err
	}

	h.publish(c, map[string]any{
		"type":       "journal_updated",
		"journal_id": journal.ID.String(),
		"user_id":    userID.String(),
	})
	return success(c, http.StatusOK, "Journal updated successfully", journal)
}

func (h *JournalHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	journalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NotFound("Journal not found")
	}

	if err := h.Svc.Delete(ctx, userID, journalID); err != nil {
		return err
	}

	h.publish(c, map[string]any{
		"type":       "journal_deleted",
		"journal_id": journalID.String(),
		"user_id":    userID.String(),
	})
	return success(c, http.StatusOK, "Journal deleted successfully", nil)
}

func (h *JournalHTTP) BulkDelete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "journal.bulk_delete")

	userID, err := mw.UserID(c)
	if err != nil {
		return err
	}

	var req transport.BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("bulk_delete_error", "status", 400, "reason", "invalid body", "error", err)
		return apperr.Validation("Validation failed", nil)
	}

	if err := h.Svc.BulkDelete(ctx, userID, req); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Journal deleted successfully", nil)
}
