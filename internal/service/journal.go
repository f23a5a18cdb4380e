package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arfandy/journal-backend/internal/apperr"
	"github.com/arfandy/journal-backend/internal/logging"
	"github.com/arfandy/journal-backend/internal/models"
	"github.com/arfandy/journal-backend/internal/repo"
	"github.com/arfandy/journal-backend/internal/transport"
	"github.com/arfandy/journal-backend/internal/util"
	"github.com/arfandy/journal-backend/internal/validate"
)

type JournalService struct {
	Repo     *repo.GormRepo
	Validate *validate.Validator
}

func (s *JournalService) Create(ctx context.Context, userID uuid.UUID, req transport.JournalRequest) (*transport.JournalResponse, error) {
	l := logging.FromContext(ctx).With("svc", "journal.create", "user_id", userID)

	if err := s.Validate.Struct(req); err != nil {
		return nil, err
	}

	date, err := parseJournalDate(req.Date)
	if err != nil {
		return nil, err
	}
	categoryID, err := s.resolveCategory(ctx, userID, req.CategoryID)
	if err != nil {
		return nil, err
	}
	tagIDs, err := s.resolveTags(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}

	journal := models.Journal{
		Title:      req.Title,
		Content:    req.Content,
		Date:       date,
		UserID:     userID,
		CategoryID: categoryID,
	}
	if err := s.Repo.CreateJournal(ctx, &journal, tagIDs); err != nil {
		l.Error("create_failed", "status", 500, "error", err)
		return nil, apperr.Unexpected(err)
	}

	created, err := s.Repo.GetJournal(ctx, journal.ID)
	if err != nil {
		l.Error("create_failed", "status", 500, "error", err)
		return nil, apperr.Unexpected(err)
	}

	l.Info("create_success", "journal_id", journal.ID)
	resp := toJournalResponse(*created)
	return &resp, nil
}

// List returns one page of the user's live journals, optionally filtered by
// a case-insensitive substring of title or content.
func (s *JournalService) List(ctx context.Context, userID uuid.UUID, query string, page, size int) ([]transport.JournalResponse, *transport.Paging, error) {
	offset, limit := util.Calculate(page, size)
	if page < 1 {
		page = 1
	}

	total, journals, err := s.Repo.SearchJournals(ctx, userID, query, offset, limit)
	if err != nil {
		return nil, nil, apperr.Unexpected(err)
	}

	out := make([]transport.JournalResponse, 0, len(journals))
	for _, j := range journals {
		out = append(out, toJournalResponse(j))
	}
	paging := &transport.Paging{
		CurrentPage: page,
		TotalPage:   util.TotalPages(total, limit),
		TotalItems:  total,
		Size:        limit,
	}
	return out, paging, nil
}

func (s *JournalService) Update(ctx context.Context, userID, journalID uuid.UUID, req transport.JournalRequest) (*transport.JournalResponse, error) {
	l := logging.FromContext(ctx).With("svc", "journal.update", "user_id", userID, "journal_id", journalID)

	if err := s.Validate.Struct(req); err != nil {
		return nil, err
	}

	journal, err := s.Repo.FindOwnedJournal(ctx, journalID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Journal not found")
		}
		return nil, apperr.Unexpected(err)
	}

	date, err := parseJournalDate(req.Date)
	if err != nil {
		return nil, err
	}
	categoryID, err := s.resolveCategory(ctx, userID, req.CategoryID)
	if err != nil {
		return nil, err
	}
	tagIDs, err := s.resolveTags(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}

	journal.Title = req.Title
	journal.Content = req.Content
	journal.Date = date
	journal.CategoryID = categoryID
	if err := s.Repo.UpdateJournal(ctx, journal, tagIDs); err != nil {
		l.Error("update_failed", "status", 500, "error", err)
		return nil, apperr.Unexpected(err)
	}

	updated, err := s.Repo.GetJournal(ctx, journalID)
	if err != nil {
		l.Error("update_failed", "status", 500, "error", err)
		return nil, apperr.Unexpected(err)
	}

	l.Info("update_success")
	resp := toJournalResponse(*updated)
	return &resp, nil
}

func (s *JournalService) Delete(ctx context.Context, userID, journalID uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "journal.delete", "user_id", userID, "journal_id", journalID)

	if _, err := s.Repo.FindOwnedJournal(ctx, journalID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Journal not found")
		}
		return apperr.Unexpected(err)
	}

	if err := s.Repo.SoftDeleteJournal(ctx, journalID); err != nil {
		l.Error("delete_failed", "status", 500, "error", err)
		return apperr.Unexpected(err)
	}

	l.Info("delete_success")
	return nil
}

// BulkDelete soft-deletes every listed journal the caller owns. Ids that do
// not match (foreign, unknown, already deleted) are silently skipped; only a
// fully unmatched request is an error.
func (s *JournalService) BulkDelete(ctx context.Context, userID uuid.UUID, req transport.BulkDeleteRequest) error {
	l := logging.FromContext(ctx).With("svc", "journal.bulk_delete", "user_id", userID)

	if err := s.Validate.Struct(req); err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	var affected int64
	if len(ids) > 0 {
		var err error
		affected, err = s.Repo.BulkSoftDeleteJournals(ctx, userID, ids)
		if err != nil {
			l.Error("bulk_delete_failed", "status", 500, "error", err)
			return apperr.Unexpected(err)
		}
	}
	if affected == 0 {
		l.Warn("bulk_delete_failed", "status", 404, "reason", "no matching journals")
		return apperr.NotFound("No matching journals found")
	}

	l.Info("bulk_delete_success", "count", affected)
	return nil
}

func (s *JournalService) resolveCategory(ctx context.Context, userID uuid.UUID, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	categoryID, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.NotFound("Category not found")
	}
	visible, err := s.Repo.CategoryVisible(ctx, categoryID, userID)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if !visible {
		return nil, apperr.NotFound("Category not found")
	}
	return &categoryID, nil
}

// resolveTags requires every referenced tag to exist. There is no ownership
// restriction on referenced tags, only existence.
func (s *JournalService) resolveTags(ctx context.Context, raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, apperr.NotFound("Tag not found")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	found, err := s.Repo.FindTagsByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if len(found) != len(ids) {
		return nil, apperr.NotFound("Tag not found")
	}
	return ids, nil
}

func parseJournalDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.Validation("Invalid date format.", nil)
}

func toJournalResponse(j models.Journal) transport.JournalResponse {
	resp := transport.JournalResponse{
		ID:        j.ID,
		Title:     j.Title,
		Content:   j.Content,
		Date:      j.Date,
		Tags:      make([]transport.JournalTagItem, 0, len(j.Tags)),
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
	if j.Category != nil {
		resp.Category = &transport.JournalCategory{ID: j.Category.ID, Name: j.Category.Name}
	}
	for _, t := range j.Tags {
		resp.Tags = append(resp.Tags, transport.JournalTagItem{ID: t.ID, Name: t.Name})
	}
	return resp
}
