package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arfandy/journal-backend/internal/apperr"
	"github.com/arfandy/journal-backend/internal/logging"
	"github.com/arfandy/journal-backend/internal/models"
	"github.com/arfandy/journal-backend/internal/policy"
	"github.com/arfandy/journal-backend/internal/repo"
	"github.com/arfandy/journal-backend/internal/transport"
	"github.com/arfandy/journal-backend/internal/validate"
)

type TagService struct {
	Repo     *repo.GormRepo
	Validate *validate.Validator
}

func (s *TagService) List(ctx context.Context, userID uuid.UUID) ([]transport.TagResponse, error) {
	tags, err := s.Repo.ListTags(ctx, userID)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}

	out := make([]transport.TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, toTagResponse(t))
	}
	return out, nil
}

func (s *TagService) Create(ctx context.Context, userID uuid.UUID, req transport.TagRequest) (*transport.TagResponse, error) {
	l := logging.FromContext(ctx).With("svc", "tag.create", "user_id", userID)

	req.Name = normalizeTagName(req.Name)
	if err := s.Validate.Struct(req); err != nil {
		return nil, err
	}

	if err := s.checkNameFree(ctx, req.Name, userID); err != nil {
		l.Warn("create_failed", "status", 409, "reason", "name collision", "name", req.Name)
		return nil, err
	}

	tag := models.Tag{
		Name:   req.Name,
		UserID: &userID,
	}
	if err := s.Repo.CreateTag(ctx, &tag); err != nil {
		l.Error("create_failed", "status", 500, "error", err)
		return nil, apperr.Unexpected(err)
	}

	l.Info("create_success", "tag_id", tag.ID)
	resp := toTagResponse(tag)
	return &resp, nil
}

func (s *TagService) Update(ctx context.Context, userID, tagID uuid.UUID, req transport.TagRequest) (*transport.TagResponse, error) {
	l := logging.FromContext(ctx).With("svc", "tag.update", "user_id", userID, "tag_id", tagID)

	req.Name = normalizeTagName(req.Name)
	if err := s.Validate.Struct(req); err != nil {
		return nil, err
	}

	tag, err := s.Repo.FindTagByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Tag not found")
		}
		return nil, apperr.Unexpected(err)
	}
	if !policy.CanMutate(tag.UserID, userID) {
		l.Warn("update_failed", "status", 403, "reason", "not owner")
		return nil, apperr.Forbidden("You are not allowed to update this tag.")
	}

	if err := s.checkNameFree(ctx, req.Name, userID); err != nil {
		return nil, err
	}

	tag.Name = req.Name
	if err := s.Repo.SaveTag(ctx, tag); err != nil {
		l.Error("update_failed", "status", 500, "error", err)
		return nil, apperr.Unexpected(err)
	}

	l.Info("update_success")
	resp := toTagResponse(*tag)
	return &resp, nil
}

func (s *TagService) Delete(ctx context.Context, userID, tagID uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "tag.delete", "user_id", userID, "tag_id", tagID)

	tag, err := s.Repo.FindTagByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Tag not found")
		}
		return apperr.Unexpected(err)
	}
	if !policy.CanMutate(tag.UserID, userID) {
		l.Warn("delete_failed", "status", 403, "reason", "not owner")
		return apperr.Forbidden("You are not allowed to delete this tag.")
	}

	if err := s.Repo.DeleteTag(ctx, tagID); err != nil {
		l.Error("delete_failed", "status", 500, "error", err)
		return apperr.Unexpected(err)
	}

	l.Info("delete_success")
	return nil
}

func (s *TagService) checkNameFree(ctx context.Context, name string, userID uuid.UUID) error {
	taken, err := s.Repo.TagNameTaken(ctx, name, userID)
	if err != nil {
		return apperr.Unexpected(err)
	}
	if taken {
		return apperr.Conflict("Tag already exists")
	}
	return nil
}

// normalizeTagName lowercases and strips all whitespace, so "Side Project"
// becomes "sideproject".
func normalizeTagName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

func toTagResponse(t models.Tag) transport.TagResponse {
	return transport.TagResponse{ID: t.ID, Name: t.Name, UserID: t.UserID}
}
