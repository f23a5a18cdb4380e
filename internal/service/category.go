package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

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

type CategoryService struct {
	Repo     *repo.GormRepo
	Validate *validate.Validator
}

func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]transport.CategoryResponse, error) {
	categories, err := s.Repo.ListCategories(ctx, userID)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}

	out := make([]transport.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, req transport.CategoryRequest) (*transport.CategoryResponse, error) {
	l := logging.FromContext(ctx).With("svc", "category.create", "user_id", userID)

	req.Name = strings.TrimSpace(req.Name)
	if err := s.Validate.Struct(req); err != nil {
		return nil, err
	}

	if err := s.checkNameFree(ctx, req.Name, userID); err != nil {
		l.Warn("create_failed", "status", 409, "reason", "name collision", "name", req.Name)
		return nil, err
	}

	category := models.Category{
		Name:   capitalizeFirst(req.Name),
		UserID: &userID,
	}
	if err := s.Repo.CreateCategory(ctx, &category); err != nil {
		l.Error("create_failed", "status", 500, "error", err)
		return nil, apperr.Unexpected(err)
	}

	l.Info("create_success", "category_id", category.ID)
	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, categoryID uuid.UUID, req transport.CategoryRequest) (*transport.CategoryResponse, error) {
	l := logging.FromContext(ctx).With("svc", "category.update", "user_id", userID, "category_id", categoryID)

	req.Name = strings.TrimSpace(req.Name)
	if err := s.Validate.Struct(req); err != nil {
		return nil, err
	}

	// Existence first: a missing id always reports not-found, never forbidden.
	category, err := s.Repo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Category not found")
		}
		return nil, apperr.Unexpected(err)
	}
	if !policy.CanMutate(category.UserID, userID) {
		l.Warn("update_failed", "status", 403, "reason", "not owner")
		return nil, apperr.Forbidden("You are not allowed to update this category.")
	}

	if err := s.checkNameFree(ctx, req.Name, userID); err != nil {
		return nil, err
	}

	category.Name = capitalizeFirst(req.Name)
	if err := s.Repo.SaveCategory(ctx, category); err != nil {
		l.Error("update_failed", "status", 500, "error", err)
		return nil, apperr.Unexpected(err)
	}

	l.Info("update_success")
	resp := toCategoryResponse(*category)
	return &resp, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "category.delete", "user_id", userID, "category_id", categoryID)

	category, err := s.Repo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Category not found")
		}
		return apperr.Unexpected(err)
	}
	if !policy.CanMutate(category.UserID, userID) {
		l.Warn("delete_failed", "status", 403, "reason", "not owner")
		return apperr.Forbidden("You are not allowed to delete this category.")
	}

	if err := s.Repo.DeleteCategory(ctx, categoryID); err != nil {
		l.Error("delete_failed", "status", 500, "error", err)
		return apperr.Unexpected(err)
	}

	l.Info("delete_success")
	return nil
}

func (s *CategoryService) checkNameFree(ctx context.Context, name string, userID uuid.UUID) error {
	taken, err := s.Repo.CategoryNameTaken(ctx, name, userID)
	if err != nil {
		return apperr.Unexpected(err)
	}
	if taken {
		return apperr.Conflict("Category already exists")
	}
	return nil
}

func toCategoryResponse(c models.Category) transport.CategoryResponse {
	return transport.CategoryResponse{ID: c.ID, Name: c.Name, UserID: c.UserID}
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
