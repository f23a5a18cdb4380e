package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/arfandy/journal-backend/internal/models"
)

// ListCategories returns the union of global records and the user's own,
// ordered by name.
func (r *GormRepo) ListCategories(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := r.DB.WithContext(ctx).
		Where("user_id = ? OR user_id IS NULL", userID).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *GormRepo) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CategoryNameTaken matches case-insensitively over global records plus the
// user's own.
func (r *GormRepo) CategoryNameTaken(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Category{}).
		Where("LOWER(name) = ? AND (user_id = ? OR user_id IS NULL)", strings.ToLower(name), userID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormRepo) CreateCategory(ctx context.Context, c *models.Category) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) SaveCategory(ctx context.Context, c *models.Category) error {
	return r.DB.WithContext(ctx).Save(c).Error
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

// CategoryVisible reports whether the category exists and is global or owned
// by the user. Journal creation uses it to check category references.
func (r *GormRepo) CategoryVisible(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Category{}).
		Where("id = ? AND (user_id = ? OR user_id IS NULL)", id, userID).
		Count(&count).Error
	return count > 0, err
}
