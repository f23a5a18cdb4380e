package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/arfandy/journal-backend/internal/models"
)

func (r *GormRepo) ListTags(ctx context.Context, userID uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.DB.WithContext(ctx).
		Where("user_id = ? OR user_id IS NULL", userID).
		Order("name ASC").
		Find(&tags).Error
	return tags, err
}

func (r *GormRepo) FindTagByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *GormRepo) TagNameTaken(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Tag{}).
		Where("LOWER(name) = ? AND (user_id = ? OR user_id IS NULL)", strings.ToLower(name), userID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormRepo) CreateTag(ctx context.Context, t *models.Tag) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) SaveTag(ctx context.Context, t *models.Tag) error {
	return r.DB.WithContext(ctx).Save(t).Error
}

func (r *GormRepo) DeleteTag(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&models.Tag{}, "id = ?", id).Error
}

// FindTagsByIDs returns whatever subset of ids exists; the caller decides
// what missing ids mean.
func (r *GormRepo) FindTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}
