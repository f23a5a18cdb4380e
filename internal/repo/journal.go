package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arfandy/journal-backend/internal/models"
)

// CreateJournal inserts the journal and its tag associations in one
// transaction.
func (r *GormRepo) CreateJournal(ctx context.Context, j *models.Journal, tagIDs []uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Category").Create(j).Error; err != nil {
			return err
		}
		return createJournalTags(tx, j.ID, tagIDs)
	})
}

// UpdateJournal fully replaces the journal's fields and its tag set. The
// association is not diffed: all join rows are dropped and recreated.
func (r *GormRepo) UpdateJournal(ctx context.Context, j *models.Journal, tagIDs []uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"title":       j.Title,
			"content":     j.Content,
			"date":        j.Date,
			"category_id": j.CategoryID,
			"updated_at":  time.Now(),
		}
		if err := tx.Model(&models.Journal{}).Where("id = ?", j.ID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("journal_id = ?", j.ID).Delete(&models.JournalTag{}).Error; err != nil {
			return err
		}
		return createJournalTags(tx, j.ID, tagIDs)
	})
}

func createJournalTags(tx *gorm.DB, journalID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]models.JournalTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, models.JournalTag{JournalID: journalID, TagID: tagID})
	}
	return tx.Create(&rows).Error
}

// FindOwnedJournal looks up a live journal belonging to userID. Soft-deleted
// journals behave as absent.
func (r *GormRepo) FindOwnedJournal(ctx context.Context, id, userID uuid.UUID) (*models.Journal, error) {
	var journal models.Journal
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ? AND deleted_at IS NULL", id, userID).
		First(&journal).Error
	if err != nil {
		return nil, err
	}
	return &journal, nil
}

// GetJournal reloads a journal with its category and tags for responses.
func (r *GormRepo) GetJournal(ctx context.Context, id uuid.UUID) (*models.Journal, error) {
	var journal models.Journal
	err := r.DB.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Where("id = ?", id).
		First(&journal).Error
	if err != nil {
		return nil, err
	}
	return &journal, nil
}

// SearchJournals filters the user's live journals, optionally by a
// case-insensitive substring of title or content, newest first.
func (r *GormRepo) SearchJournals(ctx context.Context, userID uuid.UUID, query string, offset, limit int) (int64, []models.Journal, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ? AND deleted_at IS NULL", userID)
		if query != "" {
			pattern := "%" + strings.ToLower(query) + "%"
			db = db.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
		}
		return db
	}

	var total int64
	if err := scope(r.DB.WithContext(ctx).Model(&models.Journal{})).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var journals []models.Journal
	err := scope(r.DB.WithContext(ctx).Model(&models.Journal{})).
		Preload("Category").
		Preload("Tags").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&journals).Error
	if err != nil {
		return 0, nil, err
	}

	return total, journals, nil
}

func (r *GormRepo) SoftDeleteJournal(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Model(&models.Journal{}).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}

// BulkSoftDeleteJournals stamps every live journal in ids owned by userID.
// Unmatched ids are simply not affected; the caller inspects the count.
func (r *GormRepo) BulkSoftDeleteJournals(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Journal{}).
		Where("id IN ? AND user_id = ? AND deleted_at IS NULL", ids, userID).
		Update("deleted_at", time.Now())
	return res.RowsAffected, res.Error
}
