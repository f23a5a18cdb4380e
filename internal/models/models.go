package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"      json:"id"`
	Username     string     `gorm:"uniqueIndex;not null"      json:"username"`
	Email        string     `gorm:"uniqueIndex;not null"      json:"email"`
	Name         string     `gorm:"not null"                  json:"name"`
	PasswordHash string     `gorm:"not null"                  json:"-"`
	FcmToken     string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// RefreshToken rows are never physically deleted; logout, rotation and
// account deletion only flip Revoked. Lookup is always by TokenHash.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TokenHash string    `gorm:"uniqueIndex;not null" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"             json:"expires_at"`
	Revoked   bool      `gorm:"default:false"        json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *RefreshToken) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Category with a nil UserID is a global record: visible to everyone,
// mutable by no one.
type Category struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name   string     `gorm:"not null"             json:"name"`
	UserID *uuid.UUID `gorm:"type:uuid;index"      json:"user_id"`
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Tag struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name   string     `gorm:"not null"             json:"name"`
	UserID *uuid.UUID `gorm:"type:uuid;index"      json:"user_id"`
}

func (t *Tag) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type Journal struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string     `gorm:"not null"             json:"title"`
	Content    string     `gorm:"not null"             json:"content"`
	Date       time.Time  `gorm:"not null"             json:"date"`
	UserID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index"      json:"category_id"`
	Category   *Category  `json:"category,omitempty"`
	Tags       []Tag      `gorm:"many2many:journal_tags" json:"tags"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"-"`
}

func (j *Journal) BeforeCreate(*gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// JournalTag is the explicit join entity between journals and tags. Journal
// update replaces the whole association set through it.
type JournalTag struct {
	JournalID uuid.UUID `gorm:"type:uuid;primaryKey" json:"journal_id"`
	TagID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"tag_id"`
}
