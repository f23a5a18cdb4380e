package transport

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6,max=100"`
}

type FcmTokenRequest struct {
	FcmToken string `json:"fcm_token" validate:"required"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type TagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type JournalRequest struct {
	Title      string   `json:"title"       validate:"required,max=100"`
	Content    string   `json:"content"     validate:"required"`
	Date       string   `json:"date"`
	CategoryID string   `json:"category_id"`
	TagIDs     []string `json:"tag_ids"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

type SendNotificationRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body"  validate:"required"`
	Token string `json:"token" validate:"required"`
}

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
}

type LoginResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

type CategoryResponse struct {
	ID     uuid.UUID  `json:"id"`
	Name   string     `json:"name"`
	UserID *uuid.UUID `json:"user_id"`
}

type TagResponse struct {
	ID     uuid.UUID  `json:"id"`
	Name   string     `json:"name"`
	UserID *uuid.UUID `json:"user_id"`
}

type JournalCategory struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type JournalTagItem struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type JournalResponse struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Date      time.Time        `json:"date"`
	Category  *JournalCategory `json:"category"`
	Tags      []JournalTagItem `json:"tags"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Paging mirrors the envelope's paging block on list responses.
type Paging struct {
	CurrentPage int   `json:"current_page"`
	TotalPage   int   `json:"total_page"`
	TotalItems  int64 `json:"total_items"`
	Size        int   `json:"size"`
}

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Paging  *Paging           `json:"paging,omitempty"`
}
