package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arfandy/journal-backend/internal/apperr"
	"github.com/arfandy/journal-backend/internal/hash"
	"github.com/arfandy/journal-backend/internal/logging"
	"github.com/arfandy/journal-backend/internal/repo"
	"github.com/arfandy/journal-backend/internal/transport"
	"github.com/arfandy/journal-backend/internal/validate"
)

type UserService struct {
	Repo     *repo.GormRepo
	Auth     *AuthService
	Validate *validate.Validator
}

func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*transport.UserResponse, error) {
	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found!")
		}
		return nil, apperr.Unexpected(err)
	}
	if user.DeletedAt != nil {
		return nil, apperr.NotFound("User not found!")
	}

	return &transport.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
	}, nil
}

func (s *UserService) Update(ctx context.Context, userID uuid.UUID, req transport.UpdateUserRequest) (*transport.UserResponse, error) {
	l := logging.FromContext(ctx).With("svc", "user.update", "user_id", userID)

	if err := s.Validate.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil || user.DeletedAt != nil {
		return nil, apperr.NotFound("User not found!")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	if req.Email != nil {
		existing, err := s.Repo.FindUserByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			l.Error("update_failed", "status", 500, "error", err)
			return nil, apperr.Unexpected(err)
		}
		if existing != nil && existing.ID != userID {
			l.Warn("update_failed", "status", 409, "reason", "email taken")
			return nil, apperr.Conflict("Email is already taken")
		}
		user.Email = *req.Email
	}

	if req.Password != nil {
		pwHash, err := hash.HashPassword(*req.Password)
		if err != nil {
			l.Error("update_failed", "status", 500, "error", err)
			return nil, apperr.Unexpected(err)
		}
		user.PasswordHash = pwHash
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		l.Error("update_failed", "status", 500, "error", err)
		return nil, apperr.Unexpected(err)
	}

	l.Info("update_success")
	return &transport.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
	}, nil
}

// Delete soft-deletes the account and revokes every refresh token the user
// holds, ending all sessions.
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "user.delete", "user_id", userID)

	if err := s.Repo.SoftDeleteUser(ctx, userID); err != nil {
		l.Error("delete_failed", "status", 500, "error", err)
		return apperr.Unexpected(err)
	}
	if err := s.Auth.RevokeAll(ctx, userID); err != nil {
		l.Error("delete_failed", "status", 500, "reason", "cannot revoke sessions", "error", err)
		return err
	}

	l.Info("delete_success")
	return nil
}

func (s *UserService) StoreFcmToken(ctx context.Context, userID uuid.UUID, req transport.FcmTokenRequest) error {
	if err := s.Validate.Struct(req); err != nil {
		return err
	}

	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil || user.DeletedAt != nil {
		return apperr.NotFound("User not found!")
	}

	user.FcmToken = req.FcmToken
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return apperr.Unexpected(err)
	}
	return nil
}
