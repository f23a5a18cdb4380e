package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arfandy/journal-backend/internal/apperr"
	"github.com/arfandy/journal-backend/internal/hash"
	"github.com/arfandy/journal-backend/internal/logging"
	"github.com/arfandy/journal-backend/internal/models"
	"github.com/arfandy/journal-backend/internal/repo"
	"github.com/arfandy/journal-backend/internal/tokens"
	"github.com/arfandy/journal-backend/internal/transport"
	"github.com/arfandy/journal-backend/internal/validate"
)

// AuthService owns the session lifecycle: registration, login, refresh
// token rotation and revocation. It keeps no in-memory session state, so
// any number of instances can run concurrently.
type AuthService struct {
	Repo         *repo.GormRepo
	Validate     *validate.Validator
	AccessSecret []byte
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*transport.UserResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if err := s.Validate.Struct(req); err != nil {
		return nil, err
	}

	count, err := s.Repo.CountUsersByUsername(ctx, req.Username)
	if err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return nil, apperr.Unexpected(err)
	}
	if count != 0 {
		l.Warn("register_error", "status", 409, "reason", "username taken", "username", req.Username)
		return nil, apperr.Conflict("User already exists")
	}

	count, err = s.Repo.CountUsersByEmail(ctx, req.Email)
	if err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return nil, apperr.Unexpected(err)
	}
	if count != 0 {
		l.Warn("register_error", "status", 409, "reason", "email taken")
		return nil, apperr.Conflict("Email is already taken")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, apperr.Unexpected(err)
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return nil, apperr.Unexpected(err)
	}

	l.Info("register_success", "user_id", user.ID)
	return &transport.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*transport.LoginResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", req.Username)

	if err := s.Validate.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.Repo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown username")
			return nil, apperr.Unauthorized("Username or password is wrong!")
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, apperr.Unexpected(err)
	}
	if user.DeletedAt != nil || !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "bad credentials")
		return nil, apperr.Unauthorized("Username or password is wrong!")
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	l.Info("login_success", "user_id", user.ID)
	return &transport.LoginResponse{
		ID:           user.ID,
		Username:     user.Username,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh rotates the presented refresh token: the stored record is looked
// up by hash, conditionally revoked, and a new pair is issued. A token can
// win a rotation at most once.
func (s *AuthService) Refresh(ctx context.Context, req transport.RefreshTokenRequest) (*transport.LoginResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	if req.RefreshToken == "" {
		return nil, apperr.Validation("Refresh token is required!", nil)
	}

	saved, err := s.Repo.FindRefreshTokenByHash(ctx, hash.Sha256Hex(req.RefreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("refresh_failed", "status", 401, "reason", "unknown token")
			return nil, apperr.Unauthorized("Unauthorized")
		}
		l.Error("refresh_failed", "status", 500, "error", err)
		return nil, apperr.Unexpected(err)
	}
	if saved.Revoked || !time.Now().Before(saved.ExpiresAt) {
		l.Warn("refresh_failed", "status", 401, "reason", "revoked or expired")
		return nil, apperr.Unauthorized("Unauthorized")
	}

	user, err := s.Repo.FindUserByID(ctx, saved.UserID)
	if err != nil || user.DeletedAt != nil {
		l.Warn("refresh_failed", "status", 401, "reason", "owner gone")
		return nil, apperr.Unauthorized("Unauthorized")
	}

	affected, err := s.Repo.RevokeRefreshToken(ctx, saved.ID)
	if err != nil {
		l.Error("refresh_failed", "status", 500, "error", err)
		return nil, apperr.Unexpected(err)
	}
	if affected == 0 {
		// A concurrent rotation consumed the token first.
		l.Warn("refresh_failed", "status", 401, "reason", "lost rotation race")
		return nil, apperr.Unauthorized("Unauthorized")
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		l.Error("refresh_failed", "status", 500, "error", err)
		return nil, err
	}

	l.Info("refresh_success", "user_id", user.ID)
	return &transport.LoginResponse{
		ID:           user.ID,
		Username:     user.Username,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout revokes the presented refresh token if it belongs to the caller.
// A token owned by someone else reports not-found, never forbidden, so the
// response does not leak that the session exists.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout", "user_id", userID)

	if refreshToken == "" {
		return apperr.Validation("Refresh token is required!", nil)
	}

	saved, err := s.Repo.FindRefreshTokenByHash(ctx, hash.Sha256Hex(refreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("logout_failed", "status", 404, "reason", "unknown token")
			return apperr.NotFound("Session not found!")
		}
		l.Error("logout_failed", "status", 500, "error", err)
		return apperr.Unexpected(err)
	}
	if saved.UserID != userID {
		l.Warn("logout_failed", "status", 404, "reason", "token owned by another user")
		return apperr.NotFound("Session not found!")
	}

	if _, err := s.Repo.RevokeRefreshToken(ctx, saved.ID); err != nil {
		l.Error("logout_failed", "status", 500, "error", err)
		return apperr.Unexpected(err)
	}

	l.Info("logout_success")
	return nil
}

// RevokeAll invalidates every live session of the user. Account deletion
// cascades here.
func (s *AuthService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.Repo.RevokeAllRefreshTokens(ctx, userID); err != nil {
		return apperr.Unexpected(err)
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, userID uuid.UUID) (string, string, error) {
	if len(s.AccessSecret) == 0 {
		return "", "", apperr.Config("JWT secret is not configured")
	}

	now := time.Now()
	accessToken, err := tokens.NewAccessToken(s.AccessSecret, userID, now)
	if err != nil {
		return "", "", apperr.Unexpected(err)
	}

	refreshToken, err := tokens.NewRefreshToken()
	if err != nil {
		return "", "", apperr.Unexpected(err)
	}

	record := models.RefreshToken{
		TokenHash: hash.Sha256Hex(refreshToken),
		UserID:    userID,
		ExpiresAt: now.Add(tokens.RefreshTokenTTL),
	}
	if err := s.Repo.CreateRefreshToken(ctx, &record); err != nil {
		return "", "", apperr.Unexpected(err)
	}

	return accessToken, refreshToken, nil
}
