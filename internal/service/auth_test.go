package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arfandy/journal-backend/internal/apperr"
	"github.com/arfandy/journal-backend/internal/hash"
	"github.com/arfandy/journal-backend/internal/models"
	"github.com/arfandy/journal-backend/internal/transport"
)

func TestAuthService_RegisterThenLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.Auth.Register(ctx, transport.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.ID)

	res, err := env.Auth.Login(ctx, transport.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, user.ID, res.ID)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "alice")

	_, err := env.Auth.Register(ctx, transport.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Name:     "Other",
		Password: "secret123",
	})
	assertCode(t, err, apperr.CodeConflict)
	assert.Contains(t, err.Error(), "User already exists")
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "alice")

	_, err := env.Auth.Register(ctx, transport.RegisterRequest{
		Username: "bob",
		Email:    "alice@example.com",
		Name:     "Bob",
		Password: "secret123",
	})
	assertCode(t, err, apperr.CodeConflict)
	assert.Contains(t, err.Error(), "Email is already taken")
}

func TestAuthService_Register_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.RegisterRequest
	}{
		{name: "missing username", req: transport.RegisterRequest{Email: "a@b.co", Name: "A", Password: "secret123"}},
		{name: "bad email", req: transport.RegisterRequest{Username: "a", Email: "nope", Name: "A", Password: "secret123"}},
		{name: "short password", req: transport.RegisterRequest{Username: "a", Email: "a@b.co", Name: "A", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Auth.Register(ctx, tt.req)
			assertCode(t, err, apperr.CodeValidation)
		})
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "alice")

	_, err := env.Auth.Login(ctx, transport.LoginRequest{Username: "alice", Password: "wrong-pass"})
	assertCode(t, err, apperr.CodeUnauthorized)

	_, err = env.Auth.Login(ctx, transport.LoginRequest{Username: "ghost", Password: "secret123"})
	assertCode(t, err, apperr.CodeUnauthorized)
}

func TestAuthService_Login_SoftDeletedUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	userID := env.registerUser(t, "alice")
	require.NoError(t, env.Repo.SoftDeleteUser(ctx, userID))

	_, err := env.Auth.Login(ctx, transport.LoginRequest{Username: "alice", Password: "secret123"})
	assertCode(t, err, apperr.CodeUnauthorized)
}

func TestAuthService_Refresh_RotationIsSingleUse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "alice")
	login, err := env.Auth.Login(ctx, transport.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	rotated, err := env.Auth.Refresh(ctx, transport.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	// The consumed token must never work again.
	_, err = env.Auth.Refresh(ctx, transport.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assertCode(t, err, apperr.CodeUnauthorized)

	// The rotated one still does.
	_, err = env.Auth.Refresh(ctx, transport.RefreshTokenRequest{RefreshToken: rotated.RefreshToken})
	require.NoError(t, err)
}

func TestAuthService_Refresh_MissingToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Auth.Refresh(context.Background(), transport.RefreshTokenRequest{})
	assertCode(t, err, apperr.CodeValidation)
}

func TestAuthService_Refresh_UnknownToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Auth.Refresh(context.Background(), transport.RefreshTokenRequest{RefreshToken: "never-issued"})
	assertCode(t, err, apperr.CodeUnauthorized)
}

func TestAuthService_Refresh_ExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	userID := env.registerUser(t, "alice")

	record := models.RefreshToken{
		TokenHash: hash.Sha256Hex("stale-token"),
		UserID:    userID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, env.Repo.CreateRefreshToken(ctx, &record))

	_, err := env.Auth.Refresh(ctx, transport.RefreshTokenRequest{RefreshToken: "stale-token"})
	assertCode(t, err, apperr.CodeUnauthorized)
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	userID := env.registerUser(t, "alice")
	login, err := env.Auth.Login(ctx, transport.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, env.Auth.Logout(ctx, userID, login.RefreshToken))

	_, err = env.Auth.Refresh(ctx, transport.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assertCode(t, err, apperr.CodeUnauthorized)
}

func TestAuthService_Logout_ForeignToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "alice")
	bobID := env.registerUser(t, "bob")

	login, err := env.Auth.Login(ctx, transport.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	// Bob cannot revoke Alice's session.
	err = env.Auth.Logout(ctx, bobID, login.RefreshToken)
	assertCode(t, err, apperr.CodeNotFound)

	// Alice's token is still live.
	_, err = env.Auth.Refresh(ctx, transport.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
}

func TestAuthService_RevokeAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	userID := env.registerUser(t, "alice")
	first, err := env.Auth.Login(ctx, transport.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	second, err := env.Auth.Login(ctx, transport.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, env.Auth.RevokeAll(ctx, userID))

	for _, token := range []string{first.RefreshToken, second.RefreshToken} {
		_, err = env.Auth.Refresh(ctx, transport.RefreshTokenRequest{RefreshToken: token})
		assertCode(t, err, apperr.CodeUnauthorized)
	}
}
