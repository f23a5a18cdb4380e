package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arfandy/journal-backend/internal/apperr"
	"github.com/arfandy/journal-backend/internal/config"
	"github.com/arfandy/journal-backend/internal/repo"
	"github.com/arfandy/journal-backend/internal/transport"
	"github.com/arfandy/journal-backend/internal/validate"
)

type testEnv struct {
	Repo     *repo.GormRepo
	Auth     *AuthService
	User     *UserService
	Category *CategoryService
	Tag      *TagService
	Journal  *JournalService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	r := &repo.GormRepo{DB: db}
	v := validate.New()
	auth := &AuthService{Repo: r, Validate: v, AccessSecret: []byte("test-jwt-secret")}

	return &testEnv{
		Repo:     r,
		Auth:     auth,
		User:     &UserService{Repo: r, Auth: auth, Validate: v},
		Category: &CategoryService{Repo: r, Validate: v},
		Tag:      &TagService{Repo: r, Validate: v},
		Journal:  &JournalService{Repo: r, Validate: v},
	}
}

// registerUser creates an account through the real registration path and
// returns its id.
func (env *testEnv) registerUser(t *testing.T, username string) uuid.UUID {
	t.Helper()

	user, err := env.Auth.Register(context.Background(), transport.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Name:     username,
		Password: "secret123",
	})
	require.NoError(t, err)
	return user.ID
}

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}
