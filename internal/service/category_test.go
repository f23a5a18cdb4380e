package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arfandy/journal-backend/internal/apperr"
	"github.com/arfandy/journal-backend/internal/models"
	"github.com/arfandy/journal-backend/internal/transport"
)

func TestCategoryService_CreateNormalizesName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerUser(t, "alice")

	category, err := env.Category.Create(ctx, userID, transport.CategoryRequest{Name: "work notes"})
	require.NoError(t, err)
	assert.Equal(t, "Work notes", category.Name)
	require.NotNil(t, category.UserID)
	assert.Equal(t, userID, *category.UserID)
}

func TestCategoryService_CreateCaseInsensitiveConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerUser(t, "alice")

	_, err := env.Category.Create(ctx, userID, transport.CategoryRequest{Name: "Work"})
	require.NoError(t, err)

	_, err = env.Category.Create(ctx, userID, transport.CategoryRequest{Name: "work"})
	assertCode(t, err, apperr.CodeConflict)
}

func TestCategoryService_CreateConflictsWithGlobal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerUser(t, "alice")

	global := models.Category{Name: "Work"}
	require.NoError(t, env.Repo.CreateCategory(ctx, &global))

	_, err := env.Category.Create(ctx, userID, transport.CategoryRequest{Name: "work"})
	assertCode(t, err, apperr.CodeConflict)
}

func TestCategoryService_ListVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	aliceID := env.registerUser(t, "alice")
	bobID := env.registerUser(t, "bob")

	global := models.Category{Name: "General"}
	require.NoError(t, env.Repo.CreateCategory(ctx, &global))
	_, err := env.Category.Create(ctx, aliceID, transport.CategoryRequest{Name: "Private"})
	require.NoError(t, err)

	aliceList, err := env.Category.List(ctx, aliceID)
	require.NoError(t, err)
	assert.Len(t, aliceList, 2)

	// Bob sees the global record only.
	bobList, err := env.Category.List(ctx, bobID)
	require.NoError(t, err)
	require.Len(t, bobList, 1)
	assert.Equal(t, "General", bobList[0].Name)
	assert.Nil(t, bobList[0].UserID)
}

func TestCategoryService_MutateGlobalForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerUser(t, "alice")

	global := models.Category{Name: "General"}
	require.NoError(t, env.Repo.CreateCategory(ctx, &global))

	_, err := env.Category.Update(ctx, userID, global.ID, transport.CategoryRequest{Name: "Renamed"})
	assertCode(t, err, apperr.CodeForbidden)

	err = env.Category.Delete(ctx, userID, global.ID)
	assertCode(t, err, apperr.CodeForbidden)
}

func TestCategoryService_MutateForeignForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	aliceID := env.registerUser(t, "alice")
	bobID := env.registerUser(t, "bob")

	category, err := env.Category.Create(ctx, aliceID, transport.CategoryRequest{Name: "Private"})
	require.NoError(t, err)

	_, err = env.Category.Update(ctx, bobID, category.ID, transport.CategoryRequest{Name: "Stolen"})
	assertCode(t, err, apperr.CodeForbidden)

	err = env.Category.Delete(ctx, bobID, category.ID)
	assertCode(t, err, apperr.CodeForbidden)
}

func TestCategoryService_MissingReportsNotFoundBeforeOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerUser(t, "alice")

	missing := models.Category{Name: "Ghost"}
	missing.ID = newUUID(t)

	_, err := env.Category.Update(ctx, userID, missing.ID, transport.CategoryRequest{Name: "X"})
	assertCode(t, err, apperr.CodeNotFound)

	err = env.Category.Delete(ctx, userID, missing.ID)
	assertCode(t, err, apperr.CodeNotFound)
}

func TestCategoryService_UpdateOwn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerUser(t, "alice")

	category, err := env.Category.Create(ctx, userID, transport.CategoryRequest{Name: "drafts"})
	require.NoError(t, err)

	updated, err := env.Category.Update(ctx, userID, category.ID, transport.CategoryRequest{Name: "published"})
	require.NoError(t, err)
	assert.Equal(t, "Published", updated.Name)

	require.NoError(t, env.Category.Delete(ctx, userID, category.ID))

	list, err := env.Category.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
