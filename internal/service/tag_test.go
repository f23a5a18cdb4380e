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

func TestTagService_CreateNormalizesName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerUser(t, "alice")

	tag, err := env.Tag.Create(ctx, userID, transport.TagRequest{Name: "Side Project"})
	require.NoError(t, err)
	assert.Equal(t, "sideproject", tag.Name)
}

func TestTagService_CreateCaseInsensitiveConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerUser(t, "alice")

	_, err := env.Tag.Create(ctx, userID, transport.TagRequest{Name: "ideas"})
	require.NoError(t, err)

	_, err = env.Tag.Create(ctx, userID, transport.TagRequest{Name: "Ideas"})
	assertCode(t, err, apperr.CodeConflict)
}

func TestTagService_ListVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	aliceID := env.registerUser(t, "alice")
	bobID := env.registerUser(t, "bob")

	global := models.Tag{Name: "daily"}
	require.NoError(t, env.Repo.CreateTag(ctx, &global))
	_, err := env.Tag.Create(ctx, aliceID, transport.TagRequest{Name: "mine"})
	require.NoError(t, err)

	bobList, err := env.Tag.List(ctx, bobID)
	require.NoError(t, err)
	require.Len(t, bobList, 1)
	assert.Equal(t, "daily", bobList[0].Name)
}

func TestTagService_MutateGlobalForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerUser(t, "alice")

	global := models.Tag{Name: "daily"}
	require.NoError(t, env.Repo.CreateTag(ctx, &global))

	_, err := env.Tag.Update(ctx, userID, global.ID, transport.TagRequest{Name: "renamed"})
	assertCode(t, err, apperr.CodeForbidden)

	err = env.Tag.Delete(ctx, userID, global.ID)
	assertCode(t, err, apperr.CodeForbidden)
}

func TestTagService_MutateForeignForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	aliceID := env.registerUser(t, "alice")
	bobID := env.registerUser(t, "bob")

	tag, err := env.Tag.Create(ctx, aliceID, transport.TagRequest{Name: "mine"})
	require.NoError(t, err)

	_, err = env.Tag.Update(ctx, bobID, tag.ID, transport.TagRequest{Name: "stolen"})
	assertCode(t, err, apperr.CodeForbidden)
}

func TestTagService_MissingReportsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerUser(t, "alice")

	_, err := env.Tag.Update(ctx, userID, newUUID(t), transport.TagRequest{Name: "x"})
	assertCode(t, err, apperr.CodeNotFound)
}

func TestTagService_UpdateAndDeleteOwn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := env.registerUser(t, "alice")

	tag, err := env.Tag.Create(ctx, userID, transport.TagRequest{Name: "draft"})
	require.NoError(t, err)

	updated, err := env.Tag.Update(ctx, userID, tag.ID, transport.TagRequest{Name: "Final Copy"})
	require.NoError(t, err)
	assert.Equal(t, "finalcopy", updated.Name)

	require.NoError(t, env.Tag.Delete(ctx, userID, tag.ID))

	list, err := env.Tag.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
