package service

import (
	"Blogicum/internal/api/dto"
	"Blogicum/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategorySlug(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := SystemViewer()

	derived, err := env.categories.CreateCategory(ctx, admin, &dto.CategoryFormDTO{Title: "Hello World!", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", derived.Slug)
	assert.True(t, derived.IsPublished)

	explicit, err := env.categories.CreateCategory(ctx, admin, &dto.CategoryFormDTO{Title: "Other", Description: "d", Slug: "custom_slug"})
	require.NoError(t, err)
	assert.Equal(t, "custom_slug", explicit.Slug)

	_, err = env.categories.CreateCategory(ctx, admin, &dto.CategoryFormDTO{Title: "hello world", Description: "d"})
	assert.ErrorIs(t, err, ErrSlugExist)

	_, err = env.categories.CreateCategory(ctx, admin, &dto.CategoryFormDTO{Title: "Путешествия", Description: "d"})
	assert.ErrorIs(t, err, ErrSlugEmpty)

	_, err = env.categories.CreateCategory(ctx, admin, &dto.CategoryFormDTO{Title: "x", Description: "d", Slug: "bad slug!"})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestCategoryAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, viewer := env.user(t, "plain")

	_, err := env.categories.CreateCategory(ctx, viewer, &dto.CategoryFormDTO{Title: "x", Description: "d"})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = env.categories.ListAll(ctx, viewer)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, env.categories.DeleteCategory(ctx, Anonymous(), 1), ErrForbidden)
}

func TestCategoryListingAndVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := SystemViewer()
	env.category(t, "zeta", true)
	env.category(t, "alpha", true)
	env.category(t, "hidden", false)

	published, err := env.categories.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, "alpha", published[0].Slug)
	assert.Equal(t, "zeta", published[1].Slug)

	all, err := env.categories.ListAll(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, env.categories.SetPublished(ctx, admin, "zeta", false))
	_, err = env.posts.ListCategory(ctx, Anonymous(), "zeta", 1)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	require.NoError(t, env.categories.SetPublished(ctx, admin, "hidden", true))
	_, err = env.posts.ListCategory(ctx, Anonymous(), "hidden", 1)
	assert.NoError(t, err)

	assert.ErrorIs(t, env.categories.SetPublished(ctx, admin, "ghost", true), ErrCategoryNotFound)
}

func TestUpdateCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := SystemViewer()
	first := env.category(t, "first", true)
	env.category(t, "second", true)

	res, err := env.categories.UpdateCategory(ctx, admin, first.ID, &dto.CategoryFormDTO{Title: "First", Description: "new", Slug: "first"})
	require.NoError(t, err)
	assert.Equal(t, "new", res.Description)

	_, err = env.categories.UpdateCategory(ctx, admin, first.ID, &dto.CategoryFormDTO{Title: "First", Description: "new", Slug: "second"})
	assert.ErrorIs(t, err, ErrSlugExist)

	_, err = env.categories.UpdateCategory(ctx, admin, 999, &dto.CategoryFormDTO{Title: "x", Description: "y"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDeleteCategoryKeepsPosts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author, _ := env.user(t, "author")
	hidden := env.category(t, "hidden", false)
	p := env.post(t, author, "orphan", inCategory(hidden))

	feed, err := env.posts.ListFeed(ctx, Anonymous(), 1)
	require.NoError(t, err)
	assert.Empty(t, feed.Items)

	require.NoError(t, env.categories.DeleteCategory(ctx, SystemViewer(), hidden.ID))

	var stored model.Post
	require.NoError(t, env.db.First(&stored, p.ID).Error)
	assert.Nil(t, stored.CategoryID)

	feed, err = env.posts.ListFeed(ctx, Anonymous(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"orphan"}, titles(feed.Items))
}

func TestLocationService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := SystemViewer()
	author, _ := env.user(t, "author")

	hide := false
	b, err := env.locations.CreateLocation(ctx, admin, &dto.LocationFormDTO{Name: "Berlin"})
	require.NoError(t, err)
	_, err = env.locations.CreateLocation(ctx, admin, &dto.LocationFormDTO{Name: "Amsterdam", IsPublished: &hide})
	require.NoError(t, err)

	published, err := env.locations.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "Berlin", published[0].Name)

	all, err := env.locations.ListAll(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Amsterdam", all[0].Name)

	renamed, err := env.locations.UpdateLocation(ctx, admin, b.ID, &dto.LocationFormDTO{Name: "Bonn"})
	require.NoError(t, err)
	assert.Equal(t, "Bonn", renamed.Name)
	assert.True(t, renamed.IsPublished)

	loc := &model.Location{ID: b.ID}
	p := env.post(t, author, "trip", atLocation(loc))
	require.NoError(t, env.locations.DeleteLocation(ctx, admin, b.ID))

	var stored model.Post
	require.NoError(t, env.db.First(&stored, p.ID).Error)
	assert.Nil(t, stored.LocationID)

	assert.ErrorIs(t, env.locations.DeleteLocation(ctx, admin, b.ID), ErrLocationNotFound)
	_, err = env.locations.CreateLocation(ctx, Viewer{UserID: author.ID}, &dto.LocationFormDTO{Name: "x"})
	assert.ErrorIs(t, err, ErrForbidden)
}
