package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/heritage-feed/backend/internal/errs"
	"github.com/anonto42/heritage-feed/backend/internal/models"
)

func TestCreatePostDefaultsAndTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.profile(t, "owner")
	tag, err := f.content.CreateTag(ctx, &models.TagRequest{TagText: "festival"})
	require.NoError(t, err)

	post, err := f.content.CreatePost(ctx, &models.CreatePostRequest{
		ProfileID:    owner.ID,
		PostName:     "durbar",
		PostLocation: "Kano",
		TagIDs:       []uint{tag.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, models.MediaPhoto, post.PostType)
	assert.Equal(t, models.CategoryAfricanHistory, post.PostCategory)
	assert.Equal(t, models.LicensingCreativeCommons, post.PostLicensing)
	assert.False(t, post.Timestamp.IsZero())
	require.Len(t, post.Tags, 1)
	assert.Equal(t, "festival", post.Tags[0].TagText)
}

func TestCreatePostRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.profile(t, "owner")
	f.post(t, owner.ID, "taken", t0)

	_, err := f.content.CreatePost(ctx, &models.CreatePostRequest{ProfileID: 404, PostName: "x", PostLocation: "y"})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = f.content.CreatePost(ctx, &models.CreatePostRequest{ProfileID: owner.ID, PostName: "taken", PostLocation: "y"})
	assert.ErrorIs(t, err, errs.ErrConflict)

	_, err = f.content.CreatePost(ctx, &models.CreatePostRequest{
		ProfileID:    owner.ID,
		PostName:     "odd",
		PostLocation: "y",
		PostCategory: "ancientroman",
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = f.content.CreatePost(ctx, &models.CreatePostRequest{
		ProfileID:    owner.ID,
		PostName:     "untagged",
		PostLocation: "y",
		TagIDs:       []uint{404},
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	found, err := f.content.SearchByName(ctx, "untagged")
	require.NoError(t, err)
	assert.Empty(t, found, "failed creation leaves nothing behind")
}

func TestUpdatePostValidatesEnums(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.profile(t, "owner")
	post := f.post(t, owner.ID, "drum", t0)

	video := models.MediaVideo
	got, err := f.content.UpdatePost(ctx, post.ID, &models.UpdatePostRequest{PostType: &video})
	require.NoError(t, err)
	assert.Equal(t, models.MediaVideo, got.PostType)

	bogus := models.MediaType("gif")
	_, err = f.content.UpdatePost(ctx, post.ID, &models.UpdatePostRequest{PostType: &bogus})
	assert.ErrorIs(t, err, errs.ErrValidation)

	reloaded, err := f.content.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MediaVideo, reloaded.PostType)
}

func TestSearchHelpers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.profile(t, "owner")

	old := f.post(t, owner.ID, "old", t0)
	recent := f.post(t, owner.ID, "recent", t0.Add(time.Hour))
	audio := models.MediaAudio
	_, err := f.content.UpdatePost(ctx, recent.ID, &models.UpdatePostRequest{PostType: &audio})
	require.NoError(t, err)

	byLocation, err := f.content.SearchPosts(ctx, models.PostFilter{PostLocation: "Dakar", OrderByTimestamp: true})
	require.NoError(t, err)
	assert.Equal(t, []uint{recent.ID, old.ID}, ids(byLocation))

	byType, err := f.content.SearchByType(ctx, models.MediaAudio)
	require.NoError(t, err)
	assert.Equal(t, []uint{recent.ID}, ids(byType))

	byCategory, err := f.content.SearchByCategory(ctx, models.CategoryNeoAfrican)
	require.NoError(t, err)
	assert.Empty(t, byCategory)

	byLicensing, err := f.content.SearchByLicensing(ctx, models.LicensingCreativeCommons)
	require.NoError(t, err)
	assert.Len(t, byLicensing, 2)

	_, err = f.content.SearchByType(ctx, "hologram")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestTagAssociationIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.profile(t, "owner")
	post := f.post(t, owner.ID, "mask", t0)
	tag, err := f.content.CreateTag(ctx, &models.TagRequest{TagText: "wood"})
	require.NoError(t, err)

	require.NoError(t, f.content.AddTag(ctx, post.ID, tag.ID))
	require.NoError(t, f.content.AddTag(ctx, post.ID, tag.ID))

	got, err := f.content.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tags, 1)

	has, err := f.content.HasTag(ctx, post.ID, tag.ID)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, f.content.RemoveTag(ctx, post.ID, tag.ID))
	require.NoError(t, f.content.RemoveTag(ctx, post.ID, tag.ID))

	has, err = f.content.HasTag(ctx, post.ID, tag.ID)
	require.NoError(t, err)
	assert.False(t, has)

	assert.ErrorIs(t, f.content.AddTag(ctx, post.ID, 404), errs.ErrNotFound)
	assert.ErrorIs(t, f.content.AddTag(ctx, 404, tag.ID), errs.ErrNotFound)
}

func TestDeleteTagDetachesPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.profile(t, "owner")
	post := f.post(t, owner.ID, "mask", t0)
	tag, err := f.content.CreateTag(ctx, &models.TagRequest{TagText: "wood"})
	require.NoError(t, err)
	require.NoError(t, f.content.AddTag(ctx, post.ID, tag.ID))

	renamed, err := f.content.UpdateTag(ctx, tag.ID, &models.TagRequest{TagText: "carving"})
	require.NoError(t, err)
	assert.Equal(t, "carving", renamed.TagText)

	require.NoError(t, f.content.DeleteTag(ctx, tag.ID))

	got, err := f.content.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)

	_, err = f.content.GetTag(ctx, tag.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.profile(t, "owner")
	post := f.post(t, owner.ID, "mask", t0)

	first, err := f.content.AddComment(ctx, post.ID, &models.CreateCommentRequest{Comment: "beautiful"})
	require.NoError(t, err)
	_, err = f.content.AddComment(ctx, post.ID, &models.CreateCommentRequest{Comment: "where is this?"})
	require.NoError(t, err)

	_, err = f.content.AddComment(ctx, 404, &models.CreateCommentRequest{Comment: "lost"})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	updated, err := f.content.UpdateComment(ctx, first.ID, &models.UpdateCommentRequest{Comment: "stunning"})
	require.NoError(t, err)
	assert.Equal(t, "stunning", updated.Text)

	comments, err := f.content.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "stunning", comments[0].Text)

	require.NoError(t, f.content.DeleteComment(ctx, first.ID))
	require.NoError(t, f.content.DeleteComment(ctx, first.ID))
	_, err = f.content.GetComment(ctx, first.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeletePostCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.profile(t, "owner")
	post := f.post(t, owner.ID, "mask", t0)
	require.NoError(t, f.engagement.Like(ctx, owner.ID, post.ID))
	_, err := f.content.AddComment(ctx, post.ID, &models.CreateCommentRequest{Comment: "hi"})
	require.NoError(t, err)

	require.NoError(t, f.content.DeletePost(ctx, post.ID))
	require.NoError(t, f.content.DeletePost(ctx, post.ID))

	liked, err := f.engagement.HasLiked(ctx, owner.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	_, err = f.content.ListComments(ctx, post.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
