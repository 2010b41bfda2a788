package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/heritage-feed/backend/internal/cache"
	"github.com/anonto42/heritage-feed/backend/internal/errs"
	"github.com/anonto42/heritage-feed/backend/internal/models"
)

func TestCreateProfileDefaults(t *testing.T) {
	f := newFixture(t)
	p := f.profile(t, "adjoa")

	assert.True(t, p.IsActive)
	assert.False(t, p.IsVerified)
	assert.False(t, p.JoinDate.IsZero())

	_, err := f.profiles.Create(context.Background(), &models.CreateProfileRequest{Username: "adjoa", Country: "Benin"})
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestProfileFlagsAreOrthogonal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.profile(t, "adjoa")

	got, err := f.profiles.Verify(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.True(t, got.IsVerified)

	got, err = f.profiles.Deactivate(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.True(t, got.IsVerified)

	got, err = f.profiles.Deactivate(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	got, err = f.profiles.Deverify(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsVerified)

	got, err = f.profiles.Activate(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.False(t, got.IsVerified)

	_, err = f.profiles.Verify(ctx, 404)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.profile(t, "adjoa")
	f.profile(t, "yaw")

	handle := "@adjoa"
	country := "Nigeria"
	got, err := f.profiles.Update(ctx, p.ID, &models.UpdateProfileRequest{Country: &country, Twitter: &handle})
	require.NoError(t, err)
	assert.Equal(t, "Nigeria", got.Country)
	require.NotNil(t, got.Twitter)
	assert.Equal(t, "@adjoa", *got.Twitter)
	assert.Equal(t, "adjoa", got.Username)

	taken := "yaw"
	_, err = f.profiles.Update(ctx, p.ID, &models.UpdateProfileRequest{Username: &taken})
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestDeleteProfileCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gone := f.profile(t, "gone")
	stay := f.profile(t, "stay")

	post := f.post(t, gone.ID, "heirloom", t0)
	theirs := f.post(t, stay.ID, "theirs", t0)
	require.NoError(t, f.engagement.Like(ctx, stay.ID, post.ID))
	require.NoError(t, f.engagement.Like(ctx, gone.ID, theirs.ID))
	require.NoError(t, f.graph.Follow(ctx, stay.ID, gone.ID))
	require.NoError(t, f.graph.Follow(ctx, gone.ID, stay.ID))

	n, err := f.graph.FollowingCount(ctx, stay.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, f.profiles.Delete(ctx, gone.ID))
	assert.False(t, f.counts.has(cache.FollowingCountKey(stay.ID)))

	_, err = f.profiles.Get(ctx, gone.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = f.content.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	stats, err := f.graph.Stats(ctx, stay.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.FollowersCount)
	assert.Zero(t, stats.FollowingCount)

	likes, err := f.engagement.LikesByPost(ctx, theirs.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)

	feed, err := f.timeline.Timeline(ctx, stay.ID, models.Page{})
	require.NoError(t, err)
	assert.Equal(t, []uint{theirs.ID}, ids(feed))

	assert.NoError(t, f.profiles.Delete(ctx, gone.ID), "deleting twice is a no-op")
}

func TestSearchProfiles(t *testing.T) {
	f := newFixture(t)
	f.profile(t, "Kwabena")
	f.profile(t, "abena")
	f.profile(t, "kofi")

	found, err := f.profiles.Search(context.Background(), "BENA")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Kwabena", found[0].Username)
	assert.Equal(t, "abena", found[1].Username)
}
