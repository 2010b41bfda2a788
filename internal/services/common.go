package services

import (
	"context"

	"github.com/anonto42/heritage-feed/backend/internal/cache"
	"github.com/anonto42/heritage-feed/backend/internal/errs"
	"github.com/anonto42/heritage-feed/backend/internal/models"
	"github.com/anonto42/heritage-feed/backend/internal/repositories"
	"github.com/anonto42/heritage-feed/backend/pkg/logger"
)

// countThrough reads a count from the cache, loading and storing it on miss.
// Cache failures only degrade to a database read. A count loaded while a
// writer invalidated the key is returned but not cached.
func countThrough(ctx context.Context, c cache.CounterCache, key string, load func() (int64, error)) (int64, error) {
	l := logger.Ctx(ctx)

	count, found, err := c.Get(ctx, key)
	if err != nil {
		l.Warn().Err(err).Str("key", key).Msg("counter cache get failed, falling back to db")
	}
	if found {
		return count, nil
	}

	gen, genErr := c.Generation(ctx, key)
	if genErr != nil {
		l.Warn().Err(genErr).Str("key", key).Msg("counter cache generation read failed")
	}

	count, err = load()
	if err != nil || genErr != nil {
		return count, err
	}

	if err := c.Fill(ctx, key, count, gen); err != nil {
		l.Warn().Err(err).Str("key", key).Msg("failed to populate counter cache")
	}
	return count, nil
}

func invalidate(ctx context.Context, c cache.CounterCache, keys ...string) {
	if err := c.Invalidate(ctx, keys...); err != nil {
		l := logger.Ctx(ctx)
		l.Warn().Err(err).Strs("keys", keys).Msg("failed to invalidate counter cache")
	}
}

// recordActivity appends to the activity log. Failures are logged and dropped.
func recordActivity(ctx context.Context, repo repositories.ActivityRepository, activity *models.Activity) {
	if err := repo.Record(ctx, activity); err != nil {
		l := logger.Ctx(ctx)
		l.Warn().Err(err).
			Str("type", string(activity.Type)).
			Uint(logger.FieldProfileID, activity.ActorID).
			Uint(logger.FieldTargetID, activity.TargetID).
			Msg("failed to record activity")
	}
}

func requireProfile(ctx context.Context, store *repositories.Store, id uint) error {
	ok, err := store.Profiles().Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NotFound("profile")
	}
	return nil
}

func requirePost(ctx context.Context, store *repositories.Store, id uint) error {
	ok, err := store.Posts().Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NotFound("post")
	}
	return nil
}

func requireTag(ctx context.Context, store *repositories.Store, id uint) error {
	ok, err := store.Tags().Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NotFound("tag")
	}
	return nil
}
