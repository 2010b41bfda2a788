package services

import (
	"context"

	"github.com/anonto42/heritage-feed/backend/internal/cache"
	"github.com/anonto42/heritage-feed/backend/internal/models"
	"github.com/anonto42/heritage-feed/backend/internal/repositories"
	"github.com/anonto42/heritage-feed/backend/pkg/logger"
)

// GraphService maintains the directed follower graph between profiles.
type GraphService interface {
	Follow(ctx context.Context, followerID, followedID uint) error
	Unfollow(ctx context.Context, followerID, followedID uint) error
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
	Followers(ctx context.Context, profileID uint, page models.Page) ([]models.Profile, error)
	Following(ctx context.Context, profileID uint, page models.Page) ([]models.Profile, error)
	FollowersCount(ctx context.Context, profileID uint) (int64, error)
	FollowingCount(ctx context.Context, profileID uint) (int64, error)
	Stats(ctx context.Context, profileID uint) (*models.ProfileStats, error)
}

type graphService struct {
	store      *repositories.Store
	counts     cache.CounterCache
	activities repositories.ActivityRepository
}

func NewGraphService(store *repositories.Store, counts cache.CounterCache, activities repositories.ActivityRepository) GraphService {
	return &graphService{store: store, counts: counts, activities: activities}
}

// Follow creates the edge follower -> followed if it is absent. Following
// twice is not an error. A profile may follow itself.
func (s *graphService) Follow(ctx context.Context, followerID, followedID uint) error {
	l := logger.Ctx(ctx)

	var created bool
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := requireProfile(ctx, tx, followerID); err != nil {
			return err
		}
		if err := requireProfile(ctx, tx, followedID); err != nil {
			return err
		}

		exists, err := tx.Follows().Exists(ctx, followerID, followedID)
		if err != nil || exists {
			return err
		}
		created, err = tx.Follows().Create(ctx, followerID, followedID)
		return err
	})
	if err != nil {
		l.Error().Err(err).
			Uint(logger.FieldProfileID, followerID).
			Uint(logger.FieldTargetID, followedID).
			Msg("failed to follow profile")
		return err
	}
	if !created {
		return nil
	}

	invalidate(ctx, s.counts, cache.FollowingCountKey(followerID), cache.FollowersCountKey(followedID))
	recordActivity(ctx, s.activities, &models.Activity{
		Type:        models.ActivityFollow,
		ActorID:     followerID,
		RecipientID: followedID,
		TargetID:    followedID,
		TargetType:  "profile",
	})
	return nil
}

// Unfollow removes the edge follower -> followed if it is present.
func (s *graphService) Unfollow(ctx context.Context, followerID, followedID uint) error {
	l := logger.Ctx(ctx)

	var removed bool
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := requireProfile(ctx, tx, followerID); err != nil {
			return err
		}
		if err := requireProfile(ctx, tx, followedID); err != nil {
			return err
		}

		var err error
		removed, err = tx.Follows().Delete(ctx, followerID, followedID)
		return err
	})
	if err != nil {
		l.Error().Err(err).
			Uint(logger.FieldProfileID, followerID).
			Uint(logger.FieldTargetID, followedID).
			Msg("failed to unfollow profile")
		return err
	}

	if removed {
		invalidate(ctx, s.counts, cache.FollowingCountKey(followerID), cache.FollowersCountKey(followedID))
	}
	return nil
}

// IsFollowing reports whether the edge exists. Both profiles must exist.
func (s *graphService) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	if err := requireProfile(ctx, s.store, followerID); err != nil {
		return false, err
	}
	if err := requireProfile(ctx, s.store, followedID); err != nil {
		return false, err
	}
	return s.store.Follows().Exists(ctx, followerID, followedID)
}

func (s *graphService) Followers(ctx context.Context, profileID uint, page models.Page) ([]models.Profile, error) {
	if err := requireProfile(ctx, s.store, profileID); err != nil {
		return nil, err
	}
	return s.store.Follows().Followers(ctx, profileID, page)
}

func (s *graphService) Following(ctx context.Context, profileID uint, page models.Page) ([]models.Profile, error) {
	if err := requireProfile(ctx, s.store, profileID); err != nil {
		return nil, err
	}
	return s.store.Follows().Following(ctx, profileID, page)
}

// FollowersCount reads through the counter cache.
func (s *graphService) FollowersCount(ctx context.Context, profileID uint) (int64, error) {
	return countThrough(ctx, s.counts, cache.FollowersCountKey(profileID), func() (int64, error) {
		if err := requireProfile(ctx, s.store, profileID); err != nil {
			return 0, err
		}
		return s.store.Follows().CountFollowers(ctx, profileID)
	})
}

func (s *graphService) FollowingCount(ctx context.Context, profileID uint) (int64, error) {
	return countThrough(ctx, s.counts, cache.FollowingCountKey(profileID), func() (int64, error) {
		if err := requireProfile(ctx, s.store, profileID); err != nil {
			return 0, err
		}
		return s.store.Follows().CountFollowing(ctx, profileID)
	})
}

func (s *graphService) Stats(ctx context.Context, profileID uint) (*models.ProfileStats, error) {
	followers, err := s.FollowersCount(ctx, profileID)
	if err != nil {
		return nil, err
	}
	following, err := s.FollowingCount(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return &models.ProfileStats{
		ProfileID:      profileID,
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}
