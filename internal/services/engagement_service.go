package services

import (
	"context"
	"errors"

	"github.com/anonto42/heritage-feed/backend/internal/cache"
	"github.com/anonto42/heritage-feed/backend/internal/errs"
	"github.com/anonto42/heritage-feed/backend/internal/models"
	"github.com/anonto42/heritage-feed/backend/internal/repositories"
	"github.com/anonto42/heritage-feed/backend/pkg/logger"
)

// EngagementService records likes. A profile likes a post at most once.
type EngagementService interface {
	Like(ctx context.Context, profileID, postID uint) error
	Unlike(ctx context.Context, profileID, postID uint) error
	HasLiked(ctx context.Context, profileID, postID uint) (bool, error)
	LikesCount(ctx context.Context, postID uint) (int64, error)
	LikesByPost(ctx context.Context, postID uint) ([]models.Like, error)
	GetLike(ctx context.Context, id uint) (*models.Like, error)
	DeleteLike(ctx context.Context, id uint) error
}

type engagementService struct {
	store      *repositories.Store
	counts     cache.CounterCache
	activities repositories.ActivityRepository
}

func NewEngagementService(store *repositories.Store, counts cache.CounterCache, activities repositories.ActivityRepository) EngagementService {
	return &engagementService{store: store, counts: counts, activities: activities}
}

// Like inserts a like unless the profile already likes the post.
func (s *engagementService) Like(ctx context.Context, profileID, postID uint) error {
	var created bool
	var ownerID uint
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := requireProfile(ctx, tx, profileID); err != nil {
			return err
		}
		post, err := tx.Posts().GetByID(ctx, postID)
		if err != nil {
			return err
		}
		ownerID = post.ProfileID

		liked, err := tx.Likes().Exists(ctx, profileID, postID)
		if err != nil || liked {
			return err
		}
		created, err = tx.Likes().Create(ctx, profileID, postID)
		return err
	})
	if err != nil {
		l := logger.Ctx(ctx)
		l.Error().Err(err).
			Uint(logger.FieldProfileID, profileID).
			Uint(logger.FieldPostID, postID).
			Msg("failed to like post")
		return err
	}
	if !created {
		return nil
	}

	invalidate(ctx, s.counts, cache.LikesCountKey(postID))
	recordActivity(ctx, s.activities, &models.Activity{
		Type:        models.ActivityLike,
		ActorID:     profileID,
		RecipientID: ownerID,
		TargetID:    postID,
		TargetType:  "post",
	})
	return nil
}

// Unlike removes the profile's like from the post if there is one.
func (s *engagementService) Unlike(ctx context.Context, profileID, postID uint) error {
	var removed bool
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := requireProfile(ctx, tx, profileID); err != nil {
			return err
		}
		if err := requirePost(ctx, tx, postID); err != nil {
			return err
		}
		var err error
		removed, err = tx.Likes().Delete(ctx, profileID, postID)
		return err
	})
	if err != nil {
		l := logger.Ctx(ctx)
		l.Error().Err(err).
			Uint(logger.FieldProfileID, profileID).
			Uint(logger.FieldPostID, postID).
			Msg("failed to unlike post")
		return err
	}

	if removed {
		invalidate(ctx, s.counts, cache.LikesCountKey(postID))
	}
	return nil
}

func (s *engagementService) HasLiked(ctx context.Context, profileID, postID uint) (bool, error) {
	if err := requireProfile(ctx, s.store, profileID); err != nil {
		return false, err
	}
	if err := requirePost(ctx, s.store, postID); err != nil {
		return false, err
	}
	return s.store.Likes().Exists(ctx, profileID, postID)
}

func (s *engagementService) LikesCount(ctx context.Context, postID uint) (int64, error) {
	return countThrough(ctx, s.counts, cache.LikesCountKey(postID), func() (int64, error) {
		if err := requirePost(ctx, s.store, postID); err != nil {
			return 0, err
		}
		return s.store.Likes().CountByPost(ctx, postID)
	})
}

func (s *engagementService) LikesByPost(ctx context.Context, postID uint) ([]models.Like, error) {
	if err := requirePost(ctx, s.store, postID); err != nil {
		return nil, err
	}
	return s.store.Likes().ListByPost(ctx, postID)
}

func (s *engagementService) GetLike(ctx context.Context, id uint) (*models.Like, error) {
	return s.store.Likes().GetByID(ctx, id)
}

// DeleteLike removes a like by id. Unknown ids are a no-op.
func (s *engagementService) DeleteLike(ctx context.Context, id uint) error {
	var postID uint
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		like, err := tx.Likes().GetByID(ctx, id)
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		postID = like.PostID
		_, err = tx.Likes().DeleteByID(ctx, id)
		return err
	})
	if err != nil {
		return err
	}

	if postID != 0 {
		invalidate(ctx, s.counts, cache.LikesCountKey(postID))
	}
	return nil
}
