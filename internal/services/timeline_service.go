package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/anonto42/heritage-feed/backend/internal/models"
	"github.com/anonto42/heritage-feed/backend/internal/repositories"
	"github.com/anonto42/heritage-feed/backend/pkg/logger"
)

// TimelineService assembles read-only post feeds.
type TimelineService interface {
	// Timeline returns the profile's own posts and the posts of every profile
	// it follows, newest first with ties broken by id, each post once.
	Timeline(ctx context.Context, profileID uint, page models.Page) ([]models.Post, error)
	// MyPosts returns only the profile's own posts, in the same order.
	MyPosts(ctx context.Context, profileID uint, page models.Page) ([]models.Post, error)
}

type timelineService struct {
	store *repositories.Store
	group singleflight.Group
}

func NewTimelineService(store *repositories.Store) TimelineService {
	return &timelineService{store: store}
}

func (s *timelineService) Timeline(ctx context.Context, profileID uint, page models.Page) ([]models.Post, error) {
	key := fmt.Sprintf("timeline:%d:%d:%d", profileID, page.Limit, page.Offset)
	return s.collapse(ctx, key, func(ctx context.Context) ([]models.Post, error) {
		if err := requireProfile(ctx, s.store, profileID); err != nil {
			return nil, err
		}
		posts, err := s.store.Posts().Timeline(ctx, profileID, page)
		if err != nil {
			l := logger.Ctx(ctx)
			l.Error().Err(err).Uint(logger.FieldProfileID, profileID).Msg("failed to assemble timeline")
			return nil, err
		}
		return dedupePosts(posts), nil
	})
}

func (s *timelineService) MyPosts(ctx context.Context, profileID uint, page models.Page) ([]models.Post, error) {
	key := fmt.Sprintf("own:%d:%d:%d", profileID, page.Limit, page.Offset)
	return s.collapse(ctx, key, func(ctx context.Context) ([]models.Post, error) {
		if err := requireProfile(ctx, s.store, profileID); err != nil {
			return nil, err
		}
		return s.store.Posts().ByAuthor(ctx, profileID, page)
	})
}

// collapse shares one database read between concurrent identical requests.
// The shared read is detached from any single caller's cancellation; each
// caller stops waiting when its own context ends and gets its own copy of
// the slice.
func (s *timelineService) collapse(ctx context.Context, key string, load func(context.Context) ([]models.Post, error)) ([]models.Post, error) {
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return load(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		shared := res.Val.([]models.Post)
		posts := make([]models.Post, len(shared))
		copy(posts, shared)
		return posts, nil
	}
}

// dedupePosts keeps the first occurrence of every post id, preserving order.
func dedupePosts(posts []models.Post) []models.Post {
	seen := make(map[uint]struct{}, len(posts))
	out := posts[:0]
	for _, p := range posts {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
