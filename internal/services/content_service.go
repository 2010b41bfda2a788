package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/heritage-feed/backend/internal/cache"
	"github.com/anonto42/heritage-feed/backend/internal/errs"
	"github.com/anonto42/heritage-feed/backend/internal/models"
	"github.com/anonto42/heritage-feed/backend/internal/repositories"
	"github.com/anonto42/heritage-feed/backend/pkg/logger"
)

// ContentService owns posts, tags and comments.
type ContentService interface {
	CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, id uint) (*models.Post, error)
	UpdatePost(ctx context.Context, id uint, req *models.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, id uint) error
	SearchPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	SearchByName(ctx context.Context, name string) ([]models.Post, error)
	SearchByType(ctx context.Context, postType models.MediaType) ([]models.Post, error)
	SearchByCategory(ctx context.Context, category models.Category) ([]models.Post, error)
	SearchByLocation(ctx context.Context, location string) ([]models.Post, error)
	SearchByLicensing(ctx context.Context, licensing models.Licensing) ([]models.Post, error)

	CreateTag(ctx context.Context, req *models.TagRequest) (*models.PostTag, error)
	GetTag(ctx context.Context, id uint) (*models.PostTag, error)
	ListTags(ctx context.Context) ([]models.PostTag, error)
	UpdateTag(ctx context.Context, id uint, req *models.TagRequest) (*models.PostTag, error)
	DeleteTag(ctx context.Context, id uint) error
	AddTag(ctx context.Context, postID, tagID uint) error
	RemoveTag(ctx context.Context, postID, tagID uint) error
	HasTag(ctx context.Context, postID, tagID uint) (bool, error)

	AddComment(ctx context.Context, postID uint, req *models.CreateCommentRequest) (*models.Comment, error)
	GetComment(ctx context.Context, id uint) (*models.Comment, error)
	ListComments(ctx context.Context, postID uint) ([]models.Comment, error)
	UpdateComment(ctx context.Context, id uint, req *models.UpdateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
}

type contentService struct {
	store  *repositories.Store
	counts cache.CounterCache
}

func NewContentService(store *repositories.Store, counts cache.CounterCache) ContentService {
	return &contentService{store: store, counts: counts}
}

// CreatePost stores a post for an existing profile and attaches the given tags.
func (s *contentService) CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		Media:         req.Media,
		PostName:      req.PostName,
		PostType:      req.PostType,
		PostLocation:  req.PostLocation,
		PostCategory:  req.PostCategory,
		PostLicensing: req.PostLicensing,
		ProfileID:     req.ProfileID,
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := requireProfile(ctx, tx, req.ProfileID); err != nil {
			return err
		}
		if err := tx.Posts().Create(ctx, post); err != nil {
			return err
		}
		for _, tagID := range req.TagIDs {
			if err := requireTag(ctx, tx, tagID); err != nil {
				return err
			}
			if _, err := tx.Tags().Attach(ctx, post.ID, tagID); err != nil {
				return err
			}
		}
		var err error
		post, err = tx.Posts().GetByID(ctx, post.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	l := logger.Ctx(ctx)
	l.Info().
		Uint(logger.FieldPostID, post.ID).
		Uint(logger.FieldProfileID, post.ProfileID).
		Msg("post created")
	return post, nil
}

func (s *contentService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.store.Posts().GetByID(ctx, id)
}

func (s *contentService) UpdatePost(ctx context.Context, id uint, req *models.UpdatePostRequest) (*models.Post, error) {
	var post *models.Post
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		post, err = tx.Posts().GetByID(ctx, id)
		if err != nil {
			return err
		}

		var columns []string
		if req.Media != nil {
			post.Media = *req.Media
			columns = append(columns, "media")
		}
		if req.PostName != nil {
			post.PostName = *req.PostName
			columns = append(columns, "post_name")
		}
		if req.PostType != nil {
			post.PostType = *req.PostType
			columns = append(columns, "post_type")
		}
		if req.PostLocation != nil {
			post.PostLocation = *req.PostLocation
			columns = append(columns, "post_location")
		}
		if req.PostCategory != nil {
			post.PostCategory = *req.PostCategory
			columns = append(columns, "post_category")
		}
		if req.PostLicensing != nil {
			post.PostLicensing = *req.PostLicensing
			columns = append(columns, "post_licensing")
		}
		if len(columns) == 0 {
			return nil
		}

		if err := tx.Posts().Update(ctx, post, columns...); err != nil {
			return err
		}
		post, err = tx.Posts().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post with its likes, comments and tag associations.
// Unknown ids are a no-op.
func (s *contentService) DeletePost(ctx context.Context, id uint) error {
	var deleted bool
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		deleted, err = tx.Posts().Delete(ctx, id)
		return err
	})
	if err != nil {
		l := logger.Ctx(ctx)
		l.Error().Err(err).Uint(logger.FieldPostID, id).Msg("failed to delete post")
		return err
	}
	if deleted {
		invalidate(ctx, s.counts, cache.LikesCountKey(id))
	}
	return nil
}

// SearchPosts matches every non-empty filter field exactly.
func (s *contentService) SearchPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	if filter.PostType != "" && !filter.PostType.Valid() {
		return nil, errs.Validation("type", fmt.Sprintf("unknown media type %q", filter.PostType))
	}
	if filter.PostCategory != "" && !filter.PostCategory.Valid() {
		return nil, errs.Validation("category", fmt.Sprintf("unknown category %q", filter.PostCategory))
	}
	if filter.PostLicensing != "" && !filter.PostLicensing.Valid() {
		return nil, errs.Validation("licensing", fmt.Sprintf("unknown licensing %q", filter.PostLicensing))
	}
	return s.store.Posts().Search(ctx, filter)
}

func (s *contentService) SearchByName(ctx context.Context, name string) ([]models.Post, error) {
	return s.SearchPosts(ctx, models.PostFilter{PostName: name})
}

func (s *contentService) SearchByType(ctx context.Context, postType models.MediaType) ([]models.Post, error) {
	return s.SearchPosts(ctx, models.PostFilter{PostType: postType})
}

func (s *contentService) SearchByCategory(ctx context.Context, category models.Category) ([]models.Post, error) {
	return s.SearchPosts(ctx, models.PostFilter{PostCategory: category})
}

func (s *contentService) SearchByLocation(ctx context.Context, location string) ([]models.Post, error) {
	return s.SearchPosts(ctx, models.PostFilter{PostLocation: location})
}

func (s *contentService) SearchByLicensing(ctx context.Context, licensing models.Licensing) ([]models.Post, error) {
	return s.SearchPosts(ctx, models.PostFilter{PostLicensing: licensing})
}

func (s *contentService) CreateTag(ctx context.Context, req *models.TagRequest) (*models.PostTag, error) {
	tag := &models.PostTag{TagText: req.TagText}
	if err := s.store.Tags().Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *contentService) GetTag(ctx context.Context, id uint) (*models.PostTag, error) {
	return s.store.Tags().GetByID(ctx, id)
}

func (s *contentService) ListTags(ctx context.Context) ([]models.PostTag, error) {
	return s.store.Tags().List(ctx)
}

func (s *contentService) UpdateTag(ctx context.Context, id uint, req *models.TagRequest) (*models.PostTag, error) {
	var tag *models.PostTag
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		tag, err = tx.Tags().GetByID(ctx, id)
		if err != nil {
			return err
		}
		tag.TagText = req.TagText
		return tx.Tags().Update(ctx, tag)
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag detaches the tag from every post and removes it.
func (s *contentService) DeleteTag(ctx context.Context, id uint) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		_, err := tx.Tags().Delete(ctx, id)
		return err
	})
}

// AddTag attaches the tag to the post if it is not attached yet.
func (s *contentService) AddTag(ctx context.Context, postID, tagID uint) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := requirePost(ctx, tx, postID); err != nil {
			return err
		}
		if err := requireTag(ctx, tx, tagID); err != nil {
			return err
		}
		attached, err := tx.Tags().IsAttached(ctx, postID, tagID)
		if err != nil || attached {
			return err
		}
		_, err = tx.Tags().Attach(ctx, postID, tagID)
		return err
	})
}

// RemoveTag detaches the tag from the post if it is attached.
func (s *contentService) RemoveTag(ctx context.Context, postID, tagID uint) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := requirePost(ctx, tx, postID); err != nil {
			return err
		}
		if err := requireTag(ctx, tx, tagID); err != nil {
			return err
		}
		_, err := tx.Tags().Detach(ctx, postID, tagID)
		return err
	})
}

func (s *contentService) HasTag(ctx context.Context, postID, tagID uint) (bool, error) {
	if err := requirePost(ctx, s.store, postID); err != nil {
		return false, err
	}
	if err := requireTag(ctx, s.store, tagID); err != nil {
		return false, err
	}
	return s.store.Tags().IsAttached(ctx, postID, tagID)
}

func (s *contentService) AddComment(ctx context.Context, postID uint, req *models.CreateCommentRequest) (*models.Comment, error) {
	comment := &models.Comment{Text: req.Comment, PostID: postID}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := requirePost(ctx, tx, postID); err != nil {
			return err
		}
		return tx.Comments().Create(ctx, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *contentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.store.Comments().GetByID(ctx, id)
}

// ListComments returns a post's comments oldest first.
func (s *contentService) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	if err := requirePost(ctx, s.store, postID); err != nil {
		return nil, err
	}
	return s.store.Comments().ListByPost(ctx, postID)
}

func (s *contentService) UpdateComment(ctx context.Context, id uint, req *models.UpdateCommentRequest) (*models.Comment, error) {
	var comment *models.Comment
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		comment, err = tx.Comments().GetByID(ctx, id)
		if err != nil {
			return err
		}
		comment.Text = req.Comment
		return tx.Comments().Update(ctx, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *contentService) DeleteComment(ctx context.Context, id uint) error {
	_, err := s.store.Comments().Delete(ctx, id)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	return nil
}
