package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anonto42/heritage-feed/backend/internal/errs"
	"github.com/anonto42/heritage-feed/backend/internal/models"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, post *models.Post, columns ...string) error
	Delete(ctx context.Context, id uint) (bool, error)
	Search(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	ByAuthor(ctx context.Context, profileID uint, page models.Page) ([]models.Post, error)
	Timeline(ctx context.Context, profileID uint, page models.Page) ([]models.Post, error)
}

// GormPostRepository implements PostRepository with GORM
type GormPostRepository struct {
	db *gorm.DB
}

func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create inserts the post row only. Tags are attached separately.
func (r *GormPostRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
	return errs.FromDB("create", "post", err)
}

// GetByID loads a post with its tags.
func (r *GormPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("posttags.id ASC")
	}).First(&post, id).Error
	if err != nil {
		return nil, errs.FromDB("load", "post", err)
	}
	return &post, nil
}

func (r *GormPostRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errs.FromDB("load", "post", err)
	}
	return count > 0, nil
}

// Update writes the named columns of the post, or every column when none are
// named. BeforeSave runs either way, so enum and required-field checks apply
// to updates too.
func (r *GormPostRepository) Update(ctx context.Context, post *models.Post, columns ...string) error {
	db := r.db.WithContext(ctx).Omit(clause.Associations)
	var err error
	if len(columns) == 0 {
		err = db.Save(post).Error
	} else {
		err = db.Model(post).Select(columns).Updates(post).Error
	}
	return errs.FromDB("update", "post", err)
}

// Delete removes the post with its likes, comments and tag associations.
// Run it inside a transaction.
func (r *GormPostRepository) Delete(ctx context.Context, id uint) (bool, error) {
	db := r.db.WithContext(ctx)

	if err := db.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
		return false, errs.FromDB("delete", "likes", err)
	}
	if err := db.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return false, errs.FromDB("delete", "comments", err)
	}
	if err := db.Where("post_id = ?", id).Delete(&models.PostTagging{}).Error; err != nil {
		return false, errs.FromDB("delete", "post tags", err)
	}

	res := db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return false, errs.FromDB("delete", "post", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Search returns the posts matching every non-empty field of filter.
func (r *GormPostRepository) Search(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if filter.PostName != "" {
		q = q.Where("post_name = ?", filter.PostName)
	}
	if filter.PostType != "" {
		q = q.Where("post_type = ?", filter.PostType)
	}
	if filter.PostCategory != "" {
		q = q.Where("post_category = ?", filter.PostCategory)
	}
	if filter.PostLocation != "" {
		q = q.Where("post_location = ?", filter.PostLocation)
	}
	if filter.PostLicensing != "" {
		q = q.Where("post_licensing = ?", filter.PostLicensing)
	}
	if filter.OrderByTimestamp {
		q = q.Clauses(newestFirst)
	} else {
		q = q.Order("id ASC")
	}

	var posts []models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, errs.FromDB("search", "posts", err)
	}
	return posts, nil
}

func (r *GormPostRepository) ByAuthor(ctx context.Context, profileID uint, page models.Page) ([]models.Post, error) {
	var posts []models.Post
	q := r.db.WithContext(ctx).Where("profile_id = ?", profileID).Clauses(newestFirst)
	if err := paginate(q, page).Find(&posts).Error; err != nil {
		return nil, errs.FromDB("list", "posts", err)
	}
	return posts, nil
}

// Timeline selects the profile's own posts and the posts of every profile it
// follows, newest first. Each post row matches at most once.
func (r *GormPostRepository) Timeline(ctx context.Context, profileID uint, page models.Page) ([]models.Post, error) {
	db := r.db.WithContext(ctx)
	followed := db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", profileID)

	var posts []models.Post
	q := db.Where("profile_id = ? OR profile_id IN (?)", profileID, followed).Clauses(newestFirst)
	if err := paginate(q, page).Find(&posts).Error; err != nil {
		return nil, errs.FromDB("list", "timeline", err)
	}
	return posts, nil
}

var _ PostRepository = (*GormPostRepository)(nil)
