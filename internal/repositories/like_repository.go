package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anonto42/heritage-feed/backend/internal/errs"
	"github.com/anonto42/heritage-feed/backend/internal/models"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	Create(ctx context.Context, profileID, postID uint) (bool, error)
	Delete(ctx context.Context, profileID, postID uint) (bool, error)
	Exists(ctx context.Context, profileID, postID uint) (bool, error)
	GetByID(ctx context.Context, id uint) (*models.Like, error)
	DeleteByID(ctx context.Context, id uint) (bool, error)
	ListByPost(ctx context.Context, postID uint) ([]models.Like, error)
	CountByPost(ctx context.Context, postID uint) (int64, error)
}

// GormLikeRepository implements LikeRepository with GORM
type GormLikeRepository struct {
	db *gorm.DB
}

func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

// Create inserts a like unless the (profile, post) pair already has one.
func (r *GormLikeRepository) Create(ctx context.Context, profileID, postID uint) (bool, error) {
	like := models.Like{ProfileID: profileID, PostID: postID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if res.Error != nil {
		return false, errs.FromDB("create", "like", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes every like row of the pair and reports whether any existed.
func (r *GormLikeRepository) Delete(ctx context.Context, profileID, postID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("profile_id = ? AND post_id = ?", profileID, postID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, errs.FromDB("delete", "like", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormLikeRepository) Exists(ctx context.Context, profileID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("profile_id = ? AND post_id = ?", profileID, postID).
		Count(&count).Error
	if err != nil {
		return false, errs.FromDB("load", "like", err)
	}
	return count > 0, nil
}

func (r *GormLikeRepository) GetByID(ctx context.Context, id uint) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).First(&like, id).Error; err != nil {
		return nil, errs.FromDB("load", "like", err)
	}
	return &like, nil
}

func (r *GormLikeRepository) DeleteByID(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Like{}, id)
	if res.Error != nil {
		return false, errs.FromDB("delete", "like", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormLikeRepository) ListByPost(ctx context.Context, postID uint) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("id ASC").Find(&likes).Error
	if err != nil {
		return nil, errs.FromDB("list", "likes", err)
	}
	return likes, nil
}

func (r *GormLikeRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, errs.FromDB("count", "likes", err)
}

var _ LikeRepository = (*GormLikeRepository)(nil)
