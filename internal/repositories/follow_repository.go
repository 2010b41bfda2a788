package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anonto42/heritage-feed/backend/internal/errs"
	"github.com/anonto42/heritage-feed/backend/internal/models"
)

// FollowRepository defines the interface for follow edge operations
type FollowRepository interface {
	Create(ctx context.Context, followerID, followedID uint) (bool, error)
	Delete(ctx context.Context, followerID, followedID uint) (bool, error)
	Exists(ctx context.Context, followerID, followedID uint) (bool, error)
	Followers(ctx context.Context, profileID uint, page models.Page) ([]models.Profile, error)
	Following(ctx context.Context, profileID uint, page models.Page) ([]models.Profile, error)
	FollowingIDs(ctx context.Context, profileID uint) ([]uint, error)
	CountFollowers(ctx context.Context, profileID uint) (int64, error)
	CountFollowing(ctx context.Context, profileID uint) (int64, error)
}

// GormFollowRepository stores edges in the followers table, keyed by
// (follower_id, followed_id).
type GormFollowRepository struct {
	db *gorm.DB
}

func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// Create inserts the edge unless it already exists. It reports whether a row
// was written.
func (r *GormFollowRepository) Create(ctx context.Context, followerID, followedID uint) (bool, error) {
	edge := models.Follow{FollowerID: followerID, FollowedID: followedID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&edge)
	if res.Error != nil {
		return false, errs.FromDB("create", "follow", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the edge and reports whether it existed.
func (r *GormFollowRepository) Delete(ctx context.Context, followerID, followedID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, errs.FromDB("delete", "follow", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Exists is a primary key lookup.
func (r *GormFollowRepository) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, errs.FromDB("load", "follow", err)
	}
	return count > 0, nil
}

func (r *GormFollowRepository) Followers(ctx context.Context, profileID uint, page models.Page) ([]models.Profile, error) {
	var profiles []models.Profile
	db := r.db.WithContext(ctx)
	q := db.Where("id IN (?)",
		db.Model(&models.Follow{}).Select("follower_id").Where("followed_id = ?", profileID),
	).Order("id ASC")
	if err := paginate(q, page).Find(&profiles).Error; err != nil {
		return nil, errs.FromDB("list", "followers", err)
	}
	return profiles, nil
}

func (r *GormFollowRepository) Following(ctx context.Context, profileID uint, page models.Page) ([]models.Profile, error) {
	var profiles []models.Profile
	db := r.db.WithContext(ctx)
	q := db.Where("id IN (?)",
		db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", profileID),
	).Order("id ASC")
	if err := paginate(q, page).Find(&profiles).Error; err != nil {
		return nil, errs.FromDB("list", "following", err)
	}
	return profiles, nil
}

func (r *GormFollowRepository) FollowingIDs(ctx context.Context, profileID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", profileID).
		Order("followed_id ASC").
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, errs.FromDB("list", "following", err)
	}
	return ids, nil
}

func (r *GormFollowRepository) CountFollowers(ctx context.Context, profileID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("followed_id = ?", profileID).Count(&count).Error
	return count, errs.FromDB("count", "followers", err)
}

func (r *GormFollowRepository) CountFollowing(ctx context.Context, profileID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", profileID).Count(&count).Error
	return count, errs.FromDB("count", "following", err)
}

var _ FollowRepository = (*GormFollowRepository)(nil)
