package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anonto42/heritage-feed/backend/internal/errs"
	"github.com/anonto42/heritage-feed/backend/internal/models"
)

// TagRepository defines the interface for tags and their post associations
type TagRepository interface {
	Create(ctx context.Context, tag *models.PostTag) error
	GetByID(ctx context.Context, id uint) (*models.PostTag, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]models.PostTag, error)
	Update(ctx context.Context, tag *models.PostTag) error
	Delete(ctx context.Context, id uint) (bool, error)
	Attach(ctx context.Context, postID, tagID uint) (bool, error)
	Detach(ctx context.Context, postID, tagID uint) (bool, error)
	IsAttached(ctx context.Context, postID, tagID uint) (bool, error)
}

// GormTagRepository implements TagRepository with GORM
type GormTagRepository struct {
	db *gorm.DB
}

func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

func (r *GormTagRepository) Create(ctx context.Context, tag *models.PostTag) error {
	return errs.FromDB("create", "tag", r.db.WithContext(ctx).Create(tag).Error)
}

func (r *GormTagRepository) GetByID(ctx context.Context, id uint) (*models.PostTag, error) {
	var tag models.PostTag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, errs.FromDB("load", "tag", err)
	}
	return &tag, nil
}

func (r *GormTagRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostTag{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errs.FromDB("load", "tag", err)
	}
	return count > 0, nil
}

func (r *GormTagRepository) List(ctx context.Context) ([]models.PostTag, error) {
	var tags []models.PostTag
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, errs.FromDB("list", "tags", err)
	}
	return tags, nil
}

func (r *GormTagRepository) Update(ctx context.Context, tag *models.PostTag) error {
	return errs.FromDB("update", "tag", r.db.WithContext(ctx).Save(tag).Error)
}

// Delete detaches the tag from every post, then removes it.
func (r *GormTagRepository) Delete(ctx context.Context, id uint) (bool, error) {
	db := r.db.WithContext(ctx)
	if err := db.Where("tag_id = ?", id).Delete(&models.PostTagging{}).Error; err != nil {
		return false, errs.FromDB("delete", "post tags", err)
	}
	res := db.Delete(&models.PostTag{}, id)
	if res.Error != nil {
		return false, errs.FromDB("delete", "tag", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Attach links the tag to the post unless it is already linked.
func (r *GormTagRepository) Attach(ctx context.Context, postID, tagID uint) (bool, error) {
	link := models.PostTagging{PostID: postID, TagID: tagID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link)
	if res.Error != nil {
		return false, errs.FromDB("attach", "tag", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormTagRepository) Detach(ctx context.Context, postID, tagID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND tag_id = ?", postID, tagID).
		Delete(&models.PostTagging{})
	if res.Error != nil {
		return false, errs.FromDB("detach", "tag", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormTagRepository) IsAttached(ctx context.Context, postID, tagID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostTagging{}).
		Where("post_id = ? AND tag_id = ?", postID, tagID).
		Count(&count).Error
	if err != nil {
		return false, errs.FromDB("load", "post tag", err)
	}
	return count > 0, nil
}

var _ TagRepository = (*GormTagRepository)(nil)
