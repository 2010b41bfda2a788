package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anonto42/heritage-feed/backend/internal/errs"
	"github.com/anonto42/heritage-feed/backend/internal/models"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) (bool, error)
}

// GormCommentRepository implements CommentRepository with GORM
type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return errs.FromDB("create", "comment", r.db.WithContext(ctx).Create(comment).Error)
}

func (r *GormCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, errs.FromDB("load", "comment", err)
	}
	return &comment, nil
}

// ListByPost returns the comments of a post, oldest first.
func (r *GormCommentRepository) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "timestamp"}},
			{Column: clause.Column{Name: "id"}},
		}}).
		Find(&comments).Error
	if err != nil {
		return nil, errs.FromDB("list", "comments", err)
	}
	return comments, nil
}

func (r *GormCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return errs.FromDB("update", "comment", r.db.WithContext(ctx).Save(comment).Error)
}

func (r *GormCommentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return false, errs.FromDB("delete", "comment", res.Error)
	}
	return res.RowsAffected > 0, nil
}

var _ CommentRepository = (*GormCommentRepository)(nil)
