package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"comment" gorm:"column:comment;size:255;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"not null"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now().UTC()
	}
	return nil
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=255"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=255"`
}
