package models

import "time"

// Like is a profile's like on a post. At most one per (profile, post).
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID uint      `json:"profile_id" gorm:"not null;index;uniqueIndex:idx_like_profile_post"`
	PostID    uint      `json:"post_id" gorm:"not null;index;uniqueIndex:idx_like_profile_post"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string { return "likes" }
