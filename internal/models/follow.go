package models

import "time"

// Follow is a directed edge: FollowerID receives FollowedID's posts.
type Follow struct {
	FollowerID uint      `json:"follower_id" gorm:"primaryKey;autoIncrement:false;index"`
	FollowedID uint      `json:"followed_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "followers" }
