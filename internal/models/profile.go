package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile is the root entity: it owns posts, likes and outgoing follow edges.
type Profile struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Username      string    `json:"username" gorm:"size:255;uniqueIndex;not null"`
	Country       string    `json:"country" gorm:"size:255;not null"`
	Facebook      *string   `json:"facebook,omitempty" gorm:"size:255"`
	Twitter       *string   `json:"twitter,omitempty" gorm:"size:255"`
	Google        *string   `json:"google,omitempty" gorm:"size:255"`
	IsActive      bool      `json:"is_active" gorm:"not null"`
	IsVerified    bool      `json:"is_verified" gorm:"not null"`
	RememberToken bool      `json:"remember_token" gorm:"not null"`
	JoinDate      time.Time `json:"join_date" gorm:"not null"`

	Posts     []Post   `json:"-" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Likes     []Like   `json:"-" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Following []Follow `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Followers []Follow `json:"-" gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.JoinDate.IsZero() {
		p.JoinDate = time.Now().UTC()
	}
	return nil
}

// ProfileStats is the follower/following summary of a profile.
type ProfileStats struct {
	ProfileID      uint  `json:"profile_id"`
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}

type CreateProfileRequest struct {
	Username      string  `json:"username" validate:"required,min=1,max=255"`
	Country       string  `json:"country" validate:"required,min=1,max=255"`
	Facebook      *string `json:"facebook,omitempty" validate:"omitempty,max=255"`
	Twitter       *string `json:"twitter,omitempty" validate:"omitempty,max=255"`
	Google        *string `json:"google,omitempty" validate:"omitempty,max=255"`
	RememberToken bool    `json:"remember_token"`
}

// UpdateProfileRequest changes only the fields that are present.
type UpdateProfileRequest struct {
	Username      *string `json:"username,omitempty" validate:"omitempty,min=1,max=255"`
	Country       *string `json:"country,omitempty" validate:"omitempty,min=1,max=255"`
	Facebook      *string `json:"facebook,omitempty" validate:"omitempty,max=255"`
	Twitter       *string `json:"twitter,omitempty" validate:"omitempty,max=255"`
	Google        *string `json:"google,omitempty" validate:"omitempty,max=255"`
	RememberToken *bool   `json:"remember_token,omitempty"`
}
