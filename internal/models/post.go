package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/anonto42/heritage-feed/backend/internal/errs"
)

// Post is a media post owned by a profile.
type Post struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Media         string    `json:"media" gorm:"size:1024"`
	PostName      string    `json:"post_name" gorm:"size:255;uniqueIndex;not null"`
	PostType      MediaType `json:"post_type" gorm:"size:32;not null;index"`
	PostLocation  string    `json:"post_location" gorm:"size:255;not null;index"`
	PostCategory  Category  `json:"post_category" gorm:"size:64;not null;index"`
	PostLicensing Licensing `json:"post_licensing" gorm:"size:64;not null"`
	Timestamp     time.Time `json:"timestamp" gorm:"not null;index"`
	ProfileID     uint      `json:"profile_id" gorm:"not null;index"`

	Tags     []PostTag `json:"tags" gorm:"many2many:tags;joinForeignKey:PostID;joinReferences:TagID"`
	Comments []Comment `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Likes    []Like    `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string { return "posts" }

// BeforeSave fills defaults and rejects enum values outside their domain,
// so no invalid post reaches storage.
func (p *Post) BeforeSave(tx *gorm.DB) error {
	if p.PostType == "" {
		p.PostType = MediaPhoto
	}
	if p.PostCategory == "" {
		p.PostCategory = CategoryAfricanHistory
	}
	if p.PostLicensing == "" {
		p.PostLicensing = LicensingCreativeCommons
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}
	return p.Validate()
}

func (p *Post) Validate() error {
	if p.PostName == "" {
		return errs.Validation("post_name", "post_name is required")
	}
	if p.PostLocation == "" {
		return errs.Validation("post_location", "post_location is required")
	}
	if !p.PostType.Valid() {
		return errs.Validation("post_type", fmt.Sprintf("unknown media type %q", p.PostType))
	}
	if !p.PostCategory.Valid() {
		return errs.Validation("post_category", fmt.Sprintf("unknown category %q", p.PostCategory))
	}
	if !p.PostLicensing.Valid() {
		return errs.Validation("post_licensing", fmt.Sprintf("unknown licensing %q", p.PostLicensing))
	}
	return nil
}

// PostFilter selects posts by exact field equality. Empty fields match all.
type PostFilter struct {
	PostName         string
	PostType         MediaType
	PostCategory     Category
	PostLocation     string
	PostLicensing    Licensing
	OrderByTimestamp bool
}

// Page limits a listing. A zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	ProfileID     uint      `json:"profile_id" validate:"required"`
	Media         string    `json:"media" validate:"omitempty,uri,max=1024"`
	PostName      string    `json:"post_name" validate:"required,min=1,max=255"`
	PostType      MediaType `json:"post_type" validate:"omitempty,oneof=photo video audio"`
	PostLocation  string    `json:"post_location" validate:"required,min=1,max=255"`
	PostCategory  Category  `json:"post_category" validate:"omitempty,oneof=africanhistory contemporaryafrican neoafrican"`
	PostLicensing Licensing `json:"post_licensing" validate:"omitempty,oneof=creativecommons"`
	TagIDs        []uint    `json:"tag_ids,omitempty" validate:"omitempty,dive,required"`
}

// UpdatePostRequest changes only the fields that are present.
type UpdatePostRequest struct {
	Media         *string    `json:"media,omitempty" validate:"omitempty,uri,max=1024"`
	PostName      *string    `json:"post_name,omitempty" validate:"omitempty,min=1,max=255"`
	PostType      *MediaType `json:"post_type,omitempty" validate:"omitempty,oneof=photo video audio"`
	PostLocation  *string    `json:"post_location,omitempty" validate:"omitempty,min=1,max=255"`
	PostCategory  *Category  `json:"post_category,omitempty" validate:"omitempty,oneof=africanhistory contemporaryafrican neoafrican"`
	PostLicensing *Licensing `json:"post_licensing,omitempty" validate:"omitempty,oneof=creativecommons"`
}
