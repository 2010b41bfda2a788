package models

// PostTag is a free-text tag that can be attached to many posts.
type PostTag struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	TagText string `json:"tag_text" gorm:"size:255;not null"`
}

func (PostTag) TableName() string { return "posttags" }

// PostTagging is the post<->tag association row. It has no payload.
type PostTagging struct {
	PostID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID  uint `gorm:"primaryKey;autoIncrement:false;index"`
}

func (PostTagging) TableName() string { return "tags" }

type TagRequest struct {
	TagText string `json:"tag_text" validate:"required,min=1,max=255"`
}
