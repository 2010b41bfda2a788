package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityType string

const (
	ActivityFollow ActivityType = "follow"
	ActivityLike   ActivityType = "like"
)

// Activity is an entry in a profile's activity log (MongoDB).
type Activity struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Type        ActivityType       `json:"type" bson:"type"`
	ActorID     uint               `json:"actor_id" bson:"actor_id"`
	RecipientID uint               `json:"recipient_id" bson:"recipient_id"`
	TargetID    uint               `json:"target_id" bson:"target_id"`
	TargetType  string             `json:"target_type" bson:"target_type"` // post, profile
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
