package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Timeline is an append-only audit entry tied to a booking document.
type Timeline struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PostID      string             `bson:"postId" json:"postId"`
	UserID      []string           `bson:"userId" json:"userId"`
	Type        string             `bson:"type" json:"type"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Reference   map[string]any     `bson:"reference,omitempty" json:"reference,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
