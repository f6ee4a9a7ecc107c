// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post types for the share feed.
const (
	PostImage = "image"
	PostVideo = "video"
	PostText  = "text"
)

// ValidPostType reports whether t is a known post type.
func ValidPostType(t string) bool {
	switch t {
	case PostImage, PostVideo, PostText:
		return true
	}
	return false
}

// Post is a share-feed entry: a title, body text, and an optional media URL.
type Post struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Details string             `bson:"details" json:"details"`
	Media   string             `bson:"media,omitempty" json:"media,omitempty"`
	Type    string             `bson:"type" json:"type"` // image | video | text

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
