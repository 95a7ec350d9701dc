package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment a single comment on a video, linked back to its author and the
// video it was made on.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Text      string             `bson:"text" json:"text"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	Video     primitive.ObjectID `bson:"video" json:"video"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AuthorInfo display fields of the comment author
type AuthorInfo struct {
	ID       primitive.ObjectID `json:"_id"`
	Username string             `json:"username"`
}

// CommentView comment response with the author display name populated
type CommentView struct {
	ID        primitive.ObjectID `json:"_id"`
	Text      string             `json:"text"`
	Author    AuthorInfo         `json:"author"`
	Video     primitive.ObjectID `json:"video"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
