package domain

import (
	"time"

	account "video_sharing_service/internal/account/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video metadata for an uploaded video. The media itself lives in the
// object store; VideoPublicID and ThumbnailPublicID are the deletion
// handles returned at upload time.
type Video struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Title             string               `bson:"title" json:"title"`
	Description       string               `bson:"description,omitempty" json:"description,omitempty"`
	Category          string               `bson:"category" json:"category"`
	VideoURL          string               `bson:"videoUrl" json:"videoUrl"`
	VideoPublicID     string               `bson:"videoPublicId" json:"-"`
	ThumbnailURL      string               `bson:"thumbnailUrl" json:"thumbnailUrl"`
	ThumbnailPublicID string               `bson:"thumbnailPublicId" json:"-"`
	Uploader          primitive.ObjectID   `bson:"uploader" json:"uploader"`
	Channel           primitive.ObjectID   `bson:"channel" json:"channel"`
	Likes             []primitive.ObjectID `bson:"likes" json:"likes"`
	Dislikes          []primitive.ObjectID `bson:"dislikes" json:"dislikes"`
	Comments          []primitive.ObjectID `bson:"comments" json:"comments"`
	Duration          int                  `bson:"duration,omitempty" json:"duration,omitempty"`
	Views             int64                `bson:"views" json:"views"`
	CreatedAt         time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// UploadVideoReq usecase upload video request
type UploadVideoReq struct {
	Title       string
	Description string
	Category    string
	Video       *account.FileUpload
	Thumbnail   *account.FileUpload
}

// UpdateVideoReq usecase update video request. Nil file fields keep the
// current media; empty Title/Description keep the current value, Category
// is always replaced.
type UpdateVideoReq struct {
	Title       string
	Description string
	Category    string
	Video       *account.FileUpload
	Thumbnail   *account.FileUpload
}

// UploaderInfo display fields of the uploading user
type UploaderInfo struct {
	ID       primitive.ObjectID `json:"_id"`
	Username string             `json:"username"`
}

// ChannelInfo display fields of the owning channel
type ChannelInfo struct {
	ID            primitive.ObjectID `json:"_id"`
	ChannelName   string             `json:"channelName"`
	ChannelBanner string             `json:"channelBanner,omitempty"`
}

// VideoView video response with uploader and channel display fields
// populated, and optionally the comment thread.
type VideoView struct {
	ID           primitive.ObjectID   `json:"_id"`
	Title        string               `json:"title"`
	Description  string               `json:"description,omitempty"`
	Category     string               `json:"category"`
	VideoURL     string               `json:"videoUrl"`
	ThumbnailURL string               `json:"thumbnailUrl"`
	Uploader     UploaderInfo         `json:"uploader"`
	Channel      ChannelInfo          `json:"channel"`
	Likes        []primitive.ObjectID `json:"likes"`
	Dislikes     []primitive.ObjectID `json:"dislikes"`
	Comments     []CommentView        `json:"comments,omitempty"`
	Duration     int                  `json:"duration,omitempty"`
	Views        int64                `json:"views"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}
