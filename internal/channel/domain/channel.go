package domain

import (
	"time"

	account "video_sharing_service/internal/account/domain"
	video "video_sharing_service/internal/video/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Channel groups the videos of one owner and tracks its subscribers.
// Subscribers is a read model derived from SubscribersList; it is always
// recomputed from the list length, never incremented on its own.
type Channel struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	ChannelID       string               `bson:"channelId" json:"channelId"`
	ChannelName     string               `bson:"channelName" json:"channelName"`
	Description     string               `bson:"description,omitempty" json:"description,omitempty"`
	ChannelBanner   string               `bson:"channelBanner,omitempty" json:"channelBanner,omitempty"`
	BannerPublicID  string               `bson:"bannerPublicId,omitempty" json:"-"`
	Owner           primitive.ObjectID   `bson:"owner" json:"owner"`
	Subscribers     int                  `bson:"subscribers" json:"subscribers"`
	SubscribersList []primitive.ObjectID `bson:"subscribersList" json:"subscribersList"`
	Videos          []primitive.ObjectID `bson:"videos" json:"videos"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// CreateChannelReq usecase create channel request
type CreateChannelReq struct {
	ChannelName string
	Description string
	Banner      *account.FileUpload
}

// UpdateChannelReq usecase update channel request
type UpdateChannelReq struct {
	ChannelName string
	Description string
	Banner      *account.FileUpload
}

// OwnerInfo display fields of the owning user
type OwnerInfo struct {
	ID       primitive.ObjectID `json:"_id"`
	Username string             `json:"username"`
}

// ChannelView channel response with the owner display name populated
type ChannelView struct {
	Channel
	OwnerInfo *OwnerInfo `json:"ownerInfo,omitempty"`
}

// ChannelDetail channel page response, the channel plus its video listing
type ChannelDetail struct {
	Channel ChannelView   `json:"channel"`
	Videos  []video.Video `json:"videos"`
}
