package domain

import (
	"time"

	"video_sharing_service/pkg/encrypt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. Password holds the bcrypt hash,
// never plaintext, and is excluded from every JSON response.
type User struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Username      string               `bson:"username" json:"username"`
	Email         string               `bson:"email" json:"email"`
	Password      string               `bson:"password" json:"-"`
	ProfilePic    string               `bson:"profilePic,omitempty" json:"profilePic,omitempty"`
	Channels      []primitive.ObjectID `bson:"channels" json:"channels"`
	Subscriptions []primitive.ObjectID `bson:"subscriptions" json:"subscriptions"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// IsPasswordMatch verify the given password against the stored hash
func (u *User) IsPasswordMatch(inputPwd string) error {
	return encrypt.CheckPassword(u.Password, inputPwd)
}

// UserSession session record kept in redis while the token is valid
type UserSession struct {
	Token        string    `json:"Token"`
	UserID       string    `json:"UserID"`
	CreatedAt    time.Time `json:"CreatedAt"`
	LastActivity time.Time `json:"LastActivity"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}

// IsExpired check the session is past its expiry
func (s *UserSession) IsExpired() bool {
	return time.Now().After(s.ExpiredAt)
}

// FileUpload an in-memory multipart file
type FileUpload struct {
	Filename string
	Data     []byte
}

// RegisterReq usecase register request
type RegisterReq struct {
	Username string
	Email    string
	Password string
	Profile  *FileUpload
}

// ChannelSummary display fields of a channel owned by the user
type ChannelSummary struct {
	ID            primitive.ObjectID `json:"_id"`
	ChannelName   string             `json:"channelName"`
	ChannelBanner string             `json:"channelBanner,omitempty"`
	Subscribers   int                `json:"subscribers"`
}

// UserView user response with owned channels populated in place of their ids
type UserView struct {
	ID            primitive.ObjectID   `json:"_id"`
	Username      string               `json:"username"`
	Email         string               `json:"email"`
	ProfilePic    string               `json:"profilePic,omitempty"`
	Channels      []ChannelSummary     `json:"channels"`
	Subscriptions []primitive.ObjectID `json:"subscriptions"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}
